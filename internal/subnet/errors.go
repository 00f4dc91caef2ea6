package subnet

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the calculator. Callers classify with errors.Is.
var (
	ErrMalformedAddress    = errors.New("address must have exactly four octets")
	ErrInvalidOctet        = errors.New("octet is not a decimal number")
	ErrOctetOutOfRange     = errors.New("octet out of range 0-255")
	ErrLeadingZero         = errors.New("octet has a leading zero")
	ErrInvalidPrefixLength = errors.New("prefix length out of range 0-32")
	ErrInvalidCIDR         = errors.New("invalid cidr prefix")
	ErrInvalidMask         = errors.New("invalid subnet mask")
	ErrUnknownMaskSpec     = errors.New("unrecognized mask format")
	ErrNoDefaultMask       = errors.New("address class has no default mask")
	ErrMaskRequired        = errors.New("subnet mask required")
)

// AddrError provides detailed address parse error information.
type AddrError struct {
	Addr   string
	Reason string
	Err    error
}

func (e *AddrError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid address %q: %s", e.Addr, e.Reason)
	}
	return fmt.Sprintf("invalid address %q: %v", e.Addr, e.Err)
}

func (e *AddrError) Unwrap() error {
	return e.Err
}

// MaskError provides detailed mask resolution error information.
type MaskError struct {
	Spec   string
	Reason string
	Err    error
}

func (e *MaskError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid mask %q: %s", e.Spec, e.Reason)
	}
	return fmt.Sprintf("invalid mask %q: %v", e.Spec, e.Err)
}

func (e *MaskError) Unwrap() error {
	return e.Err
}
