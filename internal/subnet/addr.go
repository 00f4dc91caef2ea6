package subnet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// Addr is an IPv4 address packed big-endian into a 32-bit unsigned integer.
type Addr uint32

// ParseAddr parses a dotted-decimal IPv4 address. Octets must be plain
// decimal in [0,255]; a multi-digit octet with a leading zero is rejected
// rather than guessed at (no octal-style input).
func ParseAddr(s string) (Addr, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return 0, &AddrError{Addr: s, Reason: "must have exactly four octets", Err: ErrMalformedAddress}
	}
	var b [4]byte
	for i, part := range parts {
		n, err := parseOctet(part, false)
		if err != nil {
			return 0, &AddrError{Addr: s, Reason: octetReason(part, err), Err: err}
		}
		b[i] = byte(n)
	}
	return Addr(binary.BigEndian.Uint32(b[:])), nil
}

// String returns the canonical dotted-decimal form, most significant
// octet first. Round-trips with ParseAddr.
func (a Addr) String() string {
	return a.Netip().String()
}

// Netip returns the address as a netip.Addr.
func (a Addr) Netip() netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(a))
	return netip.AddrFrom4(b)
}

// parseOctet parses one dotted-decimal segment. Address parsing rejects
// leading zeros; mask parsing tolerates them.
func parseOctet(s string, allowLeadingZero bool) (int, error) {
	if s == "" {
		return 0, ErrInvalidOctet
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidOctet
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > 255 {
		return 0, ErrOctetOutOfRange
	}
	if !allowLeadingZero && len(s) > 1 && s[0] == '0' {
		return 0, ErrLeadingZero
	}
	return n, nil
}

// octetReason builds the human-readable reason for an octet parse failure.
func octetReason(octet string, err error) string {
	switch {
	case errors.Is(err, ErrLeadingZero):
		return fmt.Sprintf("octet %q has a leading zero", octet)
	case errors.Is(err, ErrOctetOutOfRange):
		return fmt.Sprintf("octet %q is out of range 0-255", octet)
	default:
		return fmt.Sprintf("octet %q is not a decimal number", octet)
	}
}
