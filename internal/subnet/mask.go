package subnet

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"strings"
)

// Mask is an IPv4 subnet mask as a 32-bit unsigned integer. A valid mask
// is a contiguous run of one bits from the most significant bit followed
// by zeros; ParseMask enforces this, Mask values built elsewhere can be
// checked with IsContiguous.
type Mask uint32

// MaskFromPrefix returns the mask with the top p bits set.
func MaskFromPrefix(p int) (Mask, error) {
	if p < 0 || p > 32 {
		return 0, &MaskError{
			Spec:   fmt.Sprintf("/%d", p),
			Reason: fmt.Sprintf("prefix length %d is out of range 0-32", p),
			Err:    ErrInvalidPrefixLength,
		}
	}
	return Mask(^uint32(0) << (32 - p)), nil
}

// PrefixLen returns the number of leading one bits. The mask must be
// contiguous; callers validate with IsContiguous first.
func (m Mask) PrefixLen() int {
	return bits.LeadingZeros32(^uint32(m))
}

// IsContiguous reports whether the mask is a run of one bits followed by
// a run of zero bits. Exactly the 33 masks /0 through /32 qualify.
func (m Mask) IsContiguous() bool {
	inv := ^uint32(m)
	return inv&(inv+1) == 0
}

// String returns the dotted-decimal form of the mask.
func (m Mask) String() string {
	return Addr(m).String()
}

// ParseMask parses a dotted-decimal subnet mask and verifies contiguity.
// Octet rules match address parsing except that leading zeros are
// tolerated, a deliberate relaxation for mask-only input.
func ParseMask(s string) (Mask, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return 0, &MaskError{Spec: s, Reason: "must have exactly four octets", Err: ErrInvalidMask}
	}
	var b [4]byte
	for i, part := range parts {
		n, err := parseOctet(part, true)
		if err != nil {
			return 0, &MaskError{Spec: s, Reason: octetReason(part, err), Err: ErrInvalidMask}
		}
		b[i] = byte(n)
	}
	m := Mask(binary.BigEndian.Uint32(b[:]))
	if !m.IsContiguous() {
		return 0, &MaskError{Spec: s, Reason: "mask bits are not contiguous", Err: ErrInvalidMask}
	}
	return m, nil
}
