package subnet

import "fmt"

// Classful default masks keyed by the first octet, per the legacy A/B/C
// class rules. The zero network, loopback, multicast (class D), and
// experimental (class E) ranges have no default; callers must supply an
// explicit mask for those. A /0 mask is never produced here, it is valid
// only as explicit input.
func DefaultMask(a Addr) (Mask, error) {
	switch first := uint32(a) >> 24; {
	case first >= 1 && first <= 126:
		return Mask(0xFF000000), nil // class A, 255.0.0.0
	case first >= 128 && first <= 191:
		return Mask(0xFFFF0000), nil // class B, 255.255.0.0
	case first >= 192 && first <= 223:
		return Mask(0xFFFFFF00), nil // class C, 255.255.255.0
	case first == 0:
		return 0, fmt.Errorf("%w: %s is in 0.0.0.0/8, \"this network\" (RFC 791)", ErrNoDefaultMask, a)
	case first == 127:
		return 0, fmt.Errorf("%w: %s is a loopback address (RFC 1122)", ErrNoDefaultMask, a)
	case first <= 239:
		return 0, fmt.Errorf("%w: %s is a multicast address (RFC 5771)", ErrNoDefaultMask, a)
	default:
		return 0, fmt.Errorf("%w: %s is in the experimental range (RFC 1112)", ErrNoDefaultMask, a)
	}
}
