// Package subnet implements the IPv4 subnet arithmetic engine: address
// and mask parsing, classful default resolution, and derivation of
// network, broadcast, usable range, host count, and next network. All
// functions are pure and safe for concurrent use; errors are returned as
// values and never accompany a partial result.
package subnet

import (
	"strconv"
	"strings"
)

// MaskSource records how the mask used for a calculation was obtained.
type MaskSource string

const (
	SourceExplicitMask    MaskSource = "explicit-mask"
	SourceExplicitCIDR    MaskSource = "explicit-cidr"
	SourceClassfulDefault MaskSource = "classful-default"
)

// Result holds the outcome of one subnet calculation. Fields are fixed
// once computed. Gateway is nil for /31 and /32 blocks, where no address
// can be set aside for routing; NextNetwork is nil when the block ends at
// the top of the address space. Counts are 64-bit because a /0 block
// holds 2^32 addresses.
type Result struct {
	Addr        Addr
	Mask        Mask
	PrefixLen   int
	Source      MaskSource
	Network     Addr
	Broadcast   Addr
	BlockSize   uint64
	FirstHost   Addr
	LastHost    Addr
	UsableHosts uint64
	Gateway     *Addr
	NextNetwork *Addr
}

// Compute derives the full set of subnet quantities for an address and a
// mask specification. The mask may be a CIDR prefix ("/24"), dotted
// decimal ("255.255.255.0"), or empty with allowDefault set to fall back
// to the classful default for the address. Inputs are trimmed of
// surrounding whitespace; the parsers themselves are strict.
func Compute(address, maskSpec string, allowDefault bool) (Result, error) {
	addr, err := ParseAddr(strings.TrimSpace(address))
	if err != nil {
		return Result{}, err
	}
	mask, source, err := resolveMask(addr, strings.TrimSpace(maskSpec), allowDefault)
	if err != nil {
		return Result{}, err
	}

	a := uint32(addr)
	m := uint32(mask)
	network := a & m
	wildcard := ^m
	broadcast := network | wildcard
	blockSize := uint64(wildcard) + 1
	p := mask.PrefixLen()

	r := Result{
		Addr:      addr,
		Mask:      mask,
		PrefixLen: p,
		Source:    source,
		Network:   Addr(network),
		Broadcast: Addr(broadcast),
		BlockSize: blockSize,
	}

	switch {
	case p == 32:
		// Host route: the address is the whole block.
		r.FirstHost = Addr(network)
		r.LastHost = Addr(network)
		r.UsableHosts = 1
	case p == 31:
		// Point-to-point pair (RFC 3021): both addresses usable, none
		// spare for a gateway.
		r.FirstHost = Addr(network)
		r.LastHost = Addr(broadcast)
		r.UsableHosts = 2
	default:
		first := Addr(network + 1)
		r.FirstHost = first
		r.LastHost = Addr(broadcast - 1)
		r.UsableHosts = blockSize - 2
		r.Gateway = &first
	}

	if next := uint64(network) + blockSize; next <= 0xFFFFFFFF {
		nn := Addr(uint32(next))
		r.NextNetwork = &nn
	}
	return r, nil
}

// resolveMask applies the mask-spec rules in order: classful default for
// an empty spec when allowed, "/n" CIDR form, dotted-decimal form, then
// rejection.
func resolveMask(addr Addr, spec string, allowDefault bool) (Mask, MaskSource, error) {
	switch {
	case spec == "" && allowDefault:
		m, err := DefaultMask(addr)
		if err != nil {
			return 0, "", err
		}
		return m, SourceClassfulDefault, nil
	case spec == "":
		return 0, "", ErrMaskRequired
	case strings.HasPrefix(spec, "/"):
		p, err := strconv.Atoi(spec[1:])
		if err != nil {
			return 0, "", &MaskError{Spec: spec, Reason: "prefix length is not an integer", Err: ErrInvalidCIDR}
		}
		m, err := MaskFromPrefix(p)
		if err != nil {
			return 0, "", err
		}
		return m, SourceExplicitCIDR, nil
	case strings.Contains(spec, "."):
		m, err := ParseMask(spec)
		if err != nil {
			return 0, "", err
		}
		return m, SourceExplicitMask, nil
	default:
		return 0, "", &MaskError{Spec: spec, Reason: "neither a /prefix nor a dotted-decimal mask", Err: ErrUnknownMaskSpec}
	}
}
