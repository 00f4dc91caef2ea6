package subnet

import (
	"errors"
	"testing"
)

func TestParseAddr(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    uint32
		wantErr error
	}{
		// Valid addresses
		{name: "all zeros", input: "0.0.0.0", want: 0x00000000},
		{name: "all ones", input: "255.255.255.255", want: 0xFFFFFFFF},
		{name: "private /8", input: "10.0.0.1", want: 0x0A000001},
		{name: "private /12", input: "172.16.5.5", want: 0xAC100505},
		{name: "documentation range", input: "192.0.2.0", want: 0xC0000200},
		{name: "single digit octets", input: "1.2.3.4", want: 0x01020304},

		// Segment count
		{name: "three octets", input: "10.0.0", wantErr: ErrMalformedAddress},
		{name: "five octets", input: "10.0.0.0.1", wantErr: ErrMalformedAddress},
		{name: "empty string", input: "", wantErr: ErrMalformedAddress},
		{name: "trailing dot", input: "10.0.0.1.", wantErr: ErrMalformedAddress},

		// Octet content
		{name: "empty octet", input: "10..0.1", wantErr: ErrInvalidOctet},
		{name: "alpha octet", input: "10.0.x.1", wantErr: ErrInvalidOctet},
		{name: "negative octet", input: "10.0.-1.1", wantErr: ErrInvalidOctet},
		{name: "inner whitespace", input: " 10.0.0.1", wantErr: ErrInvalidOctet},
		{name: "hex octet", input: "0x10.0.0.1", wantErr: ErrInvalidOctet},

		// Octet range
		{name: "octet 256", input: "192.168.1.256", wantErr: ErrOctetOutOfRange},
		{name: "octet 999", input: "999.0.0.1", wantErr: ErrOctetOutOfRange},
		{name: "absurdly long octet", input: "1.2.3.99999999999999999999", wantErr: ErrOctetOutOfRange},

		// Leading zeros
		{name: "leading zero", input: "192.168.01.1", wantErr: ErrLeadingZero},
		{name: "double zero", input: "10.00.0.1", wantErr: ErrLeadingZero},
		{name: "zero padded 255", input: "0255.0.0.1", wantErr: ErrLeadingZero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAddr(tt.input)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("ParseAddr(%q) = %v, want error containing %v", tt.input, got, tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseAddr(%q) = %v, want error containing %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAddr(%q) unexpected error: %v", tt.input, err)
			}
			if uint32(got) != tt.want {
				t.Errorf("ParseAddr(%q) = %#08x, want %#08x", tt.input, uint32(got), tt.want)
			}
		})
	}
}

func TestAddrString(t *testing.T) {
	tests := []struct {
		addr Addr
		want string
	}{
		{0x00000000, "0.0.0.0"},
		{0xFFFFFFFF, "255.255.255.255"},
		{0x0A000001, "10.0.0.1"},
		{0xC0A80164, "192.168.1.100"},
		{0x7F000001, "127.0.0.1"},
		{0x01000000, "1.0.0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.addr.String(); got != tt.want {
				t.Errorf("Addr(%#08x).String() = %q, want %q", uint32(tt.addr), got, tt.want)
			}
		})
	}
}

func TestParseAddr_RoundTrip(t *testing.T) {
	addrs := []Addr{
		0x00000000,
		0x00000001,
		0x01020304,
		0x7F000001,
		0x80000000,
		0xC0A80101,
		0xFFFFFFFE,
		0xFFFFFFFF,
	}
	for _, a := range addrs {
		s := a.String()
		got, err := ParseAddr(s)
		if err != nil {
			t.Fatalf("ParseAddr(%q) unexpected error: %v", s, err)
		}
		if got != a {
			t.Errorf("ParseAddr(%q) = %#08x, want %#08x", s, uint32(got), uint32(a))
		}
	}
}
