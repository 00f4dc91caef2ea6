package subnet

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultMask(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		want    string
		wantErr error
	}{
		// Class A
		{name: "class A low edge", addr: "1.0.0.1", want: "255.0.0.0"},
		{name: "class A private", addr: "10.1.2.3", want: "255.0.0.0"},
		{name: "class A high edge", addr: "126.255.255.255", want: "255.0.0.0"},

		// Class B
		{name: "class B low edge", addr: "128.0.0.1", want: "255.255.0.0"},
		{name: "class B private", addr: "172.16.5.5", want: "255.255.0.0"},
		{name: "class B high edge", addr: "191.255.0.1", want: "255.255.0.0"},

		// Class C
		{name: "class C low edge", addr: "192.0.2.1", want: "255.255.255.0"},
		{name: "class C private", addr: "192.168.1.1", want: "255.255.255.0"},
		{name: "class C high edge", addr: "223.255.255.254", want: "255.255.255.0"},

		// No default
		{name: "this network", addr: "0.1.2.3", wantErr: ErrNoDefaultMask},
		{name: "loopback", addr: "127.0.0.1", wantErr: ErrNoDefaultMask},
		{name: "multicast low edge", addr: "224.0.0.1", wantErr: ErrNoDefaultMask},
		{name: "multicast high edge", addr: "239.255.255.255", wantErr: ErrNoDefaultMask},
		{name: "experimental", addr: "240.0.0.1", wantErr: ErrNoDefaultMask},
		{name: "limited broadcast", addr: "255.255.255.255", wantErr: ErrNoDefaultMask},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DefaultMask(mustAddr(t, tt.addr))
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("DefaultMask(%s) = %s, want error containing %v", tt.addr, got, tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("DefaultMask(%s) = %v, want error containing %v", tt.addr, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DefaultMask(%s) unexpected error: %v", tt.addr, err)
			}
			if got.String() != tt.want {
				t.Errorf("DefaultMask(%s) = %s, want %s", tt.addr, got, tt.want)
			}
		})
	}
}

// The no-default message names the range so users know why an explicit
// mask is required.
func TestDefaultMask_ErrorMessages(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"0.0.0.1", "this network"},
		{"127.0.0.1", "loopback"},
		{"224.0.0.1", "multicast"},
		{"240.0.0.1", "experimental"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			_, err := DefaultMask(mustAddr(t, tt.addr))
			if err == nil {
				t.Fatalf("DefaultMask(%s) expected error", tt.addr)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("DefaultMask(%s) error %q does not mention %q", tt.addr, err.Error(), tt.want)
			}
		})
	}
}

func mustAddr(t *testing.T, s string) Addr {
	t.Helper()
	a, err := ParseAddr(s)
	if err != nil {
		t.Fatalf("ParseAddr(%q): %v", s, err)
	}
	return a
}
