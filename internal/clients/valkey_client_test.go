package clients

import (
	"errors"
	"testing"
)

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("dial tcp 127.0.0.1:6379: connect: connection refused"), true},
		{errors.New("unexpected EOF"), true},
		{errors.New("read tcp: i/o timeout"), true},
		{errors.New("WRONGTYPE Operation against a key holding the wrong kind of value"), false},
	}
	for _, tt := range tests {
		if got := isConnectionError(tt.err); got != tt.want {
			t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestValkeyOptions(t *testing.T) {
	t.Setenv("VALKEY_PASSWORD", "secret")
	t.Setenv("VALKEY_TLS", "true")

	opts := valkeyOptions("localhost:6379")
	if len(opts.InitAddress) != 1 || opts.InitAddress[0] != "localhost:6379" {
		t.Errorf("InitAddress = %v", opts.InitAddress)
	}
	if opts.Password != "secret" {
		t.Errorf("Password = %q", opts.Password)
	}
	if opts.TLSConfig == nil {
		t.Error("expected TLS config")
	}
}
