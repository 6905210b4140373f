package resolve

import (
	"context"
	"testing"

	"github.com/velopayments/vcblockchain/vcerr"
)

func TestResolveLoopbackIPv4(t *testing.T) {
	r := &DefaultResolver{}
	addr, err := r.Resolve(context.Background(), "localhost", IPv4)
	if err != nil {
		t.Fatal(err)
	}
	if addr == "" {
		t.Fatal("expected non-empty address")
	}
}

func TestResolveInvalidFamily(t *testing.T) {
	r := &DefaultResolver{}
	_, err := r.Resolve(context.Background(), "localhost", Family(99))
	if !vcerr.Is(err, vcerr.InvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestResolveUnresolvableHost(t *testing.T) {
	r := &DefaultResolver{}
	_, err := r.Resolve(context.Background(), "this-host-should-not-resolve.invalid", IPv4)
	if !vcerr.Is(err, vcerr.InetResolutionFailure) {
		t.Fatalf("expected InetResolutionFailure, got %v", err)
	}
}
