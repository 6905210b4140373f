// Package resolve is the address-resolution collaborator: a
// thin interface so the handshake/connect path never hard-codes a
// platform resolver. The core library depends only on the Resolver
// interface; net.Resolver-backed DefaultResolver is provided as the
// one concrete adapter callers typically need.
package resolve

import (
	"context"
	"net"

	"github.com/velopayments/vcblockchain/vcerr"
)

// Family is an address family a Resolver can be asked to resolve to.
type Family int

const (
	IPv4 Family = iota
	IPv6
)

// Resolver resolves a hostname/address query string to a canonical
// textual address of the requested family.
type Resolver interface {
	Resolve(ctx context.Context, query string, family Family) (string, error)
}

// DefaultResolver resolves via the platform's resolver (net.DefaultResolver).
type DefaultResolver struct {
	// Net lets tests substitute net.Resolver; nil uses net.DefaultResolver.
	Net *net.Resolver
}

func (d *DefaultResolver) resolver() *net.Resolver {
	if d.Net != nil {
		return d.Net
	}
	return net.DefaultResolver
}

// Resolve looks up query and returns the first address matching family
// as a canonical string (dotted-quad for IPv4, the RFC 5952-canonical
// form for IPv6).
func (d *DefaultResolver) Resolve(ctx context.Context, query string, family Family) (string, error) {
	network, err := networkFor(family)
	if err != nil {
		return "", err
	}

	ips, err := d.resolver().LookupIP(ctx, network, query)
	if err != nil {
		return "", vcerr.Wrap(vcerr.InetResolutionFailure, "resolve.Resolve", err)
	}
	if len(ips) == 0 {
		return "", vcerr.New(vcerr.InetResolutionFailure, "resolve.Resolve")
	}
	return ips[0].String(), nil
}

func networkFor(family Family) (string, error) {
	switch family {
	case IPv4:
		return "ip4", nil
	case IPv6:
		return "ip6", nil
	default:
		return "", vcerr.New(vcerr.InvalidArgument, "resolve.networkFor")
	}
}
