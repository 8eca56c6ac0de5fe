package datasource

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"strings"
	"time"
)

// DefaultPublicIPURL answers with the caller's IPv4 address as plain text
const DefaultPublicIPURL = "https://api.ipify.org"

// PublicIPResolver asks a remote echo service for this host's public address
type PublicIPResolver struct {
	url        string
	httpClient *http.Client
}

// NewPublicIPResolver creates a resolver using the echo service at url
func NewPublicIPResolver(url string) *PublicIPResolver {
	if url == "" {
		url = DefaultPublicIPURL
	}
	return &PublicIPResolver{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// PublicIP returns the public IPv4 address
func (r *PublicIPResolver) PublicIP(ctx context.Context) (netip.Addr, error) {
	body, err := getBody(ctx, r.httpClient, r.url)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("public ip: %w", err)
	}

	addr, err := netip.ParseAddr(strings.TrimSpace(string(body)))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("failed to parse public ip: %w: %w", ErrFailed, err)
	}
	if !addr.Unmap().Is4() {
		return netip.Addr{}, fmt.Errorf("%w: public ip %s is not IPv4", ErrFailed, addr)
	}
	return addr.Unmap(), nil
}

// IsPublic reports whether addr is a globally routable unicast address
func IsPublic(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsValid() &&
		addr.IsGlobalUnicast() &&
		!addr.IsPrivate() &&
		!addr.IsLoopback() &&
		!addr.IsLinkLocalUnicast()
}

var _ IPResolver = (*PublicIPResolver)(nil)
