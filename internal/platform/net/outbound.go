// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package net guards outbound requests made on behalf of administrators.
package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

var (
	// ErrOutboundDisabled indicates outbound HTTP(S) access is disabled by policy.
	ErrOutboundDisabled = errors.New("outbound http(s) disabled")
	// ErrOutboundNotAllowed indicates the URL did not match the allowlist.
	ErrOutboundNotAllowed = errors.New("outbound url not allowed")
)

// OutboundAllowlist defines the allowed outbound URL components.
type OutboundAllowlist struct {
	Hosts   []string
	CIDRs   []string
	Ports   []int
	Schemes []string
}

// Policy is a compiled allowlist. The zero value rejects everything.
type Policy struct {
	enabled bool
	hosts   map[string]struct{}
	cidrs   []*net.IPNet
	ports   map[int]struct{}
	schemes map[string]struct{}
	lookup  func(ctx context.Context, host string) ([]net.IPAddr, error)
}

// NewPolicy validates and normalises allow once so that checks stay cheap.
func NewPolicy(enabled bool, allow OutboundAllowlist) (*Policy, error) {
	p := &Policy{
		enabled: enabled,
		hosts:   make(map[string]struct{}, len(allow.Hosts)),
		ports:   make(map[int]struct{}, len(allow.Ports)),
		schemes: make(map[string]struct{}, len(allow.Schemes)),
		lookup:  net.DefaultResolver.LookupIPAddr,
	}
	for _, h := range allow.Hosts {
		normalized, err := NormalizeHost(h)
		if err != nil {
			return nil, err
		}
		p.hosts[normalized] = struct{}{}
	}
	cidrs, err := parseCIDRAllowlist(allow.CIDRs)
	if err != nil {
		return nil, err
	}
	p.cidrs = cidrs
	for _, port := range allow.Ports {
		p.ports[port] = struct{}{}
	}
	for _, s := range allow.Schemes {
		p.schemes[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return p, nil
}

// NormalizeHost validates and normalizes a host for comparison.
func NormalizeHost(raw string) (string, error) {
	host := strings.TrimSpace(raw)
	switch {
	case host == "":
		return "", fmt.Errorf("host is empty")
	case strings.Contains(host, "://"):
		return "", fmt.Errorf("host must not include scheme: %s", raw)
	case strings.Contains(host, "/"):
		return "", fmt.Errorf("host must not include path: %s", raw)
	case strings.Contains(host, "@"):
		return "", fmt.Errorf("host must not include userinfo: %s", raw)
	}
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	if strings.Contains(host, ":") && net.ParseIP(host) == nil {
		return "", fmt.Errorf("host must not include port: %s", raw)
	}
	if strings.Contains(host, "%") {
		return "", fmt.Errorf("host must not include zone: %s", raw)
	}
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return "", fmt.Errorf("host is empty")
	}
	if ip := net.ParseIP(host); ip != nil {
		return strings.ToLower(ip.String()), nil
	}
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("invalid host %q: %w", raw, err)
	}
	return strings.ToLower(ascii), nil
}

// Check verifies raw against the policy and returns the normalized URL.
// Hosts resolving to loopback, link-local or multicast addresses are
// rejected unless a CIDR entry covers them.
func (p *Policy) Check(ctx context.Context, raw string) (*url.URL, error) {
	if p == nil || !p.enabled {
		return nil, ErrOutboundDisabled
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	switch {
	case u.Scheme == "":
		return nil, fmt.Errorf("missing url scheme")
	case u.Host == "":
		return nil, fmt.Errorf("missing url host")
	case u.User != nil:
		return nil, fmt.Errorf("userinfo not allowed")
	case u.Fragment != "":
		return nil, fmt.Errorf("fragments not allowed")
	}

	scheme := strings.ToLower(u.Scheme)
	if _, ok := p.schemes[scheme]; !ok {
		return nil, fmt.Errorf("scheme %q not allowed", scheme)
	}
	port, err := urlPort(u, scheme)
	if err != nil {
		return nil, err
	}
	if _, ok := p.ports[port]; !ok {
		return nil, fmt.Errorf("port %d not allowed", port)
	}

	host, err := NormalizeHost(u.Hostname())
	if err != nil {
		return nil, err
	}
	ips, err := p.resolve(ctx, host)
	if err != nil {
		return nil, err
	}

	_, hostAllowed := p.hosts[host]
	ipAllowed := false
	for _, ip := range ips {
		covered := ipInCIDRs(ip, p.cidrs)
		if isBlockedIP(ip) && !covered {
			return nil, fmt.Errorf("blocked ip %s", ip.String())
		}
		ipAllowed = ipAllowed || covered
	}
	if !hostAllowed && !ipAllowed {
		return nil, ErrOutboundNotAllowed
	}

	u.Scheme = scheme
	u.Host = joinHostPort(host, u.Port())
	return u, nil
}

func (p *Policy) resolve(ctx context.Context, host string) ([]net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return []net.IP{ip}, nil
	}
	addrs, err := p.lookup(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("resolve host %q: %w", host, err)
	}
	ips := make([]net.IP, 0, len(addrs))
	for _, addr := range addrs {
		if addr.IP != nil {
			ips = append(ips, addr.IP)
		}
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("resolve host %q: no addresses", host)
	}
	return ips, nil
}

func urlPort(u *url.URL, scheme string) (int, error) {
	if u.Port() == "" {
		switch scheme {
		case "http":
			return 80, nil
		case "https":
			return 443, nil
		default:
			return 0, fmt.Errorf("unknown scheme %q", scheme)
		}
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", u.Port(), err)
	}
	return port, nil
}

func parseCIDRAllowlist(entries []string) ([]*net.IPNet, error) {
	var nets []*net.IPNet
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if _, ipnet, err := net.ParseCIDR(entry); err == nil {
			nets = append(nets, ipnet)
			continue
		}
		ip := net.ParseIP(entry)
		if ip == nil {
			return nil, fmt.Errorf("invalid CIDR or IP: %s", entry)
		}
		bits := 32
		if ip.To4() == nil {
			bits = 128
		}
		nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return nets, nil
}

func isBlockedIP(ip net.IP) bool {
	return ip == nil ||
		ip.IsLoopback() ||
		ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsMulticast()
}

func ipInCIDRs(ip net.IP, cidrs []*net.IPNet) bool {
	for _, n := range cidrs {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func joinHostPort(host, port string) string {
	if port == "" {
		if strings.Contains(host, ":") {
			return "[" + host + "]"
		}
		return host
	}
	return net.JoinHostPort(host, port)
}
