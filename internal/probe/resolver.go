package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// Resolution classes. NXDOMAIN and NoRecords both mean the host spec is
// misconfigured; ServfailOrTimeout means the resolver itself misbehaved,
// which still leaves the host unreachable for this cycle.
const (
	ClassResolves          = "RESOLVES"
	ClassNXDomain          = "NXDOMAIN"
	ClassNoRecords         = "NO_A_RECORD"
	ClassServfailOrTimeout = "SERVFAIL_or_TIMEOUT"
)

// Resolution is the structured outcome of a resolution pre-check, used
// to decide UnknownHost without scraping probe output.
type Resolution struct {
	Host  domain.HostSpec
	Addrs []string
	Class string
	Err   string
}

// Resolved reports whether the host has at least one usable address.
func (r Resolution) Resolved() bool { return r.Class == ClassResolves }

// Resolver answers whether a host spec maps to an address.
type Resolver interface {
	Resolve(ctx context.Context, host domain.HostSpec) Resolution
}

// SystemResolver uses the OS resolver. Literal IPs resolve trivially.
type SystemResolver struct {
	r net.Resolver
}

func NewSystemResolver() *SystemResolver { return &SystemResolver{} }

func (s *SystemResolver) Resolve(ctx context.Context, host domain.HostSpec) Resolution {
	res := Resolution{Host: host}
	name := strings.TrimSpace(string(host))
	if ip := net.ParseIP(name); ip != nil {
		res.Addrs = []string{name}
		res.Class = ClassResolves
		return res
	}

	ips, err := s.r.LookupIP(ctx, "ip", name)
	if err == nil && len(ips) > 0 {
		for _, ip := range ips {
			res.Addrs = append(res.Addrs, ip.String())
		}
		res.Class = ClassResolves
		return res
	}
	if err != nil {
		res.Err = err.Error()
		var de *net.DNSError
		if errors.As(err, &de) {
			if de.IsNotFound {
				res.Class = ClassNXDomain
				return res
			}
			if de.IsTemporary || de.Timeout() {
				res.Class = ClassServfailOrTimeout
				return res
			}
		}
		res.Class = ClassServfailOrTimeout
		return res
	}
	res.Class = ClassNoRecords
	return res
}

// DNSResolver queries a specific DNS server directly and classifies from
// the response code, bypassing libc error-string guessing. Used when the
// config names a resolver server.
type DNSResolver struct {
	Server  string // host:port
	Timeout time.Duration
	client  dns.Client
}

func NewDNSResolver(server string, timeout time.Duration) *DNSResolver {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &DNSResolver{
		Server:  server,
		Timeout: timeout,
		client:  dns.Client{Timeout: timeout},
	}
}

func (d *DNSResolver) Resolve(ctx context.Context, host domain.HostSpec) Resolution {
	res := Resolution{Host: host}
	name := strings.TrimSpace(string(host))
	if ip := net.ParseIP(name); ip != nil {
		res.Addrs = []string{name}
		res.Class = ClassResolves
		return res
	}

	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		m := new(dns.Msg)
		m.SetQuestion(dns.Fqdn(name), qtype)
		m.RecursionDesired = true

		in, _, err := d.client.ExchangeContext(ctx, m, d.Server)
		if err != nil {
			res.Class = ClassServfailOrTimeout
			res.Err = err.Error()
			return res
		}
		switch in.Rcode {
		case dns.RcodeSuccess:
			for _, rr := range in.Answer {
				switch a := rr.(type) {
				case *dns.A:
					res.Addrs = append(res.Addrs, a.A.String())
				case *dns.AAAA:
					res.Addrs = append(res.Addrs, a.AAAA.String())
				}
			}
		case dns.RcodeNameError:
			res.Class = ClassNXDomain
			return res
		default:
			res.Class = ClassServfailOrTimeout
			res.Err = fmt.Sprintf("rcode %s from %s", dns.RcodeToString[in.Rcode], d.Server)
			return res
		}
	}

	if len(res.Addrs) > 0 {
		res.Class = ClassResolves
	} else {
		res.Class = ClassNoRecords
	}
	return res
}
