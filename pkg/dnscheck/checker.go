package dnscheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// Default checker configuration values.
const (
	// DefaultServer is the primary WEDOS authoritative nameserver.
	DefaultServer = "ns.wedos.com:53"

	// DefaultTimeout bounds a single DNS exchange.
	DefaultTimeout = 5 * time.Second

	// DefaultPollInterval is the cadence WaitFor falls back to.
	DefaultPollInterval = 5 * time.Second
)

// Sentinel errors for propagation checks.
var (
	// ErrNotFound is returned when the server answers authoritatively that
	// the name does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrServerFailure is returned when the server answers with an error
	// rcode.
	ErrServerFailure = errors.New("nameserver returned failure")

	// ErrUnreachable is returned when the DNS exchange itself fails.
	ErrUnreachable = errors.New("nameserver unreachable")

	// ErrUnsupportedType is returned for record types the resolver library
	// does not know.
	ErrUnsupportedType = errors.New("unsupported record type")
)

// Checker queries a single authoritative nameserver directly, bypassing
// resolver caches, to confirm that committed zone changes are actually
// being served.
type Checker struct {
	server    string
	dnsClient *dns.Client
	logger    *slog.Logger
}

// Option is a functional option for configuring the Checker.
type Option func(*Checker)

// WithTimeout bounds each DNS exchange.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Checker) {
		if timeout > 0 {
			c.dnsClient.Timeout = timeout
		}
	}
}

// WithTCP forces TCP transport. Useful when answers are large or UDP is
// filtered on the path.
func WithTCP() Option {
	return func(c *Checker) {
		c.dnsClient.Net = "tcp"
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewChecker creates a checker against the given nameserver address. An
// empty server selects DefaultServer; a missing port defaults to 53.
func NewChecker(server string, opts ...Option) *Checker {
	if server == "" {
		server = DefaultServer
	}

	c := &Checker{
		server: ensurePort(server),
		dnsClient: &dns.Client{
			Timeout: DefaultTimeout,
			Net:     "udp",
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Server returns the nameserver address the checker queries.
func (c *Checker) Server() string {
	return c.server
}

// Lookup queries the server for all records of the given type at name and
// returns their data in answer order.
func (c *Checker) Lookup(ctx context.Context, name, rtype string) ([]string, error) {
	qtype, ok := dns.StringToType[strings.ToUpper(rtype)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, rtype)
	}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), qtype)
	msg.RecursionDesired = false

	c.logger.Debug("querying nameserver",
		slog.String("server", c.server),
		slog.String("name", name),
		slog.String("type", rtype),
	)

	resp, rtt, err := c.exchangeWithContext(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}

	if err := checkRcode(resp); err != nil {
		return nil, err
	}

	var values []string
	for _, rr := range resp.Answer {
		if rr.Header().Rrtype != qtype {
			continue
		}
		values = append(values, rdataString(rr))
	}

	c.logger.Debug("nameserver answered",
		slog.Duration("rtt", rtt),
		slog.Int("answers", len(values)),
	)

	return values, nil
}

// Verify reports whether the server currently answers the record with the
// wanted data. An authoritative NXDOMAIN counts as "not yet", not as an
// error.
func (c *Checker) Verify(ctx context.Context, name, rtype, want string) (bool, error) {
	values, err := c.Lookup(ctx, name, rtype)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	for _, v := range values {
		if equalData(v, want) {
			return true, nil
		}
	}
	return false, nil
}

// WaitFor polls the server until it serves the record with the wanted data
// or the context ends. Transient exchange failures are tolerated between
// polls; a non-positive interval selects DefaultPollInterval.
func (c *Checker) WaitFor(ctx context.Context, name, rtype, want string, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		found, err := c.Verify(ctx, name, rtype, want)
		if err != nil && !errors.Is(err, ErrUnreachable) {
			return err
		}
		if found {
			c.logger.Info("record visible on nameserver",
				slog.String("name", name),
				slog.String("type", rtype),
				slog.Int("attempts", attempt),
			)
			return nil
		}

		c.logger.Debug("record not visible yet",
			slog.String("name", name),
			slog.String("type", rtype),
			slog.Int("attempt", attempt),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Ping verifies the nameserver is answering for a zone by querying its SOA
// record.
func (c *Checker) Ping(ctx context.Context, zone string) error {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(zone), dns.TypeSOA)
	msg.RecursionDesired = false

	resp, rtt, err := c.exchangeWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return fmt.Errorf("%w: server returned %s", ErrServerFailure, dns.RcodeToString[resp.Rcode])
	}

	c.logger.Debug("nameserver ping successful",
		slog.String("zone", zone),
		slog.Duration("rtt", rtt),
	)

	return nil
}

// exchangeWithContext performs a DNS exchange with context support.
func (c *Checker) exchangeWithContext(ctx context.Context, msg *dns.Msg) (*dns.Msg, time.Duration, error) {
	type result struct {
		resp *dns.Msg
		rtt  time.Duration
		err  error
	}
	ch := make(chan result, 1)

	go func() {
		resp, rtt, err := c.dnsClient.Exchange(msg, c.server)
		ch <- result{resp, rtt, err}
	}()

	select {
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	case r := <-ch:
		return r.resp, r.rtt, r.err
	}
}

// checkRcode maps a response rcode to a checker error.
func checkRcode(resp *dns.Msg) error {
	if resp == nil {
		return fmt.Errorf("%w: no response from server", ErrUnreachable)
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
		return nil
	case dns.RcodeNameError:
		return ErrNotFound
	case dns.RcodeServerFailure, dns.RcodeRefused, dns.RcodeNotAuth:
		return fmt.Errorf("%w: %s", ErrServerFailure, dns.RcodeToString[resp.Rcode])
	default:
		return fmt.Errorf("%w: %s", ErrServerFailure, dns.RcodeToString[resp.Rcode])
	}
}

// rdataString returns the record data in presentation format, without the
// header fields.
func rdataString(rr dns.RR) string {
	switch v := rr.(type) {
	case *dns.A:
		return v.A.String()
	case *dns.AAAA:
		return v.AAAA.String()
	case *dns.CNAME:
		return v.Target
	case *dns.NS:
		return v.Ns
	case *dns.TXT:
		return strings.Join(v.Txt, "")
	case *dns.MX:
		return fmt.Sprintf("%d %s", v.Preference, v.Mx)
	default:
		return strings.TrimSpace(strings.TrimPrefix(rr.String(), rr.Header().String()))
	}
}

// equalData compares record data ignoring letter case and a trailing root
// dot, which covers hostnames and addresses alike.
func equalData(a, b string) bool {
	return normalizeData(a) == normalizeData(b)
}

func normalizeData(s string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s), "."))
}

// ensurePort appends the default DNS port when the address has none.
func ensurePort(server string) string {
	if strings.Contains(server, ":") && !strings.HasSuffix(server, "]") {
		return server
	}
	return server + ":53"
}
