package wapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"strings"
)

// DomainType distinguishes zones hosted primarily at WEDOS from secondary
// zones mirrored from an external primary.
type DomainType string

// Domain types reported by dns-domains-list.
const (
	DomainPrimary   DomainType = "primary"
	DomainSecondary DomainType = "secondary"
)

// DomainStatus is the lifecycle status of a DNS domain. The set is open;
// values pass through from the API untransformed.
type DomainStatus string

// DomainStatusActive marks a domain that is live on the nameservers.
const DomainStatusActive DomainStatus = "active"

// Active reports whether the status marks a live domain. The API is not
// consistent about letter case, so the comparison is case-insensitive.
func (s DomainStatus) Active() bool {
	return strings.EqualFold(string(s), string(DomainStatusActive))
}

// Domain is a DNS zone visible to the authenticated account.
type Domain struct {
	Name   string       `json:"name"`
	Type   DomainType   `json:"type"`
	Status DomainStatus `json:"status"`
}

// IsPrimary reports whether the zone is hosted primarily at WEDOS.
func (d Domain) IsPrimary() bool {
	return d.Type == DomainPrimary
}

// ListDomains retrieves all DNS domains of the account, in the order the
// API returned them.
func (c *Client) ListDomains(ctx context.Context) ([]Domain, error) {
	resp, err := c.Do(ctx, Request{Command: "dns-domains-list"})
	if err != nil {
		return nil, fmt.Errorf("listing domains: %w", err)
	}

	domains, err := decodeDomainList(resp.Data)
	if err != nil {
		return nil, fmt.Errorf("listing domains: %w", err)
	}

	c.logger.Debug("listed domains", slog.Int("count", len(domains)))

	return domains, nil
}

// Domains returns the account's DNS domains as a lazy sequence. Nothing is
// fetched until the sequence is ranged over; each pass then issues exactly
// one dns-domains-list call, so ranging again re-fetches. A call failure is
// yielded once, with a zero Domain.
func (c *Client) Domains(ctx context.Context) iter.Seq2[Domain, error] {
	return func(yield func(Domain, error) bool) {
		domains, err := c.ListDomains(ctx)
		if err != nil {
			yield(Domain{}, err)
			return
		}
		for _, d := range domains {
			if !yield(d, nil) {
				return
			}
		}
	}
}

// decodeDomainList unpacks the dns-domains-list payload. The interesting
// part sits under the "domain" key.
func decodeDomainList(data json.RawMessage) ([]Domain, error) {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var payload struct {
		Domain json.RawMessage `json:"domain"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return decodeDomainSet(payload.Domain)
}

// decodeDomainSet walks the domain object token by token so the order the
// API sent is kept; unmarshalling into a Go map would shuffle it. The API
// keys the object by zone name and serializes an empty set as a JSON array.
func decodeDomainSet(raw json.RawMessage) ([]Domain, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '[' {
		var entries []Domain
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return entries, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: domain set is %v, want an object", ErrMalformedResponse, tok)
	}

	var domains []Domain
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}

		var d Domain
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("%w: decoding domain %v: %v", ErrMalformedResponse, key, err)
		}
		if d.Name == "" {
			if name, ok := key.(string); ok {
				d.Name = name
			}
		}
		domains = append(domains, d)
	}

	return domains, nil
}
