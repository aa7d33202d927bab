package wapi

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"time"
)

// RecordType identifies the resource record type of a DNS row. The set is
// open; values pass through from the API untransformed.
type RecordType string

// Record types accepted by the WEDOS DNS servers.
const (
	TypeA     RecordType = "A"
	TypeAAAA  RecordType = "AAAA"
	TypeCNAME RecordType = "CNAME"
	TypeMX    RecordType = "MX"
	TypeNS    RecordType = "NS"
	TypeSRV   RecordType = "SRV"
	TypeTXT   RecordType = "TXT"
	TypeSPF   RecordType = "SPF"
	TypeCAA   RecordType = "CAA"
	TypeSSHFP RecordType = "SSHFP"
	TypeTLSA  RecordType = "TLSA"
)

// DefaultTTL is applied when a RecordSpec leaves TTL zero.
const DefaultTTL = 1800

// changedDateLayout is the timestamp format of row change dates, given in
// the API's own timezone.
const changedDateLayout = "2006-01-02 15:04:05"

// Record is a single DNS row of a zone.
type Record struct {
	ID      int64      `json:"id"`
	Name    string     `json:"name"`
	TTL     int        `json:"ttl"`
	Type    RecordType `json:"type"`
	Data    string     `json:"data"`
	Changed time.Time  `json:"changed,omitzero"`
	Comment string     `json:"comment,omitempty"`
}

// RecordSpec describes a DNS row to create. Name may be empty for records
// at the zone apex.
type RecordSpec struct {
	Name string
	TTL  int
	Type RecordType
	Data string
}

// apiRow is the wire form of a DNS row. Numeric fields arrive as decimal
// strings.
type apiRow struct {
	ID      flexInt `json:"ID"`
	Name    string  `json:"name"`
	TTL     flexInt `json:"ttl"`
	Type    string  `json:"rdtype"`
	Data    string  `json:"rdata"`
	Changed string  `json:"changed_date"`
	Comment string  `json:"author_comment"`
}

func (r apiRow) record(loc *time.Location) (Record, error) {
	rec := Record{
		ID:      int64(r.ID),
		Name:    r.Name,
		TTL:     int(r.TTL),
		Type:    RecordType(r.Type),
		Data:    r.Data,
		Comment: r.Comment,
	}

	if r.Changed != "" {
		changed, err := time.ParseInLocation(changedDateLayout, r.Changed, loc)
		if err != nil {
			return Record{}, fmt.Errorf("parsing changed_date %q: %w", r.Changed, err)
		}
		rec.Changed = changed
	}

	return rec, nil
}

// ListRecords retrieves all DNS rows of the given zone.
func (c *Client) ListRecords(ctx context.Context, domain string) ([]Record, error) {
	resp, err := c.Do(ctx, Request{
		Command: "dns-rows-list",
		Data: struct {
			Domain string `json:"domain"`
		}{domain},
	})
	if err != nil {
		return nil, fmt.Errorf("listing rows of %s: %w", domain, err)
	}

	var payload struct {
		Row []apiRow `json:"row"`
	}
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &payload); err != nil {
			return nil, fmt.Errorf("listing rows of %s: %w: %v", domain, ErrMalformedResponse, err)
		}
	}

	records := make([]Record, 0, len(payload.Row))
	for _, row := range payload.Row {
		rec, err := row.record(c.location)
		if err != nil {
			return nil, fmt.Errorf("listing rows of %s: %w: %v", domain, ErrMalformedResponse, err)
		}
		records = append(records, rec)
	}

	c.logger.Debug("listed rows",
		slog.String("domain", domain),
		slog.Int("count", len(records)),
	)

	return records, nil
}

// Records returns the DNS rows of a zone as a lazy sequence. Each pass over
// the sequence issues exactly one dns-rows-list call. A call failure is
// yielded once, with a zero Record.
func (c *Client) Records(ctx context.Context, domain string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		records, err := c.ListRecords(ctx, domain)
		if err != nil {
			yield(Record{}, err)
			return
		}
		for _, r := range records {
			if !yield(r, nil) {
				return
			}
		}
	}
}

// AddRecord stages a new DNS row in the given zone. A zero TTL is replaced
// with DefaultTTL. The row reaches the nameservers only after CommitDomain.
func (c *Client) AddRecord(ctx context.Context, domain string, spec RecordSpec) error {
	ttl := spec.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	_, err := c.Do(ctx, Request{
		Command: "dns-row-add",
		Data: struct {
			Domain string `json:"domain"`
			Name   string `json:"name"`
			TTL    int    `json:"ttl"`
			Type   string `json:"type"`
			RData  string `json:"rdata"`
		}{domain, spec.Name, ttl, string(spec.Type), spec.Data},
	})
	if err != nil {
		return fmt.Errorf("adding %s row to %s: %w", spec.Type, domain, err)
	}

	c.logger.Info("added dns row",
		slog.String("domain", domain),
		slog.String("name", spec.Name),
		slog.String("type", string(spec.Type)),
		slog.String("rdata", spec.Data),
		slog.Int("ttl", ttl),
	)

	return nil
}

// DeleteRecord stages the removal of the DNS row with the given ID. The row
// disappears from the nameservers only after CommitDomain.
func (c *Client) DeleteRecord(ctx context.Context, domain string, rowID int64) error {
	_, err := c.Do(ctx, Request{
		Command: "dns-row-delete",
		Data: struct {
			Domain string `json:"domain"`
			RowID  int64  `json:"row_id"`
		}{domain, rowID},
	})
	if err != nil {
		return fmt.Errorf("deleting row %d from %s: %w", rowID, domain, err)
	}

	c.logger.Info("deleted dns row",
		slog.String("domain", domain),
		slog.Int64("row_id", rowID),
	)

	return nil
}

// CommitDomain publishes all staged row changes of the zone to the
// nameservers.
func (c *Client) CommitDomain(ctx context.Context, domain string) error {
	_, err := c.Do(ctx, Request{
		Command: "dns-domain-commit",
		Data: struct {
			Name string `json:"name"`
		}{domain},
	})
	if err != nil {
		return fmt.Errorf("committing %s: %w", domain, err)
	}

	c.logger.Info("committed dns changes", slog.String("domain", domain))

	return nil
}
