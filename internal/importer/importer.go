// Package importer loads declarative DNS record sets from YAML or TOML
// files for bulk import into a zone.
package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"gitlab.bluewillows.net/root/wedosapi/pkg/wapi"
)

// Record is a single DNS record entry in a record-set file.
type Record struct {
	Name string `yaml:"name" toml:"name"` // empty means the zone apex
	TTL  int    `yaml:"ttl" toml:"ttl"`   // 0 means the client default
	Type string `yaml:"type" toml:"type"`
	Data string `yaml:"data" toml:"data"`
}

// RecordSet is the parsed and validated content of a record-set file.
type RecordSet struct {
	Domain  string   `yaml:"domain" toml:"domain"`
	Records []Record `yaml:"records" toml:"records"`
}

// Load reads and validates a record-set file, detecting the format by
// extension. Supports YAML (.yml, .yaml) and TOML (.toml).
func Load(path string) (*RecordSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record set: %w", err)
	}

	var set RecordSet
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported record set format %q (want .yaml, .yml or .toml)", ext)
	}

	if err := set.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &set, nil
}

func (s *RecordSet) validate() error {
	if s.Domain == "" {
		return errors.New("missing domain")
	}
	if len(s.Records) == 0 {
		return errors.New("no records defined")
	}

	seen := make(map[string]int, len(s.Records))
	for i, rec := range s.Records {
		n := i + 1
		if rec.Type == "" {
			return fmt.Errorf("record %d: missing type", n)
		}
		if rec.Data == "" {
			return fmt.Errorf("record %d: missing data", n)
		}
		if rec.TTL < 0 {
			return fmt.Errorf("record %d: negative ttl %d", n, rec.TTL)
		}

		key := strings.ToLower(rec.Name) + "|" + strings.ToUpper(rec.Type) + "|" + rec.Data
		if first, ok := seen[key]; ok {
			return fmt.Errorf("record %d: duplicate of record %d", n, first)
		}
		seen[key] = n
	}
	return nil
}

// Specs converts the set into client record specs, normalizing record
// types to upper case and applying the default TTL where unset.
func (s *RecordSet) Specs() []wapi.RecordSpec {
	specs := make([]wapi.RecordSpec, 0, len(s.Records))
	for _, rec := range s.Records {
		ttl := rec.TTL
		if ttl == 0 {
			ttl = wapi.DefaultTTL
		}
		specs = append(specs, wapi.RecordSpec{
			Name: rec.Name,
			TTL:  ttl,
			Type: wapi.RecordType(strings.ToUpper(rec.Type)),
			Data: rec.Data,
		})
	}
	return specs
}
