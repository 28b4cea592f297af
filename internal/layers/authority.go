package layers

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Authority tiers assigned to web results by host.
const (
	Tier1 = "tier1"
	Tier2 = "tier2"
	Tier3 = "tier3"
)

// AuthorityTable classifies web hosts. Hosts are matched by suffix, so
// "wikipedia.org" also covers "en.wikipedia.org". Hosts on the
// Authoritative list get the scoring bonus; Tier1/Tier2 drive the tier tag,
// with everything else falling to tier3.
type AuthorityTable struct {
	Authoritative []string `yaml:"authoritative"`
	Tier1Hosts    []string `yaml:"tier1"`
	Tier2Hosts    []string `yaml:"tier2"`
}

// DefaultAuthorityTable is the compiled-in host table, used unless a YAML
// override file is configured.
func DefaultAuthorityTable() *AuthorityTable {
	return &AuthorityTable{
		Authoritative: []string{
			"wikipedia.org", "github.com", "stackoverflow.com",
			"developer.mozilla.org", "docs.python.org", "go.dev",
			"arxiv.org", "nature.com", ".gov", ".edu",
		},
		Tier1Hosts: []string{
			"wikipedia.org", "github.com", "stackoverflow.com",
			"developer.mozilla.org", "docs.python.org", "go.dev",
			"arxiv.org", "nature.com", ".gov", ".edu",
		},
		Tier2Hosts: []string{
			"medium.com", "dev.to", "reuters.com", "bbc.com",
			"nytimes.com", "theverge.com", "arstechnica.com",
			"substack.com", "hashnode.dev",
		},
	}
}

// LoadAuthorityTable reads a YAML override file. An empty path returns the
// defaults.
func LoadAuthorityTable(path string) (*AuthorityTable, error) {
	if path == "" {
		return DefaultAuthorityTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read authority config: %w", err)
	}

	var table AuthorityTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse authority config: %w", err)
	}
	if len(table.Authoritative) == 0 && len(table.Tier1Hosts) == 0 && len(table.Tier2Hosts) == 0 {
		return nil, fmt.Errorf("authority config %s defines no hosts", path)
	}
	return &table, nil
}

// IsAuthoritative reports whether host matches the authoritative list.
func (t *AuthorityTable) IsAuthoritative(host string) bool {
	return matchesAny(host, t.Authoritative)
}

// TierFor maps a host to its authority tier.
func (t *AuthorityTable) TierFor(host string) string {
	switch {
	case matchesAny(host, t.Tier1Hosts):
		return Tier1
	case matchesAny(host, t.Tier2Hosts):
		return Tier2
	default:
		return Tier3
	}
}

func matchesAny(host string, patterns []string) bool {
	host = strings.ToLower(host)
	for _, p := range patterns {
		p = strings.ToLower(p)
		if strings.HasPrefix(p, ".") {
			if strings.HasSuffix(host, p) {
				return true
			}
			continue
		}
		if host == p || strings.HasSuffix(host, "."+p) {
			return true
		}
	}
	return false
}
