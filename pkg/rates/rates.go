// Package rates holds the static reference data shown next to the
// calculators: bank fixed deposit rates and small savings schemes.
package rates

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// BankRate is the fixed deposit rate a bank pays to the general public and
// to senior citizens.
type BankRate struct {
	Bank     string  `yaml:"bank" json:"bank"`
	Category string  `yaml:"category" json:"category"`
	General  float64 `yaml:"general" json:"general"`
	Senior   float64 `yaml:"senior" json:"senior"`
}

// RateFor returns the senior or general rate.
func (b BankRate) RateFor(senior bool) float64 {
	if senior {
		return b.Senior
	}
	return b.General
}

// Scheme is a small savings or government scheme.
type Scheme struct {
	Name          string  `yaml:"name" json:"name"`
	Category      string  `yaml:"category" json:"category"`
	Rate          float64 `yaml:"rate" json:"rate"`
	LockInYears   float64 `yaml:"lockInYears" json:"lockInYears"`
	MinInvestment float64 `yaml:"minInvestment" json:"minInvestment"`
	TaxNote       string  `yaml:"taxNote" json:"taxNote"`
}

// Catalog is the full reference data set.
type Catalog struct {
	Banks   []BankRate `yaml:"banks" json:"banks"`
	Schemes []Scheme   `yaml:"schemes" json:"schemes"`
}

// Load parses the catalog compiled into the binary.
func Load() (Catalog, error) {
	return Parse(bytes.NewReader(embeddedCatalog))
}

// Parse reads a catalog in the embedded YAML layout.
func Parse(r io.Reader) (Catalog, error) {
	var catalog Catalog
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&catalog); err != nil {
		return Catalog{}, fmt.Errorf("failed to decode rate catalog: %w", err)
	}

	for i, bank := range catalog.Banks {
		if bank.Bank == "" {
			return Catalog{}, fmt.Errorf("bank entry %d has no name", i)
		}
		if bank.General < 0 || bank.Senior < 0 {
			return Catalog{}, fmt.Errorf("bank %s has a negative rate", bank.Bank)
		}
	}
	for i, scheme := range catalog.Schemes {
		if scheme.Name == "" {
			return Catalog{}, fmt.Errorf("scheme entry %d has no name", i)
		}
	}
	return catalog, nil
}

// BankFilter narrows the bank list. Zero values match everything.
type BankFilter struct {
	Category string  `json:"category,omitempty"`
	Search   string  `json:"search,omitempty"`
	MinRate  float64 `json:"minRate,omitempty"`
	Senior   bool    `json:"senior,omitempty"`
}

// Selection is a filtered bank list together with the distinct bank names
// it contains, in catalog order.
type Selection struct {
	Records   []BankRate `json:"records"`
	BankNames []string   `json:"bankNames"`
}

// SelectBanks returns the banks matching filter. The catalog is not
// modified and every call builds fresh slices.
func (c Catalog) SelectBanks(filter BankFilter) Selection {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	selection := Selection{Records: []BankRate{}, BankNames: []string{}}
	seen := make(map[string]bool)

	for _, bank := range c.Banks {
		if filter.Category != "" && !strings.EqualFold(bank.Category, filter.Category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(bank.Bank), search) {
			continue
		}
		if bank.RateFor(filter.Senior) < filter.MinRate {
			continue
		}

		selection.Records = append(selection.Records, bank)
		if !seen[bank.Bank] {
			seen[bank.Bank] = true
			selection.BankNames = append(selection.BankNames, bank.Bank)
		}
	}
	return selection
}

// SchemeFilter narrows the scheme list. Zero values match everything.
type SchemeFilter struct {
	Category       string  `json:"category,omitempty"`
	MaxLockInYears float64 `json:"maxLockInYears,omitempty"`
}

// SelectSchemes returns the matching schemes, highest rate first.
func (c Catalog) SelectSchemes(filter SchemeFilter) []Scheme {
	schemes := []Scheme{}
	for _, scheme := range c.Schemes {
		if filter.Category != "" && !strings.EqualFold(scheme.Category, filter.Category) {
			continue
		}
		if filter.MaxLockInYears > 0 && scheme.LockInYears > filter.MaxLockInYears {
			continue
		}
		schemes = append(schemes, scheme)
	}

	sort.SliceStable(schemes, func(i, j int) bool {
		return schemes[i].Rate > schemes[j].Rate
	})
	return schemes
}
