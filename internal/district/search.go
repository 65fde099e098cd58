// Package district provides substring search over the static list of
// Korean administrative district names bundled with the application.
package district

import (
	_ "embed"
	"encoding/json"
	"strings"
)

//go:embed korea_districts.json
var districtsRaw []byte

// MaxResults caps search output size.
const MaxResults = 100

// Info is a parsed district entry. Entries are hierarchical strings like
// "서울특별시-종로구-청운동" (province-city-village).
type Info struct {
	Province    string `json:"province"`
	City        string `json:"city"`
	Village     string `json:"village"`
	DisplayName string `json:"displayName"`
}

// Index holds the loaded district list.
type Index struct {
	districts []string
}

// Load parses the embedded district list.
func Load() (*Index, error) {
	var districts []string
	if err := json.Unmarshal(districtsRaw, &districts); err != nil {
		return nil, err
	}
	return &Index{districts: districts}, nil
}

// Search returns up to MaxResults districts whose hyphen-stripped form
// contains the whitespace-stripped query. A blank query matches nothing.
func (ix *Index) Search(query string) []string {
	q := strings.ToLower(strings.Join(strings.Fields(query), ""))
	if q == "" {
		return nil
	}

	var out []string
	for _, d := range ix.districts {
		clean := strings.ToLower(strings.ReplaceAll(d, "-", ""))
		if strings.Contains(clean, q) {
			out = append(out, d)
			if len(out) >= MaxResults {
				break
			}
		}
	}
	return out
}

// Len reports how many districts are loaded.
func (ix *Index) Len() int {
	return len(ix.districts)
}

// Parse splits a hierarchical district string into its parts. The display
// name is the most specific non-empty level.
func Parse(district string) Info {
	parts := strings.SplitN(district, "-", 3)
	info := Info{}
	if len(parts) > 0 {
		info.Province = parts[0]
	}
	if len(parts) > 1 {
		info.City = parts[1]
	}
	if len(parts) > 2 {
		info.Village = parts[2]
	}

	switch {
	case info.Village != "":
		info.DisplayName = info.Village
	case info.City != "":
		info.DisplayName = info.City
	default:
		info.DisplayName = info.Province
	}
	return info
}
