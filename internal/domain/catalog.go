package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownSiteYear is returned when a reference matches neither a catalog ID
// nor a site-year code.
var ErrUnknownSiteYear = errors.New("unknown site-year")

// codeIndex maps lowercase codes to catalog IDs.
var codeIndex map[string]string

func buildCodeIndex(table map[string]SiteYear) map[string]string {
	idx := make(map[string]string, len(table))
	for id, s := range table {
		idx[strings.ToLower(s.Code)] = id
	}
	return idx
}

// clone returns a copy that shares no memory with the table.
func (s SiteYear) clone() SiteYear {
	if s.MTL != nil {
		v := *s.MTL
		s.MTL = &v
	}
	return s
}

// Lookup returns the site-year stored under id, e.g. "Cedar2010".
func Lookup(id string) (SiteYear, bool) {
	s, ok := siteYears[id]
	if !ok {
		return SiteYear{}, false
	}
	return s.clone(), true
}

// LookupCode returns the site-year with the given short code. Matching is
// case-insensitive.
func LookupCode(code string) (SiteYear, bool) {
	id, ok := codeIndex[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return SiteYear{}, false
	}
	return Lookup(id)
}

// Resolve accepts either a catalog ID or a code.
func Resolve(ref string) (SiteYear, error) {
	ref = strings.TrimSpace(ref)
	if s, ok := Lookup(ref); ok {
		return s, nil
	}
	if s, ok := LookupCode(ref); ok {
		return s, nil
	}
	return SiteYear{}, fmt.Errorf("%w: %q", ErrUnknownSiteYear, ref)
}

// All returns every site-year sorted by ID. The slice is freshly allocated on
// each call.
func All() []SiteYear {
	out := make([]SiteYear, 0, len(siteYears))
	for _, s := range siteYears {
		out = append(out, s.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs returns the sorted catalog keys.
func IDs() []string {
	ids := make([]string, 0, len(siteYears))
	for id := range siteYears {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Regions returns the distinct regions in sorted order.
func Regions() []string {
	seen := make(map[string]struct{})
	var regions []string
	for _, s := range siteYears {
		if _, ok := seen[s.Region]; ok {
			continue
		}
		seen[s.Region] = struct{}{}
		regions = append(regions, s.Region)
	}
	sort.Strings(regions)
	return regions
}

// ByRegion returns the site-years in region, sorted by ID.
func ByRegion(region string) []SiteYear {
	return filter(func(s SiteYear) bool { return s.Region == region })
}

// ByYear returns the site-years surveyed in year, sorted by ID.
func ByYear(year string) []SiteYear {
	return filter(func(s SiteYear) bool { return s.Year == year })
}

// Filter returns the site-years matching region and year, sorted by ID. An
// empty argument matches everything. The result is never nil.
func Filter(region, year string) []SiteYear {
	return filter(func(s SiteYear) bool {
		return (region == "" || s.Region == region) && (year == "" || s.Year == year)
	})
}

func filter(keep func(SiteYear) bool) []SiteYear {
	out := make([]SiteYear, 0)
	for _, s := range All() {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks records against the catalog invariants and reports every
// violation found.
func Validate(records []SiteYear) error {
	var errs []error
	ids := make(map[string]struct{}, len(records))
	codes := make(map[string]string, len(records))

	for _, s := range records {
		for field, v := range map[string]string{"region": s.Region, "site": s.Site, "year": s.Year, "code": s.Code} {
			if strings.TrimSpace(v) == "" {
				errs = append(errs, fmt.Errorf("%s: empty %s", s.ID, field))
			}
		}
		if _, dup := ids[s.ID]; dup {
			errs = append(errs, fmt.Errorf("%s: duplicate id", s.ID))
		}
		ids[s.ID] = struct{}{}

		if other, dup := codes[s.Code]; dup && s.Code != "" {
			errs = append(errs, fmt.Errorf("%s: code %q already used by %s", s.ID, s.Code, other))
		}
		codes[s.Code] = s.ID

		if s.MHW <= s.MLW {
			errs = append(errs, fmt.Errorf("%s: MHW %.2f not above MLW %.2f", s.ID, s.MHW, s.MLW))
		}
		if want := MakeID(s.Site, s.Year); s.ID != want {
			errs = append(errs, fmt.Errorf("%s: id does not match site and year (%s)", s.ID, want))
		}
	}
	return errors.Join(errs...)
}

// ValidateCatalog runs Validate over the compiled-in table.
func ValidateCatalog() error {
	return Validate(All())
}
