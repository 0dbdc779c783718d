package holiday

import (
	"slices"
	"sort"
	"strings"
	"time"
)

// Calendar evaluates a national rule table and regional overlays. A Calendar
// is immutable after construction and safe for concurrent use.
type Calendar struct {
	national []Rule
	regions  RegionRuleSet
}

// New creates a Calendar over copies of the given tables.
func New(national []Rule, regions RegionRuleSet) *Calendar {
	return &Calendar{
		national: slices.Clone(national),
		regions:  regions.clone(),
	}
}

// Default returns a Calendar over the built-in Brazilian tables.
func Default() *Calendar {
	return defaultCalendar
}

var defaultCalendar = New(NationalRules(), RegionRules())

// Holidays returns the built-in calendar for year and region.
func Holidays(year int, region string) []Holiday {
	return defaultCalendar.Holidays(year, region)
}

// Holidays returns every observance of year for region, one entry per date,
// sorted by date. National observances are always included; region adds its
// overlay when known and nothing otherwise.
func (c *Calendar) Holidays(year int, region string) []Holiday {
	return Merge(c.National(year), c.Regional(year, region))
}

// Month returns the observances of a single month for region.
func (c *Calendar) Month(year int, month time.Month, region string) []Holiday {
	key := MonthKey(year, month)
	all := c.Holidays(year, region)

	var out []Holiday
	for _, h := range all {
		if h.InMonth(key) {
			out = append(out, h)
		}
	}
	return out
}

// National evaluates the national table for year in table order, before any
// merging.
func (c *Calendar) National(year int) []Holiday {
	out := make([]Holiday, 0, len(c.national))
	for _, r := range c.national {
		out = append(out, Holiday{Date: r.On(year).String(), Name: r.Label()})
	}
	return out
}

// Regional evaluates the overlay of region for year. Unknown regions yield nil.
func (c *Calendar) Regional(year int, region string) []Holiday {
	rules, ok := c.regions[region]
	if !ok {
		return nil
	}
	out := make([]Holiday, 0, len(rules))
	for _, r := range rules {
		out = append(out, Holiday{Date: r.On(year).String(), Name: r.Label()})
	}
	return out
}

// Regions returns the codes that have an overlay, sorted.
func (c *Calendar) Regions() []string {
	codes := make([]string, 0, len(c.regions))
	for code := range c.regions {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// HasRegion reports whether region has an overlay.
func (c *Calendar) HasRegion(region string) bool {
	_, ok := c.regions[region]
	return ok
}

// Merge combines national and regional observances into one entry per date,
// sorted by date. Names landing on an occupied date are appended with " / "
// unless already contained in the existing name, ignoring case. The first
// name seen for a date always stays in front.
func Merge(national, regional []Holiday) []Holiday {
	byDate := make(map[string]*Holiday, len(national)+len(regional))
	add := func(h Holiday) {
		if existing, ok := byDate[h.Date]; ok {
			existing.Name = mergeName(existing.Name, h.Name)
			return
		}
		entry := h
		byDate[h.Date] = &entry
	}

	for _, h := range national {
		add(h)
	}
	for _, h := range regional {
		add(h)
	}

	out := make([]Holiday, 0, len(byDate))
	for _, h := range byDate {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].Date, out[j].Date) < 0
	})
	return out
}
