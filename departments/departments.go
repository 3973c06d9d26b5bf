// Package departments holds the municipal department registry and the router
// that assigns exactly one department to every classified complaint.
package departments

import (
	"regexp"
	"strings"
)

// Department is one municipal contact. Value record; the registry is built
// once at process start and never mutated.
type Department struct {
	Name     string
	Email    string
	Keywords []string
}

// Registry is an ordered list of departments. First keyword match wins; the
// first entry doubles as the fallback when nothing matches.
type Registry []Department

// DefaultRegistry returns the built-in department registry.
func DefaultRegistry() Registry {
	return Registry{
		{Name: "Water Dept", Email: "water@cityguardian.gov", Keywords: []string{"water", "leak", "pipe", "burst"}},
		{Name: "Sewage Dept", Email: "sewage@cityguardian.gov", Keywords: []string{"sewage", "drain", "gutter", "overflow"}},
		{Name: "Roads Dept", Email: "roads@cityguardian.gov", Keywords: []string{"road", "pothole", "traffic", "pavement"}},
		{Name: "Electric Dept", Email: "electric@cityguardian.gov", Keywords: []string{"light", "wire", "pole", "shock", "power"}},
	}
}

var wordPattern = regexp.MustCompile(`[a-z]+`)

// Route picks exactly one department for a complaint. Match order:
// first department whose keywords intersect the complaint's word tokens, then
// first department whose name's first word appears in the category string,
// then the registry's first entry. Never fails.
func (r Registry) Route(complaint, category string) Department {
	tokens := map[string]bool{}
	for _, w := range wordPattern.FindAllString(strings.ToLower(complaint), -1) {
		tokens[w] = true
	}

	for _, d := range r {
		for _, k := range d.Keywords {
			if tokens[k] {
				return d
			}
		}
	}

	catLower := strings.ToLower(category)
	for _, d := range r {
		first := strings.ToLower(strings.Fields(d.Name)[0])
		if strings.Contains(catLower, first) {
			return d
		}
	}

	return r[0]
}
