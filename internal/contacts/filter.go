package contacts

import "strings"

// NormalizeQuery trims and lowercases a free-text query.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Apply returns the records matching query, in dataset order. A record
// matches when any of its fields contains the normalized query as a
// case-insensitive substring. An empty query matches everything. The result
// is always a fresh slice.
func Apply(dataset []Record, query string) []Record {
	q := NormalizeQuery(query)
	out := make([]Record, 0, len(dataset))
	for _, r := range dataset {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r Record, q string) bool {
	if q == "" {
		return true
	}
	for _, f := range r.Fields() {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
