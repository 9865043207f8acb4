package services

import (
	"sort"
	"strings"
)

// NormalizeKey reduces a string to lowercase letters and digits only. Two
// identifiers are considered equivalent when their normalized forms match,
// which is what lets a hand-typed "Solarflex Urano-Twin" find the sheet row
// "SOLARFLEX URANO TWIN".
func NormalizeKey(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		}
	}
	return string(out)
}

// Resolve finds the table row for a free-text query. Exact normalized
// equality wins; otherwise keys are tried longest-first and the first key
// whose normalized form contains the query, or is contained by it, is
// returned. Longest-first ordering stops a short key ("Solarflex") from
// shadowing a more specific one ("Solarflex Urano Twin").
//
// A miss is not an error: every caller defines its own zero/default
// behavior, because operators rename sheet rows without redeploying.
func (t *ConfigTable) Resolve(query string) (string, map[string]float64, bool) {
	if t == nil || len(t.keys) == 0 {
		return "", nil, false
	}
	normQuery := NormalizeKey(query)
	if normQuery == "" {
		return "", nil, false
	}

	for _, key := range t.keys {
		if NormalizeKey(key) == normQuery {
			return key, t.rows[key], true
		}
	}

	candidates := make([]string, len(t.keys))
	copy(candidates, t.keys)
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(NormalizeKey(candidates[i])) > len(NormalizeKey(candidates[j]))
	})

	for _, key := range candidates {
		normKey := NormalizeKey(key)
		if normKey == "" {
			continue
		}
		if strings.Contains(normQuery, normKey) || strings.Contains(normKey, normQuery) {
			return key, t.rows[key], true
		}
	}
	return "", nil, false
}

// NumericField returns the first non-zero value among an ordered list of
// acceptable column-name synonyms, or 0 when none resolves. Column presence
// varies by sheet revision, so every read of a dynamic column goes through
// this single accessor instead of ad-hoc map lookups in business logic.
func NumericField(row map[string]float64, synonyms ...string) float64 {
	if row == nil {
		return 0
	}
	for _, key := range synonyms {
		if v, ok := row[key]; ok && v != 0 {
			return v
		}
	}
	return 0
}
