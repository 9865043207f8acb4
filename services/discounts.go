package services

import (
	"regexp"
	"sort"
	"strconv"
)

// DiscountRule grants a percentage off the gross sales price above a unit
// threshold. The loaded list is sorted descending by threshold; the selector
// depends on that ordering.
type DiscountRule struct {
	Threshold int     `json:"threshold"`
	Percent   float64 `json:"percent"`
}

var discountLabel = regexp.MustCompile(`(?i)(?:sconto|discount)`)
var discountThreshold = regexp.MustCompile(`>?\s*(\d+)\s*(?:posti|unit|pezzi|pz)`)

// ParseDiscountRules extracts {threshold, percent} pairs from a free-text
// rule sheet. A row qualifies when its label mentions a discount and names a
// unit threshold ("sconto oltre >20 posti auto"); every other row is
// ignored. The result is sorted descending by threshold.
func ParseDiscountRules(raw string) []DiscountRule {
	var rules []DiscountRule

	lines := nonEmptyLines(raw)
	if len(lines) == 0 {
		return rules
	}

	delim := detectDelimiter(lines[0])
	for _, line := range lines {
		fields := splitFields(line, delim)
		if len(fields) < 2 {
			continue
		}
		label := fields[0]
		if !discountLabel.MatchString(label) {
			continue
		}
		m := discountThreshold.FindStringSubmatch(label)
		if m == nil {
			continue
		}
		threshold, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		// First numeric cell after the label is the percentage.
		var percent float64
		for _, cell := range fields[1:] {
			if v := ParseNumericCell(cell); v != 0 {
				percent = v
				break
			}
		}
		if percent <= 0 {
			continue
		}
		rules = append(rules, DiscountRule{Threshold: threshold, Percent: percent})
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Threshold > rules[j].Threshold
	})
	return rules
}

// SelectDiscount returns the percentage of the first rule whose threshold is
// strictly below the unit count, or 0 when no rule matches. The rule list
// must already be sorted descending by threshold.
func SelectDiscount(rules []DiscountRule, units int) float64 {
	for _, rule := range rules {
		if rule.Threshold < units {
			return rule.Percent
		}
	}
	return 0
}
