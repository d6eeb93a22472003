package keys

import (
	"fmt"
	"sort"
	"strings"
)

// FusionKeyFromNames produces a canonical key for a pair of parent names.
// Behavior: trims names, lower-cases, replaces spaces with underscores,
// sorts the parts and joins with underscore. Suitable for stable DB keys.
func FusionKeyFromNames(names []string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		s := strings.TrimSpace(n)
		if s == "" {
			continue
		}
		s = strings.ToLower(strings.ReplaceAll(s, " ", "_"))
		parts = append(parts, s)
	}
	sort.Strings(parts)
	return strings.Join(parts, "_")
}

// FusionKey extends the name key with the stone tiers so two fusions of the
// same parents with different stones cache separately.
func FusionKey(parentNames []string, stoneTiers []int) string {
	k := FusionKeyFromNames(parentNames)
	tiers := append([]int(nil), stoneTiers...)
	sort.Ints(tiers)
	for _, t := range tiers {
		k += fmt.Sprintf("_t%d", t)
	}
	return k
}
