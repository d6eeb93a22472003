package fusion

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/petforge/petforge/internal/game"
	"github.com/petforge/petforge/internal/rng"
)

// slotCounts is the number of ability slots granted per rarity tier.
type slotCounts struct {
	passives int
	actives  int
	ultimate bool
}

var slotsByRarity = map[game.Rarity]slotCounts{
	game.RarityBasic:     {passives: 0, actives: 1},
	game.RarityRare:      {passives: 1, actives: 1},
	game.RaritySuperRare: {passives: 1, actives: 2},
	game.RarityLegendary: {passives: 2, actives: 2, ultimate: true},
	game.RarityMythic:    {passives: 2, actives: 3, ultimate: true},
	game.RarityPrismatic: {passives: 3, actives: 3, ultimate: true},
	game.RarityOmega:     {passives: 3, actives: 4, ultimate: true},
}

// Slots exposes the per-rarity slot counts for tests and API previews.
func Slots(r game.Rarity) (passives, actives int, ultimate bool) {
	s := slotsByRarity[r]
	return s.passives, s.actives, s.ultimate
}

// NameChecker answers whether a pet name is already taken. Assembly treats
// checker failures as "name free": a broken store must never abort a
// fusion at the naming step.
type NameChecker interface {
	NameExists(name string) (bool, error)
}

// Assembled is the in-memory result of ability/name assembly. Nothing is
// persisted until the orchestration's persist step.
type Assembled struct {
	Name       string         `json:"name"`
	Lore       string         `json:"lore"`
	Passives   []game.Ability `json:"passives"`
	Actives    []game.Ability `json:"actives"`
	Ultimate   *game.Ability  `json:"ultimate,omitempty"`
	VisualTags []string       `json:"visual_tags"`
}

// AssembleResult turns a fusion signature and final rarity into a concrete
// named creature. The result always contains at least one active ability:
// template selection falls back from element-filtered to unfiltered to the
// hard-coded basic strike, so assembly cannot fail outright.
func AssembleResult(sig Signature, rarity game.Rarity, corrupted bool, lib *Library, names NameChecker, r *rng.Source) Assembled {
	slots := slotsByRarity[rarity]
	preferred := sig.PreferredElement()
	used := make(map[string]bool)

	fill := func(typ game.AbilityType, n int) []game.Ability {
		out := make([]game.Ability, 0, n)
		for i := 0; i < n; i++ {
			a, ok := lib.pick(typ, preferred, used, r)
			if !ok {
				a, ok = lib.pick(typ, game.ElementNone, used, r)
			}
			if !ok {
				break
			}
			used[a.ID] = true
			out = append(out, a)
		}
		return out
	}

	res := Assembled{
		Passives: fill(game.AbilityPassive, slots.passives),
		Actives:  fill(game.AbilityActive, slots.actives),
	}
	if slots.ultimate {
		if u, ok := lib.pick(game.AbilityUltimate, preferred, used, r); ok {
			res.Ultimate = &u
		} else if u, ok := lib.pick(game.AbilityUltimate, game.ElementNone, used, r); ok {
			res.Ultimate = &u
		}
	}

	// Active-ability guarantee, last escalation level: synthesize the
	// basic strike when the template library yielded nothing usable.
	if len(res.Actives) == 0 {
		res.Actives = []game.Ability{game.BasicStrike(preferred)}
	}

	res.VisualTags = mergeTags(sig, corrupted)
	res.Name = uniqueName(buildName(sig, corrupted, r), names)
	res.Lore = buildLore(sig, rarity, corrupted)
	return res
}

func mergeTags(sig Signature, corrupted bool) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, 8)
	add := func(tags []string) {
		for _, t := range tags {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	add(sig.Parent1.VisualTags)
	add(sig.Parent2.VisualTags)
	if sig.Interaction != nil {
		add(sig.Interaction.ThemeTags)
	}
	if corrupted {
		add([]string{"unstable"})
	}
	return out
}

var intentPrefixes = map[Intent]string{
	IntentDominance: "Alpha",
	IntentHarmony:   "Serene",
	IntentChaos:     "Riot",
	IntentSwiftness: "Swift",
}

// firstToken returns the first whitespace-separated token of a name.
func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	return fields[0]
}

// portmanteau blends the front half of a with the back half of b.
func portmanteau(a, b string) string {
	ra := []rune(firstToken(a))
	rb := []rune(firstToken(b))
	if len(ra) == 0 {
		return string(rb)
	}
	if len(rb) == 0 {
		return string(ra)
	}
	head := ra[:(len(ra)+1)/2]
	tail := rb[len(rb)/2:]
	out := []rune(string(head) + string(tail))
	out[0] = unicode.ToUpper(out[0])
	return string(out)
}

// buildName blends parent name fragments, applies elemental interaction
// affixes and intent/corruption stylistic modifiers.
func buildName(sig Signature, corrupted bool, r *rng.Source) string {
	core := portmanteau(sig.Parent1.Name, sig.Parent2.Name)
	if r.Chance(0.5) {
		core = portmanteau(sig.Parent2.Name, sig.Parent1.Name)
	}

	if sig.Interaction != nil {
		if sig.Interaction.Prefix != "" && r.Chance(0.5) {
			core = sig.Interaction.Prefix + " " + core
		} else if sig.Interaction.Suffix != "" {
			core = core + " " + sig.Interaction.Suffix
		}
	}
	if p, ok := intentPrefixes[sig.Intent]; ok {
		core = p + " " + core
	}
	if corrupted {
		core = "Unstable " + core
	}
	return core
}

var collisionSuffixes = []string{"II", "III", "IV", "V", "Prime"}

// uniqueName enforces name uniqueness against the existing population: a
// bounded retry with disambiguating suffixes, then a time-based suffix as
// last resort.
func uniqueName(name string, names NameChecker) string {
	taken := func(n string) bool {
		exists, err := names.NameExists(n)
		if err != nil {
			return false
		}
		return exists
	}
	if !taken(name) {
		return name
	}
	for _, s := range collisionSuffixes {
		candidate := name + " " + s
		if !taken(candidate) {
			return candidate
		}
	}
	return fmt.Sprintf("%s %d", name, time.Now().Unix()%100000)
}

func buildLore(sig Signature, rarity game.Rarity, corrupted bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Born from the fusion of %s and %s", sig.Parent1.Name, sig.Parent2.Name)
	if sig.Interaction != nil && sig.Interaction.Result != game.ElementNone {
		fmt.Fprintf(&b, ", where %s met %s and became %s", sig.Parent1.Element, sig.Parent2.Element, sig.Interaction.Result)
	}
	fmt.Fprintf(&b, ". A %s creature of the %s line", strings.ReplaceAll(rarity.String(), "_", " "), sig.Parent1.Family)
	switch sig.Intent {
	case IntentDominance:
		b.WriteString(", forged to rule its kin")
	case IntentHarmony:
		b.WriteString(", at peace with both bloodlines")
	case IntentChaos:
		b.WriteString(", shaped by forces its makers never controlled")
	case IntentSwiftness:
		b.WriteString(", faster than either parent ever was")
	}
	if corrupted {
		b.WriteString(". The fusion did not fully stabilize, and something else looks out from behind its eyes")
	}
	b.WriteString(".")
	return b.String()
}
