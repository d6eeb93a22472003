package fusion

import (
	"github.com/petforge/petforge/internal/game"
	"github.com/petforge/petforge/internal/rng"
)

// Library holds the ability templates loaded from config, indexed for
// assembly and encounter generation.
type Library struct {
	templates []game.Ability
	byID      map[string]game.Ability
}

// NewLibrary indexes the given templates.
func NewLibrary(templates []game.Ability) *Library {
	l := &Library{
		templates: append([]game.Ability(nil), templates...),
		byID:      make(map[string]game.Ability, len(templates)),
	}
	for _, t := range l.templates {
		l.byID[t.ID] = t
	}
	return l
}

// ByID returns the template with the given id.
func (l *Library) ByID(id string) (game.Ability, bool) {
	a, ok := l.byID[id]
	return a, ok
}

// pick selects one template of the given type at random, excluding already
// used ids. With filterElement set, only templates of that element (or
// element-less ones when includeNeutral) are considered. Candidates keep
// template declaration order so the same RNG draw always selects the same
// template.
func (l *Library) pick(typ game.AbilityType, filterElement game.Element, used map[string]bool, r *rng.Source) (game.Ability, bool) {
	candidates := make([]game.Ability, 0, len(l.templates))
	for _, t := range l.templates {
		if t.Type != typ || used[t.ID] {
			continue
		}
		if filterElement != game.ElementNone && t.Element != filterElement {
			continue
		}
		candidates = append(candidates, t)
	}
	if len(candidates) == 0 {
		return game.Ability{}, false
	}
	return candidates[r.Intn(len(candidates))], true
}
