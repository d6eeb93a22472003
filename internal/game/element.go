package game

// Element is the closed set of elemental affinities carried by stones,
// abilities and pets.
type Element string

const (
	ElementNone   Element = ""
	ElementFire   Element = "fire"
	ElementWater  Element = "water"
	ElementEarth  Element = "earth"
	ElementAir    Element = "air"
	ElementLight  Element = "light"
	ElementShadow Element = "shadow"
)

// ValidElement reports whether e is a known element (including none).
func ValidElement(e Element) bool {
	switch e {
	case ElementNone, ElementFire, ElementWater, ElementEarth, ElementAir, ElementLight, ElementShadow:
		return true
	}
	return false
}

// advantage is the elemental wheel: fire > air > earth > water > fire,
// and light/shadow beat each other (mutual 1.25x).
var advantage = map[Element]Element{
	ElementFire:   ElementAir,
	ElementAir:    ElementEarth,
	ElementEarth:  ElementWater,
	ElementWater:  ElementFire,
	ElementLight:  ElementShadow,
	ElementShadow: ElementLight,
}

// ElementMultiplier returns the damage multiplier for an attack of element
// atk against a defender of element def.
func ElementMultiplier(atk, def Element) float64 {
	if atk == ElementNone || def == ElementNone {
		return 1.0
	}
	if advantage[atk] == def {
		return 1.25
	}
	if advantage[def] == atk {
		return 0.8
	}
	return 1.0
}

// ElementalInteraction describes what happens when two specific elements
// meet in a fusion: the resulting element plus naming affixes and ability
// theme tags. The pairwise table is loaded from the config file.
type ElementalInteraction struct {
	First     Element  `json:"first"`
	Second    Element  `json:"second"`
	Result    Element  `json:"result"`
	Prefix    string   `json:"prefix"`
	Suffix    string   `json:"suffix"`
	ThemeTags []string `json:"theme_tags"`
}

// InteractionTable is a symmetric pairwise lookup of elemental interactions.
type InteractionTable struct {
	byPair map[[2]Element]ElementalInteraction
}

// NewInteractionTable builds a table from config entries. Lookups are
// symmetric: an entry for (fire, water) also answers (water, fire).
func NewInteractionTable(entries []ElementalInteraction) *InteractionTable {
	t := &InteractionTable{byPair: make(map[[2]Element]ElementalInteraction, len(entries))}
	for _, e := range entries {
		t.byPair[[2]Element{e.First, e.Second}] = e
	}
	return t
}

// Lookup returns the interaction for the two elements, if any.
func (t *InteractionTable) Lookup(a, b Element) (ElementalInteraction, bool) {
	if t == nil || a == ElementNone || b == ElementNone {
		return ElementalInteraction{}, false
	}
	if e, ok := t.byPair[[2]Element{a, b}]; ok {
		return e, true
	}
	e, ok := t.byPair[[2]Element{b, a}]
	return e, ok
}
