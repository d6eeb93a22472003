package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/petforge/petforge/internal/game"
)

type rawConfig struct {
	AbilityTemplates      []game.Ability              `json:"ability_templates"`
	ElementalInteractions []game.ElementalInteraction `json:"elemental_interactions"`
	PetTemplates          []game.PetTemplate          `json:"pet_templates"`
	Bosses                []BossEntry                 `json:"bosses"`
	Waves                 []WaveEntry                 `json:"waves"`
	Server                *struct {
		Address string `json:"address"`
	} `json:"server"`
	// Optional prompt templates used by the enhancement client. Use the
	// token {{parents}} where the comma-separated parent names will be
	// substituted; {{rarity}} for the computed rarity.
	NamePrompt string `json:"name_prompt"`
	LorePrompt string `json:"lore_prompt"`
}

// BossEntry declares a boss encounter: one template instantiated once per
// player-team slot at the given difficulty.
type BossEntry struct {
	Key         string  `json:"key"`
	TemplateKey string  `json:"template_key"`
	Difficulty  float64 `json:"difficulty"`
}

// WaveEntry declares a minion wave: an ordered template list, truncated to
// the player's team size when generated.
type WaveEntry struct {
	Key          string   `json:"key"`
	TemplateKeys []string `json:"template_keys"`
	Difficulty   float64  `json:"difficulty"`
}

// LoadedConfig contains the content tables and the server address to bind to.
type LoadedConfig struct {
	AbilityTemplates   []game.Ability
	Interactions       []game.ElementalInteraction
	PetTemplates       []game.PetTemplate
	Bosses             []BossEntry
	Waves              []WaveEntry
	ServerAddress      string
	NamePromptTemplate string
	LorePromptTemplate string
}

// TemplateByKey returns the pet template with the given key, if present.
func (c *LoadedConfig) TemplateByKey(key string) (game.PetTemplate, bool) {
	for _, t := range c.PetTemplates {
		if t.Key == key {
			return t, true
		}
	}
	return game.PetTemplate{}, false
}

// AbilityByID returns the ability template with the given id, if present.
func (c *LoadedConfig) AbilityByID(id string) (game.Ability, bool) {
	for _, a := range c.AbilityTemplates {
		if a.ID == id {
			return a, true
		}
	}
	return game.Ability{}, false
}

// BossByKey returns the boss entry with the given key, if present.
func (c *LoadedConfig) BossByKey(key string) (BossEntry, bool) {
	for _, b := range c.Bosses {
		if b.Key == key {
			return b, true
		}
	}
	return BossEntry{}, false
}

// WaveByKey returns the wave entry with the given key, if present.
func (c *LoadedConfig) WaveByKey(key string) (WaveEntry, bool) {
	for _, w := range c.Waves {
		if w.Key == key {
			return w, true
		}
	}
	return WaveEntry{}, false
}

// LoadConfig reads the configuration file at path and validates the content
// tables. It requires the keys `ability_templates` and `pet_templates`.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.AbilityTemplates) == 0 {
		return nil, fmt.Errorf("config file %s: ability_templates is empty (provide an 'ability_templates' array)", path)
	}
	if len(rc.PetTemplates) == 0 {
		return nil, fmt.Errorf("config file %s: pet_templates is empty (provide a 'pet_templates' array)", path)
	}

	// Cross-entry validation: ability ids unique and well-formed.
	abilityIDs := make(map[string]struct{}, len(rc.AbilityTemplates))
	activeCount := 0
	for _, a := range rc.AbilityTemplates {
		id := strings.TrimSpace(a.ID)
		if id == "" {
			return nil, fmt.Errorf("config file %s: ability template missing 'id' (name %q)", path, a.Name)
		}
		if _, exists := abilityIDs[id]; exists {
			return nil, fmt.Errorf("config file %s: duplicate ability id '%s'", path, id)
		}
		abilityIDs[id] = struct{}{}
		switch a.Type {
		case game.AbilityPassive:
			// passives carry no costs
		case game.AbilityActive, game.AbilityUltimate:
			if a.EnergyCost == nil || a.Cooldown == nil {
				return nil, fmt.Errorf("config file %s: ability '%s' of type %s must define energy_cost and cooldown", path, id, a.Type)
			}
			if len(a.Effects) == 0 {
				return nil, fmt.Errorf("config file %s: ability '%s' has no effects", path, id)
			}
			if a.Type == game.AbilityActive {
				activeCount++
			}
		default:
			return nil, fmt.Errorf("config file %s: ability '%s' has unknown type %q", path, id, a.Type)
		}
		if !game.ValidElement(a.Element) {
			return nil, fmt.Errorf("config file %s: ability '%s' has unknown element %q", path, id, a.Element)
		}
	}
	if activeCount == 0 {
		return nil, fmt.Errorf("config file %s: at least one active ability template is required", path)
	}

	// Interactions must reference valid elements.
	for _, e := range rc.ElementalInteractions {
		if !game.ValidElement(e.First) || !game.ValidElement(e.Second) || !game.ValidElement(e.Result) {
			return nil, fmt.Errorf("config file %s: elemental interaction %s+%s has an unknown element", path, e.First, e.Second)
		}
	}

	// Pet templates: unique keys, valid elements, known ability references.
	keys := make(map[string]struct{}, len(rc.PetTemplates))
	for _, t := range rc.PetTemplates {
		k := strings.TrimSpace(t.Key)
		if k == "" {
			return nil, fmt.Errorf("config file %s: pet template missing 'key' (name %q)", path, t.Name)
		}
		if _, exists := keys[k]; exists {
			return nil, fmt.Errorf("config file %s: duplicate pet template key '%s'", path, k)
		}
		keys[k] = struct{}{}
		if !game.ValidElement(t.Element) {
			return nil, fmt.Errorf("config file %s: pet template '%s' has unknown element %q", path, k, t.Element)
		}
		for _, id := range t.AbilityIDs {
			if _, ok := abilityIDs[id]; !ok {
				return nil, fmt.Errorf("config file %s: pet template '%s' references unknown ability '%s'", path, k, id)
			}
		}
	}

	// Encounters must reference known templates.
	for _, bz := range rc.Bosses {
		if _, ok := keys[bz.TemplateKey]; !ok {
			return nil, fmt.Errorf("config file %s: boss '%s' references unknown template '%s'", path, bz.Key, bz.TemplateKey)
		}
		if bz.Difficulty <= 0 {
			return nil, fmt.Errorf("config file %s: boss '%s' must have a positive difficulty", path, bz.Key)
		}
	}
	for _, w := range rc.Waves {
		if len(w.TemplateKeys) == 0 {
			return nil, fmt.Errorf("config file %s: wave '%s' has no templates", path, w.Key)
		}
		for _, tk := range w.TemplateKeys {
			if _, ok := keys[tk]; !ok {
				return nil, fmt.Errorf("config file %s: wave '%s' references unknown template '%s'", path, w.Key, tk)
			}
		}
		if w.Difficulty <= 0 {
			return nil, fmt.Errorf("config file %s: wave '%s' must have a positive difficulty", path, w.Key)
		}
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	return &LoadedConfig{
		AbilityTemplates:   rc.AbilityTemplates,
		Interactions:       rc.ElementalInteractions,
		PetTemplates:       rc.PetTemplates,
		Bosses:             rc.Bosses,
		Waves:              rc.Waves,
		ServerAddress:      addr,
		NamePromptTemplate: strings.TrimSpace(rc.NamePrompt),
		LorePromptTemplate: strings.TrimSpace(rc.LorePrompt),
	}, nil
}
