package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validConfig = `{
  "ability_templates": [
    {"id": "ember_bite", "name": "Ember Bite", "type": "active", "element": "fire",
     "energy_cost": 2, "cooldown": 1,
     "effects": [{"type": "damage", "target": "single_enemy", "value": 1.2, "scaling_stat": "attack", "element": "fire"}]},
    {"id": "warm_glow", "name": "Warm Glow", "type": "passive", "element": "fire",
     "effects": [{"type": "buff", "target": "self", "value": 0.05, "scaling_stat": "defense"}]}
  ],
  "elemental_interactions": [
    {"first": "fire", "second": "water", "result": "air", "prefix": "Steam"}
  ],
  "pet_templates": [
    {"key": "ember_fox", "name": "Ember Fox", "family": "fox", "element": "fire",
     "stats": {"max_hp": 40, "attack": 12, "defense": 8, "speed": 11},
     "ability_ids": ["ember_bite", "warm_glow"], "starter": true}
  ],
  "bosses": [
    {"key": "cinder_keep", "template_key": "ember_fox", "difficulty": 1.5}
  ],
  "waves": [
    {"key": "fox_den", "template_keys": ["ember_fox", "ember_fox"], "difficulty": 1.0}
  ],
  "server": {"address": ":9090"},
  "name_prompt": "Name a fusion of {{parents}}."
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigValid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServerAddress != ":9090" {
		t.Fatalf("server address not read: %q", cfg.ServerAddress)
	}
	if _, ok := cfg.AbilityByID("ember_bite"); !ok {
		t.Fatal("ability lookup failed")
	}
	if _, ok := cfg.TemplateByKey("ember_fox"); !ok {
		t.Fatal("template lookup failed")
	}
	if b, ok := cfg.BossByKey("cinder_keep"); !ok || b.Difficulty != 1.5 {
		t.Fatalf("boss lookup failed: %+v ok=%v", b, ok)
	}
	if w, ok := cfg.WaveByKey("fox_den"); !ok || len(w.TemplateKeys) != 2 {
		t.Fatalf("wave lookup failed: %+v ok=%v", w, ok)
	}
	if cfg.NamePromptTemplate == "" {
		t.Fatal("name prompt not read")
	}
}

func TestLoadConfigDefaultAddress(t *testing.T) {
	content := strings.Replace(validConfig, `"server": {"address": ":9090"},`, "", 1)
	cfg, err := LoadConfig(writeConfig(t, content))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServerAddress != ":8080" {
		t.Fatalf("expected default address, got %q", cfg.ServerAddress)
	}
}

func TestLoadConfigRejectsBadContent(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "missing ability templates",
			mutate:  func(s string) string { return strings.Replace(s, `"ability_templates"`, `"ability_templates_x"`, 1) },
			wantErr: "ability_templates is empty",
		},
		{
			name:    "duplicate ability id",
			mutate:  func(s string) string { return strings.Replace(s, `"id": "warm_glow"`, `"id": "ember_bite"`, 1) },
			wantErr: "duplicate ability id",
		},
		{
			name:    "unknown ability reference",
			mutate:  func(s string) string { return strings.Replace(s, `"ability_ids": ["ember_bite", "warm_glow"]`, `"ability_ids": ["missing"]`, 1) },
			wantErr: "references unknown ability",
		},
		{
			name:    "boss with unknown template",
			mutate:  func(s string) string { return strings.Replace(s, `"template_key": "ember_fox"`, `"template_key": "ghost"`, 1) },
			wantErr: "references unknown template",
		},
		{
			name:    "non-positive wave difficulty",
			mutate:  func(s string) string { return strings.Replace(s, `"difficulty": 1.0`, `"difficulty": 0`, 1) },
			wantErr: "positive difficulty",
		},
		{
			name:    "unknown element",
			mutate:  func(s string) string { return strings.Replace(s, `"element": "fire",`, `"element": "plasma",`, 1) },
			wantErr: "unknown element",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, c.mutate(validConfig)))
			if err == nil || !strings.Contains(err.Error(), c.wantErr) {
				t.Fatalf("expected error containing %q, got %v", c.wantErr, err)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
