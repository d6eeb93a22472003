package game

// PetTemplate is a static creature definition from the config file. Starter
// pets are seeded from templates at migration time and dungeon encounters
// instantiate them with a difficulty multiplier.
type PetTemplate struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	Family     string   `json:"family"`
	Element    Element  `json:"element"`
	Rarity     Rarity   `json:"rarity"`
	Stats      Stats    `json:"stats"`
	AbilityIDs []string `json:"ability_ids"`
	VisualTags []string `json:"visual_tags"`
	Starter    bool     `json:"starter"`
}
