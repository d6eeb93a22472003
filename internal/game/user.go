package game

import "gorm.io/gorm"

// User is a player profile keyed by email. Aggregate battle and fusion
// counters feed the leaderboard.
type User struct {
	gorm.Model
	PlayerUUID       string `json:"player_uuid" gorm:"index"`
	PlayerName       string `json:"player_name"`
	Email            string `json:"email" gorm:"uniqueIndex"`
	BattlesPlayed    int    `json:"battles_played"`
	BattlesWon       int    `json:"battles_won"`
	FusionsPerformed int    `json:"fusions_performed"`
	CorruptedFusions int    `json:"corrupted_fusions"`
}

func (User) TableName() string { return "player_profiles" }

// GeneratedName caches AI-enhanced fusion names keyed by the canonical
// fusion key so repeated fusions of the same inputs reuse the same name.
type GeneratedName struct {
	gorm.Model
	FusionKey     string `json:"fusion_key" gorm:"uniqueIndex"`
	GeneratedName string `json:"generated_name"`
	GeneratedLore string `json:"generated_lore"`
}

func (GeneratedName) TableName() string { return "fusion_generated_cache" }
