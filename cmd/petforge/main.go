package main

import (
	"os"

	"github.com/petforge/petforge/internal/api"
	"github.com/petforge/petforge/internal/config"
	"github.com/petforge/petforge/internal/constants"
	"github.com/petforge/petforge/internal/logging"
	"github.com/petforge/petforge/internal/openaiclient"
	"github.com/petforge/petforge/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	// Load the content configuration file (required). Path may be provided
	// via PETFORGE_CONFIG or defaults to ./petforge_config.json in the
	// current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./petforge_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid petforge configuration", err, logging.Fields{"config_path": configPath, "hint": "create a petforge_config.json with 'ability_templates' and 'pet_templates' arrays and optional keys: elemental_interactions, bosses, waves, server.address, name_prompt, lore_prompt"})
	}

	// Apply the configured enhancement prompt templates, if any.
	if cfg.NamePromptTemplate != "" {
		openaiclient.SetNamePromptTemplate(cfg.NamePromptTemplate)
	}
	if cfg.LorePromptTemplate != "" {
		openaiclient.SetLorePromptTemplate(cfg.LorePromptTemplate)
	}

	// Allow the DB path to be configured via PETFORGE_DB. Default to a
	// `data/` directory inside the module for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/petforge.db"
	}
	db, err := storage.OpenAndMigrate(dbPath, cfg)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewSQLiteRepository(db)
	handler := api.NewHandler(repo, cfg)
	authHandler := api.NewAuthHandler(repo)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteEncounters, handler.ListEncounters)
		apiRoutes.GET(constants.RouteStarters, handler.ListStarters)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RoutePets, handler.ListPets)
		protected.GET(constants.RoutePetByID, handler.GetPet)
		protected.POST(constants.RoutePetClaim, handler.ClaimStarter)

		protected.GET(constants.RouteStones, handler.ListStones)
		protected.POST(constants.RouteStones, handler.CreateStone)

		protected.POST(constants.RouteFusionPreview, handler.PreviewFusion)
		protected.POST(constants.RouteFusionPerform, handler.PerformFusion)

		protected.GET(constants.RouteBattles, handler.ListBattles)
		protected.POST(constants.RouteBattles, handler.CreateBattle)
		protected.GET(constants.RouteBattleByID, handler.GetBattle)
		protected.POST(constants.RouteBattleTurn, handler.ExecuteTurn)
		protected.GET(constants.RouteBattleReplay, handler.GetReplay)

		protected.POST(constants.RouteEncounters, handler.StartEncounter)

		// Player profile: GET returns stats, POST updates display name
		protected.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		protected.POST(constants.RoutePlayerStats, handler.UpdatePlayerProfile)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
