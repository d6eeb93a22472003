package constants

// Centralized constants for headers, env keys and OpenAI integration.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvOpenAIAPIKey        = "OPENAI_API_KEY"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "PETFORGE_CONFIG"
	EnvDBPath              = "PETFORGE_DB"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// OpenAI API endpoints and base URL
	OpenAIBaseURL             = "https://api.openai.com"
	OpenAIChatCompletionsPath = "/v1/chat/completions"

	// OpenAI model names
	OpenAIChatModel = "gpt-5-nano"

	// Session / Cookie names
	CookieSessionName = "pf_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RoutePets               = "/pets"
	RoutePetByID            = "/pets/:petID"
	RoutePetClaim           = "/pets/:petID/claim"
	RouteStarters           = "/starters"
	RouteStones             = "/stones"
	RouteFusionPreview      = "/fusions/preview"
	RouteFusionPerform      = "/fusions"
	RouteBattles            = "/battles"
	RouteBattleByID         = "/battles/:battleID"
	RouteBattleTurn         = "/battles/:battleID/turn"
	RouteBattleReplay       = "/battles/:battleID/replay"
	RouteEncounters         = "/encounters"
	RouteLeaderboard        = "/leaderboard"
	RoutePlayerStats        = "/player-stats"
	RouteVersion            = "/version"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest      = "Invalid request"
	ErrMissingGoogleEnv    = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrInvalidPetID        = "Invalid pet ID"
	ErrInvalidBattleID     = "Invalid battle ID"
	ErrPetNotFound         = "Pet not found"
	ErrStoneNotFound       = "Stone not found"
	ErrBattleNotFound      = "Battle not found"
	ErrFailedFetchPets     = "Failed to fetch pets"
	ErrFailedFetchStones   = "Failed to fetch stones"
	ErrFailedFetchBattles  = "Failed to fetch battles"
	ErrFailedFetchStats    = "Failed to fetch stats"
	ErrFailedFetchBoard    = "Failed to fetch leaderboard"
	ErrFailedPerformFusion = "Failed to perform fusion"
	ErrFailedCreateBattle  = "Failed to create battle"
	ErrFailedExecuteTurn   = "Failed to execute turn"
	ErrFailedGenerateWave  = "Failed to generate encounter"
	ErrNotPetOwner         = "Pet does not belong to the authenticated player"
	ErrNotStoneOwner       = "Stone does not belong to the authenticated player"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldPetID    = "pet_id"
	LogFieldStoneID  = "stone_id"
	LogFieldBattleID = "battle_id"
	LogFieldPlayer   = "player"
	LogFieldSeed     = "seed"
	LogFieldRarity   = "rarity"
	LogFieldSource   = "source"
	LogFieldName     = "name"
	LogFieldKey      = "key"
	LogFieldAddr     = "addr"
)
