package model

import "time"

// Config stores the application configuration.
type Config struct {
	BotToken string
	AppID    string
	GuildID  string

	LogChannelID           string
	LeaderboardChannelID   string
	ActivePlayersChannelID string
	PatchNotesChannelID    string

	DatabasePath string

	// API and news source endpoints.
	APIBaseURL          string
	AnnouncementNewsURL string
	PatchNotesURL       string
	IconURL             string

	// Role IDs keyed by base tier ("gold", "platinum", ...).
	RankRoles map[string]string

	// Discord emoji strings keyed by civilization slug.
	CivEmojis map[string]string

	NewsCheckInterval   time.Duration
	LeaderboardInterval time.Duration
	ActiveGamesInterval time.Duration
	NewsCleanupInterval time.Duration
}

// RankDisplay maps rank_level strings to their display form.
var RankDisplay = map[string]string{
	"bronze_3": "Bronze III", "bronze_2": "Bronze II", "bronze_1": "Bronze I",
	"silver_3": "Silver III", "silver_2": "Silver II", "silver_1": "Silver I",
	"gold_3": "Gold III", "gold_2": "Gold II", "gold_1": "Gold I",
	"platinum_3": "Platinum III", "platinum_2": "Platinum II", "platinum_1": "Platinum I",
	"diamond_3": "Diamond III", "diamond_2": "Diamond II", "diamond_1": "Diamond I",
	"conqueror_3": "Conqueror III", "conqueror_2": "Conqueror II", "conqueror_1": "Conqueror I",
	"unranked": "Unranked",
}

// GameModes maps API game kinds to display names.
var GameModes = map[string]string{
	"qm_1v1": "Quick Match 1v1",
	"qm_2v2": "Quick Match 2v2",
	"qm_3v3": "Quick Match 3v3",
	"qm_4v4": "Quick Match 4v4",
	"rm_1v1": "Ranked Match 1v1",
	"rm_2v2": "Ranked Match 2v2",
	"rm_3v3": "Ranked Match 3v3",
	"rm_4v4": "Ranked Match 4v4",
}
