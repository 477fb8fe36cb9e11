// Package config loads the bot configuration from the environment and
// from JSON data files.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"aoe4bot/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	rankRolesPath = "data/rank_roles.json"
	civEmojisPath = "data/civ_emojis.json"
)

// Load reads configuration from the environment (with a .env bootstrap)
// and from the role/emoji mapping files under data/.
func Load() (*model.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DATABASE_PATH", "./data/players.db")
	v.SetDefault("API_BASE_URL", "https://aoe4world.com/api/v0")
	v.SetDefault("ANNOUNCEMENT_NEWS_URL", "https://www.ageofempires.com/news?game=aoeiv")
	v.SetDefault("PATCH_NOTES_URL", "https://www.ageofempires.com/news/category/releases?game=aoeiv")
	v.SetDefault("AOE4_ICON_URL", "https://static.wikia.nocookie.net/logopedia/images/b/b3/AoE4Logo.png")
	v.SetDefault("NEWS_CHECK_INTERVAL", "4h")
	v.SetDefault("LEADERBOARD_INTERVAL", "24h")
	v.SetDefault("ACTIVE_GAMES_INTERVAL", "30s")
	v.SetDefault("NEWS_CLEANUP_INTERVAL", "12h")

	token := v.GetString("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable not set")
	}
	guildID := v.GetString("GUILD_ID")
	if guildID == "" {
		return nil, fmt.Errorf("GUILD_ID environment variable not set")
	}

	cfg := &model.Config{
		BotToken: token,
		AppID:    v.GetString("APP_ID"),
		GuildID:  guildID,

		LogChannelID:           v.GetString("LOG_CHANNEL_ID"),
		LeaderboardChannelID:   v.GetString("LEADERBOARD_CHANNEL_ID"),
		ActivePlayersChannelID: v.GetString("ACTIVE_PLAYERS_CHANNEL_ID"),
		PatchNotesChannelID:    v.GetString("PATCH_NOTES_CHANNEL_ID"),

		DatabasePath: v.GetString("DATABASE_PATH"),

		APIBaseURL:          v.GetString("API_BASE_URL"),
		AnnouncementNewsURL: v.GetString("ANNOUNCEMENT_NEWS_URL"),
		PatchNotesURL:       v.GetString("PATCH_NOTES_URL"),
		IconURL:             v.GetString("AOE4_ICON_URL"),

		RankRoles: make(map[string]string),
		CivEmojis: make(map[string]string),

		NewsCheckInterval:   duration(v, "NEWS_CHECK_INTERVAL", 4*time.Hour),
		LeaderboardInterval: duration(v, "LEADERBOARD_INTERVAL", 24*time.Hour),
		ActiveGamesInterval: duration(v, "ACTIVE_GAMES_INTERVAL", 30*time.Second),
		NewsCleanupInterval: duration(v, "NEWS_CLEANUP_INTERVAL", 12*time.Hour),
	}

	if cfg.LogChannelID == "" {
		log.Println("Warning: LOG_CHANNEL_ID not set, rank change logging will be disabled")
	}

	if err := loadJSON(rankRolesPath, &cfg.RankRoles); err != nil {
		return nil, err
	}
	if err := loadJSON(civEmojisPath, &cfg.CivEmojis); err != nil {
		return nil, err
	}

	return cfg, nil
}

func duration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d := v.GetDuration(key)
	if d <= 0 {
		log.Printf("Warning: invalid %s, using default %s", key, fallback)
		return fallback
	}
	return d
}

func loadJSON(path string, dest interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Warning: config file not found at %s, skipping.", path)
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
