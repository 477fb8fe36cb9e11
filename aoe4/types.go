package aoe4

// Player is a ranked snapshot from the aoe4world players endpoint.
type Player struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	SiteURL string `json:"site_url"`
	Modes   Modes  `json:"modes"`
}

type Modes struct {
	RMSolo *ModeStats `json:"rm_solo"`
	RMTeam *ModeStats `json:"rm_team"`
}

// ModeStats carries one ladder's stats for a player.
type ModeStats struct {
	Rating          int            `json:"rating"`
	MaxRating       int            `json:"max_rating"`
	Rank            int            `json:"rank"`
	RankLevel       string         `json:"rank_level"`
	Streak          int            `json:"streak"`
	GamesCount      int            `json:"games_count"`
	WinsCount       int            `json:"wins_count"`
	LossesCount     int            `json:"losses_count"`
	WinRate         float64        `json:"win_rate"`
	Civilizations   []CivStats     `json:"civilizations"`
	PreviousSeasons []SeasonResult `json:"previous_seasons"`
}

type CivStats struct {
	Civilization string  `json:"civilization"`
	GamesCount   int     `json:"games_count"`
	WinRate      float64 `json:"win_rate"`
}

type SeasonResult struct {
	Season    int     `json:"season"`
	RankLevel string  `json:"rank_level"`
	Rating    int     `json:"rating"`
	WinRate   float64 `json:"win_rate"`
}

// Game is one entry from the games endpoint. Teams nest each player
// under a "player" key.
type Game struct {
	GameID    int64       `json:"game_id"`
	StartedAt string      `json:"started_at"`
	UpdatedAt string      `json:"updated_at"`
	Map       string      `json:"map"`
	Kind      string      `json:"kind"`
	Ongoing   bool        `json:"ongoing"`
	Teams     [][]TeamRow `json:"teams"`
}

type TeamRow struct {
	Player GamePlayer `json:"player"`
}

type GamePlayer struct {
	ProfileID    int64  `json:"profile_id"`
	Name         string `json:"name"`
	Civilization string `json:"civilization"`
	Result       string `json:"result"`
}

type gamesResponse struct {
	Games []Game `json:"games"`
}
