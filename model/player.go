package model

// PlayerAccount is a registered in-game account bound to a Discord user.
// A Discord user has at most one main account; smurf accounts may only be
// registered once a main account exists.
type PlayerAccount struct {
	DiscordID  string `db:"discord_id"`
	IngameID   string `db:"ingame_id"`
	IngameName string `db:"ingame_name"`
	RankLevel  string `db:"rank_level"`
	SoloRank   int    `db:"solo_rank"`
	TeamRank   int    `db:"team_rank"`
	IsMain     bool   `db:"is_main"`
}

// Keys of the bot_state key/value table.
const (
	StateKeyLeaderboardMessageID   = "leaderboard_message_id"
	StateKeyActivePlayersMessageID = "active_players_message_id"
)
