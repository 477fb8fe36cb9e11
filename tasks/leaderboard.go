package tasks

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"aoe4bot/aoe4"
	"aoe4bot/model"
	"aoe4bot/news"
	"aoe4bot/utils"
	"aoe4bot/utils/database"

	"github.com/bwmarrin/discordgo"
)

// Deps bundles what every background job needs. Jobs share only the
// store and the Discord session; they never call each other.
type Deps struct {
	Session    *discordgo.Session
	Store      *database.Store
	Client     *aoe4.Client
	Fetcher    *news.Fetcher
	Reconciler *news.Reconciler
	Config     *model.Config
}

// LeaderboardEntry is one rendered leaderboard row.
type LeaderboardEntry struct {
	Name       string
	Rating     int
	RankLevel  string
	WinRate    float64
	Streak     int
	GlobalRank int
	Mention    string
	SeasonInfo string
}

// SortByRating orders entries by rating descending. The sort is stable:
// equal ratings keep their original query order.
func SortByRating(entries []LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rating > entries[j].Rating
	})
}

func seasonInfo(seasons []aoe4.SeasonResult) string {
	if len(seasons) == 0 {
		return ""
	}
	latest := seasons[0]
	return fmt.Sprintf(" (S%d: %s)", latest.Season, utils.FormatRankDisplay(latest.RankLevel))
}

func buildEntry(name string, mention string, mode *aoe4.ModeStats) LeaderboardEntry {
	return LeaderboardEntry{
		Name:       name,
		Rating:     mode.Rating,
		RankLevel:  mode.RankLevel,
		WinRate:    mode.WinRate,
		Streak:     mode.Streak,
		GlobalRank: mode.Rank,
		Mention:    mention,
		SeasonInfo: seasonInfo(mode.PreviousSeasons),
	}
}

// teamRankLevel is the ladder tier recorded for a main account. A
// player absent from the team ladder is unranked, not unchanged: the
// stale tier must be dropped and its role stripped.
func teamRankLevel(modes aoe4.Modes) string {
	if modes.RMTeam == nil || modes.RMTeam.RankLevel == "" {
		return "unranked"
	}
	return strings.ToLower(modes.RMTeam.RankLevel)
}

func streakSymbol(streak int) string {
	switch {
	case streak > 2:
		return "🔥"
	case streak < -2:
		return "❄️"
	default:
		return ""
	}
}

func renderLeaderboard(title string, color int, description string, entries []LeaderboardEntry) *discordgo.MessageEmbed {
	if len(entries) > 10 {
		entries = entries[:10]
	}
	var b strings.Builder
	for idx, e := range entries {
		fmt.Fprintf(&b, "`%2d.` **%s** %s\n", idx+1, e.Name, streakSymbol(e.Streak))
		fmt.Fprintf(&b, "└ Rating: `%d` | Global Rank: `#%d` | Rank: `%s` | WR: `%.1f%%`%s\n",
			e.Rating, e.GlobalRank, utils.FormatRankDisplay(e.RankLevel), e.WinRate, e.SeasonInfo)
		fmt.Fprintf(&b, "└ Discord: %s\n\n", e.Mention)
	}
	text := b.String()
	if text == "" {
		text = "No data available"
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description + "\n\n" + text,
		Color:       color,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

// BuildLeaderboards pulls every registered account's current snapshot,
// reconciles rank roles for main accounts whose tier changed, and
// renders the solo and team leaderboards. A player whose snapshot fails
// to fetch is skipped for this cycle.
func BuildLeaderboards(ctx context.Context, d Deps, forced bool, triggerName string) (*discordgo.MessageEmbed, *discordgo.MessageEmbed, error) {
	accounts, err := d.Store.ListAccounts()
	if err != nil {
		return nil, nil, err
	}

	timestampText := fmt.Sprintf("Automatically updated at %s UTC", time.Now().UTC().Format("2006-01-02 15:04:05"))
	if forced && triggerName != "" {
		timestampText = fmt.Sprintf("Manually updated by %s at %s UTC", triggerName, time.Now().UTC().Format("2006-01-02 15:04:05"))
	}

	var soloEntries, teamEntries []LeaderboardEntry

	for _, acc := range accounts {
		member := utils.ResolveMember(d.Session, d.Config.GuildID, acc.DiscordID)
		if member == nil {
			continue
		}

		player, err := d.Client.Player(ctx, acc.IngameID)
		if err != nil {
			log.Printf("Error fetching player data for %s: %v", acc.IngameID, err)
			continue
		}

		mention := member.Mention()

		if acc.IsMain {
			if newRank := teamRankLevel(player.Modes); newRank != acc.RankLevel {
				d.applyRankChange(acc, newRank)
			}
		}

		name := player.Name
		if !acc.IsMain {
			name = fmt.Sprintf("%s (Smurf of %s)", player.Name, mention)
		}

		if player.Modes.RMSolo != nil {
			soloEntries = append(soloEntries, buildEntry(name, mention, player.Modes.RMSolo))
		}
		if player.Modes.RMTeam != nil {
			teamEntries = append(teamEntries, buildEntry(name, mention, player.Modes.RMTeam))
		}
	}

	SortByRating(soloEntries)
	SortByRating(teamEntries)

	solo := renderLeaderboard("🎮 AOE4 Solo Leaderboard", 0x3498DB, timestampText, soloEntries)
	team := renderLeaderboard("👥 AOE4 Team Leaderboard", 0x2ECC71, timestampText, teamEntries)
	return solo, team, nil
}

// applyRankChange persists a main account's new tier and reconciles the
// member's rank role. Permission failures are logged, never fatal in a
// background pass.
func (d Deps) applyRankChange(acc model.PlayerAccount, newRank string) {
	oldRank := acc.RankLevel
	if err := d.Store.UpdateRankLevel(acc.DiscordID, acc.IngameID, newRank); err != nil {
		log.Printf("Error persisting rank change for %s: %v", acc.IngameID, err)
		return
	}

	applied, err := utils.UpdatePlayerRole(d.Session, d.Config.GuildID, acc.DiscordID, newRank, oldRank, d.Config.RankRoles)
	if err != nil {
		log.Printf("Error updating role for user %s: %v", acc.DiscordID, err)
		return
	}
	if applied && d.Config.LogChannelID != "" {
		_, err := d.Session.ChannelMessageSend(d.Config.LogChannelID, fmt.Sprintf(
			"🔄 Rank Update: <@%s> from `%s` to `%s`",
			acc.DiscordID, utils.FormatRankDisplay(oldRank), utils.FormatRankDisplay(newRank)))
		if err != nil {
			log.Printf("Error sending rank update log: %v", err)
		}
	}
}

// RunLeaderboardUpdate is the scheduled leaderboard job: rebuild both
// leaderboards and reconcile the dashboard message.
func RunLeaderboardUpdate(ctx context.Context, d Deps) {
	if err := refreshLeaderboards(ctx, d, false, ""); err != nil {
		log.Printf("Error updating leaderboard: %v", err)
		return
	}
	log.Println("Completed leaderboard update")
}

// RunForcedLeaderboardUpdate rebuilds the leaderboards on demand,
// crediting the member who triggered the refresh.
func RunForcedLeaderboardUpdate(ctx context.Context, d Deps, triggerName string) error {
	return refreshLeaderboards(ctx, d, true, triggerName)
}

func refreshLeaderboards(ctx context.Context, d Deps, forced bool, triggerName string) error {
	solo, team, err := BuildLeaderboards(ctx, d, forced, triggerName)
	if err != nil {
		return err
	}
	embeds := []*discordgo.MessageEmbed{solo, team}
	return upsertDashboardMessage(d.Session, d.Store, d.Config.LeaderboardChannelID, model.StateKeyLeaderboardMessageID, embeds)
}
