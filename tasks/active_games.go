package tasks

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"aoe4bot/aoe4"
	"aoe4bot/model"
	"aoe4bot/utils"

	"github.com/bwmarrin/discordgo"
)

// recentWindow is how long a finished game stays on the dashboard.
const recentWindow = 15 * time.Minute

// maxEmbedFields is Discord's usable per-message field budget for the
// dashboard; rendering stops once it is reached.
const maxEmbedFields = 24

// maxRecentGroups caps how many recently finished games are shown.
const maxRecentGroups = 5

// Observation is one registered player's most recent game, with the
// player located inside the game's team structure.
type Observation struct {
	Name    string
	Mention string
	IsMain  bool
	Civ     string
	Result  string
	Team    int // -1 when the player was not located in a team
	Game    aoe4.Game
}

// GameGroup is every observed player sharing one game_id.
type GameGroup struct {
	GameID     int64
	Kind       string
	Map        string
	StartedAt  time.Time
	FinishedAt time.Time
	Players    []Observation
}

// LocatePlayer finds a profile id inside a game's team structure by
// sequential scan, first match wins. Returns civ, result and team index.
func LocatePlayer(game aoe4.Game, ingameID string) (string, string, int, bool) {
	for teamIdx, team := range game.Teams {
		for _, row := range team {
			if strconv.FormatInt(row.Player.ProfileID, 10) == ingameID {
				return row.Player.Civilization, row.Player.Result, teamIdx, true
			}
		}
	}
	return "", "", -1, false
}

func parseGameTime(value string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Aggregate groups observations into live games and recently finished
// games. A game_id that is live anywhere never also appears in the
// recent set; a finished game only counts while inside the recency
// window. Recent groups come back newest finish first, capped.
func Aggregate(now time.Time, observations []Observation) (live []GameGroup, recent []GameGroup) {
	liveByID := make(map[int64]*GameGroup)
	var liveOrder []int64

	for _, obs := range observations {
		if !obs.Game.Ongoing {
			continue
		}
		group, ok := liveByID[obs.Game.GameID]
		if !ok {
			startedAt, _ := parseGameTime(obs.Game.StartedAt)
			group = &GameGroup{
				GameID:    obs.Game.GameID,
				Kind:      obs.Game.Kind,
				Map:       obs.Game.Map,
				StartedAt: startedAt,
			}
			liveByID[obs.Game.GameID] = group
			liveOrder = append(liveOrder, obs.Game.GameID)
		}
		group.Players = append(group.Players, obs)
	}

	recentByID := make(map[int64]*GameGroup)
	var recentOrder []int64

	for _, obs := range observations {
		if obs.Game.Ongoing {
			continue
		}
		// A live view of the same game id wins over a stale finished one.
		if _, isLive := liveByID[obs.Game.GameID]; isLive {
			continue
		}
		finishedAt, ok := parseGameTime(obs.Game.UpdatedAt)
		if !ok || now.Sub(finishedAt) > recentWindow {
			continue
		}
		group, ok := recentByID[obs.Game.GameID]
		if !ok {
			group = &GameGroup{
				GameID:     obs.Game.GameID,
				Kind:       obs.Game.Kind,
				Map:        obs.Game.Map,
				FinishedAt: finishedAt,
			}
			recentByID[obs.Game.GameID] = group
			recentOrder = append(recentOrder, obs.Game.GameID)
		}
		group.Players = append(group.Players, obs)
	}

	for _, id := range liveOrder {
		group := liveByID[id]
		sortByTeam(group.Players)
		live = append(live, *group)
	}
	for _, id := range recentOrder {
		group := recentByID[id]
		sortByTeam(group.Players)
		recent = append(recent, *group)
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].FinishedAt.After(recent[j].FinishedAt)
	})
	if len(recent) > maxRecentGroups {
		recent = recent[:maxRecentGroups]
	}
	return live, recent
}

// sortByTeam orders a group's players by team index; an undefined team
// sorts first.
func sortByTeam(players []Observation) {
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Team < players[j].Team
	})
}

func accountTag(isMain bool) string {
	if isMain {
		return "『Main』"
	}
	return "『Smurf』"
}

func resultEmoji(result string) string {
	switch result {
	case "win":
		return "🏆"
	case "loss":
		return "❌"
	default:
		return "❓"
	}
}

func civEmoji(civEmojis map[string]string, civ string) string {
	if emoji, ok := civEmojis[civ]; ok {
		return emoji
	}
	return "❓"
}

func gameModeName(kind string) string {
	if name, ok := model.GameModes[kind]; ok {
		return name
	}
	return kind
}

func renderLiveGroup(b *strings.Builder, group GameGroup, now time.Time, civEmojis map[string]string) {
	duration := fmt.Sprintf("%dmin", int(now.Sub(group.StartedAt).Minutes()))
	mode := gameModeName(group.Kind)

	if len(group.Players) > 1 {
		fmt.Fprintf(b, "**🎮 %s on %s** (`%s`)\n", mode, group.Map, duration)
		currentTeam := -2
		for _, p := range group.Players {
			if p.Team != currentTeam {
				currentTeam = p.Team
				fmt.Fprintf(b, "**Team %d**\n", currentTeam+1)
			}
			fmt.Fprintf(b, "└ **%s** %s • %s • Civ: %s\n", p.Name, accountTag(p.IsMain), p.Mention, civEmoji(civEmojis, p.Civ))
		}
	} else {
		p := group.Players[0]
		fmt.Fprintf(b, "**%s** %s\n", p.Name, accountTag(p.IsMain))
		fmt.Fprintf(b, "└ %s • `%s`\n", p.Mention, mode)
		fmt.Fprintf(b, "└ Map: `%s` • Time: `%s` • Civ: %s\n", group.Map, duration, civEmoji(civEmojis, p.Civ))
	}
	b.WriteString("\n")
}

func renderRecentGroup(b *strings.Builder, group GameGroup, now time.Time, civEmojis map[string]string) {
	minutesAgo := fmt.Sprintf("%dmin ago", int(now.Sub(group.FinishedAt).Minutes()))
	mode := gameModeName(group.Kind)

	if len(group.Players) > 1 {
		fmt.Fprintf(b, "**🎮 %s on %s** (`%s`)\n", mode, group.Map, minutesAgo)
		currentTeam := -2
		for _, p := range group.Players {
			if p.Team != currentTeam {
				currentTeam = p.Team
				fmt.Fprintf(b, "**Team %d**\n", currentTeam+1)
			}
			fmt.Fprintf(b, "└ **%s** %s • %s • %s • Civ: %s\n", p.Name, accountTag(p.IsMain), p.Mention, resultEmoji(p.Result), civEmoji(civEmojis, p.Civ))
		}
	} else {
		p := group.Players[0]
		fmt.Fprintf(b, "**%s** %s\n", p.Name, accountTag(p.IsMain))
		fmt.Fprintf(b, "└ %s • `%s`\n", p.Mention, mode)
		fmt.Fprintf(b, "└ Map: `%s` • %s • `%s` • Civ: %s\n", group.Map, resultEmoji(p.Result), minutesAgo, civEmoji(civEmojis, p.Civ))
	}
	b.WriteString("\n")
}

// BuildActiveGamesEmbed renders the live and recently finished groups
// into the game tracker embed, bounded by the platform field limit.
func BuildActiveGamesEmbed(now time.Time, live, recent []GameGroup, civEmojis map[string]string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🎮 Live Game Tracker",
		Description: "Updates every 30 seconds",
		Color:       0x2ECC71,
		Timestamp:   now.UTC().Format(time.RFC3339),
	}

	fieldCount := 0

	var liveText strings.Builder
	for _, group := range live {
		if fieldCount >= maxEmbedFields {
			break
		}
		renderLiveGroup(&liveText, group, now, civEmojis)
		fieldCount++
	}
	if liveText.Len() > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "🟢 Live Games", Value: liveText.String(), Inline: false,
		})
	}

	var recentText strings.Builder
	for _, group := range recent {
		if fieldCount >= maxEmbedFields {
			break
		}
		renderRecentGroup(&recentText, group, now, civEmojis)
		fieldCount++
	}
	if recentText.Len() > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "🟡 Recently Finished", Value: recentText.String(), Inline: false,
		})
	}

	if len(live) == 0 && len(recent) == 0 {
		embed.Description = "😴 No players currently active"
	}
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Tracking %d active games • Last updated", len(live)+len(recent)),
	}
	return embed
}

// collectObservations fetches every present member's most recent game.
// Failures skip the player for this cycle only.
func collectObservations(ctx context.Context, d Deps) []Observation {
	accounts, err := d.Store.ListAccounts()
	if err != nil {
		log.Printf("Error listing accounts for game poll: %v", err)
		return nil
	}

	var observations []Observation
	for _, acc := range accounts {
		member := utils.ResolveMember(d.Session, d.Config.GuildID, acc.DiscordID)
		if member == nil {
			continue
		}

		games, err := d.Client.RecentGames(ctx, acc.IngameID)
		if err != nil {
			log.Printf("Error fetching games for %s: %v", acc.IngameID, err)
			continue
		}
		if len(games) == 0 {
			continue
		}

		current := games[0]
		civ, result, team, _ := LocatePlayer(current, acc.IngameID)
		observations = append(observations, Observation{
			Name:    acc.IngameName,
			Mention: member.Mention(),
			IsMain:  acc.IsMain,
			Civ:     civ,
			Result:  result,
			Team:    team,
			Game:    current,
		})
	}
	return observations
}

// RunActiveGamesUpdate is the scheduled live-game poll: rebuild the
// tracker view from scratch and reconcile the dashboard message.
func RunActiveGamesUpdate(ctx context.Context, d Deps) {
	now := time.Now().UTC()
	live, recent := Aggregate(now, collectObservations(ctx, d))
	embed := BuildActiveGamesEmbed(now, live, recent, d.Config.CivEmojis)

	err := upsertDashboardMessage(d.Session, d.Store, d.Config.ActivePlayersChannelID, model.StateKeyActivePlayersMessageID, []*discordgo.MessageEmbed{embed})
	if err != nil {
		log.Printf("Error updating active players message: %v", err)
	}
}
