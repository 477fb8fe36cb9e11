package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"aoe4bot/aoe4"
	"aoe4bot/bot"
	"aoe4bot/model"
	"aoe4bot/utils"

	"github.com/bwmarrin/discordgo"
)

const maxCivRows = 5

func modeField(name string, mode *aoe4.ModeStats) *discordgo.MessageEmbedField {
	if mode == nil || mode.GamesCount == 0 {
		return &discordgo.MessageEmbedField{Name: name, Value: "No games played", Inline: true}
	}
	value := fmt.Sprintf(
		"Rating: **%d** (peak %d)\nRank: #%d • %s\nW/L: %d/%d (%.1f%%)\nStreak: %d",
		mode.Rating, mode.MaxRating, mode.Rank, utils.FormatRankDisplay(mode.RankLevel),
		mode.WinsCount, mode.LossesCount, mode.WinRate, mode.Streak)
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: true}
}

func civField(civEmojis map[string]string, mode *aoe4.ModeStats) *discordgo.MessageEmbedField {
	if mode == nil || len(mode.Civilizations) == 0 {
		return nil
	}
	civs := mode.Civilizations
	if len(civs) > maxCivRows {
		civs = civs[:maxCivRows]
	}
	var b strings.Builder
	for _, civ := range civs {
		emoji, ok := civEmojis[civ.Civilization]
		if !ok {
			emoji = "❓"
		}
		fmt.Fprintf(&b, "%s %s • %d games • %.1f%% WR\n", emoji, civ.Civilization, civ.GamesCount, civ.WinRate)
	}
	return &discordgo.MessageEmbedField{Name: "🏛️ Most Played Civilizations", Value: b.String(), Inline: false}
}

func seasonsField(mode *aoe4.ModeStats) *discordgo.MessageEmbedField {
	if mode == nil || len(mode.PreviousSeasons) == 0 {
		return nil
	}
	var b strings.Builder
	for _, season := range mode.PreviousSeasons {
		fmt.Fprintf(&b, "Season %d: %s (%d) • %.1f%% WR\n",
			season.Season, utils.FormatRankDisplay(season.RankLevel), season.Rating, season.WinRate)
	}
	return &discordgo.MessageEmbedField{Name: "📜 Previous Seasons", Value: b.String(), Inline: false}
}

func buildProfileEmbed(acc model.PlayerAccount, player *aoe4.Player, civEmojis map[string]string) *discordgo.MessageEmbed {
	accountTag := "Smurf"
	if acc.IsMain {
		accountTag = "Main"
	}
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 %s 『%s』", player.Name, accountTag),
		URL:   player.SiteURL,
		Color: 0x3498DB,
	}
	embed.Fields = append(embed.Fields, modeField("⚔️ Ranked 1v1", player.Modes.RMSolo))
	embed.Fields = append(embed.Fields, modeField("🛡️ Ranked Team", player.Modes.RMTeam))
	if f := civField(civEmojis, player.Modes.RMTeam); f != nil {
		embed.Fields = append(embed.Fields, f)
	}
	if f := seasonsField(player.Modes.RMTeam); f != nil {
		embed.Fields = append(embed.Fields, f)
	}
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("aoe4world profile %s", acc.IngameID),
	}
	return embed
}

// HandleStats shows ranked stats for each of a member's registered
// accounts, main first, one embed per account.
func HandleStats(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, false); err != nil {
		log.Printf("Error deferring stats response: %v", err)
		return
	}

	go func() {
		user := targetUser(s, i)

		accounts, err := b.Store.AccountsByDiscordID(user.ID)
		if err != nil {
			log.Printf("Error loading accounts for %s: %v", user.ID, err)
			utils.SendFollowUpError(s, i.Interaction, "Something went wrong, please try again later.")
			return
		}
		if len(accounts) == 0 {
			utils.SendFollowUpError(s, i.Interaction, fmt.Sprintf("%s has no registered accounts. Use `/register` first.", user.Mention()))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		cfg := b.GetConfig()
		var embeds []*discordgo.MessageEmbed
		for _, acc := range accounts {
			player, err := b.Client.Player(ctx, acc.IngameID)
			if err != nil {
				log.Printf("Error fetching stats for %s: %v", acc.IngameID, err)
				continue
			}
			embeds = append(embeds, buildProfileEmbed(acc, player, cfg.CivEmojis))
		}

		if len(embeds) == 0 {
			utils.SendFollowUpError(s, i.Interaction, "Could not fetch stats right now, please try again later.")
			return
		}
		utils.SendFollowUpEmbeds(s, i.Interaction, embeds)
	}()
}
