package handlers

import (
	"fmt"
	"log"
	"strings"

	"aoe4bot/bot"
	"aoe4bot/model"
	"aoe4bot/utils"

	"github.com/bwmarrin/discordgo"
)

const fieldsPerPage = 25

// HandleShowAll lists every registered account, grouped per Discord
// user, paginated into embeds of 25 fields.
func HandleShowAll(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, false); err != nil {
		log.Printf("Error deferring showall response: %v", err)
		return
	}

	go func() {
		accounts, err := b.Store.ListAccounts()
		if err != nil {
			log.Printf("Error listing accounts: %v", err)
			utils.SendFollowUpError(s, i.Interaction, "Something went wrong, please try again later.")
			return
		}
		if len(accounts) == 0 {
			utils.SendFollowUp(s, i.Interaction, "No accounts registered yet. Use `/register` to add one.")
			return
		}

		byUser := make(map[string][]model.PlayerAccount)
		var order []string
		for _, acc := range accounts {
			if _, seen := byUser[acc.DiscordID]; !seen {
				order = append(order, acc.DiscordID)
			}
			byUser[acc.DiscordID] = append(byUser[acc.DiscordID], acc)
		}

		var fields []*discordgo.MessageEmbedField
		for _, discordID := range order {
			var lines strings.Builder
			for _, acc := range byUser[discordID] {
				tag := "Smurf"
				if acc.IsMain {
					tag = "Main"
				}
				fmt.Fprintf(&lines, "**%s** 『%s』 • `%s` • %s\n",
					acc.IngameName, tag, acc.IngameID, utils.FormatRankDisplay(acc.RankLevel))
			}
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:   "​",
				Value:  fmt.Sprintf("<@%s>\n%s", discordID, lines.String()),
				Inline: false,
			})
		}

		var embeds []*discordgo.MessageEmbed
		for start := 0; start < len(fields); start += fieldsPerPage {
			end := start + fieldsPerPage
			if end > len(fields) {
				end = len(fields)
			}
			embeds = append(embeds, &discordgo.MessageEmbed{
				Title:  fmt.Sprintf("📋 Registered Players (%d accounts)", len(accounts)),
				Color:  0x9B59B6,
				Fields: fields[start:end],
			})
		}

		utils.SendFollowUpEmbeds(s, i.Interaction, embeds)
	}()
}
