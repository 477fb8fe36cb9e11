package handlers

import (
	"fmt"
	"log"

	"aoe4bot/bot"
	"aoe4bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleDelete removes all registered accounts for a member. Deleting
// someone else's accounts requires the Manage Roles permission.
func HandleDelete(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Error deferring delete response: %v", err)
		return
	}

	go func() {
		user := targetUser(s, i)
		if user.ID != i.Member.User.ID && !hasManageRoles(i) {
			utils.SendFollowUpError(s, i.Interaction, "You need the Manage Roles permission to delete other members' accounts.")
			return
		}

		accounts, err := b.Store.AccountsByDiscordID(user.ID)
		if err != nil {
			log.Printf("Error loading accounts for %s: %v", user.ID, err)
			utils.SendFollowUpError(s, i.Interaction, "Something went wrong, please try again later.")
			return
		}
		if len(accounts) == 0 {
			utils.SendFollowUpError(s, i.Interaction, fmt.Sprintf("%s has no registered accounts.", user.Mention()))
			return
		}

		if err := b.Store.DeleteAccounts(user.ID); err != nil {
			log.Printf("Error deleting accounts for %s: %v", user.ID, err)
			utils.SendFollowUpError(s, i.Interaction, "Something went wrong, please try again later.")
			return
		}

		utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("🗑️ Removed %d account(s) for %s.", len(accounts), user.Mention()))
	}()
}
