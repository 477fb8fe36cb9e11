package handlers

import (
	"context"
	"log"
	"time"

	"aoe4bot/bot"
	"aoe4bot/tasks"
	"aoe4bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleLeaderboard forces an immediate leaderboard rebuild.
func HandleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Error deferring leaderboard response: %v", err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := tasks.RunForcedLeaderboardUpdate(ctx, b.Deps(), i.Member.User.Username); err != nil {
			log.Printf("Error running forced leaderboard update: %v", err)
			utils.SendFollowUpError(s, i.Interaction, "Something went wrong, please try again later.")
			return
		}
		utils.SendFollowUp(s, i.Interaction, "✅ Leaderboard refreshed.")
	}()
}
