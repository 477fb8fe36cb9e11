package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"aoe4bot/bot"
	"aoe4bot/model"
	"aoe4bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleForceNewsCheck runs an immediate news reconciliation pass.
// Restricted to members with Manage Roles.
func HandleForceNewsCheck(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Error deferring forcenewscheck response: %v", err)
		return
	}

	go func() {
		if !hasManageRoles(i) {
			utils.SendFollowUpError(s, i.Interaction, "You do not have permission to use this command.")
			return
		}

		newsType := "both"
		if opt, ok := commandOptions(i)["news_type"]; ok {
			newsType = opt.StringValue()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		d := b.Deps()
		var batch []*model.Article
		if newsType == model.ContentTypePatch || newsType == "both" {
			batch = append(batch, d.Fetcher.FetchNews(ctx, model.ContentTypePatch)...)
		}
		if newsType == model.ContentTypeAnnouncement || newsType == "both" {
			batch = append(batch, d.Fetcher.FetchNews(ctx, model.ContentTypeAnnouncement)...)
		}

		if len(batch) == 0 {
			utils.SendFollowUpError(s, i.Interaction, "No articles could be fetched right now.")
			return
		}

		posted := d.Reconciler.Reconcile(batch)
		utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("✅ News check complete: %d new article(s) posted.", posted))
	}()
}
