package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"aoe4bot/aoe4"
	"aoe4bot/bot"
	"aoe4bot/model"
	"aoe4bot/utils"

	"github.com/bwmarrin/discordgo"
)

// registrationRankLevel picks the tier recorded at registration time.
// The team ladder is authoritative; a player who has only played solo
// still gets a tier from the solo ladder.
func registrationRankLevel(modes aoe4.Modes) string {
	if modes.RMTeam != nil && modes.RMTeam.RankLevel != "" {
		return modes.RMTeam.RankLevel
	}
	if modes.RMSolo != nil {
		return modes.RMSolo.RankLevel
	}
	return ""
}

// HandleRegister links an aoe4world profile to a guild member. A smurf
// account is rejected until the member has a main account on record.
func HandleRegister(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, false); err != nil {
		log.Printf("Error deferring register response: %v", err)
		return
	}

	go func() {
		opts := commandOptions(i)
		user := opts["user"].UserValue(s)
		ingameID := opts["ingame_id"].StringValue()
		accountType := opts["account_type"].StringValue()

		if !hasManageRoles(i) && user.ID != i.Member.User.ID {
			utils.SendFollowUpError(s, i.Interaction, "You can only register your own account.")
			return
		}

		if accountType == "smurf" {
			hasMain, err := b.Store.HasMainAccount(user.ID)
			if err != nil {
				log.Printf("Error checking main account for %s: %v", user.ID, err)
				utils.SendFollowUpError(s, i.Interaction, "Something went wrong, please try again later.")
				return
			}
			if !hasMain {
				utils.SendFollowUpError(s, i.Interaction, "Register a main account before adding a smurf.")
				return
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		player, err := b.Client.Player(ctx, ingameID)
		if err != nil {
			log.Printf("Error fetching player %s: %v", ingameID, err)
			utils.SendFollowUpError(s, i.Interaction, fmt.Sprintf("Could not find an aoe4world profile with ID `%s`.", ingameID))
			return
		}

		rankLevel := registrationRankLevel(player.Modes)
		teamRank := 0
		if player.Modes.RMTeam != nil {
			teamRank = player.Modes.RMTeam.Rank
		}
		soloRank := 0
		if player.Modes.RMSolo != nil {
			soloRank = player.Modes.RMSolo.Rank
		}

		acc := model.PlayerAccount{
			DiscordID:  user.ID,
			IngameID:   ingameID,
			IngameName: player.Name,
			RankLevel:  rankLevel,
			SoloRank:   soloRank,
			TeamRank:   teamRank,
			IsMain:     accountType == "main",
		}
		if err := b.Store.UpsertAccount(acc); err != nil {
			log.Printf("Error saving account %s/%s: %v", user.ID, ingameID, err)
			utils.SendFollowUpError(s, i.Interaction, "Something went wrong, please try again later.")
			return
		}

		cfg := b.GetConfig()
		roleNote := ""
		if acc.IsMain && rankLevel != "" {
			if _, err := utils.UpdatePlayerRole(s, cfg.GuildID, user.ID, rankLevel, "", cfg.RankRoles); err != nil {
				log.Printf("Error assigning rank role for %s: %v", user.ID, err)
				if utils.IsForbidden(err) {
					roleNote = "\n⚠️ I lack permission to assign the rank role."
				}
			}
		}

		utils.SendFollowUp(s, i.Interaction, fmt.Sprintf(
			"✅ Registered **%s** (`%s`) as %s's %s account • Rank: %s%s",
			player.Name, ingameID, user.Mention(), accountType, utils.FormatRankDisplay(rankLevel), roleNote))
	}()
}
