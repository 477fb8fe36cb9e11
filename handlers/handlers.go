package handlers

import (
	"log"

	"aoe4bot/bot"

	"github.com/bwmarrin/discordgo"
)

func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	addHandlers(b)
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"register": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleRegister(s, i, b)
		},
		"leaderboard": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleLeaderboard(s, i, b)
		},
		"stats": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleStats(s, i, b)
		},
		"delete": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleDelete(s, i, b)
		},
		"showall": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleShowAll(s, i, b)
		},
		"forcenewscheck": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleForceNewsCheck(s, i, b)
		},
		"botstatus": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleBotStatus(s, i, b)
		},
	}
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if h, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
			h(s, i)
		}
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageDelete) {
		if m.ChannelID != b.GetConfig().PatchNotesChannelID {
			return
		}
		b.Reconciler.HandleMessageDelete(m.ID)
	})
}

// commandOptions flattens an interaction's options into a name-keyed map.
func commandOptions(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		byName[opt.Name] = opt
	}
	return byName
}

// targetUser resolves the optional "user" option, defaulting to the
// invoking member.
func targetUser(s *discordgo.Session, i *discordgo.InteractionCreate) *discordgo.User {
	if opt, ok := commandOptions(i)["user"]; ok {
		return opt.UserValue(s)
	}
	return i.Member.User
}

func hasManageRoles(i *discordgo.InteractionCreate) bool {
	return i.Member.Permissions&discordgo.PermissionManageRoles != 0
}
