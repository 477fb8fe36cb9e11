package commands

import "github.com/bwmarrin/discordgo"

// GenerateCommands returns the guild slash-command set.
func GenerateCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "register",
			Description: "Register an AoE4 account for a member",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The member to register",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "ingame_id",
					Description: "aoe4world profile ID",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "account_type",
					Description: "Whether this is the member's main account or a smurf",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Main", Value: "main"},
						{Name: "Smurf", Value: "smurf"},
					},
				},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Force a leaderboard refresh",
		},
		{
			Name:        "stats",
			Description: "Show ranked stats for a member",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The member to look up (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:        "delete",
			Description: "Delete a member's registered accounts",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The member to delete (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:        "showall",
			Description: "List all registered accounts",
		},
		{
			Name:        "forcenewscheck",
			Description: "Force an immediate news check",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "news_type",
					Description: "Which news feed to check",
					Required:    false,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Patch Notes", Value: "patch"},
						{Name: "Announcements", Value: "announcement"},
						{Name: "Both", Value: "both"},
					},
				},
			},
		},
		{
			Name:        "botstatus",
			Description: "Show bot system status",
		},
	}
}
