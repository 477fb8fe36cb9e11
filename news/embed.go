package news

import (
	"time"

	"aoe4bot/model"

	"github.com/bwmarrin/discordgo"
)

var embedColors = map[string]int{
	model.ContentTypePatch:        0xF1C40F, // gold
	model.ContentTypeAnnouncement: 0x3498DB, // blue
	model.ContentTypeContent:      0x2ECC71, // green
	model.ContentTypeGeneral:      0x71368A, // dark purple
}

var headings = map[string]string{
	model.ContentTypePatch:        "📢 **New Age of Empires IV Patch Notes!**",
	model.ContentTypeAnnouncement: "🔔 **Age of Empires IV Announcement!**",
	model.ContentTypeContent:      "🎮 **New Age of Empires IV Content!**",
	model.ContentTypeGeneral:      "📰 **Age of Empires IV News Update**",
}

var footers = map[string]string{
	model.ContentTypePatch:        "Age of Empires IV Patch Notes",
	model.ContentTypeAnnouncement: "Age of Empires IV Announcement",
	model.ContentTypeContent:      "Age of Empires IV Content Update",
	model.ContentTypeGeneral:      "Age of Empires IV News",
}

// BuildEmbed renders an article into the news channel embed.
func BuildEmbed(article *model.Article, iconURL string) *discordgo.MessageEmbed {
	color, ok := embedColors[article.ContentType]
	if !ok {
		color = embedColors[model.ContentTypeGeneral]
	}

	embed := &discordgo.MessageEmbed{
		Title:     article.Title,
		URL:       article.URL,
		Color:     color,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Author: &discordgo.MessageEmbedAuthor{
			Name:    "Age of Empires IV",
			IconURL: iconURL,
		},
	}

	if article.Category != "" && article.Category != "Uncategorized" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Category", Value: article.Category, Inline: true,
		})
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "Published", Value: article.Date, Inline: true,
	})
	if article.Author != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Author", Value: article.Author, Inline: true,
		})
	}

	if article.Preview != "" {
		embed.Description = article.Preview
	} else {
		embed.Description = "Click the title to read the full article on the Age of Empires website."
	}

	if article.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: article.ImageURL}
	}

	footer, ok := footers[article.ContentType]
	if !ok {
		footer = footers[model.ContentTypeGeneral]
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: footer + " | Posted by AoE4 MA"}

	return embed
}

// Heading returns the channel message text above the embed.
func Heading(article *model.Article) string {
	heading, ok := headings[article.ContentType]
	if !ok {
		heading = headings[model.ContentTypeGeneral]
	}
	return heading + "\n" + article.Title
}
