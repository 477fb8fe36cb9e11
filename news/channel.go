package news

import (
	"aoe4bot/model"
	"aoe4bot/utils"

	"github.com/bwmarrin/discordgo"
)

// ChannelPoster posts articles to the configured Discord news channel
// and resolves tracked message ids. It implements Poster.
type ChannelPoster struct {
	session   *discordgo.Session
	channelID string
	iconURL   string
}

func NewChannelPoster(session *discordgo.Session, channelID, iconURL string) *ChannelPoster {
	return &ChannelPoster{session: session, channelID: channelID, iconURL: iconURL}
}

func (p *ChannelPoster) Send(article *model.Article) (string, error) {
	msg, err := p.session.ChannelMessageSendComplex(p.channelID, &discordgo.MessageSend{
		Content: Heading(article),
		Embed:   BuildEmbed(article, p.iconURL),
	})
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

func (p *ChannelPoster) MessageExists(messageID string) (bool, error) {
	_, err := p.session.ChannelMessage(p.channelID, messageID)
	if err == nil {
		return true, nil
	}
	if utils.IsNotFound(err) {
		return false, nil
	}
	return false, err
}
