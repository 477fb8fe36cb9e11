package tasks

import (
	"fmt"

	"aoe4bot/utils"
	"aoe4bot/utils/database"

	"github.com/bwmarrin/discordgo"
)

// upsertDashboardMessage edits the tracked dashboard message in place,
// or sends a fresh one when the tracked message is gone, rewriting the
// stored message id. Last writer wins on the state value; the scheduler
// never runs two instances of the same job concurrently.
func upsertDashboardMessage(s *discordgo.Session, store *database.Store, channelID, stateKey string, embeds []*discordgo.MessageEmbed) error {
	messageID, err := store.GetState(stateKey)
	if err != nil {
		return err
	}

	if messageID != "" {
		_, err = s.ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel: channelID,
			ID:      messageID,
			Embeds:  &embeds,
		})
		if err == nil {
			return nil
		}
		if !utils.IsNotFound(err) {
			return fmt.Errorf("failed to edit dashboard message %s: %w", messageID, err)
		}
	}

	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{Embeds: embeds})
	if err != nil {
		return fmt.Errorf("failed to send dashboard message: %w", err)
	}
	return store.SetState(stateKey, msg.ID)
}
