package utils

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

// RoleManager is the slice of the Discord API the rank reconciler
// mutates roles through.
type RoleManager interface {
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

// ResolveMember looks a guild member up in the session state, falling
// back to the REST API. A nil member means the user has left the guild.
func ResolveMember(s *discordgo.Session, guildID, userID string) *discordgo.Member {
	if member, err := s.State.Member(guildID, userID); err == nil && member != nil {
		return member
	}
	member, err := s.GuildMember(guildID, userID)
	if err != nil {
		return nil
	}
	return member
}

func hasRole(member *discordgo.Member, roleID string) bool {
	for _, r := range member.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// UpdatePlayerRole reconciles a member's rank role with their new rank
// level. A member who has left the guild is a no-op. Returns whether a
// role mutation was applied.
func UpdatePlayerRole(s *discordgo.Session, guildID, userID, newRankLevel, oldRankLevel string, rankRoles map[string]string) (bool, error) {
	member := ResolveMember(s, guildID, userID)
	if member == nil {
		return false, nil
	}
	return ReconcileRankRole(s, member, guildID, userID, newRankLevel, oldRankLevel, rankRoles)
}

// ReconcileRankRole applies the minimal role delta for a rank change.
// Comparison is at base-tier granularity: moving between divisions of
// the same tier is a no-op. The old role is removed before the new one
// is added. A tier with no mapped role is silently skipped.
func ReconcileRankRole(mgr RoleManager, member *discordgo.Member, guildID, userID, newRankLevel, oldRankLevel string, rankRoles map[string]string) (bool, error) {
	newBase := BaseTier(newRankLevel)
	oldBase := BaseTier(oldRankLevel)
	if oldRankLevel != "" && newBase == oldBase {
		return false, nil
	}

	if oldRankLevel != "" {
		if oldRoleID, ok := rankRoles[oldBase]; ok && hasRole(member, oldRoleID) {
			if err := mgr.GuildMemberRoleRemove(guildID, userID, oldRoleID); err != nil {
				return false, fmt.Errorf("failed to remove role %s from %s: %w", oldRoleID, userID, err)
			}
		}
	}

	newRoleID, ok := rankRoles[newBase]
	if !ok {
		log.Printf("No role mapped for tier %q, skipping", newBase)
		return false, nil
	}
	if hasRole(member, newRoleID) {
		return false, nil
	}
	if err := mgr.GuildMemberRoleAdd(guildID, userID, newRoleID); err != nil {
		return false, fmt.Errorf("failed to add role %s to %s: %w", newRoleID, userID, err)
	}
	return true, nil
}
