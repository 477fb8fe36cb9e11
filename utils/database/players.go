package database

import (
	"database/sql"
	"errors"
	"fmt"

	"aoe4bot/model"
)

// HasMainAccount reports whether the Discord user already has a main
// account registered. Smurf registration requires one.
func (s *Store) HasMainAccount(discordID string) (bool, error) {
	var count int
	err := s.get(&count, "SELECT COUNT(*) FROM players WHERE discord_id = ? AND is_main = 1", discordID)
	if err != nil {
		return false, fmt.Errorf("failed to count main accounts for %s: %w", discordID, err)
	}
	return count > 0, nil
}

// UpsertAccount inserts or replaces an account keyed by
// (discord_id, ingame_id). Re-registration is an upsert.
func (s *Store) UpsertAccount(acc model.PlayerAccount) error {
	query := `INSERT OR REPLACE INTO players
		(discord_id, ingame_id, ingame_name, rank_level, solo_rank, team_rank, is_main)
		VALUES (:discord_id, :ingame_id, :ingame_name, :rank_level, :solo_rank, :team_rank, :is_main)`
	if err := s.namedExec(query, acc); err != nil {
		return fmt.Errorf("failed to upsert account %s: %w", acc.IngameID, err)
	}
	return nil
}

// ListAccounts returns every registered account.
func (s *Store) ListAccounts() ([]model.PlayerAccount, error) {
	var accounts []model.PlayerAccount
	err := s.selectAll(&accounts, "SELECT * FROM players")
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// AccountsByDiscordID returns a user's accounts, main account first.
func (s *Store) AccountsByDiscordID(discordID string) ([]model.PlayerAccount, error) {
	var accounts []model.PlayerAccount
	err := s.selectAll(&accounts, "SELECT * FROM players WHERE discord_id = ? ORDER BY is_main DESC", discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts for %s: %w", discordID, err)
	}
	return accounts, nil
}

// UpdateRankLevel persists a new rank tier after a leaderboard pass.
func (s *Store) UpdateRankLevel(discordID, ingameID, rankLevel string) error {
	err := s.exec("UPDATE players SET rank_level = ? WHERE discord_id = ? AND ingame_id = ?",
		rankLevel, discordID, ingameID)
	if err != nil {
		return fmt.Errorf("failed to update rank level for %s: %w", ingameID, err)
	}
	return nil
}

// DeleteAccounts removes every account registered for a Discord user.
func (s *Store) DeleteAccounts(discordID string) error {
	if err := s.exec("DELETE FROM players WHERE discord_id = ?", discordID); err != nil {
		return fmt.Errorf("failed to delete accounts for %s: %w", discordID, err)
	}
	return nil
}

// GetState reads a bot_state value; a missing key is an empty string.
func (s *Store) GetState(key string) (string, error) {
	var value string
	err := s.get(&value, "SELECT value FROM bot_state WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read bot state %s: %w", key, err)
	}
	return value, nil
}

// SetState writes a bot_state value, last writer wins.
func (s *Store) SetState(key, value string) error {
	if err := s.exec("INSERT OR REPLACE INTO bot_state (key, value) VALUES (?, ?)", key, value); err != nil {
		return fmt.Errorf("failed to save bot state %s: %w", key, err)
	}
	return nil
}
