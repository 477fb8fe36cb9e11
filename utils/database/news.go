package database

import (
	"database/sql"
	"errors"
	"fmt"

	"aoe4bot/model"
)

// FindNews looks a posted-news record up by post id or URL hash. Either
// match counts as already known; post ids are not stable across
// refetches of the same article. Returns nil when unknown.
func (s *Store) FindNews(postID, urlHash string) (*model.PostedNews, error) {
	var rec model.PostedNews
	err := s.get(&rec, "SELECT * FROM aoe4_news WHERE post_id = ? OR url_hash = ?", postID, urlHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up news %s: %w", postID, err)
	}
	return &rec, nil
}

// InsertNews records a freshly posted article and its message binding.
func (s *Store) InsertNews(rec *model.PostedNews) error {
	query := `INSERT INTO aoe4_news
		(post_id, title, url, date, category, content_type, is_patch, message_id, url_hash, posted_at)
		VALUES (:post_id, :title, :url, :date, :category, :content_type, :is_patch, :message_id, :url_hash, :posted_at)`
	if err := s.namedExec(query, rec); err != nil {
		return fmt.Errorf("failed to insert news %s: %w", rec.PostID, err)
	}
	return nil
}

// DeleteNews removes a record so its URL hash becomes eligible for
// reposting.
func (s *Store) DeleteNews(postID string) error {
	if err := s.exec("DELETE FROM aoe4_news WHERE post_id = ?", postID); err != nil {
		return fmt.Errorf("failed to delete news %s: %w", postID, err)
	}
	return nil
}

// NewsByMessageID resolves the record tracking a channel message, nil
// when the message is not one of ours.
func (s *Store) NewsByMessageID(messageID string) (*model.PostedNews, error) {
	var rec model.PostedNews
	err := s.get(&rec, "SELECT * FROM aoe4_news WHERE message_id = ?", messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up news by message %s: %w", messageID, err)
	}
	return &rec, nil
}

// ListPostedNews returns every record with a live message binding.
func (s *Store) ListPostedNews() ([]model.PostedNews, error) {
	var recs []model.PostedNews
	err := s.selectAll(&recs, "SELECT * FROM aoe4_news WHERE message_id IS NOT NULL AND message_id != ''")
	if err != nil {
		return nil, fmt.Errorf("failed to list posted news: %w", err)
	}
	return recs, nil
}
