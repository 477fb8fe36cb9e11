package model

import "time"

// Content types for news articles.
const (
	ContentTypePatch        = "patch"
	ContentTypeAnnouncement = "announcement"
	ContentTypeContent      = "content"
	ContentTypeGeneral      = "general"
)

// Article is a news article extracted from the Age of Empires website.
// Two articles with the same URLHash are the same news item.
type Article struct {
	PostID      string
	Title       string
	URL         string
	URLHash     string
	Date        string
	Author      string
	Content     string
	Preview     string
	ImageURL    string
	Category    string
	ContentType string
	IsPatch     bool
}

// PostedNews is the persisted projection of an article that has been
// posted to the news channel, bound to its Discord message.
type PostedNews struct {
	PostID      string    `db:"post_id"`
	Title       string    `db:"title"`
	URL         string    `db:"url"`
	Date        string    `db:"date"`
	Category    string    `db:"category"`
	ContentType string    `db:"content_type"`
	IsPatch     bool      `db:"is_patch"`
	MessageID   string    `db:"message_id"`
	URLHash     string    `db:"url_hash"`
	PostedAt    time.Time `db:"posted_at"`
}
