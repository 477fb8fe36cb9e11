package news

import (
	"log"
	"sort"
	"time"

	"aoe4bot/model"
)

// Ledger is the persisted record of posted articles and their channel
// message bindings.
type Ledger interface {
	// FindNews returns the record matching either the post id or the
	// URL hash, or nil when the article is unknown.
	FindNews(postID, urlHash string) (*model.PostedNews, error)
	InsertNews(rec *model.PostedNews) error
	DeleteNews(postID string) error
	NewsByMessageID(messageID string) (*model.PostedNews, error)
	ListPostedNews() ([]model.PostedNews, error)
}

// Poster is the news channel the reconciler posts to.
type Poster interface {
	// Send posts the article and returns the resulting message id.
	Send(article *model.Article) (string, error)
	// MessageExists reports whether the message still resolves in the
	// channel. A deleted message is (false, nil); any other failure is
	// returned as an error.
	MessageExists(messageID string) (bool, error)
}

// maxPostsPerRun bounds how many articles one reconciliation pass may
// post, so a backlog never floods the channel.
const maxPostsPerRun = 3

// Reconciler compares freshly fetched articles against the ledger and
// posts only what is genuinely new, self-healing records whose channel
// message was deleted out-of-band.
type Reconciler struct {
	ledger    Ledger
	poster    Poster
	postDelay time.Duration
	sleep     func(time.Duration)
	now       func() time.Time
}

func NewReconciler(ledger Ledger, poster Poster) *Reconciler {
	return &Reconciler{
		ledger:    ledger,
		poster:    poster,
		postDelay: 2 * time.Second,
		sleep:     time.Sleep,
		now:       time.Now,
	}
}

// dateLayouts covers the date shapes the extractor produces.
var dateLayouts = []string{
	time.RFC3339,
	"January 2, 2006",
	"2 January 2006",
	"01/02/2006",
}

// ParseArticleDate parses an extracted display date. ok is false when no
// known layout matches.
func ParseArticleDate(date string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortNewestFirst orders articles by parsed publication date descending.
// Articles whose date cannot be parsed sort last, keeping their original
// relative order.
func SortNewestFirst(articles []*model.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		ti, oki := ParseArticleDate(articles[i].Date)
		tj, okj := ParseArticleDate(articles[j].Date)
		if oki != okj {
			return oki
		}
		return ti.After(tj)
	})
}

// orderForPosting puts patch notes ahead of announcements, newest first
// within each group.
func orderForPosting(articles []*model.Article) []*model.Article {
	var patches, rest []*model.Article
	for _, a := range articles {
		if a.IsPatch {
			patches = append(patches, a)
		} else {
			rest = append(rest, a)
		}
	}
	SortNewestFirst(patches)
	SortNewestFirst(rest)
	return append(patches, rest...)
}

// dedupe drops repeated URL hashes within one batch, first occurrence
// wins. The seen set is scoped to this pass only.
func dedupe(articles []*model.Article) []*model.Article {
	seen := make(map[string]bool, len(articles))
	var unique []*model.Article
	for _, a := range articles {
		if seen[a.URLHash] {
			continue
		}
		seen[a.URLHash] = true
		unique = append(unique, a)
	}
	return unique
}

// Reconcile runs one pass over a batch of fetched articles and returns
// how many were posted. Per-item failures are logged and skipped; they
// never abort the rest of the batch.
func (r *Reconciler) Reconcile(articles []*model.Article) int {
	posted := 0
	for _, article := range orderForPosting(dedupe(articles)) {
		if posted >= maxPostsPerRun {
			break
		}
		if r.reconcileOne(article) {
			posted++
			r.sleep(r.postDelay)
		}
	}
	return posted
}

// reconcileOne drives a single url_hash through the posted-state
// machine. It reports whether a message was sent.
func (r *Reconciler) reconcileOne(article *model.Article) bool {
	existing, err := r.ledger.FindNews(article.PostID, article.URLHash)
	if err != nil {
		log.Printf("Error looking up news record for %s: %v", article.PostID, err)
		return false
	}

	if existing != nil {
		if existing.MessageID != "" {
			alive, err := r.poster.MessageExists(existing.MessageID)
			if err != nil {
				log.Printf("Error checking message %s: %v", existing.MessageID, err)
				return false
			}
			if alive {
				return false
			}
		}
		// The tracked message is gone; drop the record so the article
		// becomes eligible again.
		log.Printf("News message was deleted, will repost: %s", article.Title)
		if err := r.ledger.DeleteNews(existing.PostID); err != nil {
			log.Printf("Error deleting stale news record %s: %v", existing.PostID, err)
			return false
		}
	}

	messageID, err := r.poster.Send(article)
	if err != nil {
		log.Printf("Error posting news %q: %v", article.Title, err)
		return false
	}

	rec := &model.PostedNews{
		PostID:      article.PostID,
		Title:       article.Title,
		URL:         article.URL,
		Date:        article.Date,
		Category:    article.Category,
		ContentType: article.ContentType,
		IsPatch:     article.IsPatch,
		MessageID:   messageID,
		URLHash:     article.URLHash,
		PostedAt:    r.now(),
	}
	if err := r.ledger.InsertNews(rec); err != nil {
		log.Printf("Error saving news record for %s: %v", article.PostID, err)
	}
	log.Printf("Posted new AOE4 %s news: %s", article.ContentType, article.Title)
	return true
}

// SweepDeleted resolves every tracked message and removes records whose
// message no longer exists, returning how many were reclaimed.
func (r *Reconciler) SweepDeleted() int {
	records, err := r.ledger.ListPostedNews()
	if err != nil {
		log.Printf("Error listing news records for cleanup: %v", err)
		return 0
	}

	deleted := 0
	for _, rec := range records {
		if rec.MessageID == "" {
			continue
		}
		alive, err := r.poster.MessageExists(rec.MessageID)
		if err != nil {
			log.Printf("Error checking message %s: %v", rec.MessageID, err)
			continue
		}
		if alive {
			continue
		}
		log.Printf("News post %s message was deleted, removing from database", rec.PostID)
		if err := r.ledger.DeleteNews(rec.PostID); err != nil {
			log.Printf("Error deleting news record %s: %v", rec.PostID, err)
			continue
		}
		deleted++
	}
	return deleted
}

// HandleMessageDelete reacts to a delete notification for a channel
// message. A message we were not tracking is a no-op.
func (r *Reconciler) HandleMessageDelete(messageID string) {
	rec, err := r.ledger.NewsByMessageID(messageID)
	if err != nil {
		log.Printf("Error looking up deleted message %s: %v", messageID, err)
		return
	}
	if rec == nil {
		return
	}
	log.Printf("News post %s message was deleted, removing from database", rec.PostID)
	if err := r.ledger.DeleteNews(rec.PostID); err != nil {
		log.Printf("Error deleting news record %s: %v", rec.PostID, err)
	}
}
