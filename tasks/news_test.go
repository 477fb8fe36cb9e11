package tasks

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"aoe4bot/model"
	"aoe4bot/news"
	"aoe4bot/utils"
)

type memoryLedger struct {
	records map[string]*model.PostedNews
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{records: make(map[string]*model.PostedNews)}
}

func (l *memoryLedger) FindNews(postID, urlHash string) (*model.PostedNews, error) {
	for _, rec := range l.records {
		if rec.PostID == postID || rec.URLHash == urlHash {
			return rec, nil
		}
	}
	return nil, nil
}

func (l *memoryLedger) InsertNews(rec *model.PostedNews) error {
	l.records[rec.PostID] = rec
	return nil
}

func (l *memoryLedger) DeleteNews(postID string) error {
	delete(l.records, postID)
	return nil
}

func (l *memoryLedger) NewsByMessageID(messageID string) (*model.PostedNews, error) {
	for _, rec := range l.records {
		if rec.MessageID == messageID {
			return rec, nil
		}
	}
	return nil, nil
}

func (l *memoryLedger) ListPostedNews() ([]model.PostedNews, error) {
	var out []model.PostedNews
	for _, rec := range l.records {
		out = append(out, *rec)
	}
	return out, nil
}

type capturePoster struct {
	sent []string
}

func (p *capturePoster) Send(article *model.Article) (string, error) {
	p.sent = append(p.sent, article.Title)
	return fmt.Sprintf("msg-%d", len(p.sent)), nil
}

func (p *capturePoster) MessageExists(messageID string) (bool, error) {
	return true, nil
}

func listingPage(articleURL string) string {
	return fmt.Sprintf(`<html><body><a href="%s">Age of Empires IV news</a></body></html>`, articleURL)
}

func articlePage(title, date string) string {
	return fmt.Sprintf(`<html><head><title>%s | Age of Empires</title></head>
<body><article><h1>%s</h1><time>%s</time>
<p>The latest update brings balance changes across every civilization.</p>
</article></body></html>`, title, title, date)
}

// A restart with the newest patch note already posted must still surface
// the newest announcement instead of stopping at the patch pass.
func TestStartupNewsCheckFallsThroughWhenPatchAlreadyPosted(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	patchURL := server.URL + "/news/aoeiv-patch-12-1/"
	announcementURL := server.URL + "/news/aoeiv-season-ten/"
	mux.HandleFunc("/patch-notes", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingPage(patchURL))
	})
	mux.HandleFunc("/announcements", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingPage(announcementURL))
	})
	mux.HandleFunc("/news/aoeiv-patch-12-1/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage("Patch 12.1", "March 10, 2025"))
	})
	mux.HandleFunc("/news/aoeiv-season-ten/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage("Season Ten Arrives", "April 2, 2025"))
	})

	ledger := newMemoryLedger()
	ledger.records["aoeiv-patch-12-1"] = &model.PostedNews{
		PostID:      "aoeiv-patch-12-1",
		Title:       "Patch 12.1",
		URL:         patchURL,
		URLHash:     news.Fingerprint(patchURL),
		ContentType: model.ContentTypePatch,
		IsPatch:     true,
		MessageID:   "msg-live",
	}
	poster := &capturePoster{}

	d := Deps{
		Fetcher:    news.NewFetcher(utils.GlobalHTTPClient, server.URL+"/patch-notes", server.URL+"/announcements"),
		Reconciler: news.NewReconciler(ledger, poster),
	}
	StartupNewsCheck(context.Background(), d)

	if len(poster.sent) != 1 || poster.sent[0] != "Season Ten Arrives" {
		t.Fatalf("expected only the announcement to be posted, got %v", poster.sent)
	}
	if _, ok := ledger.records["aoeiv-season-ten"]; !ok {
		t.Fatal("expected the announcement to be recorded")
	}
}
