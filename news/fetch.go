package news

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"aoe4bot/model"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Fetcher retrieves news listing and article pages from the Age of
// Empires website. The site offers no stable markup guarantees, so a
// failed or malformed page degrades to a skipped article, never an
// aborted batch.
type Fetcher struct {
	client          *http.Client
	patchNotesURL   string
	announcementURL string
}

func NewFetcher(client *http.Client, patchNotesURL, announcementURL string) *Fetcher {
	return &Fetcher{
		client:          client,
		patchNotesURL:   patchNotesURL,
		announcementURL: announcementURL,
	}
}

func (f *Fetcher) fetchPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: HTTP %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", pageURL, err)
	}
	return string(body), nil
}

func (f *Fetcher) listingURL(newsType string) string {
	if newsType == model.ContentTypePatch {
		return f.patchNotesURL
	}
	return f.announcementURL
}

// FetchNews fetches the listing page for the given news type, discovers
// article links, and extracts each article. Articles are returned newest
// first. A page that cannot be fetched is logged and skipped.
func (f *Fetcher) FetchNews(ctx context.Context, newsType string) []*model.Article {
	listingHTML, err := f.fetchPage(ctx, f.listingURL(newsType))
	if err != nil {
		log.Printf("Error fetching news listing: %v", err)
		return nil
	}

	var articles []*model.Article
	for _, articleURL := range DiscoverArticleURLs(listingHTML) {
		pageHTML, err := f.fetchPage(ctx, articleURL)
		if err != nil {
			log.Printf("Error fetching article at %s: %v", articleURL, err)
			continue
		}
		articles = append(articles, ExtractArticle(pageHTML, articleURL, newsType))
	}

	SortNewestFirst(articles)
	return articles
}
