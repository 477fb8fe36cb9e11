package news

import (
	"strings"
	"testing"

	"aoe4bot/model"
)

const patchPageHTML = `<!DOCTYPE html>
<html>
<head>
<title>Patch 12.1.2310 | Age of Empires</title>
<meta property="article:published_time" content="2025-06-01T10:00:00Z">
<meta name="author" content="World's Edge">
</head>
<body>
<nav><p>Home / News / Games and more navigation text</p></nav>
<article>
<h1>Age of Empires IV: Patch 12.1.2310</h1>
<div class="article-content">
<p>This update brings a host of balance changes to every civilization in the game, with a focus on early aggression strategies that have dominated the ladder.</p>
<p>The Mongols see their Tower Rush weakened considerably, while the French Royal Knight receives a small buff to bring it back into viability.</p>
<p>OK</p>
</div>
<img src="/wp-content/uploads/patch-12-1.jpg">
</article>
<footer><p>Copyright text that should never appear in the article body.</p></footer>
</body>
</html>`

func TestExtractArticleFields(t *testing.T) {
	url := "https://www.ageofempires.com/news/patch-12-1-2310/"
	article := ExtractArticle(patchPageHTML, url, model.ContentTypePatch)

	if article.PostID != "patch-12-1-2310" {
		t.Errorf("Expected post id 'patch-12-1-2310', got %q", article.PostID)
	}
	if article.Title != "Patch 12.1.2310" {
		t.Errorf("Expected franchise prefix stripped from title, got %q", article.Title)
	}
	if article.Date != "June 1, 2025" {
		t.Errorf("Expected date from published_time meta, got %q", article.Date)
	}
	if article.Author != "World's Edge" {
		t.Errorf("Expected author from meta tag, got %q", article.Author)
	}
	if article.ImageURL != siteOrigin+"/wp-content/uploads/patch-12-1.jpg" {
		t.Errorf("Expected relative image resolved against site origin, got %q", article.ImageURL)
	}
	if !article.IsPatch {
		t.Error("Expected patch content type to set IsPatch")
	}
	if article.URLHash != Fingerprint(url) {
		t.Error("Expected URLHash to be the fingerprint of the full URL")
	}
}

func TestExtractArticleContentSkipsBoilerplate(t *testing.T) {
	article := ExtractArticle(patchPageHTML, "https://www.ageofempires.com/news/patch-12-1-2310/", model.ContentTypePatch)

	if !strings.Contains(article.Content, "balance changes") {
		t.Errorf("Expected body paragraph in content, got %q", article.Content)
	}
	if strings.Contains(article.Content, "navigation text") {
		t.Error("Expected nav paragraph excluded from content")
	}
	if strings.Contains(article.Content, "Copyright") {
		t.Error("Expected footer paragraph excluded from content")
	}
	if strings.Contains(article.Content, "OK") {
		t.Error("Expected short link-less paragraph excluded from content")
	}
}

func TestExtractArticlePreviewTruncation(t *testing.T) {
	long := strings.Repeat("word ", 100)
	html := `<html><body><article><div class="article-content">` +
		"<p>" + long + "</p><p>" + long + "</p><p>" + long + "</p>" +
		`</div></article></body></html>`

	article := ExtractArticle(html, "https://www.ageofempires.com/news/long-post/", model.ContentTypeAnnouncement)

	if !strings.HasSuffix(article.Preview, "... [Read more on the website]") {
		t.Errorf("Expected truncated preview marker, preview ends with %q", article.Preview[len(article.Preview)-40:])
	}
	if len(article.Preview) >= len(article.Content) {
		t.Error("Expected preview shorter than full content")
	}
}

func TestExtractArticleDegradesToPlaceholders(t *testing.T) {
	article := ExtractArticle("<html><body></body></html>", "https://www.ageofempires.com/news/empty/", model.ContentTypeAnnouncement)

	if article.Title != "Age of Empires IV News" {
		t.Errorf("Expected placeholder title, got %q", article.Title)
	}
	if article.Date != "Unknown date" {
		t.Errorf("Expected placeholder date, got %q", article.Date)
	}
	if article.Category != "Uncategorized" {
		t.Errorf("Expected placeholder category, got %q", article.Category)
	}
}

func TestExtractDateFallsBackToBodyText(t *testing.T) {
	html := `<html><body><article><p>Published on March 10, 2025 by the team with a longer sentence.</p></article></body></html>`
	article := ExtractArticle(html, "https://www.ageofempires.com/news/dated/", model.ContentTypeAnnouncement)

	if article.Date != "March 10, 2025" {
		t.Errorf("Expected date regex fallback, got %q", article.Date)
	}
}

func TestPostIDFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.ageofempires.com/news/patch-12-1/", "patch-12-1"},
		{"https://www.ageofempires.com/news/patch-12-1?utm=x", "patch-12-1"},
		{"https://www.ageofempires.com/news/patch-12-1", "patch-12-1"},
	}
	for _, tc := range cases {
		if got := postIDFromURL(tc.url); got != tc.want {
			t.Errorf("postIDFromURL(%q) = %q, expected %q", tc.url, got, tc.want)
		}
	}

	// A URL with no path segment falls back to the fingerprint.
	if got := postIDFromURL("https://www.ageofempires.com"); got != Fingerprint("https://www.ageofempires.com") {
		t.Errorf("Expected fingerprint fallback, got %q", got)
	}
}

func TestDiscoverArticleURLs(t *testing.T) {
	listing := `<html><body>
<div class="article-card"><a href="/news/aoeiv-patch-12-1">Age of Empires IV Patch 12.1</a></div>
<div class="article-card"><a href="/news/aoe2-update">Age of Empires II Update</a></div>
<div class="article-card"><a href="https://www.ageofempires.com/news/season-ten?game=aoeiv">Season Ten for AoE4</a></div>
</body></html>`

	urls := DiscoverArticleURLs(listing)

	if len(urls) != 2 {
		t.Fatalf("Expected 2 AOE4-related URLs, got %d: %v", len(urls), urls)
	}
	if urls[0] != siteOrigin+"/news/aoeiv-patch-12-1" {
		t.Errorf("Expected relative href resolved against site origin, got %q", urls[0])
	}
}

func TestDiscoverArticleURLsFallbackChain(t *testing.T) {
	// No card containers at all; the bare-anchor fallback should fire.
	listing := `<html><body>
<a href="/news/aoeiv-hotfix">AoE4 Hotfix</a>
<a href="/store/dlc">DLC</a>
</body></html>`

	urls := DiscoverArticleURLs(listing)

	if len(urls) != 1 {
		t.Fatalf("Expected 1 URL from anchor fallback, got %d: %v", len(urls), urls)
	}
}

func TestDiscoverArticleURLsCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for n := 0; n < 10; n++ {
		b.WriteString(`<div class="article-card"><a href="/news/aoeiv-post-` + string(rune('a'+n)) + `">AoE4 news</a></div>`)
	}
	b.WriteString("</body></html>")

	urls := DiscoverArticleURLs(b.String())

	if len(urls) != maxListingArticles {
		t.Errorf("Expected listing fan-out capped at %d, got %d", maxListingArticles, len(urls))
	}
}
