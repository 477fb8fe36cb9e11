package news

import (
	"regexp"
	"strings"
	"time"

	"aoe4bot/model"

	"github.com/PuerkitoBio/goquery"
)

const siteOrigin = "https://www.ageofempires.com"

var (
	franchisePrefixRe = regexp.MustCompile(`^(Age of Empires IV:?\s*)`)
	pageTitleSuffixRe = regexp.MustCompile(`\s*\|\s*Age of Empires.*$`)
	bylinePrefixRe    = regexp.MustCompile(`(?i)^by\s+`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`[A-Za-z]+ \d{1,2}, 20\d{2}`), // March 10, 2025
		regexp.MustCompile(`\d{1,2} [A-Za-z]+ 20\d{2}`),  // 10 March 2025
		regexp.MustCompile(`\d{2}/\d{2}/20\d{2}`),        // 03/10/2025
	}
)

// strategy is one independent way of extracting a field from a page.
// The first strategy in a chain that reports ok wins.
type strategy func(doc *goquery.Document) (string, bool)

func firstMatch(doc *goquery.Document, chain []strategy) (string, bool) {
	for _, s := range chain {
		if v, ok := s(doc); ok {
			return v, true
		}
	}
	return "", false
}

// selText returns the trimmed text of the first node matching sel.
func selText(sel string) strategy {
	return func(doc *goquery.Document) (string, bool) {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			return "", false
		}
		text := strings.TrimSpace(node.Text())
		return text, text != ""
	}
}

// metaContent returns the content attribute of the first matching meta tag.
func metaContent(sel string) strategy {
	return func(doc *goquery.Document) (string, bool) {
		content, ok := doc.Find(sel).First().Attr("content")
		content = strings.TrimSpace(content)
		return content, ok && content != ""
	}
}

func extractTitle(doc *goquery.Document) string {
	title, ok := firstMatch(doc, []strategy{
		selText("article h1"),
		selText("main h1"),
		selText(".article-title"),
		selText(".entry-title"),
		selText("h1"),
	})
	if ok {
		return franchisePrefixRe.ReplaceAllString(title, "")
	}
	if title = strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		title = pageTitleSuffixRe.ReplaceAllString(title, "")
		return franchisePrefixRe.ReplaceAllString(title, "")
	}
	return ""
}

func extractDate(doc *goquery.Document) string {
	if raw, ok := metaContent(`meta[property="article:published_time"]`)(doc); ok {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	if date, ok := firstMatch(doc, []strategy{
		selText(".article-date"),
		selText(".post-date"),
		selText("time"),
	}); ok {
		return date
	}
	pageText := doc.Text()
	for _, re := range datePatterns {
		if m := re.FindString(pageText); m != "" {
			return m
		}
	}
	return "Unknown date"
}

func extractAuthor(doc *goquery.Document) string {
	if author, ok := firstMatch(doc, []strategy{
		selText(".author"),
		selText(".byline"),
		selText(".post-author"),
	}); ok {
		return bylinePrefixRe.ReplaceAllString(author, "")
	}
	author, _ := metaContent(`meta[name="author"]`)(doc)
	return author
}

// skipContainers are parent containers whose paragraphs are navigation or
// boilerplate, not article text.
var skipContainers = []string{"nav", "menu", "sidebar", "footer", "comment"}

func paragraphExcluded(p *goquery.Selection) bool {
	parent := p.Parent()
	tag := goquery.NodeName(parent)
	class, _ := parent.Attr("class")
	for _, c := range skipContainers {
		if tag == c || strings.Contains(class, c) {
			return true
		}
	}
	return false
}

// extractContent returns the full article text and a preview built by
// greedily accumulating paragraphs until 800 characters.
func extractContent(doc *goquery.Document) (string, string) {
	var container *goquery.Selection
	for _, sel := range []string{"article .content", ".article-content", ".entry-content", ".post-content", "main"} {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			container = node
			break
		}
	}
	if container == nil {
		container = doc.Selection
	}

	var paragraphs []string
	container.Find("p").Each(func(_ int, p *goquery.Selection) {
		if paragraphExcluded(p) {
			return
		}
		text := strings.TrimSpace(p.Text())
		if text == "" {
			return
		}
		// Very short paragraphs with no link are usually buttons or menus.
		if len(text) < 10 && p.Find("a").Length() == 0 {
			return
		}
		paragraphs = append(paragraphs, text)
	})

	if len(paragraphs) == 0 {
		return "", ""
	}

	full := strings.Join(paragraphs, "\n\n")

	var previewParts []string
	previewLen := 0
	for _, p := range paragraphs {
		previewParts = append(previewParts, p)
		previewLen += len(p)
		if previewLen > 800 {
			break
		}
	}
	preview := strings.Join(previewParts, "\n\n")
	if len(preview) < len(full) {
		preview += "\n\n... [Read more on the website]"
	}
	return full, preview
}

func extractImage(doc *goquery.Document) string {
	for _, sel := range []string{".article-image img", ".featured-image img", "article img", ".post-thumbnail img", "main img"} {
		if src, ok := doc.Find(sel).First().Attr("src"); ok && src != "" {
			if !strings.HasPrefix(src, "http") {
				src = siteOrigin + src
			}
			return src
		}
	}
	return ""
}

func extractCategory(doc *goquery.Document) string {
	if category, ok := firstMatch(doc, []strategy{
		selText(".category"),
		selText(".article-category"),
		selText(".post-category"),
	}); ok {
		return category
	}
	category := "Uncategorized"
	doc.Find(".breadcrumbs a, .breadcrumb a").EachWithBreak(func(_ int, crumb *goquery.Selection) bool {
		if href, _ := crumb.Attr("href"); strings.Contains(href, "category") {
			if text := strings.TrimSpace(crumb.Text()); text != "" {
				category = text
				return false
			}
		}
		return true
	})
	return category
}

// postIDFromURL derives a stable article id from the last non-empty URL
// path segment, falling back to the URL fingerprint.
func postIDFromURL(articleURL string) string {
	trimmed := articleURL
	if i := strings.Index(trimmed, "?"); i >= 0 {
		trimmed = trimmed[:i]
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	if trimmed == "" {
		return Fingerprint(articleURL)
	}
	return trimmed
}

// ExtractArticle turns raw article page markup into an Article. Fields
// that cannot be determined degrade to placeholders; extraction itself
// never fails.
func ExtractArticle(pageHTML, articleURL, contentType string) *model.Article {
	article := &model.Article{
		PostID:      postIDFromURL(articleURL),
		Title:       "Age of Empires IV News",
		URL:         articleURL,
		URLHash:     Fingerprint(articleURL),
		Date:        "Unknown date",
		Category:    "Uncategorized",
		ContentType: contentType,
		IsPatch:     contentType == model.ContentTypePatch,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return article
	}

	if title := extractTitle(doc); title != "" {
		article.Title = title
	}
	article.Date = extractDate(doc)
	article.Author = extractAuthor(doc)
	article.Content, article.Preview = extractContent(doc)
	article.ImageURL = extractImage(doc)
	article.Category = extractCategory(doc)
	return article
}

var aoe4Keywords = []string{"age of empires iv", "age iv", "aoe4", "aoeiv"}

func aoe4Related(candidateURL string, elementText string) bool {
	lowered := strings.ToLower(candidateURL)
	if strings.Contains(lowered, "aoeiv") || strings.Contains(lowered, "age-of-empires-iv") || strings.Contains(lowered, "age-iv") {
		return true
	}
	text := strings.ToLower(elementText)
	for _, kw := range aoe4Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// maxListingArticles bounds how many article pages one listing fetch may
// fan out into.
const maxListingArticles = 5

// DiscoverArticleURLs finds candidate article URLs on a news listing
// page, filtered to AOE4-related items.
func DiscoverArticleURLs(listingHTML string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingHTML))
	if err != nil {
		return nil
	}

	cards := doc.Find(".article-card, .news-item, article")
	if cards.Length() == 0 {
		cards = doc.Find(".post, .news-post")
	}
	if cards.Length() == 0 {
		cards = doc.Find(`a[href*="/news/"]`)
	}

	var urls []string
	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		link := card
		if goquery.NodeName(card) != "a" {
			link = card.Find(`a[href*="/news/"]`).First()
		}
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return true
		}
		if !strings.HasPrefix(href, "http") {
			href = siteOrigin + href
		}
		if !aoe4Related(href, card.Text()) {
			return true
		}
		urls = append(urls, href)
		return len(urls) < maxListingArticles
	})
	return urls
}
