package tasks

import (
	"context"
	"log"

	"aoe4bot/model"
)

// perTypeTake is how many of the freshest articles per news type feed
// one reconciliation pass.
const perTypeTake = 2

func takeNewest(articles []*model.Article, n int) []*model.Article {
	if len(articles) > n {
		return articles[:n]
	}
	return articles
}

// RunNewsCheck is the scheduled news poll: fetch both listings, keep
// the freshest few of each, and hand them to the reconciler. Returns
// how many articles were posted.
func RunNewsCheck(ctx context.Context, d Deps) int {
	log.Println("Running scheduled news check...")

	var batch []*model.Article
	batch = append(batch, takeNewest(d.Fetcher.FetchNews(ctx, model.ContentTypePatch), perTypeTake)...)
	batch = append(batch, takeNewest(d.Fetcher.FetchNews(ctx, model.ContentTypeAnnouncement), perTypeTake)...)

	if len(batch) == 0 {
		log.Println("News check found no articles")
		return 0
	}

	posted := d.Reconciler.Reconcile(batch)
	log.Printf("News check complete: %d new article(s) posted", posted)
	return posted
}

// StartupNewsCheck runs once when the bot comes up. It considers only
// the single latest patch note; when that is missing or already posted
// it falls through to the latest announcement. A restart never floods
// the channel.
func StartupNewsCheck(ctx context.Context, d Deps) {
	log.Println("Running startup news check...")

	if postLatest(ctx, d, model.ContentTypePatch) {
		log.Println("Startup news check posted the latest patch note")
		return
	}
	if postLatest(ctx, d, model.ContentTypeAnnouncement) {
		log.Println("Startup news check posted the latest announcement")
		return
	}
	log.Println("Startup news check found nothing new")
}

// postLatest reconciles only the freshest article of one news type and
// reports whether it was actually posted.
func postLatest(ctx context.Context, d Deps, newsType string) bool {
	articles := d.Fetcher.FetchNews(ctx, newsType)
	if len(articles) == 0 {
		return false
	}
	return d.Reconciler.Reconcile(articles[:1]) > 0
}

// RunNewsCleanup walks the posted-news ledger and drops records whose
// Discord message has been deleted, so those articles can be reposted.
func RunNewsCleanup(ctx context.Context, d Deps) {
	removed := d.Reconciler.SweepDeleted()
	if removed > 0 {
		log.Printf("News cleanup removed %d stale record(s)", removed)
	}
}
