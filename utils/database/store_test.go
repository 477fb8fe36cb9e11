package database

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"aoe4bot/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mainAccount(discordID, ingameID string) model.PlayerAccount {
	return model.PlayerAccount{
		DiscordID:  discordID,
		IngameID:   ingameID,
		IngameName: "Player-" + ingameID,
		RankLevel:  "gold_2",
		IsMain:     true,
	}
}

func TestUpsertAndListAccounts(t *testing.T) {
	store := openTestStore(t)

	if err := store.UpsertAccount(mainAccount("d1", "1001")); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	accounts, err := store.ListAccounts()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("Expected 1 account, got %d", len(accounts))
	}
	if accounts[0].IngameName != "Player-1001" {
		t.Errorf("Expected name Player-1001, got %s", accounts[0].IngameName)
	}

	// Re-registration replaces, never duplicates.
	acc := mainAccount("d1", "1001")
	acc.RankLevel = "platinum_1"
	if err := store.UpsertAccount(acc); err != nil {
		t.Fatalf("Failed to re-upsert: %v", err)
	}
	accounts, _ = store.ListAccounts()
	if len(accounts) != 1 {
		t.Errorf("Expected upsert to keep 1 row, got %d", len(accounts))
	}
	if accounts[0].RankLevel != "platinum_1" {
		t.Errorf("Expected replaced rank level, got %s", accounts[0].RankLevel)
	}
}

func TestHasMainAccount(t *testing.T) {
	store := openTestStore(t)

	has, err := store.HasMainAccount("d1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if has {
		t.Error("Expected no main account before registration")
	}

	smurf := mainAccount("d1", "1001")
	smurf.IsMain = false
	store.UpsertAccount(smurf)
	if has, _ = store.HasMainAccount("d1"); has {
		t.Error("Expected smurf-only user to have no main account")
	}

	store.UpsertAccount(mainAccount("d1", "1002"))
	if has, _ = store.HasMainAccount("d1"); !has {
		t.Error("Expected main account after registration")
	}
}

func TestAccountsByDiscordIDMainFirst(t *testing.T) {
	store := openTestStore(t)

	smurf := mainAccount("d1", "2001")
	smurf.IsMain = false
	store.UpsertAccount(smurf)
	store.UpsertAccount(mainAccount("d1", "2002"))
	store.UpsertAccount(mainAccount("d2", "3001"))

	accounts, err := store.AccountsByDiscordID("d1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("Expected 2 accounts for d1, got %d", len(accounts))
	}
	if !accounts[0].IsMain {
		t.Error("Expected main account first")
	}
}

func TestUpdateRankLevel(t *testing.T) {
	store := openTestStore(t)
	store.UpsertAccount(mainAccount("d1", "1001"))

	if err := store.UpdateRankLevel("d1", "1001", "diamond_3"); err != nil {
		t.Fatalf("Failed to update rank: %v", err)
	}

	accounts, _ := store.AccountsByDiscordID("d1")
	if accounts[0].RankLevel != "diamond_3" {
		t.Errorf("Expected diamond_3, got %s", accounts[0].RankLevel)
	}
}

func TestDeleteAccounts(t *testing.T) {
	store := openTestStore(t)
	store.UpsertAccount(mainAccount("d1", "1001"))
	store.UpsertAccount(mainAccount("d2", "2001"))

	if err := store.DeleteAccounts("d1"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	accounts, _ := store.ListAccounts()
	if len(accounts) != 1 || accounts[0].DiscordID != "d2" {
		t.Errorf("Expected only d2's account to survive, got %+v", accounts)
	}
}

func TestBotState(t *testing.T) {
	store := openTestStore(t)

	value, err := store.GetState(model.StateKeyLeaderboardMessageID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if value != "" {
		t.Errorf("Expected empty value for missing key, got %q", value)
	}

	if err := store.SetState(model.StateKeyLeaderboardMessageID, "msg-1"); err != nil {
		t.Fatalf("Failed to set state: %v", err)
	}
	if err := store.SetState(model.StateKeyLeaderboardMessageID, "msg-2"); err != nil {
		t.Fatalf("Failed to overwrite state: %v", err)
	}

	value, _ = store.GetState(model.StateKeyLeaderboardMessageID)
	if value != "msg-2" {
		t.Errorf("Expected last writer to win, got %q", value)
	}
}

func TestStoreRecoversConcurrentlyAfterConnectionLoss(t *testing.T) {
	store := openTestStore(t)
	if err := store.SetState(model.StateKeyLeaderboardMessageID, "msg-0"); err != nil {
		t.Fatalf("Failed to seed state: %v", err)
	}

	// Kill the connection out from under every worker at once; each
	// operation must reconnect-and-retry without stepping on the others.
	store.handle().Close()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for n := 0; n < 4; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := store.SetState(model.StateKeyLeaderboardMessageID, fmt.Sprintf("msg-%d", n)); err != nil {
				errs <- err
			}
			if _, err := store.GetState(model.StateKeyLeaderboardMessageID); err != nil {
				errs <- err
			}
		}(n)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Expected operation to recover after connection loss, got: %v", err)
	}
}

func TestReconnectIgnoresStaleHandle(t *testing.T) {
	store := openTestStore(t)

	stale := store.handle()
	stale.Close()
	if err := store.reconnect(stale); err != nil {
		t.Fatalf("Failed to reconnect: %v", err)
	}

	current := store.handle()
	if current == stale {
		t.Fatal("Expected a fresh handle after reconnect")
	}

	// A second failure holding the old handle must not tear down the
	// connection the first reconnect established.
	if err := store.reconnect(stale); err != nil {
		t.Fatalf("Unexpected error from stale reconnect: %v", err)
	}
	if store.handle() != current {
		t.Error("Expected stale reconnect to leave the current handle in place")
	}
}

func newsRecord(postID, url, messageID string) *model.PostedNews {
	return &model.PostedNews{
		PostID:      postID,
		Title:       "Title " + postID,
		URL:         url,
		Date:        "June 1, 2025",
		Category:    "Releases",
		ContentType: model.ContentTypePatch,
		IsPatch:     true,
		MessageID:   messageID,
		URLHash:     "hash-" + postID,
		PostedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFindNewsByPostIDOrURLHash(t *testing.T) {
	store := openTestStore(t)
	store.InsertNews(newsRecord("patch-1", "https://example.com/news/patch-1", "msg-1"))

	rec, err := store.FindNews("patch-1", "no-such-hash")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rec == nil {
		t.Fatal("Expected match by post id")
	}

	rec, err = store.FindNews("no-such-id", "hash-patch-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rec == nil {
		t.Fatal("Expected match by url hash")
	}

	rec, err = store.FindNews("no-such-id", "no-such-hash")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rec != nil {
		t.Errorf("Expected nil for unknown article, got %+v", rec)
	}
}

func TestDeleteNewsAndLookupByMessageID(t *testing.T) {
	store := openTestStore(t)
	store.InsertNews(newsRecord("patch-1", "https://example.com/news/patch-1", "msg-1"))

	rec, err := store.NewsByMessageID("msg-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rec == nil || rec.PostID != "patch-1" {
		t.Fatalf("Expected patch-1 by message id, got %+v", rec)
	}

	if rec, _ := store.NewsByMessageID("msg-unknown"); rec != nil {
		t.Errorf("Expected nil for unknown message id, got %+v", rec)
	}

	if err := store.DeleteNews("patch-1"); err != nil {
		t.Fatalf("Failed to delete news: %v", err)
	}
	if rec, _ := store.FindNews("patch-1", "hash-patch-1"); rec != nil {
		t.Error("Expected record gone after delete")
	}
}

func TestListPostedNewsSkipsUnboundRecords(t *testing.T) {
	store := openTestStore(t)
	store.InsertNews(newsRecord("patch-1", "https://example.com/news/patch-1", "msg-1"))
	store.InsertNews(newsRecord("patch-2", "https://example.com/news/patch-2", ""))

	records, err := store.ListPostedNews()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].PostID != "patch-1" {
		t.Errorf("Expected only the message-bound record, got %+v", records)
	}
}
