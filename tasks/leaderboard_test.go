package tasks

import (
	"strings"
	"testing"

	"aoe4bot/aoe4"
)

func TestSortByRatingDescending(t *testing.T) {
	entries := []LeaderboardEntry{
		{Name: "low", Rating: 1100},
		{Name: "high", Rating: 1600},
		{Name: "mid", Rating: 1300},
	}

	SortByRating(entries)

	if entries[0].Name != "high" || entries[1].Name != "mid" || entries[2].Name != "low" {
		t.Errorf("Expected high/mid/low, got %s/%s/%s", entries[0].Name, entries[1].Name, entries[2].Name)
	}
}

func TestSortByRatingStableOnTies(t *testing.T) {
	entries := []LeaderboardEntry{
		{Name: "first", Rating: 1300},
		{Name: "second", Rating: 1300},
		{Name: "third", Rating: 1300},
	}

	SortByRating(entries)

	if entries[0].Name != "first" || entries[1].Name != "second" || entries[2].Name != "third" {
		t.Errorf("Expected tied entries to keep original order, got %s/%s/%s",
			entries[0].Name, entries[1].Name, entries[2].Name)
	}
}

func TestStreakSymbol(t *testing.T) {
	cases := []struct {
		streak int
		want   string
	}{
		{5, "🔥"},
		{3, "🔥"},
		{2, ""},
		{0, ""},
		{-2, ""},
		{-3, "❄️"},
	}
	for _, tc := range cases {
		if got := streakSymbol(tc.streak); got != tc.want {
			t.Errorf("streakSymbol(%d) = %q, expected %q", tc.streak, got, tc.want)
		}
	}
}

func TestBuildEntryCarriesSeasonInfo(t *testing.T) {
	mode := &aoe4.ModeStats{
		Rating:    1452,
		RankLevel: "diamond_2",
		WinRate:   55.3,
		Rank:      812,
		PreviousSeasons: []aoe4.SeasonResult{
			{Season: 9, RankLevel: "platinum_1", Rating: 1390},
		},
	}

	entry := buildEntry("Player", "<@1>", mode)

	if entry.Rating != 1452 {
		t.Errorf("Expected rating 1452, got %d", entry.Rating)
	}
	if entry.SeasonInfo != " (S9: Platinum I)" {
		t.Errorf("Expected season summary, got %q", entry.SeasonInfo)
	}
}

func TestRenderLeaderboardCapsAtTen(t *testing.T) {
	var entries []LeaderboardEntry
	for n := 0; n < 15; n++ {
		entries = append(entries, LeaderboardEntry{Name: "p", Rating: 1000 + n, Mention: "<@1>"})
	}

	embed := renderLeaderboard("title", 0, "desc", entries)

	if got := strings.Count(embed.Description, "└ Discord:"); got != 10 {
		t.Errorf("Expected 10 rendered rows, got %d", got)
	}
}

func TestTeamRankLevel(t *testing.T) {
	cases := []struct {
		name  string
		modes aoe4.Modes
		want  string
	}{
		{"ranked", aoe4.Modes{RMTeam: &aoe4.ModeStats{RankLevel: "Gold_2"}}, "gold_2"},
		{"empty rank level", aoe4.Modes{RMTeam: &aoe4.ModeStats{}}, "unranked"},
		{"off the ladder", aoe4.Modes{RMTeam: nil}, "unranked"},
	}
	for _, tc := range cases {
		if got := teamRankLevel(tc.modes); got != tc.want {
			t.Errorf("%s: teamRankLevel = %q, expected %q", tc.name, got, tc.want)
		}
	}
}

func TestRenderLeaderboardEmpty(t *testing.T) {
	embed := renderLeaderboard("title", 0, "desc", nil)

	if !strings.Contains(embed.Description, "No data available") {
		t.Errorf("Expected empty-state text, got %q", embed.Description)
	}
}
