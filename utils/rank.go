package utils

import (
	"strings"

	"aoe4bot/model"
)

// FormatRankDisplay formats a rank_level string for display.
func FormatRankDisplay(rankLevel string) string {
	if display, ok := model.RankDisplay[strings.ToLower(rankLevel)]; ok {
		return display
	}
	if rankLevel == "" {
		return "Unranked"
	}
	return strings.ToUpper(rankLevel[:1]) + strings.ToLower(rankLevel[1:])
}

// BaseTier strips the division suffix from a rank level, e.g. "gold_2"
// becomes "gold". Role assignment works at this granularity only.
func BaseTier(rankLevel string) string {
	return strings.ToLower(strings.SplitN(rankLevel, "_", 2)[0])
}
