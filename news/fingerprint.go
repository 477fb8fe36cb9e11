package news

import (
	"crypto/md5"
	"encoding/hex"
)

// Fingerprint derives the deduplication identity of an article from its
// URL. The hash covers the full URL including any query string, so the
// same page reached through different query parameters counts as a
// different item.
func Fingerprint(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}
