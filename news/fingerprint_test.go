package news

import "testing"

func TestFingerprintDeterministic(t *testing.T) {
	url := "https://www.ageofempires.com/news/aoe4-patch-12-1"

	first := Fingerprint(url)
	second := Fingerprint(url)

	if first != second {
		t.Errorf("Expected identical hashes for identical URLs, got %s and %s", first, second)
	}
	if len(first) != 32 {
		t.Errorf("Expected 32 hex chars, got %d (%s)", len(first), first)
	}
}

func TestFingerprintIncludesQueryString(t *testing.T) {
	base := "https://www.ageofempires.com/news/aoe4-patch-12-1"
	withQuery := base + "?utm_source=feed"

	if Fingerprint(base) == Fingerprint(withQuery) {
		t.Error("Expected different hashes for URLs that differ only in query string")
	}
}

func TestFingerprintDistinctURLs(t *testing.T) {
	a := Fingerprint("https://www.ageofempires.com/news/patch-12-1")
	b := Fingerprint("https://www.ageofempires.com/news/patch-12-2")

	if a == b {
		t.Errorf("Expected distinct hashes for distinct URLs, both were %s", a)
	}
}
