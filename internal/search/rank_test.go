package search

import (
	"testing"

	"github.com/tealinux/teasite/pkg/models"
)

func ids(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Doc.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMatchDocuments(t *testing.T) {
	docs := []models.Document{
		{ID: "a", Title: "Dual Boot", Body: "Windows alongside"},
		{ID: "b", Title: "Summary", Body: "Review before you BOOT"},
		{ID: "c", Title: "Create User", Body: "username and password"},
		{ID: "d", Title: "", Body: ""},
	}

	matches := MatchDocuments("boot", docs)

	if got := ids(matches); !equalStrings(got, []string{"a", "b"}) {
		t.Fatalf("matched %v, want [a b]", got)
	}
	if !matches[0].TitleMatched {
		t.Error("a should be a title match")
	}
	if matches[1].TitleMatched {
		t.Error("b should be a body-only match")
	}
}

func TestMatchDocuments_SubstringNotWord(t *testing.T) {
	docs := []models.Document{{ID: "a", Title: "Bootloader"}}
	if got := MatchDocuments("oot", docs); len(got) != 1 {
		t.Errorf("substring inside a word should match, got %d", len(got))
	}
}

func TestRank_StablePartition(t *testing.T) {
	matches := []Match{
		{Doc: models.Document{ID: "b1"}},
		{Doc: models.Document{ID: "t1"}, TitleMatched: true},
		{Doc: models.Document{ID: "b2"}},
		{Doc: models.Document{ID: "t2"}, TitleMatched: true},
		{Doc: models.Document{ID: "b3"}},
	}

	got := ids(Rank(matches))

	want := []string{"t1", "t2", "b1", "b2", "b3"}
	if !equalStrings(got, want) {
		t.Errorf("Rank() = %v, want %v", got, want)
	}
}

func TestCap(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		n    int
		want int
	}{
		{10, 5},
		{5, 5},
		{3, 3},
		{0, 0},
		{-1, 0},
	}

	for _, tt := range tests {
		if got := len(Cap(items, tt.n)); got != tt.want {
			t.Errorf("len(Cap(items, %d)) = %d, want %d", tt.n, got, tt.want)
		}
	}

	if got := Cap([]int(nil), MaxResults); len(got) != 0 {
		t.Errorf("Cap(nil) = %v", got)
	}
}
