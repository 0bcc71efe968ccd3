package storage

import (
	"sync"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []ScoreEntry{
		{GameID: "blockbreaker", Player: "ann", Score: 100, Ticks: 600, Blocks: 10},
		{GameID: "blockbreaker", Player: "bob", Score: 50},
		{GameID: "blockbreaker", Player: "cat", Score: 200, Ticks: 1200, Blocks: 20},
		{GameID: "blockbreaker_resolved", Score: 500},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("blockbreaker", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Player != "cat" || scores[0].Ticks != 1200 || scores[0].Blocks != 20 {
		t.Errorf("top entry = %+v", scores[0])
	}
	if scores[0].CreatedAt.IsZero() || time.Since(scores[0].CreatedAt) > time.Minute {
		t.Errorf("created_at = %v", scores[0].CreatedAt)
	}

	other, err := store.TopScores("blockbreaker_resolved", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 || other[0].Player != "local" {
		t.Errorf("resolved scores = %+v", other)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 15 {
		if _, err := store.SaveScore(ScoreEntry{GameID: "blockbreaker", Score: i * 10}); err != nil {
			t.Fatal(err)
		}
	}

	top, err := store.TopScores("blockbreaker", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 5 || top[0].Score != 140 || top[4].Score != 100 {
		t.Errorf("top 5 = %+v", top)
	}

	def, err := store.TopScores("blockbreaker", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(def) != 10 {
		t.Errorf("default limit returned %d rows, expected 10", len(def))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("blockbreaker")
	if err != nil || high != 0 {
		t.Errorf("empty HighScore() = %d, %v", high, err)
	}

	store.SaveScore(ScoreEntry{GameID: "blockbreaker", Score: 30})
	store.SaveScore(ScoreEntry{GameID: "blockbreaker", Score: 70})

	high, err = store.HighScore("blockbreaker")
	if err != nil || high != 70 {
		t.Errorf("HighScore() = %d, %v, expected 70", high, err)
	}
	if n, _ := store.Count("blockbreaker"); n != 2 {
		t.Errorf("Count() = %d, expected 2", n)
	}
}

func TestStoresAreIsolated(t *testing.T) {
	a := openTestStore(t)
	b := openTestStore(t)

	a.SaveScore(ScoreEntry{GameID: "blockbreaker", Score: 10})
	if n, _ := b.Count("blockbreaker"); n != 0 {
		t.Errorf("second store sees %d scores from the first", n)
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.SaveScore(ScoreEntry{GameID: "blockbreaker", Score: i}); err != nil {
				t.Errorf("SaveScore() failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if n, _ := store.Count("blockbreaker"); n != 20 {
		t.Errorf("Count() = %d, expected 20", n)
	}
}
