package ids

import (
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestNewSequentialOrdering(t *testing.T) {
	const total = 100
	minted := make([]ulid.ULID, total)
	for i := 0; i < total; i++ {
		minted[i] = New()
	}

	for i := 1; i < total; i++ {
		if minted[i-1].Compare(minted[i]) >= 0 {
			t.Fatalf("expected ULIDs to be strictly increasing, %s >= %s", minted[i-1], minted[i])
		}
	}
}

func TestCreateULIDIsParseable(t *testing.T) {
	id := CreateULID()
	if len(id) != 26 {
		t.Fatalf("expected ULID length 26, got %d", len(id))
	}
	if _, err := ulid.Parse(id); err != nil {
		t.Fatalf("expected valid ULID, got %v", err)
	}
}

func TestNewConcurrentUniqueness(t *testing.T) {
	const goroutines = 10
	const perGoroutine = 20

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[ulid.ULID]struct{})
	)

	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				id := New()
				mu.Lock()
				if _, ok := seen[id]; ok {
					t.Errorf("duplicate ULID generated: %s", id)
				} else {
					seen[id] = struct{}{}
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	if expected := goroutines * perGoroutine; len(seen) != expected {
		t.Fatalf("expected %d unique ULIDs, got %d", expected, len(seen))
	}
}
