package feed

import (
	"sync"
	"testing"
	"time"
)

func TestRecordStampsEntries(t *testing.T) {
	l := NewLog(nil)

	before := time.Now()
	e := l.Record(CategoryEvent, "A riot has started in the cafeteria!", 8, 3)

	if e.ID == "" {
		t.Errorf("Expected a generated ID")
	}
	if e.Time.Before(before) {
		t.Errorf("Expected the entry stamped at record time")
	}
	if e.Category != CategoryEvent || e.Message != "A riot has started in the cafeteria!" {
		t.Errorf("Unexpected entry %+v", e)
	}
	if e.Severity != 8 || e.GameDay != 3 {
		t.Errorf("Unexpected severity/day %d/%d", e.Severity, e.GameDay)
	}
	if l.Len() != 1 {
		t.Errorf("Expected one entry, got %d", l.Len())
	}
}

func TestRecentReturnsNewestOldestFirst(t *testing.T) {
	l := NewLog(nil)
	for i := 0; i < 5; i++ {
		l.Record(CategoryActivity, "entry", 0, i+1)
	}

	recent := l.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(recent))
	}
	if recent[0].GameDay != 3 || recent[2].GameDay != 5 {
		t.Errorf("Expected days 3..5 oldest first, got %d..%d", recent[0].GameDay, recent[2].GameDay)
	}

	if got := len(l.Recent(100)); got != 5 {
		t.Errorf("Expected the whole feed when n exceeds its length, got %d", got)
	}
	if got := len(l.Recent(0)); got != 5 {
		t.Errorf("Expected the whole feed for n=0, got %d", got)
	}
}

func TestAllCopiesEntries(t *testing.T) {
	l := NewLog(nil)
	l.Record(CategorySystem, "Day 2 begins.", 0, 2)

	all := l.All()
	all[0].Message = "tampered"

	if l.All()[0].Message != "Day 2 begins." {
		t.Errorf("Mutating the returned slice leaked into the feed")
	}
}

// capturePersister records appends so the write-through can be observed.
type capturePersister struct {
	mu      sync.Mutex
	entries []Entry
}

func (c *capturePersister) Append(e Entry) error {
	c.mu.Lock()
	c.entries = append(c.entries, e)
	c.mu.Unlock()
	return nil
}

func (c *capturePersister) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func TestRecordWritesThroughToPersister(t *testing.T) {
	p := &capturePersister{}
	l := NewLog(p)

	l.Record(CategorySecurity, "Door locked: The prison cafeteria.", 0, 1)

	// The write-through is asynchronous.
	deadline := time.Now().Add(time.Second)
	for p.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if p.count() != 1 {
		t.Fatalf("Expected the entry persisted, got %d", p.count())
	}
}

func TestConcurrentRecords(t *testing.T) {
	l := NewLog(nil)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				l.Record(CategoryActivity, "busy", 0, 1)
				l.Recent(10)
			}
		}()
	}
	wg.Wait()

	if l.Len() != 800 {
		t.Errorf("Expected 800 entries, got %d", l.Len())
	}
}
