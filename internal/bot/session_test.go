package bot

import (
	"sync"
	"testing"
)

func TestManagerGetOrCreate(t *testing.T) {
	m := NewManager()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, isNew := m.GetOrCreate(1, func() *Session { return &Session{ChatID: 1} })
			if isNew {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Errorf("created %d sessions, want 1", created)
	}

	stale := &Session{ChatID: 1}
	if m.DeleteIf(1, stale) {
		t.Error("DeleteIf removed a session it does not hold")
	}
	if m.Get(1) == nil {
		t.Fatal("live session evicted by a stale one")
	}

	if !m.DeleteIf(1, m.Get(1)) || m.Get(1) != nil {
		t.Error("session should be gone after DeleteIf")
	}
}

func TestAccuracy(t *testing.T) {
	s := &Session{}
	if got := s.Accuracy(); got != 0 {
		t.Errorf("Accuracy() with no decisions = %v, want 0", got)
	}

	s.Decisions, s.Correct = 4, 3
	if got := s.Accuracy(); got != 75 {
		t.Errorf("Accuracy() = %v, want 75", got)
	}
}

func TestGameKeyboard(t *testing.T) {
	tests := []struct {
		name      string
		opts      GameKeyboardOptions
		firstRow  int
		secondRow int
	}{
		{"hit and stand only", GameKeyboardOptions{}, 2, 1},
		{"all actions", GameKeyboardOptions{CanDouble: true, CanSplit: true, CanSurrender: true}, 4, 2},
		{"double only", GameKeyboardOptions{CanDouble: true}, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := GameKeyboard(tt.opts)
			if len(kb.InlineKeyboard) != 2 {
				t.Fatalf("expected 2 rows, got %d", len(kb.InlineKeyboard))
			}
			if got := len(kb.InlineKeyboard[0]); got != tt.firstRow {
				t.Errorf("first row has %d buttons, want %d", got, tt.firstRow)
			}
			if got := len(kb.InlineKeyboard[1]); got != tt.secondRow {
				t.Errorf("second row has %d buttons, want %d", got, tt.secondRow)
			}
		})
	}
}
