package stats

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Export snapshots the counters, the bounded history and the derived summary.
func (t *Tracker) Export() Snapshot {
	return Snapshot{
		SessionData: t.Data(),
		HandHistory: t.HandHistory(),
		Summary:     t.Summary(),
	}
}

// Import restores a snapshot. Inconsistent counts are logged and kept as
// supplied; only a history longer than HistoryLimit is trimmed to its
// newest records. The summary is recomputed, not restored.
func (t *Tracker) Import(s Snapshot) {
	t.data = s.SessionData
	if t.data.EndTime != nil {
		end := *t.data.EndTime
		t.data.EndTime = &end
	}

	history := s.HandHistory
	if len(history) > HistoryLimit {
		t.log.Warn("imported history over limit, keeping newest records",
			zap.String("session_id", t.data.SessionID),
			zap.Int("records", len(history)),
		)
		history = history[len(history)-HistoryLimit:]
	}
	t.history = copyRecords(make([]Record, 0, HistoryLimit), history)

	expected := t.data.HandsPlayed
	if expected > HistoryLimit {
		expected = HistoryLimit
	}
	if len(t.history) != expected {
		t.log.Warn("imported hand count mismatch",
			zap.String("session_id", t.data.SessionID),
			zap.Int("hands_played", t.data.HandsPlayed),
			zap.Int("history_records", len(t.history)),
		)
	}

	switch {
	case t.data.SessionID == "":
		t.state = Uninitialized
	case t.data.IsActive && t.data.EndTime == nil:
		t.state = Active
	default:
		t.data.IsActive = false
		t.state = Ended
	}
}

func (t *Tracker) ExportJSON() ([]byte, error) {
	return json.Marshal(t.Export())
}

// ImportJSON decodes and imports a snapshot. Only malformed JSON is an error.
func (t *Tracker) ImportJSON(data []byte) error {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to decode session snapshot: %w", err)
	}
	t.Import(s)
	return nil
}
