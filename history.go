package editor

import "time"

// pushHistory records s as a new undo point. A redo branch beyond the
// current index is discarded first; the oldest entry is evicted once the
// stack exceeds MaxHistory.
func pushHistory(s EditState, at time.Time) EditState {
	snap := s.Snapshot(at)

	keep := len(s.History)
	if s.HistoryIndex < keep-1 {
		keep = s.HistoryIndex + 1
	}
	if keep < 0 {
		keep = 0
	}

	history := make([]Snapshot, 0, keep+1)
	history = append(history, s.History[:keep]...)
	history = append(history, snap)
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}

	s.History = history
	s.HistoryIndex = len(history) - 1
	return s
}

// restoreHistory moves to the snapshot at index. Out-of-range indexes leave
// s unchanged.
func restoreHistory(s EditState, index int) EditState {
	if index < 0 || index >= len(s.History) {
		return s
	}
	s = restoreFields(s, s.History[index])
	s.HistoryIndex = index
	return s
}
