package core

import "sync"

// Worklist is the ordered in-memory working set of resolved tracks
// awaiting download. Insertion order is drop order and is preserved all
// the way through batch processing. The mutex allows the UI side to keep
// adding and removing tracks while a resolution is in flight.
type Worklist struct {
	mu     sync.Mutex
	tracks []Track
}

// NewWorklist creates an empty working set.
func NewWorklist() *Worklist {
	return &Worklist{}
}

// Add appends a resolved track.
func (w *Worklist) Add(track Track) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tracks = append(w.tracks, track)
}

// Remove deletes the track at the given position, preserving order of the
// rest. Out-of-range indices are ignored.
func (w *Worklist) Remove(index int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if index < 0 || index >= len(w.tracks) {
		return
	}
	w.tracks = append(w.tracks[:index], w.tracks[index+1:]...)
}

// Tracks returns a snapshot of the working set in insertion order.
func (w *Worklist) Tracks() []Track {
	w.mu.Lock()
	defer w.mu.Unlock()
	snapshot := make([]Track, len(w.tracks))
	copy(snapshot, w.tracks)
	return snapshot
}

// Len reports the number of tracks currently held.
func (w *Worklist) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.tracks)
}

// Clear empties the working set. The batch driver calls this only after
// every track in a run has reached a terminal state.
func (w *Worklist) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tracks = nil
}
