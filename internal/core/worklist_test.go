package core

import (
	"testing"
)

func namedTrack(t *testing.T, title string) Track {
	t.Helper()
	track, err := NewTrack(
		&CatalogTrack{Title: title, Artist: "Artist"},
		&VideoCandidate{VideoID: "vid-" + title, ThumbnailURL: "https://i.ytimg.com/thumb.jpg"},
	)
	if err != nil {
		t.Fatalf("NewTrack(%q) error = %v", title, err)
	}
	return track
}

func TestWorklistPreservesInsertionOrder(t *testing.T) {
	w := NewWorklist()
	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		w.Add(namedTrack(t, title))
	}

	tracks := w.Tracks()
	if len(tracks) != len(titles) {
		t.Fatalf("Tracks() len = %d, want %d", len(tracks), len(titles))
	}
	for i, title := range titles {
		if tracks[i].Title() != title {
			t.Errorf("Tracks()[%d].Title() = %q, want %q", i, tracks[i].Title(), title)
		}
	}
}

func TestWorklistRemove(t *testing.T) {
	w := NewWorklist()
	for _, title := range []string{"first", "second", "third"} {
		w.Add(namedTrack(t, title))
	}

	w.Remove(1)

	tracks := w.Tracks()
	if len(tracks) != 2 {
		t.Fatalf("Len after Remove = %d, want 2", len(tracks))
	}
	if tracks[0].Title() != "first" || tracks[1].Title() != "third" {
		t.Errorf("Tracks() = [%q, %q], want [first, third]", tracks[0].Title(), tracks[1].Title())
	}

	// Out-of-range indices are no-ops.
	w.Remove(-1)
	w.Remove(5)
	if w.Len() != 2 {
		t.Errorf("Len after out-of-range Remove = %d, want 2", w.Len())
	}
}

func TestWorklistTracksReturnsSnapshot(t *testing.T) {
	w := NewWorklist()
	w.Add(namedTrack(t, "first"))

	snapshot := w.Tracks()
	w.Add(namedTrack(t, "second"))

	if len(snapshot) != 1 {
		t.Errorf("snapshot len = %d, want 1 (must not see later adds)", len(snapshot))
	}
}

func TestWorklistClear(t *testing.T) {
	w := NewWorklist()
	w.Add(namedTrack(t, "first"))
	w.Add(namedTrack(t, "second"))

	w.Clear()

	if w.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", w.Len())
	}
	if len(w.Tracks()) != 0 {
		t.Errorf("Tracks() after Clear = %v, want empty", w.Tracks())
	}
}
