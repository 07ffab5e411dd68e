package sim

import "testing"

func TestNotifierShowsEachMessage(t *testing.T) {
	n := NewNotifier()
	n.Push("Multiball")
	n.Push("")

	n.Tick()
	if n.Current() != "Multiball" {
		t.Fatalf("Current() = %q, expected %q", n.Current(), "Multiball")
	}
	for i := 0; i < 49; i++ {
		n.Tick()
	}
	if n.Current() != "Multiball" {
		t.Errorf("Current() = %q, expected message to last 50 frames", n.Current())
	}
	n.Tick()
	if n.Current() != "" {
		t.Errorf("Current() = %q, expected empty after 50 frames", n.Current())
	}
}

func TestNotifierBacklogDrainsFaster(t *testing.T) {
	n := NewNotifier()
	for _, m := range []string{"a", "b", "c", "d", "e"} {
		n.Push(m)
	}

	n.Tick() // "a" with four waiting: max(15, 50-64) = 15
	frames := 1
	for n.Current() == "a" {
		n.Tick()
		frames++
	}
	if frames != 16 {
		t.Errorf("first message shown for %d frames, expected 15", frames-1)
	}
	if n.Current() != "b" {
		t.Errorf("Current() = %q, expected %q", n.Current(), "b")
	}

	n.Reset()
	if n.Current() != "" || n.Pending() != 0 {
		t.Errorf("Reset() left %q with %d pending", n.Current(), n.Pending())
	}
}
