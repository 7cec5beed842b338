package playback

import (
	"sync"
	"testing"
	"time"

	"github.com/user/patterncard/pkg/pattern"
)

func threeCards() *pattern.Collection {
	c := &pattern.Collection{TimingMs: pattern.DefaultTimingMs}
	c.Add("One")
	c.Add("Two")
	c.Add("Three")
	c.Select(0)
	return c
}

func TestAdvanceWrapsAround(t *testing.T) {
	c := threeCards()
	k := New(c)

	var seen []int
	k.OnChange(func(index int) {
		seen = append(seen, index)
	})

	k.Advance()
	k.Advance()
	k.Advance()
	k.Advance()

	want := []int{1, 2, 0, 1}
	if len(seen) != len(want) {
		t.Fatalf("expected %d callbacks, got %v", len(want), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("callback %d: expected index %d, got %d", i, want[i], seen[i])
		}
	}
}

func TestAdvanceAfterCollectionShrank(t *testing.T) {
	c := threeCards()
	k := New(c)

	c.Select(2)
	c.Items = c.Items[:2] // shrink behind the clock's back
	c.ActiveIndex = 2

	k.Advance()
	if c.ActiveIndex != 0 {
		t.Errorf("expected clamp then wrap to 0, got %d", c.ActiveIndex)
	}
}

func TestAdvanceOnEmptyCollection(t *testing.T) {
	k := New(&pattern.Collection{})
	k.Advance() // must not panic or call back
}

func TestPlayPauseStates(t *testing.T) {
	k := New(threeCards())

	if k.Running() {
		t.Error("expected new clock to be stopped")
	}

	k.Play()
	if !k.Running() {
		t.Error("expected running after Play")
	}
	k.Play() // no-op
	if !k.Running() {
		t.Error("expected still running after second Play")
	}

	k.Pause()
	if k.Running() {
		t.Error("expected stopped after Pause")
	}
	k.Pause() // no-op
}

func TestToggle(t *testing.T) {
	k := New(threeCards())

	k.Toggle()
	if !k.Running() {
		t.Error("expected running after first Toggle")
	}
	k.Toggle()
	if k.Running() {
		t.Error("expected stopped after second Toggle")
	}
}

func TestSelectIndexStopsPlayback(t *testing.T) {
	c := threeCards()
	k := New(c)

	var mu sync.Mutex
	var seen []int
	k.OnChange(func(index int) {
		mu.Lock()
		seen = append(seen, index)
		mu.Unlock()
	})

	k.Play()
	k.SelectIndex(2)

	if k.Running() {
		t.Error("expected SelectIndex to stop playback")
	}
	if c.ActiveIndex != 2 {
		t.Errorf("expected active index 2, got %d", c.ActiveIndex)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) == 0 || seen[len(seen)-1] != 2 {
		t.Errorf("expected selection callback with index 2, got %v", seen)
	}
}

func TestTickerAdvances(t *testing.T) {
	c := threeCards()
	c.TimingMs = 20
	k := New(c)

	changes := make(chan int, 16)
	k.OnChange(func(index int) {
		changes <- index
	})

	k.Play()
	defer k.Pause()

	for i, want := range []int{1, 2, 0} {
		select {
		case got := <-changes:
			if got != want {
				t.Fatalf("tick %d: expected index %d, got %d", i, want, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("tick %d: timed out waiting for advance", i)
		}
	}
}

func TestSetTimingMsWhileRunning(t *testing.T) {
	c := threeCards()
	c.TimingMs = 10 * 60 * 1000 // effectively never ticks on its own
	k := New(c)

	changes := make(chan int, 16)
	k.OnChange(func(index int) {
		changes <- index
	})

	k.Play()
	defer k.Pause()

	// Reinstalling the timer at a short interval must take effect
	// immediately, without waiting out the old interval.
	k.SetTimingMs(20)

	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for advance after SetTimingMs")
	}

	if c.TimingMs != 20 {
		t.Errorf("expected collection timing updated to 20, got %d", c.TimingMs)
	}
}

func TestSetTimingMsRejectsNonPositive(t *testing.T) {
	c := threeCards()
	k := New(c)

	k.SetTimingMs(0)
	if c.TimingMs != pattern.DefaultTimingMs {
		t.Errorf("expected default timing, got %d", c.TimingMs)
	}
	k.SetTimingMs(-5)
	if c.TimingMs != pattern.DefaultTimingMs {
		t.Errorf("expected default timing, got %d", c.TimingMs)
	}
}
