package economy

import "testing"

func TestTimerFiresAtMostOncePerTick(t *testing.T) {
	tm := Timer{Interval: 1, Amount: 2}

	steps := []struct {
		dt   float64
		want bool
	}{
		{0.6, false},
		{0.6, true}, // 1.2 >= 1, leftover 0.2 is dropped
		{0.9, false},
		{5, true}, // five intervals elapsed, still one fire
		{0.5, false},
		{0.5, true},
	}
	for i, step := range steps {
		if got := tm.Advance(step.dt); got != step.want {
			t.Errorf("step %d: Advance(%g) = %v, expected %v", i, step.dt, got, step.want)
		}
	}
}

func TestTimerDisabled(t *testing.T) {
	var tm Timer
	if tm.Enabled() {
		t.Error("zero timer should be disabled")
	}
	if tm.Advance(100) {
		t.Error("disabled timer fired")
	}
	if tm.Progress() != 0 {
		t.Error("disabled timer should report no progress")
	}
}

func TestFillerWrapsAndCountsNewlines(t *testing.T) {
	f := NewFiller("a\r\nb\n")

	text, newlines := f.Take(3)
	if text != "a\nb" || newlines != 1 {
		t.Errorf("Take(3) = %q, %d", text, newlines)
	}
	text, newlines = f.Take(4)
	if text != "\na\nb" || newlines != 2 {
		t.Errorf("Take(4) = %q, %d", text, newlines)
	}
	if text, n := f.Take(0); text != "" || n != 0 {
		t.Errorf("Take(0) = %q, %d", text, n)
	}
}

func TestFillerEmptyTextFallsBack(t *testing.T) {
	f := NewFiller("   ")
	text, _ := f.Take(len(fallbackFiller))
	if text != fallbackFiller {
		t.Errorf("Take() = %q, expected fallback", text)
	}
}

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(7), NewRNG(7)
	for range 100 {
		if a.Next() != b.Next() {
			t.Fatal("same seed produced different sequences")
		}
	}
	if NewRNG(0).State() != 1 {
		t.Error("zero seed should be remapped")
	}

	r := NewRNG(3)
	for range 1000 {
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64() = %f out of range", f)
		}
		if n := r.Intn(6); n < 0 || n >= 6 {
			t.Fatalf("Intn(6) = %d out of range", n)
		}
		if v := r.Between(2, 3); v < 2 || v >= 3 {
			t.Fatalf("Between(2, 3) = %f out of range", v)
		}
	}
}

func TestStateMutators(t *testing.T) {
	s := State{EntitySizeMin: 1, EntitySizeMax: 2}
	for range 32 {
		s.SpawnEntity()
	}
	s.AddLines(10)
	s.SpendLines(4)
	s.AddTechDebt(-3)
	s.ScaleEntitySize(0.5)

	if s.Entities != 32 || s.Lines != 6 || s.TechDebt != -3 {
		t.Errorf("counters = %+v", s)
	}
	if s.EntitySizeMin != 0.5 || s.EntitySizeMax != 1 {
		t.Errorf("size = %g..%g", s.EntitySizeMin, s.EntitySizeMax)
	}

	if !s.AddEntityColor(3) || s.AddEntityColor(3) {
		t.Error("AddEntityColor should reject duplicates")
	}
	clone := s.Clone()
	clone.EntityColors[0] = 5
	if s.EntityColors[0] != 3 {
		t.Error("Clone shares the color slice")
	}
}
