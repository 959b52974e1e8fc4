package economy

import (
	"slices"
	"testing"
)

func mustCatalog(t *testing.T, upgrades ...Upgrade) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(upgrades)
	if err != nil {
		t.Fatalf("NewCatalog() failed: %v", err)
	}
	return catalog
}

func named(kind Kind, name string, weight float64) Upgrade {
	return Upgrade{Kind: kind, Name: name, Weight: weight, CostScaleFactor: 1, Remaining: Unlimited}
}

func TestSequencerTutorialFirst(t *testing.T) {
	catalog := mustCatalog(t,
		named(KindDarkMode, "Dark Mode", 0),
		named(KindTouchOfLife, "Touch", 1),
		named(KindCoffee, "Coffee", 1),
	)
	seq := NewSequence([]Kind{KindDarkMode, KindCoffee, KindTouchOfLife})
	s := NewSequencer(catalog, seq, NewRNG(1))

	locked := map[Kind]bool{KindCoffee: true}
	offerable := func(k Kind) bool { return !locked[k] }

	got := s.NextOfferSet(2, offerable)
	want := []Kind{KindDarkMode, KindTouchOfLife}
	if !slices.Equal(got, want) {
		t.Errorf("NextOfferSet() = %v, expected %v", got, want)
	}

	// Coffee was skipped while locked but the cursor moved past it.
	seqState := s.Sequence()
	if !seqState.Exhausted() {
		t.Errorf("cursor = %d, expected exhausted", seqState.Cursor())
	}
}

func TestSequencerStopsWhenSlotsFilled(t *testing.T) {
	catalog := mustCatalog(t,
		named(KindDarkMode, "A", 0),
		named(KindTouchOfLife, "B", 0),
		named(KindCoffee, "C", 0),
	)
	s := NewSequencer(catalog, NewSequence([]Kind{KindDarkMode, KindTouchOfLife, KindCoffee}), NewRNG(1))
	all := func(Kind) bool { return true }

	if got := s.NextOfferSet(1, all); !slices.Equal(got, []Kind{KindDarkMode}) {
		t.Errorf("first set = %v", got)
	}
	if c := s.Sequence(); c.Cursor() != 1 {
		t.Errorf("cursor = %d, expected 1", c.Cursor())
	}
	if got := s.NextOfferSet(1, all); !slices.Equal(got, []Kind{KindTouchOfLife}) {
		t.Errorf("second set = %v", got)
	}
}

func TestSequencerRandomPartSortedByName(t *testing.T) {
	catalog := mustCatalog(t,
		named(KindIntern, "Charlie", 1),
		named(KindCoffee, "Alpha", 5),
		named(KindLinter, "Bravo", 0.1),
	)
	all := func(Kind) bool { return true }

	for seed := int64(1); seed <= 20; seed++ {
		s := NewSequencer(catalog, NewSequence(nil), NewRNG(seed))
		got := s.NextOfferSet(3, all)
		want := []Kind{KindCoffee, KindLinter, KindIntern}
		if !slices.Equal(got, want) {
			t.Fatalf("seed %d: NextOfferSet() = %v, expected %v", seed, got, want)
		}
	}
}

func TestSequencerTutorialKeepsOrder(t *testing.T) {
	catalog := mustCatalog(t,
		named(KindIntern, "Zulu", 1),
		named(KindCoffee, "Alpha", 1),
		named(KindLinter, "Mike", 1),
	)
	s := NewSequencer(catalog, NewSequence([]Kind{KindIntern}), NewRNG(3))
	got := s.NextOfferSet(3, func(Kind) bool { return true })

	want := []Kind{KindIntern, KindCoffee, KindLinter}
	if !slices.Equal(got, want) {
		t.Errorf("NextOfferSet() = %v, expected %v", got, want)
	}
}

func TestSequencerNeverOffersLockedOrDuplicates(t *testing.T) {
	catalog, err := CatalogFromConfig(defaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	seq, err := catalog.Sequence(defaultConfig().Sequence)
	if err != nil {
		t.Fatal(err)
	}

	rng := NewRNG(99)
	s := NewSequencer(catalog, seq, rng)
	for round := range 200 {
		// Lock a changing subset of kinds.
		offerable := func(k Kind) bool { return (int(k)+round)%3 != 0 }
		set := s.NextOfferSet(4, offerable)

		seen := make(map[Kind]bool)
		for _, k := range set {
			if !offerable(k) {
				t.Fatalf("round %d: offered locked kind %s", round, k)
			}
			if seen[k] {
				t.Fatalf("round %d: offered %s twice in %v", round, k, set)
			}
			seen[k] = true
		}
	}
}

func TestSequencerZeroWeightOnlyFromTutorial(t *testing.T) {
	catalog := mustCatalog(t,
		named(KindDarkMode, "Dark Mode", 0),
		named(KindIntern, "Intern", 1),
	)
	s := NewSequencer(catalog, NewSequence(nil), NewRNG(7))
	for range 50 {
		got := s.NextOfferSet(2, func(Kind) bool { return true })
		if slices.Contains(got, KindDarkMode) {
			t.Fatal("zero-weight kind drawn at random")
		}
	}
}

func TestSequencerShortList(t *testing.T) {
	catalog := mustCatalog(t, named(KindIntern, "Intern", 1), named(KindCoffee, "Coffee", 1))
	s := NewSequencer(catalog, NewSequence(nil), NewRNG(7))

	got := s.NextOfferSet(5, func(k Kind) bool { return k == KindIntern })
	if !slices.Equal(got, []Kind{KindIntern}) {
		t.Errorf("NextOfferSet() = %v, expected only intern", got)
	}
	if got := s.NextOfferSet(0, func(Kind) bool { return true }); len(got) != 0 {
		t.Errorf("zero slots returned %v", got)
	}
}

func TestSequencerWeightsBias(t *testing.T) {
	catalog := mustCatalog(t, named(KindIntern, "Heavy", 9), named(KindCoffee, "Light", 1))
	s := NewSequencer(catalog, NewSequence(nil), NewRNG(11))

	heavy := 0
	const rounds = 2000
	for range rounds {
		if s.NextOfferSet(1, func(Kind) bool { return true })[0] == KindIntern {
			heavy++
		}
	}
	// Expected ~90%.
	if heavy < rounds*8/10 || heavy > rounds*97/100 {
		t.Errorf("heavy kind drawn %d/%d times, expected ~90%%", heavy, rounds)
	}
}

func TestSequencerDeterministic(t *testing.T) {
	catalog, err := CatalogFromConfig(defaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	all := func(Kind) bool { return true }

	run := func() [][]Kind {
		s := NewSequencer(catalog, NewSequence(nil), NewRNG(2024))
		var out [][]Kind
		for range 20 {
			out = append(out, s.NextOfferSet(3, all))
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if !slices.Equal(a[i], b[i]) {
			t.Fatalf("round %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}
