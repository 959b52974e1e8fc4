package economy

import "sort"

// Sequence is the fixed tutorial order. Its cursor only moves forward.
type Sequence struct {
	kinds []Kind
	next  int
}

// NewSequence creates a sequence over kinds.
func NewSequence(kinds []Kind) Sequence {
	return Sequence{kinds: append([]Kind(nil), kinds...)}
}

// Exhausted reports whether every tutorial entry has been consumed.
func (s *Sequence) Exhausted() bool {
	return s.next >= len(s.kinds)
}

// Cursor returns the index of the next tutorial entry.
func (s *Sequence) Cursor() int {
	return s.next
}

// Len returns the number of tutorial entries.
func (s *Sequence) Len() int {
	return len(s.kinds)
}

// Sequencer picks which upgrades are offered next.
type Sequencer struct {
	catalog *Catalog
	seq     Sequence
	rng     *RNG
}

// NewSequencer creates a sequencer drawing from catalog.
func NewSequencer(catalog *Catalog, seq Sequence, rng *RNG) *Sequencer {
	return &Sequencer{catalog: catalog, seq: seq, rng: rng}
}

// Sequence returns the tutorial cursor state.
func (s *Sequencer) Sequence() Sequence {
	return s.seq
}

// NextOfferSet returns up to slots distinct kinds accepted by offerable.
//
// Tutorial entries come first, in order; entries that are not offerable are
// skipped but still consumed. The remaining slots are drawn without
// replacement, weighted by Weight, from offerable kinds with a positive
// weight, and that part is sorted by name. The result is short when there
// are not enough candidates.
func (s *Sequencer) NextOfferSet(slots int, offerable func(Kind) bool) []Kind {
	if slots <= 0 {
		return nil
	}

	offers := make([]Kind, 0, slots)
	var chosen [KindCount]bool

	for len(offers) < slots && !s.seq.Exhausted() {
		k := s.seq.kinds[s.seq.next]
		s.seq.next++
		if chosen[k] || !offerable(k) {
			continue
		}
		chosen[k] = true
		offers = append(offers, k)
	}

	if len(offers) == slots {
		return offers
	}

	type candidate struct {
		kind   Kind
		weight float64
	}
	var pool []candidate
	for _, k := range s.catalog.order {
		u := s.catalog.byKind[k]
		if chosen[k] || u.Weight <= 0 || !offerable(k) {
			continue
		}
		pool = append(pool, candidate{kind: k, weight: u.Weight})
	}

	drawn := make([]Kind, 0, slots-len(offers))
	for len(offers)+len(drawn) < slots && len(pool) > 0 {
		total := 0.0
		for _, c := range pool {
			total += c.weight
		}

		roll := s.rng.Float64() * total
		idx := len(pool) - 1
		cumulative := 0.0
		for i, c := range pool {
			cumulative += c.weight
			if roll < cumulative {
				idx = i
				break
			}
		}

		drawn = append(drawn, pool[idx].kind)
		pool = append(pool[:idx], pool[idx+1:]...)
	}

	sort.SliceStable(drawn, func(i, j int) bool {
		return s.catalog.byKind[drawn[i]].Name < s.catalog.byKind[drawn[j]].Name
	})
	return append(offers, drawn...)
}
