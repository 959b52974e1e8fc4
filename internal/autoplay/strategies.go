package autoplay

import (
	"github.com/vovakirdan/codejam/internal/economy"
	"github.com/vovakirdan/codejam/internal/registry"
)

func init() {
	registry.Register("greedy", func() registry.Strategy { return &Greedy{} })
	registry.Register("frugal", func() registry.Strategy { return &Frugal{Reserve: 2} })
	registry.Register("random", func() registry.Strategy { return &Random{} })
}

// submitFirst returns the submit offer if it can be bought.
func submitFirst(snap economy.Snapshot) (economy.Kind, bool) {
	for _, o := range snap.Offers {
		if o.Kind == economy.KindSubmit && o.Affordable {
			return o.Kind, true
		}
	}
	return 0, false
}

// cheapest returns the cheapest affordable offer accepted by keep.
func cheapest(snap economy.Snapshot, keep func(economy.Offer) bool) (economy.Kind, bool) {
	best := -1
	for i, o := range snap.Offers {
		if !o.Affordable || !keep(o) {
			continue
		}
		if best < 0 || o.Cost < snap.Offers[best].Cost {
			best = i
		}
	}
	if best < 0 {
		return 0, false
	}
	return snap.Offers[best].Kind, true
}

// Greedy buys the cheapest affordable upgrade as soon as it can.
type Greedy struct{}

func (*Greedy) ID() string    { return "greedy" }
func (*Greedy) Title() string { return "Greedy" }
func (*Greedy) Reset(int64)   {}

// Choose implements registry.Strategy.
func (*Greedy) Choose(snap economy.Snapshot) (economy.Kind, bool) {
	if k, ok := submitFirst(snap); ok {
		return k, true
	}
	return cheapest(snap, func(economy.Offer) bool { return true })
}

// Frugal only buys when it can keep Reserve times the price in the bank.
// It submits as soon as it can.
type Frugal struct {
	Reserve float64
}

func (*Frugal) ID() string    { return "frugal" }
func (*Frugal) Title() string { return "Frugal" }
func (*Frugal) Reset(int64)   {}

// Choose implements registry.Strategy.
func (f *Frugal) Choose(snap economy.Snapshot) (economy.Kind, bool) {
	if k, ok := submitFirst(snap); ok {
		return k, true
	}
	return cheapest(snap, func(o economy.Offer) bool {
		return snap.State.Lines >= o.Cost*f.Reserve
	})
}

// Random buys a random affordable offer about once every few seconds.
type Random struct {
	rng *economy.RNG
}

func (*Random) ID() string    { return "random" }
func (*Random) Title() string { return "Random" }

// Reset reseeds the strategy's own generator.
func (r *Random) Reset(seed int64) {
	r.rng = economy.NewRNG(seed ^ 0x5eed)
}

// Choose implements registry.Strategy.
func (r *Random) Choose(snap economy.Snapshot) (economy.Kind, bool) {
	if r.rng == nil {
		r.Reset(0)
	}
	if r.rng.Intn(90) != 0 {
		return 0, false
	}

	var affordable []economy.Kind
	for _, o := range snap.Offers {
		if o.Affordable {
			affordable = append(affordable, o.Kind)
		}
	}
	if len(affordable) == 0 {
		return 0, false
	}
	return affordable[r.rng.Intn(len(affordable))], true
}
