package economy

import (
	"fmt"
	"math"
	"strings"
)

// Unlimited is the Remaining value of an upgrade that never sells out.
const Unlimited = math.MaxInt

// Range is an inclusive numeric range. The zero value is unbounded.
type Range struct {
	Min, Max       float64
	HasMin, HasMax bool
}

// AtLeast returns the range [lo, +inf).
func AtLeast(lo float64) Range {
	return Range{Min: lo, HasMin: true}
}

// AtMost returns the range (-inf, hi].
func AtMost(hi float64) Range {
	return Range{Max: hi, HasMax: true}
}

// Between returns the range [lo, hi].
func Between(lo, hi float64) Range {
	return Range{Min: lo, Max: hi, HasMin: true, HasMax: true}
}

// Contains reports whether x lies inside the range. NaN is never contained
// by a bounded range.
func (r Range) Contains(x float64) bool {
	if r.HasMin && !(x >= r.Min) {
		return false
	}
	if r.HasMax && !(x <= r.Max) {
		return false
	}
	return true
}

// Unbounded reports whether the range accepts every value.
func (r Range) Unbounded() bool {
	return !r.HasMin && !r.HasMax
}

func (r Range) String() string {
	switch {
	case r.HasMin && r.HasMax:
		return fmt.Sprintf("%g..%g", r.Min, r.Max)
	case r.HasMin:
		return fmt.Sprintf(">=%g", r.Min)
	case r.HasMax:
		return fmt.Sprintf("<=%g", r.Max)
	default:
		return "any"
	}
}

// Requirement demands that Kind was installed at least Count times.
type Requirement struct {
	Kind  Kind
	Count int
}

// Upgrade is a catalog entry. Everything except Remaining is fixed after load.
type Upgrade struct {
	Kind        Kind
	Name        string
	Description string

	BaseCost        float64
	CostScaleFactor float64 // Cost grows by this factor per point of tech debt
	TechDebt        float64 // Added to tech debt on install
	Weight          float64 // Relative offer probability; 0 = tutorial only

	// Remaining is the install quota. A limited upgrade loses exactly one
	// per install and sells out at 0. Unlimited never decrements.
	Remaining int

	FunScore          float64
	PresentationScore float64

	// Gating. Every range and requirement must hold.
	Entities     Range
	Lines        Range
	Upgrades     Range
	TechDebtGate Range
	Requires     []Requirement

	Install []Effect // Once per purchase
	Update  []Effect // Once per tick while the kind has ever been installed
	Run     []Effect // Once per tick per installed copy
}

// Cost returns floor(BaseCost * CostScaleFactor^techDebt).
func (u *Upgrade) Cost(techDebt float64) float64 {
	return math.Floor(u.BaseCost * math.Pow(u.CostScaleFactor, techDebt))
}

// SoldOut reports whether the install quota is exhausted.
func (u *Upgrade) SoldOut() bool {
	return u.Remaining <= 0
}

// Repeatable reports whether the upgrade never sells out.
func (u *Upgrade) Repeatable() bool {
	return u.Remaining == Unlimited
}

// Unlocked evaluates the gating ranges against the state and the
// prerequisite counts against the outline.
func (u *Upgrade) Unlocked(s *State, o *Outline) bool {
	if !u.Entities.Contains(s.Entities) ||
		!u.Lines.Contains(s.Lines) ||
		!u.Upgrades.Contains(float64(s.UpgradesInstalled)) ||
		!u.TechDebtGate.Contains(s.TechDebt) {
		return false
	}
	for _, req := range u.Requires {
		if o.Count(req.Kind) < req.Count {
			return false
		}
	}
	return true
}

// GateSummary describes the gating conditions for listings.
func (u *Upgrade) GateSummary() string {
	var parts []string
	if !u.Entities.Unbounded() {
		parts = append(parts, "entities "+u.Entities.String())
	}
	if !u.Lines.Unbounded() {
		parts = append(parts, "lines "+u.Lines.String())
	}
	if !u.Upgrades.Unbounded() {
		parts = append(parts, "upgrades "+u.Upgrades.String())
	}
	if !u.TechDebtGate.Unbounded() {
		parts = append(parts, "tech debt "+u.TechDebtGate.String())
	}
	for _, req := range u.Requires {
		parts = append(parts, fmt.Sprintf("%s x%d", req.Kind, req.Count))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func (u *Upgrade) clone() *Upgrade {
	c := *u
	c.Requires = append([]Requirement(nil), u.Requires...)
	c.Install = append([]Effect(nil), u.Install...)
	c.Update = append([]Effect(nil), u.Update...)
	c.Run = append([]Effect(nil), u.Run...)
	return &c
}
