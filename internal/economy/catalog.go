package economy

import (
	"fmt"

	"github.com/vovakirdan/codejam/internal/config"
	"github.com/vovakirdan/codejam/internal/core"
)

// Catalog is the table of available upgrades, indexed by kind.
// Declaration order is kept for listings and update hooks.
type Catalog struct {
	byKind [KindCount]*Upgrade
	order  []Kind
}

// NewCatalog builds a catalog from upgrade templates. Later duplicates of a
// kind are rejected. The templates are copied.
func NewCatalog(upgrades []Upgrade) (*Catalog, error) {
	c := &Catalog{order: make([]Kind, 0, len(upgrades))}
	for i := range upgrades {
		u := upgrades[i].clone()
		if !u.Kind.Valid() {
			return nil, fmt.Errorf("catalog: entry %d: invalid kind %d", i, u.Kind)
		}
		if c.byKind[u.Kind] != nil {
			return nil, fmt.Errorf("catalog: duplicate kind %q", u.Kind)
		}
		if u.Name == "" {
			u.Name = u.Kind.String()
		}
		c.byKind[u.Kind] = u
		c.order = append(c.order, u.Kind)
	}
	return c, nil
}

// CatalogFromConfig resolves the YAML upgrade list. Effect and kind names are
// checked here so the engine never sees an unknown one.
func CatalogFromConfig(cfg config.GameConfig) (*Catalog, error) {
	scale := cfg.Session.DefaultCostScale
	if scale <= 0 {
		scale = config.DefaultSessionConfig().DefaultCostScale
	}

	upgrades := make([]Upgrade, 0, len(cfg.Upgrades))
	for _, spec := range cfg.Upgrades {
		u, err := upgradeFromSpec(spec, scale)
		if err != nil {
			return nil, err
		}
		upgrades = append(upgrades, u)
	}
	return NewCatalog(upgrades)
}

func upgradeFromSpec(spec config.UpgradeSpec, defaultScale float64) (Upgrade, error) {
	kind, ok := ParseKind(spec.Kind)
	if !ok {
		return Upgrade{}, fmt.Errorf("catalog: unknown upgrade kind %q", spec.Kind)
	}
	if spec.BaseCost < 0 {
		return Upgrade{}, fmt.Errorf("catalog: %s: negative base_cost", spec.Kind)
	}
	if spec.Weight < 0 {
		return Upgrade{}, fmt.Errorf("catalog: %s: negative weight", spec.Kind)
	}

	u := Upgrade{
		Kind:              kind,
		Name:              spec.Name,
		Description:       spec.Description,
		BaseCost:          spec.BaseCost,
		CostScaleFactor:   spec.CostScaleFactor,
		TechDebt:          spec.TechDebt,
		Weight:            spec.Weight,
		Remaining:         Unlimited,
		FunScore:          spec.FunScore,
		PresentationScore: spec.PresentationScore,
		Entities:          rangeFromSpec(spec.Requires.Entities),
		Lines:             rangeFromSpec(spec.Requires.Lines),
		Upgrades:          rangeFromSpec(spec.Requires.Upgrades),
		TechDebtGate:      rangeFromSpec(spec.Requires.TechDebt),
	}
	if u.CostScaleFactor <= 0 {
		u.CostScaleFactor = defaultScale
	}
	if spec.Remaining != nil {
		if *spec.Remaining < 0 {
			return Upgrade{}, fmt.Errorf("catalog: %s: negative remaining", spec.Kind)
		}
		u.Remaining = *spec.Remaining
	}

	for _, inst := range spec.Requires.Installed {
		req, ok := ParseKind(inst.Kind)
		if !ok {
			return Upgrade{}, fmt.Errorf("catalog: %s: requires unknown kind %q", spec.Kind, inst.Kind)
		}
		count := inst.Count
		if count <= 0 {
			count = 1
		}
		u.Requires = append(u.Requires, Requirement{Kind: req, Count: count})
	}

	var err error
	if u.Install, err = effectsFromSpec(spec.Kind, "install", spec.Install); err != nil {
		return Upgrade{}, err
	}
	if u.Update, err = effectsFromSpec(spec.Kind, "update", spec.Update); err != nil {
		return Upgrade{}, err
	}
	if u.Run, err = effectsFromSpec(spec.Kind, "run", spec.Run); err != nil {
		return Upgrade{}, err
	}
	return u, nil
}

func rangeFromSpec(spec config.RangeSpec) Range {
	var r Range
	if spec.Min != nil {
		r.Min, r.HasMin = *spec.Min, true
	}
	if spec.Max != nil {
		r.Max, r.HasMax = *spec.Max, true
	}
	return r
}

func effectsFromSpec(kind, hook string, specs []config.EffectSpec) ([]Effect, error) {
	effects := make([]Effect, 0, len(specs))
	for _, spec := range specs {
		ek, ok := ParseEffectKind(spec.Effect)
		if !ok {
			return nil, fmt.Errorf("catalog: %s: %s: unknown effect %q", kind, hook, spec.Effect)
		}
		e := Effect{Kind: ek, Amount: spec.Amount, Interval: spec.Interval}
		if spec.Color != "" {
			c, ok := core.ParseColor(spec.Color)
			if !ok {
				return nil, fmt.Errorf("catalog: %s: %s: unknown color %q", kind, hook, spec.Color)
			}
			e.Color = c
		}
		if (ek == EffectPassiveCode || ek == EffectPassiveSpawn) && e.Interval <= 0 {
			return nil, fmt.Errorf("catalog: %s: %s: %s needs a positive interval", kind, hook, spec.Effect)
		}
		effects = append(effects, e)
	}
	return effects, nil
}

// Get returns the entry for kind. Asking for a kind the catalog does not
// hold is a programming error and panics.
func (c *Catalog) Get(kind Kind) *Upgrade {
	if !kind.Valid() || c.byKind[kind] == nil {
		panic(fmt.Sprintf("economy: upgrade %q is not in the catalog", kind))
	}
	return c.byKind[kind]
}

// Has reports whether kind is in the catalog.
func (c *Catalog) Has(kind Kind) bool {
	return kind.Valid() && c.byKind[kind] != nil
}

// All returns the kinds in declaration order.
func (c *Catalog) All() []Kind {
	return append([]Kind(nil), c.order...)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Clone deep-copies the catalog so a session can consume quotas privately.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{order: append([]Kind(nil), c.order...)}
	for _, k := range c.order {
		out.byKind[k] = c.byKind[k].clone()
	}
	return out
}

// Sequence builds the tutorial sequence. Every name must be in the catalog.
func (c *Catalog) Sequence(names []string) (Sequence, error) {
	kinds := make([]Kind, 0, len(names))
	for _, name := range names {
		k, ok := ParseKind(name)
		if !ok {
			return Sequence{}, fmt.Errorf("catalog: sequence: unknown kind %q", name)
		}
		if !c.Has(k) {
			return Sequence{}, fmt.Errorf("catalog: sequence: %q is not in the catalog", name)
		}
		kinds = append(kinds, k)
	}
	return NewSequence(kinds), nil
}
