package web

import (
	"math"
	"time"

	"github.com/vovakirdan/codejam/internal/autoplay"
	"github.com/vovakirdan/codejam/internal/economy"
	"github.com/vovakirdan/codejam/internal/registry"
	"github.com/vovakirdan/codejam/internal/storage"
)

// Message is the envelope of every frame on the live socket.
type Message struct {
	Type    string `json:"type"` // "snapshot", "done" or "error"
	Payload any    `json:"payload"`
	Sender  string `json:"sender"`
}

// finite returns nil for values JSON cannot carry. Costs overflow to
// +Inf once tech debt is high enough.
func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

type scoresDTO map[string]float64

func newScoresDTO(s economy.Scores) scoresDTO {
	out := make(scoresDTO, len(s))
	for i, v := range s {
		out[economy.ScoreName(i)] = v
	}
	return out
}

type resultDTO struct {
	ID           string    `json:"id"`
	Player       string    `json:"player"`
	Mode         string    `json:"mode"`
	Seed         int64     `json:"seed"`
	Lines        float64   `json:"lines"`
	Entities     float64   `json:"entities"`
	TechDebt     float64   `json:"tech_debt"`
	Upgrades     int       `json:"upgrades"`
	Scores       scoresDTO `json:"scores"`
	Overall      float64   `json:"overall"`
	Stars        int       `json:"stars"`
	DurationSecs float64   `json:"duration_secs"`
	CreatedAt    time.Time `json:"created_at"`
}

func newResultDTO(r storage.Result) resultDTO {
	overall := r.Scores.Overall()
	return resultDTO{
		ID:           r.ID,
		Player:       r.Player,
		Mode:         r.Mode,
		Seed:         r.Seed,
		Lines:        r.Lines,
		Entities:     r.Entities,
		TechDebt:     r.TechDebt,
		Upgrades:     r.Upgrades,
		Scores:       newScoresDTO(r.Scores),
		Overall:      overall,
		Stars:        economy.Stars(overall),
		DurationSecs: r.Duration,
		CreatedAt:    r.CreatedAt,
	}
}

type statsDTO struct {
	Mode        string    `json:"mode"`
	Count       int       `json:"count"`
	BestOverall float64   `json:"best_overall"`
	AvgOverall  float64   `json:"avg_overall"`
	TotalLines  float64   `json:"total_lines"`
	LastPlayed  time.Time `json:"last_played"`
}

type upgradeDTO struct {
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	BaseCost    float64  `json:"base_cost"`
	Cost        *float64 `json:"cost"` // null when out of float range
	Scale       float64  `json:"cost_scale_factor"`
	TechDebt    float64  `json:"tech_debt"`
	Weight      float64  `json:"weight"`
	Remaining   *int     `json:"remaining"` // null when repeatable
	Gates       string   `json:"gates"`
}

func newUpgradeDTO(u *economy.Upgrade, techDebt float64) upgradeDTO {
	dto := upgradeDTO{
		Kind:        u.Kind.String(),
		Name:        u.Name,
		Description: u.Description,
		BaseCost:    u.BaseCost,
		Cost:        finite(u.Cost(techDebt)),
		Scale:       u.CostScaleFactor,
		TechDebt:    u.TechDebt,
		Weight:      u.Weight,
		Gates:       u.GateSummary(),
	}
	if !u.Repeatable() {
		n := u.Remaining
		dto.Remaining = &n
	}
	return dto
}

type strategyDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func newStrategyDTO(info registry.StrategyInfo) strategyDTO {
	return strategyDTO{ID: info.ID, Title: info.Title}
}

type offerDTO struct {
	Kind       string   `json:"kind"`
	Name       string   `json:"name"`
	Cost       *float64 `json:"cost"`
	Affordable bool     `json:"affordable"`
}

type snapshotDTO struct {
	Tick      uint64     `json:"tick"`
	Elapsed   float64    `json:"elapsed"`
	Lines     float64    `json:"lines"`
	Entities  float64    `json:"entities"`
	TechDebt  float64    `json:"tech_debt"`
	Upgrades  uint64     `json:"upgrades"`
	Offers    []offerDTO `json:"offers"`
	Bought    []string   `json:"bought,omitempty"` // Purchases of the observed tick
	Scores    scoresDTO  `json:"scores"`
	Submitted bool       `json:"submitted"`
}

func newSnapshotDTO(snap economy.Snapshot, report economy.TickReport) snapshotDTO {
	dto := snapshotDTO{
		Tick:      snap.Tick,
		Elapsed:   snap.Elapsed,
		Lines:     snap.State.Lines,
		Entities:  snap.State.Entities,
		TechDebt:  snap.State.TechDebt,
		Upgrades:  snap.State.UpgradesInstalled,
		Offers:    make([]offerDTO, 0, len(snap.Offers)),
		Scores:    newScoresDTO(snap.Scores),
		Submitted: snap.State.Submitted,
	}
	for _, o := range snap.Offers {
		dto.Offers = append(dto.Offers, offerDTO{
			Kind:       o.Kind.String(),
			Name:       o.Name,
			Cost:       finite(o.Cost),
			Affordable: o.Affordable,
		})
	}
	for _, p := range report.Purchases {
		if p.Err == nil {
			dto.Bought = append(dto.Bought, p.Kind.String())
		}
	}
	return dto
}

type runDTO struct {
	Strategy  string    `json:"strategy"`
	Seed      int64     `json:"seed"`
	Ticks     uint64    `json:"ticks"`
	Elapsed   float64   `json:"elapsed"`
	Submitted bool      `json:"submitted"`
	Lines     float64   `json:"lines"`
	Entities  float64   `json:"entities"`
	TechDebt  float64   `json:"tech_debt"`
	Upgrades  uint64    `json:"upgrades"`
	Purchases []string  `json:"purchases"`
	Rejected  int       `json:"rejected"`
	Scores    scoresDTO `json:"scores"`
	Overall   float64   `json:"overall"`
}

func newRunDTO(res autoplay.Result) runDTO {
	dto := runDTO{
		Strategy:  res.Strategy,
		Seed:      res.Seed,
		Ticks:     res.Ticks,
		Elapsed:   res.Elapsed,
		Submitted: res.Submitted,
		Lines:     res.State.Lines,
		Entities:  res.State.Entities,
		TechDebt:  res.State.TechDebt,
		Upgrades:  res.State.UpgradesInstalled,
		Purchases: make([]string, 0, len(res.Purchases)),
		Rejected:  res.Rejected,
		Scores:    newScoresDTO(res.Scores),
		Overall:   res.Scores.Overall(),
	}
	for _, k := range res.Purchases {
		dto.Purchases = append(dto.Purchases, k.String())
	}
	return dto
}
