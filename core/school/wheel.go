package school

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/housepoints/core"
)

var (
	// ErrCapacityExhausted means the spin budget ran out with no eligible
	// house: the student could not be placed. It is never converted into an
	// over-capacity assignment.
	ErrCapacityExhausted = errors.New("could not place student: all houses at capacity")

	ErrNoHouses = errors.New("no houses to sort into")
)

// Spin is one draw of the sorting wheel. Rotations are full extra turns
// kept for display continuity only; the outcome is determined solely by
// the angle mod 360.
type Spin struct {
	Angle     float64 `json:"angle"` // degrees, [0,360)
	Rotations int     `json:"rotations"`
}

// Wheel maps a random angle to one of an ordered list of named outcome
// categories: the circle is split into equal arcs, one per category,
// clockwise from the pointer. The category count follows the house count;
// it is not a fixed constant.
type Wheel struct {
	categories []string
	rng        *rand.Rand
}

// NewWheel builds a wheel over the given categories. src may be nil for a
// time-seeded source; tests inject a fixed seed for determinism.
func NewWheel(categories []string, src rand.Source) (*Wheel, error) {
	if len(categories) == 0 {
		return nil, ErrNoHouses
	}
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Wheel{
		categories: append([]string(nil), categories...),
		rng:        rand.New(src),
	}, nil
}

func (w *Wheel) Categories() []string {
	return append([]string(nil), w.categories...)
}

// Draw produces a fresh random spin: a uniform angle in [0,360) plus 2-5
// cosmetic full rotations.
func (w *Wheel) Draw() Spin {
	return Spin{
		Angle:     w.rng.Float64() * 360,
		Rotations: 2 + w.rng.Intn(4),
	}
}

// CategoryAt resolves an angle to its arc index and category name.
func (w *Wheel) CategoryAt(angle float64) (int, string) {
	arc := 360 / float64(len(w.categories))
	idx := int(math.Mod(angle, 360)/arc) % len(w.categories)
	return idx, w.categories[idx]
}

// HouseWheel builds a wheel with one category per existing house, ordered
// by house ID.
func (svc *Service) HouseWheel(src rand.Source) (*Wheel, error) {
	if len(svc.doc.Houses) == 0 {
		return nil, ErrNoHouses
	}
	houses := append([]House(nil), svc.doc.Houses...)
	sort.Slice(houses, func(i, j int) bool { return houses[i].ID < houses[j].ID })
	names := make([]string, len(houses))
	for i, h := range houses {
		names[i] = h.Name
	}
	return NewWheel(names, src)
}

// SortStudent spins the wheel until an eligible house comes up, then
// re-homes the student through the standard rebalancing routine. An
// ineligible outcome triggers a redraw, up to the spin budget; exhaustion
// returns ErrCapacityExhausted with the spin trail so the caller can still
// animate the failed ceremony. Rotations accumulate across retries for
// display continuity.
func (svc *Service) SortStudent(studentID int, wheel *Wheel) (House, []Spin, error) {
	sIdx := svc.doc.studentIndex(studentID)
	if sIdx < 0 {
		return House{}, nil, core.NewValidationError(ErrStudentNotFound,
			core.FieldError{Field: "student_id", Error: ErrStudentNotFound.Error()})
	}
	if len(svc.doc.Houses) == 0 {
		return House{}, nil, ErrNoHouses
	}

	spins := make([]Spin, 0, svc.spinBudget)
	var rotations int
	for attempt := 0; attempt < svc.spinBudget; attempt++ {
		spin := wheel.Draw()
		rotations += spin.Rotations
		spin.Rotations = rotations
		spins = append(spins, spin)

		hIdx := svc.resolveHouse(wheel, spin.Angle)
		hse := svc.doc.Houses[hIdx]
		// counts are re-resolved from the live document on every attempt
		if !svc.eligible(hse.ID) {
			continue
		}

		next := svc.doc.clone()
		moveStudent(next, sIdx, hse.ID)
		if err := svc.commit(next); err != nil {
			return House{}, spins, err
		}
		svc.log.Info("student sorted", svc.doc.Students[sIdx], hse)
		return svc.doc.Houses[hIdx], spins, nil
	}
	return House{}, spins, ErrCapacityExhausted
}

// resolveHouse maps a wheel angle to a house index: case-insensitive name
// match first, falling back to arc index modulo the house count when no
// house carries the category's name.
func (svc *Service) resolveHouse(wheel *Wheel, angle float64) int {
	idx, name := wheel.CategoryAt(angle)
	if hIdx := svc.doc.HouseIndexByName(name); hIdx >= 0 {
		return hIdx
	}
	return idx % len(svc.doc.Houses)
}

// eligible applies the capacity constraint: no configured limit, or the
// current assigned count is below it.
func (svc *Service) eligible(houseID int) bool {
	limit, capped := svc.doc.HouseLimits[houseID]
	if !capped {
		return true
	}
	return svc.doc.assignedCount(houseID) < limit
}
