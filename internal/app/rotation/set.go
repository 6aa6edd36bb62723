package rotation

import (
	"math/rand"

	"github.com/osa030/daylist/internal/domain/insertion"
)

// Folders holds the category folder paths of a generation run.
type Folders struct {
	StationIDs      string
	Congratulations string
	PromoA          string
	PromoB          string
}

// Pattern is the category pair drawn at each phase of the insertion cadence.
var Pattern = [3][2]insertion.Category{
	{insertion.CategoryStationID, insertion.CategoryCongratulations},
	{insertion.CategoryPromoA, insertion.CategoryPromoB},
	{insertion.CategoryPromoA, insertion.CategoryPromoB},
}

// Set owns the four category cursors of one generation run.
type Set struct {
	cursors map[insertion.Category]*Cursor
}

// NewSet scans all category folders. Cursors are never shared between runs.
func NewSet(f Folders, rng *rand.Rand) *Set {
	return &Set{
		cursors: map[insertion.Category]*Cursor{
			insertion.CategoryStationID:       New(f.StationIDs, insertion.CategoryStationID, rng),
			insertion.CategoryCongratulations: New(f.Congratulations, insertion.CategoryCongratulations, rng),
			insertion.CategoryPromoA:          New(f.PromoA, insertion.CategoryPromoA, rng),
			insertion.CategoryPromoB:          New(f.PromoB, insertion.CategoryPromoB, rng),
		},
	}
}

// Cursor returns the cursor of a category, or nil.
func (s *Set) Cursor(c insertion.Category) *Cursor {
	return s.cursors[c]
}

// Draw returns the insertions for a phase, skipping uninitialized cursors.
func (s *Set) Draw(phase int) []insertion.Insertion {
	pair := Pattern[phase%len(Pattern)]
	out := make([]insertion.Insertion, 0, len(pair))
	for _, c := range pair {
		cur := s.cursors[c]
		if cur == nil {
			continue
		}
		if item, ok := cur.Next(); ok {
			out = append(out, item)
		}
	}
	return out
}

// Empty returns the categories that have nothing to rotate.
func (s *Set) Empty() []insertion.Category {
	out := make([]insertion.Category, 0)
	for _, c := range []insertion.Category{
		insertion.CategoryStationID,
		insertion.CategoryCongratulations,
		insertion.CategoryPromoA,
		insertion.CategoryPromoB,
	} {
		if cur := s.cursors[c]; cur == nil || !cur.Initialized() {
			out = append(out, c)
		}
	}
	return out
}
