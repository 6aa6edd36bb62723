// Package ceremony resolves the opening and closing ceremonial sequences.
package ceremony

import (
	"math/rand"
	"path/filepath"
	"strings"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/daylist/internal/app/catalog"
	"github.com/osa030/daylist/internal/domain/insertion"
)

// Slot binds a filename prefix to its category.
type Slot struct {
	Prefix   string
	Category insertion.Category
}

// OpeningSlots is the opening order. Closing is its reverse.
var OpeningSlots = []Slot{
	{Prefix: "01", Category: insertion.CategoryNationalAnthem},
	{Prefix: "02", Category: insertion.CategoryRegionalAnthem},
	{Prefix: "03", Category: insertion.CategoryPoem},
}

// Builder picks ceremonial items from the special-elements folder.
type Builder struct {
	folder string
	rng    *rand.Rand
}

// NewBuilder creates a builder over the special-elements folder.
func NewBuilder(folder string, rng *rand.Rand) *Builder {
	return &Builder{folder: folder, rng: rng}
}

// Resolve picks one file whose name starts with the slot prefix.
// ok is false when no file matches.
func (b *Builder) Resolve(s Slot) (insertion.Insertion, bool) {
	matches := catalog.ScanFunc(b.folder, func(name string) bool {
		return strings.HasPrefix(name, s.Prefix)
	})
	if len(matches) == 0 {
		zlog.Warn().Msgf("ceremonial item not found: prefix=%s category=%s folder=%q", s.Prefix, s.Category, b.folder)
		return insertion.Insertion{}, false
	}
	path := matches[b.rng.Intn(len(matches))]
	zlog.Debug().Msgf("ceremonial item resolved: prefix=%s file=%s candidates=%d", s.Prefix, filepath.Base(path), len(matches))
	return insertion.FromPath(path, s.Category), true
}

// Opening returns anthem 01, anthem 02 and poem 03, omitting missing ones.
func (b *Builder) Opening() []insertion.Insertion {
	return b.sequence(OpeningSlots)
}

// Closing returns poem 03, anthem 02 and anthem 01. Each item is picked
// again, so it may differ from the opening one.
func (b *Builder) Closing() []insertion.Insertion {
	slots := make([]Slot, len(OpeningSlots))
	for i, s := range OpeningSlots {
		slots[len(OpeningSlots)-1-i] = s
	}
	return b.sequence(slots)
}

func (b *Builder) sequence(slots []Slot) []insertion.Insertion {
	out := make([]insertion.Insertion, 0, len(slots))
	for _, s := range slots {
		if item, ok := b.Resolve(s); ok {
			out = append(out, item)
		}
	}
	return out
}
