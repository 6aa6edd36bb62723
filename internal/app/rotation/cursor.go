// Package rotation provides round-robin cursors over numbered special-content folders.
package rotation

import (
	"math/rand"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/daylist/internal/app/catalog"
	"github.com/osa030/daylist/internal/domain/insertion"
)

// SentinelKey is the sort key of eligible files without a leading number.
const SentinelKey = 999

var (
	leadingNumber = regexp.MustCompile(`^\d{2,3}`)
	anyNumber     = regexp.MustCompile(`\d{2,3}`)
)

// SortKey returns the rotation sort key of a file name.
// ok is false when the name carries no 2-3 digit run and is not eligible.
func SortKey(name string) (key int, ok bool) {
	if m := leadingNumber.FindString(name); m != "" {
		n, err := strconv.Atoi(m)
		if err == nil {
			return n, true
		}
	}
	if anyNumber.MatchString(name) {
		return SentinelKey, true
	}
	return 0, false
}

// Cursor walks the eligible files of one category folder in numeric order,
// starting at a random offset and wrapping around.
type Cursor struct {
	folder      string
	category    insertion.Category
	files       []string
	index       int
	initialized bool
}

// New scans folder and builds a cursor for the category.
// An empty or missing folder yields an uninitialized cursor whose Next always reports no item.
func New(folder string, category insertion.Category, rng *rand.Rand) *Cursor {
	c := &Cursor{folder: folder, category: category}

	type entry struct {
		path string
		name string
		key  int
	}
	entries := make([]entry, 0)
	for _, path := range catalog.Scan(folder) {
		name := filepath.Base(path)
		key, ok := SortKey(name)
		if !ok {
			continue
		}
		entries = append(entries, entry{path: path, name: name, key: key})
	}

	if len(entries) == 0 {
		zlog.Warn().Msgf("rotation has no eligible files: category=%s folder=%q", category, folder)
		return c
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].key != entries[j].key {
			return entries[i].key < entries[j].key
		}
		return entries[i].name < entries[j].name
	})

	c.files = make([]string, len(entries))
	for i, e := range entries {
		c.files[i] = e.path
	}
	c.index = rng.Intn(len(c.files))
	c.initialized = true

	zlog.Debug().Msgf("rotation initialized: category=%s files=%d start=%d", category, len(c.files), c.index)
	return c
}

// Next returns the current item and advances with wraparound.
// ok is false when the cursor is uninitialized.
func (c *Cursor) Next() (insertion.Insertion, bool) {
	if !c.initialized {
		return insertion.Insertion{}, false
	}
	item := insertion.FromPath(c.files[c.index], c.category)
	c.index = (c.index + 1) % len(c.files)
	return item, true
}

// Initialized reports whether the cursor has at least one file.
func (c *Cursor) Initialized() bool {
	return c.initialized
}

// Len returns the number of files in rotation.
func (c *Cursor) Len() int {
	return len(c.files)
}

// Category returns the cursor's category.
func (c *Cursor) Category() insertion.Category {
	return c.category
}

// Files returns a copy of the sorted rotation list.
func (c *Cursor) Files() []string {
	out := make([]string, len(c.files))
	copy(out, c.files)
	return out
}
