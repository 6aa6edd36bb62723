package rotation

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/daylist/internal/domain/insertion"
)

func writeFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}
	return dir
}

func TestSortKey(t *testing.T) {
	tests := []struct {
		name    string
		wantKey int
		wantOK  bool
	}{
		{"01 Identificacion.mp3", 1, true},
		{"120 Promo.mp3", 120, true},
		{"1234 Promo.mp3", 123, true},
		{"Promo 45.mp3", SentinelKey, true},
		{"7 Promo.mp3", 0, false},
		{"Promo.mp3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := SortKey(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKey, key)
			}
		})
	}
}

func TestCursor_OrderAndEligibility(t *testing.T) {
	dir := writeFiles(t,
		"10 c.mp3", "02 b.mp3", "jingle 45.mp3", "01 a.mp3", "02 a.mp3", "intro.mp3", "03 notes.txt",
	)

	c := New(dir, insertion.CategoryPromoA, rand.New(rand.NewSource(1)))
	require.True(t, c.Initialized())

	names := make([]string, 0, c.Len())
	for _, f := range c.Files() {
		names = append(names, filepath.Base(f))
	}
	assert.Equal(t, []string{"01 a.mp3", "02 a.mp3", "02 b.mp3", "10 c.mp3", "jingle 45.mp3"}, names)
}

func TestCursor_Completeness(t *testing.T) {
	dir := writeFiles(t, "01 a.mp3", "02 b.mp3", "03 c.mp3", "04 d.mp3", "05 e.mp3")

	for seed := int64(0); seed < 10; seed++ {
		c := New(dir, insertion.CategoryStationID, rand.New(rand.NewSource(seed)))
		files := c.Files()
		n := c.Len()
		require.Equal(t, 5, n)

		first, ok := c.Next()
		require.True(t, ok)
		start := -1
		for i, f := range files {
			if f == first.Path {
				start = i
			}
		}
		require.GreaterOrEqual(t, start, 0)

		seen := map[string]bool{first.Path: true}
		for i := 1; i < n; i++ {
			item, ok := c.Next()
			require.True(t, ok)
			assert.Equal(t, files[(start+i)%n], item.Path, "ascending order from the start offset")
			seen[item.Path] = true
		}
		assert.Len(t, seen, n, "each file exactly once per cycle")

		again, ok := c.Next()
		require.True(t, ok)
		assert.Equal(t, first.Path, again.Path, "wraps to the first item")
	}
}

func TestCursor_ItemProfile(t *testing.T) {
	dir := writeFiles(t, "01 Felicidades.mp3")
	c := New(dir, insertion.CategoryCongratulations, rand.New(rand.NewSource(3)))

	item, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, "01 Felicidades", item.Name)
	assert.Equal(t, insertion.TypeStationID, item.Type)
	assert.Equal(t, insertion.CategoryCongratulations, item.Category)
	assert.Equal(t, insertion.ProfileOf(insertion.CategoryCongratulations).Duration, item.Duration)
}

func TestCursor_Uninitialized(t *testing.T) {
	tests := []struct {
		name   string
		folder string
	}{
		{"empty path", ""},
		{"missing folder", filepath.Join(t.TempDir(), "missing")},
		{"no eligible files", writeFiles(t, "intro.mp3", "outro.wav")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.folder, insertion.CategoryPromoB, rand.New(rand.NewSource(1)))
			assert.False(t, c.Initialized())
			assert.Equal(t, 0, c.Len())
			for i := 0; i < 3; i++ {
				_, ok := c.Next()
				assert.False(t, ok)
			}
		})
	}
}

func TestSet_Draw(t *testing.T) {
	ids := writeFiles(t)
	congrats := writeFiles(t, "01 cumple.mp3", "02 boda.mp3")
	promoA := writeFiles(t, "01 pa.mp3")
	promoB := writeFiles(t, "01 pb.mp3")

	s := NewSet(Folders{
		StationIDs:      ids,
		Congratulations: congrats,
		PromoA:          promoA,
		PromoB:          promoB,
	}, rand.New(rand.NewSource(7)))

	assert.Equal(t, []insertion.Category{insertion.CategoryStationID}, s.Empty())

	for phase := 0; phase < 6; phase++ {
		got := s.Draw(phase)
		if phase%3 == 0 {
			require.Len(t, got, 1, "station IDs contribute nothing")
			assert.Equal(t, insertion.CategoryCongratulations, got[0].Category)
			continue
		}
		require.Len(t, got, 2)
		assert.Equal(t, insertion.CategoryPromoA, got[0].Category)
		assert.Equal(t, insertion.CategoryPromoB, got[1].Category)
	}
}
