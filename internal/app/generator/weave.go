package generator

import (
	"github.com/osa030/daylist/internal/app/rotation"
	"github.com/osa030/daylist/internal/domain/schedule"
	"github.com/osa030/daylist/internal/domain/track"
)

// Weave inserts a time-marker and the current phase's rotation items after
// every `every` tracks of each block. The phase counter runs across all
// blocks. It returns the number of insertion points.
func Weave(blocks []*schedule.Block, set *rotation.Set, every int) int {
	if every <= 0 {
		every = DefaultInsertEvery
	}

	phase := 0
	for _, b := range blocks {
		woven := make([]schedule.Item, 0, len(b.Items)+len(b.Items)/every*3)
		position := 0
		for _, it := range b.Items {
			woven = append(woven, it)
			if !it.IsMusic() {
				continue
			}
			position++
			if position%every != 0 {
				continue
			}
			woven = append(woven, schedule.TrackItem(track.NewTimeMarker()))
			for _, ins := range set.Draw(phase) {
				woven = append(woven, schedule.InsertionItem(ins))
			}
			phase++
		}
		b.Items = woven
	}
	return phase
}
