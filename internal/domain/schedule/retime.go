package schedule

import (
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrBlockIndex       = errors.New("block index out of range")
)

// ParseRange parses "HH:mm[:ss] - HH:mm[:ss]" and checks end > start.
func ParseRange(s string) (start, end TimeOfDay, err error) {
	before, after, found := strings.Cut(s, " - ")
	if !found {
		return 0, 0, errors.Wrapf(ErrInvalidTimeRange, "expected \"HH:mm:ss - HH:mm:ss\", got %q", s)
	}
	if start, err = ParseTimeOfDay(before); err != nil {
		return 0, 0, errors.Mark(err, ErrInvalidTimeRange)
	}
	if end, err = ParseTimeOfDay(after); err != nil {
		return 0, 0, errors.Mark(err, ErrInvalidTimeRange)
	}
	if end <= start {
		return 0, 0, errors.Wrapf(ErrInvalidTimeRange, "end %s must be after start %s", end, start)
	}
	return start, end, nil
}

// Retime sets the range of blocks[index] and chains every following block
// from the new end, preserving each one's original duration.
// On error the slice is left untouched.
func Retime(blocks []BlockConfig, index int, start, end TimeOfDay) error {
	if index < 0 || index >= len(blocks) {
		return errors.Wrapf(ErrBlockIndex, "index %d (blocks: %d)", index, len(blocks))
	}
	if !start.Valid() || !end.Valid() || end <= start {
		return errors.Wrapf(ErrInvalidTimeRange, "end %s must be after start %s", end, start)
	}

	updated := make([]BlockConfig, len(blocks))
	copy(updated, blocks)
	updated[index].Start = start
	updated[index].End = end

	cursor := end
	for i := index + 1; i < len(updated); i++ {
		d := blocks[i].Duration()
		updated[i].Start = cursor
		updated[i].End = cursor.Add(d)
		if !updated[i].End.Valid() {
			return errors.Wrapf(ErrInvalidTimeRange, "block %d would end past midnight", i+1)
		}
		cursor = updated[i].End
	}

	copy(blocks, updated)
	return nil
}

// StandardDay returns thirteen one-hour blocks from 07:00 to 20:00
// with genre Variado and no folder.
func StandardDay() []BlockConfig {
	blocks := make([]BlockConfig, 0, 13)
	for hour := 7; hour < 20; hour++ {
		blocks = append(blocks, BlockConfig{
			Start: MustTimeOfDay(hour, 0, 0),
			End:   MustTimeOfDay(hour+1, 0, 0),
			Genre: GenreVariado,
		})
	}
	return blocks
}
