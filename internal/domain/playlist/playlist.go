// Package playlist provides the Playlist domain entity.
package playlist

import (
	"time"

	"github.com/osa030/daylist/internal/domain/insertion"
	"github.com/osa030/daylist/internal/domain/schedule"
)

var (
	// DefaultStart is the nominal start when no block is configured.
	DefaultStart = schedule.MustTimeOfDay(7, 0, 0)
	// DefaultEnd is the nominal end when no block is configured.
	DefaultEnd = schedule.MustTimeOfDay(20, 7, 0)
)

// Playlist represents a full broadcast day.
type Playlist struct {
	ID      string                // Generation run ID
	Date    time.Time             // Broadcast date
	Start   schedule.TimeOfDay    // Nominal start time
	End     schedule.TimeOfDay    // Nominal end time
	Blocks  []*schedule.Block     // Hour blocks in order
	Opening []insertion.Insertion // Anthems and poem before the first block
	Closing []insertion.Insertion // Reverse ceremonial sequence after the last block

	// Export bookkeeping
	LSTPath string
	M3UPath string
}

// New creates an empty playlist for a date.
func New(id string, date time.Time) *Playlist {
	return &Playlist{
		ID:      id,
		Date:    date,
		Start:   DefaultStart,
		End:     DefaultEnd,
		Blocks:  make([]*schedule.Block, 0),
		Opening: make([]insertion.Insertion, 0),
		Closing: make([]insertion.Insertion, 0),
	}
}

// AddBlock appends a block and updates the nominal range: start is the
// first block's start, end is the last block's end plus its tolerance.
func (p *Playlist) AddBlock(b *schedule.Block) {
	p.Blocks = append(p.Blocks, b)
	p.Start = p.Blocks[0].Start

	end := b.End.Add(time.Duration(b.ToleranceMinutes) * time.Minute)
	if !end.Valid() {
		end = schedule.EndOfDay
	}
	p.End = end
}

// DateLabel returns the date formatted as yyyy-MM-dd.
func (p *Playlist) DateLabel() string {
	return p.Date.Format("2006-01-02")
}

// TotalTracks returns the number of music tracks across all blocks.
func (p *Playlist) TotalTracks() int {
	n := 0
	for _, b := range p.Blocks {
		n += b.TrackCount()
	}
	return n
}

// TotalInsertions returns opening, closing and inline insertions.
func (p *Playlist) TotalInsertions() int {
	n := len(p.Opening) + len(p.Closing)
	for _, b := range p.Blocks {
		n += b.InsertionCount()
	}
	return n
}

// TrackPaths returns the file paths of all music tracks in order.
func (p *Playlist) TrackPaths() []string {
	paths := make([]string, 0)
	for _, b := range p.Blocks {
		for _, t := range b.Tracks() {
			paths = append(paths, t.Path)
		}
	}
	return paths
}

// TotalDuration returns the estimated duration of the whole day.
func (p *Playlist) TotalDuration() time.Duration {
	var total time.Duration
	for _, ins := range p.Opening {
		total += ins.Duration
	}
	for _, b := range p.Blocks {
		total += b.TotalDuration()
	}
	for _, ins := range p.Closing {
		total += ins.Duration
	}
	return total
}
