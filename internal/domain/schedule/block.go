package schedule

import (
	"time"

	"github.com/osa030/daylist/internal/domain/insertion"
	"github.com/osa030/daylist/internal/domain/track"
)

// DefaultToleranceMinutes is the informational tolerance of a block.
const DefaultToleranceMinutes = 5

// BlockConfig is the caller-supplied definition of an hour block.
type BlockConfig struct {
	Start  TimeOfDay
	End    TimeOfDay
	Genre  Genre
	Folder string // Source folder; empty means the block stays empty
}

// Duration returns End-Start.
func (c BlockConfig) Duration() time.Duration {
	return c.End.Sub(c.Start)
}

// HasFolder reports whether a source folder is configured.
func (c BlockConfig) HasFolder() bool {
	return c.Folder != ""
}

// ItemKind represents the kind of a block entry.
type ItemKind int

const (
	ItemTrack     ItemKind = iota // Music track or time-marker
	ItemInsertion                 // Special insertion woven inline
)

// Item is one entry of a block's ordered content.
type Item struct {
	Kind      ItemKind
	Track     track.Track         // Set when Kind == ItemTrack
	Insertion insertion.Insertion // Set when Kind == ItemInsertion
}

// TrackItem wraps a track.
func TrackItem(t track.Track) Item {
	return Item{Kind: ItemTrack, Track: t}
}

// InsertionItem wraps an insertion.
func InsertionItem(i insertion.Insertion) Item {
	return Item{Kind: ItemInsertion, Insertion: i}
}

// Path returns the file path of the entry.
func (i *Item) Path() string {
	if i.Kind == ItemInsertion {
		return i.Insertion.Path
	}
	return i.Track.Path
}

// Duration returns the estimated duration of the entry.
func (i *Item) Duration() time.Duration {
	if i.Kind == ItemInsertion {
		return i.Insertion.Duration
	}
	return i.Track.Duration
}

// IsTimeMarker reports whether the entry is a time announcement point.
func (i *Item) IsTimeMarker() bool {
	return i.Kind == ItemTrack && i.Track.IsTimeMarker()
}

// IsMusic reports whether the entry is a regular music track.
func (i *Item) IsMusic() bool {
	return i.Kind == ItemTrack && !i.Track.IsTimeMarker()
}

// Block represents one programming unit of the day.
type Block struct {
	Start            TimeOfDay
	End              TimeOfDay
	Genre            Genre
	Folder           string
	ToleranceMinutes int
	Items            []Item // Ordered content; tracks only until insertions are woven
}

// NewBlock creates an empty block from its configuration.
func NewBlock(cfg BlockConfig) *Block {
	genre := cfg.Genre
	if genre == "" {
		genre = GenreVariado
	}
	return &Block{
		Start:            cfg.Start,
		End:              cfg.End,
		Genre:            genre,
		Folder:           cfg.Folder,
		ToleranceMinutes: DefaultToleranceMinutes,
		Items:            make([]Item, 0),
	}
}

// HasFolder reports whether a source folder is configured.
func (b *Block) HasFolder() bool {
	return b.Folder != ""
}

// Config returns the block's configuration.
func (b *Block) Config() BlockConfig {
	return BlockConfig{Start: b.Start, End: b.End, Genre: b.Genre, Folder: b.Folder}
}

// Tracks returns the regular music tracks of the block in order.
func (b *Block) Tracks() []track.Track {
	tracks := make([]track.Track, 0, len(b.Items))
	for _, it := range b.Items {
		if it.IsMusic() {
			tracks = append(tracks, it.Track)
		}
	}
	return tracks
}

// TrackCount returns the number of regular music tracks.
func (b *Block) TrackCount() int {
	n := 0
	for _, it := range b.Items {
		if it.IsMusic() {
			n++
		}
	}
	return n
}

// InsertionCount returns the number of inline insertions.
func (b *Block) InsertionCount() int {
	n := 0
	for _, it := range b.Items {
		if it.Kind == ItemInsertion {
			n++
		}
	}
	return n
}

// TotalDuration returns the estimated duration of the block content.
func (b *Block) TotalDuration() time.Duration {
	var total time.Duration
	for _, it := range b.Items {
		total += it.Duration()
	}
	return total
}

// RangeLabel returns "HH:mm:ss - HH:mm:ss".
func (b *Block) RangeLabel() string {
	return b.Start.String() + " - " + b.End.String()
}
