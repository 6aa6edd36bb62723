// Package generator fills schedule blocks with tracks and weaves in special insertions.
package generator

import (
	"context"
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/daylist/internal/app/catalog"
	"github.com/osa030/daylist/internal/app/ceremony"
	"github.com/osa030/daylist/internal/app/filter"
	"github.com/osa030/daylist/internal/app/rotation"
	"github.com/osa030/daylist/internal/domain/playlist"
	"github.com/osa030/daylist/internal/domain/schedule"
	"github.com/osa030/daylist/internal/domain/track"
)

const (
	// DefaultTracksPerBlock is the target track count of a block.
	DefaultTracksPerBlock = 15
	// DefaultInsertEvery is the number of tracks between insertion points.
	DefaultInsertEvery = 3
)

// TagReader supplies artist and title from embedded file tags.
type TagReader interface {
	Read(path string) (artist, title string, ok bool)
}

// Folders holds the special-content folders.
type Folders struct {
	Special         string
	StationIDs      string
	Congratulations string
	PromoA          string
	PromoB          string
}

// Config represents generator settings.
type Config struct {
	Folders          Folders
	TracksPerBlock   int
	InsertEvery      int
	ToleranceMinutes int
	Seed             int64                     // 0 draws a random seed
	Tags             TagReader                 // Optional; nil keeps file name parsing only
	Filters          map[string]map[string]any // Optional candidate filters by name
}

// Report summarizes a generation run.
type Report struct {
	RunID           string
	Blocks          int
	Tracks          int
	Insertions      int
	InsertionPoints int
	ShortBlocks     int
	Warnings        []string
}

// Summary returns the one-line run summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d blocks, %d tracks, %d special elements", r.Blocks, r.Tracks, r.Insertions)
}

func (r *Report) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	zlog.Warn().Str("run_id", r.RunID).Msg(msg)
	r.Warnings = append(r.Warnings, msg)
}

// Generator builds playlists. It holds no state between runs.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// New creates a generator. Zero counts fall back to the defaults.
func New(cfg Config) *Generator {
	if cfg.TracksPerBlock <= 0 {
		cfg.TracksPerBlock = DefaultTracksPerBlock
	}
	if cfg.InsertEvery <= 0 {
		cfg.InsertEvery = DefaultInsertEvery
	}
	if cfg.ToleranceMinutes <= 0 {
		cfg.ToleranceMinutes = schedule.DefaultToleranceMinutes
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = randomSeed()
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

func randomSeed() int64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err == nil {
		return int64(binary.LittleEndian.Uint64(buf[:]))
	}
	return time.Now().UnixNano()
}

// Generate builds the playlist of a date from the block configuration.
// Missing folders and short blocks are reported as warnings; an error is
// returned only for invalid filter settings or a cancelled context.
func (g *Generator) Generate(ctx context.Context, date time.Time, configs []schedule.BlockConfig) (*playlist.Playlist, *Report, error) {
	report := &Report{RunID: uuid.New().String()}
	p := playlist.New(report.RunID, date)

	used := filter.NewUsedPaths()
	chain, err := filter.Build(used, g.cfg.Filters)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to build candidate filters")
	}

	zlog.Info().Str("run_id", report.RunID).Msgf("generating playlist: date=%s blocks=%d", date.Format("2006-01-02"), len(configs))

	for i, cfg := range configs {
		if err := ctx.Err(); err != nil {
			return nil, nil, errors.Wrap(err, "generation cancelled")
		}
		b := schedule.NewBlock(cfg)
		b.ToleranceMinutes = g.cfg.ToleranceMinutes
		g.populate(ctx, i, b, used, chain, report)
		p.AddBlock(b)
	}

	cer := ceremony.NewBuilder(g.cfg.Folders.Special, g.rng)
	p.Opening = cer.Opening()
	p.Closing = cer.Closing()
	if len(p.Opening) == 0 {
		report.warnf("no ceremonial items found in %q", g.cfg.Folders.Special)
	}

	set := rotation.NewSet(rotation.Folders{
		StationIDs:      g.cfg.Folders.StationIDs,
		Congratulations: g.cfg.Folders.Congratulations,
		PromoA:          g.cfg.Folders.PromoA,
		PromoB:          g.cfg.Folders.PromoB,
	}, g.rng)
	for _, c := range set.Empty() {
		report.warnf("rotation category %s has no eligible files", c)
	}
	report.InsertionPoints = Weave(p.Blocks, set, g.cfg.InsertEvery)

	report.Blocks = len(p.Blocks)
	report.Tracks = p.TotalTracks()
	report.Insertions = p.TotalInsertions()

	zlog.Info().Str("run_id", report.RunID).Msg(report.Summary())
	return p, report, nil
}

// populate fills one block with unused, shuffled files of its folder.
func (g *Generator) populate(ctx context.Context, index int, b *schedule.Block, used filter.UsedPaths, chain *filter.Chain, report *Report) {
	if !b.HasFolder() {
		zlog.Debug().Msgf("block without folder left empty: block=%s", b.RangeLabel())
		return
	}

	candidates := catalog.Scan(b.Folder)
	if len(candidates) == 0 {
		report.warnf("block %s: no audio files in %q", b.RangeLabel(), b.Folder)
		report.ShortBlocks++
		return
	}
	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	target := g.cfg.TracksPerBlock
	budget := 2 * len(candidates)
	attempts := 0
	accepted := 0
	chain.TakeRejections()

	for _, path := range candidates {
		if accepted >= target || attempts >= budget {
			break
		}
		attempts++

		if result := chain.Execute(ctx, filter.Candidate{Path: path, Block: index}); !result.Accepted {
			continue
		}

		b.Items = append(b.Items, schedule.TrackItem(g.newTrack(path, string(b.Genre))))
		used.Add(path)
		accepted++
	}

	if accepted < target {
		report.ShortBlocks++
		report.warnf("block %s: %d of %d tracks (candidates=%d rejected=%v)",
			b.RangeLabel(), accepted, target, len(candidates), chain.TakeRejections())
	}
}

func (g *Generator) newTrack(path, genre string) track.Track {
	t := track.FromPath(path, genre)
	if g.cfg.Tags == nil || t.HasKnownArtist() {
		return t
	}
	if artist, title, ok := g.cfg.Tags.Read(path); ok {
		if artist != "" {
			t.Artist = artist
		}
		if title != "" {
			t.Title = title
		}
		zlog.Debug().Msgf("track enriched from tags: file=%s artist=%s", filepath.Base(path), t.Artist)
	}
	return t
}
