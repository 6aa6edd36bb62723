package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/osa030/daylist/internal/app/catalog"
	"github.com/osa030/daylist/internal/app/export"
	"github.com/osa030/daylist/internal/app/filter"
	"github.com/osa030/daylist/internal/app/generator"
	"github.com/osa030/daylist/internal/app/preview"
	"github.com/osa030/daylist/internal/domain/playlist"
	"github.com/osa030/daylist/internal/domain/schedule"
	"github.com/osa030/daylist/internal/infra/config"
	"github.com/osa030/daylist/internal/infra/logger"
	"github.com/osa030/daylist/internal/infra/metrics"
	"github.com/osa030/daylist/internal/infra/tags"
)

func generateAndExport(ctx context.Context, cfg *config.Config) error {
	if err := export.ValidateEncodings(cfg.Export.M3UEncodings); err != nil {
		return errors.Wrap(err, "invalid export.m3u_encodings")
	}
	date, err := parseDate(*generateDate)
	if err != nil {
		return err
	}

	rec := metrics.NewRecorder()
	p, report, err := generate(ctx, cfg, date)
	if err != nil {
		return err
	}
	rec.ObserveGeneration(metrics.Generation{
		Blocks:          report.Blocks,
		Tracks:          report.Tracks,
		Insertions:      report.Insertions,
		InsertionPoints: report.InsertionPoints,
		ShortBlocks:     report.ShortBlocks,
		Warnings:        len(report.Warnings),
	})

	base := cfg.Export.Output
	if *generateOutput != "" {
		base = *generateOutput
	}
	results, exportErr := exportAll(ctx, p, base, formatsFor(*generateFormat), cfg.Export.M3UEncodings, rec)

	if *metricsFile != "" {
		if err := rec.WriteTextfile(*metricsFile); err != nil {
			zlog.Warn().Msgf("metrics not written: %v", err)
		}
	}
	if exportErr != nil {
		return exportErr
	}

	warnings := report.Warnings
	for _, res := range results {
		fmt.Printf("%s: %s (%s, %d entries)\n", strings.ToUpper(string(res.Format)), res.Path, res.Encoding, res.Entries)
		warnings = append(warnings, res.Warnings...)
	}
	fmt.Println(report.Summary())

	if *generatePreview {
		fmt.Println(preview.Render(p, preview.Options{Warnings: warnings}))
	}
	return nil
}

func previewOnly(ctx context.Context, cfg *config.Config) error {
	date, err := parseDate(*previewDate)
	if err != nil {
		return err
	}
	p, report, err := generate(ctx, cfg, date)
	if err != nil {
		return err
	}
	fmt.Println(preview.Render(p, preview.Options{Detail: *previewDetail, Warnings: report.Warnings}))
	return nil
}

// generate maps the configuration onto the generator and runs it once.
func generate(ctx context.Context, cfg *config.Config, date time.Time) (*playlist.Playlist, *generator.Report, error) {
	blocks, err := cfg.ScheduleBlocks()
	if err != nil {
		return nil, nil, err
	}
	checkFolders(cfg, blocks)

	gcfg := generator.Config{
		Folders: generator.Folders{
			Special:         cfg.Folders.Special,
			StationIDs:      cfg.Folders.StationIDs,
			Congratulations: cfg.Folders.Congratulations,
			PromoA:          cfg.Folders.PromoA,
			PromoB:          cfg.Folders.PromoB,
		},
		TracksPerBlock:   cfg.Generation.TracksPerBlock,
		InsertEvery:      cfg.Generation.InsertEvery,
		ToleranceMinutes: cfg.Generation.ToleranceMinutes,
		Seed:             cfg.Generation.Seed,
		Filters:          cfg.EnabledFilters(),
	}
	if cfg.Generation.ReadTags {
		gcfg.Tags = tags.NewReader()
	}

	p, report, err := generator.New(gcfg).Generate(ctx, date, blocks)
	if err != nil {
		return nil, nil, errors.Wrap(err, "generation failed")
	}
	return p, report, nil
}

// checkFolders logs configured folders that hold no audio files.
func checkFolders(cfg *config.Config, blocks []schedule.BlockConfig) {
	log := logger.Component("folders")
	named := map[string]string{
		"special":         cfg.Folders.Special,
		"station_ids":     cfg.Folders.StationIDs,
		"congratulations": cfg.Folders.Congratulations,
		"promo_a":         cfg.Folders.PromoA,
		"promo_b":         cfg.Folders.PromoB,
	}
	for i, b := range blocks {
		if b.HasFolder() {
			named[fmt.Sprintf("block %02d", i+1)] = b.Folder
		}
	}

	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		folder := named[name]
		if strings.TrimSpace(folder) == "" {
			log.Debug().Msgf("folder not configured: %s", name)
			continue
		}
		n := catalog.Count(folder)
		if n == 0 {
			log.Warn().Msgf("folder has no audio files: %s=%s", name, folder)
			continue
		}
		log.Debug().Msgf("folder ok: %s=%s files=%d", name, folder, n)
	}
}

func formatsFor(name string) []export.Format {
	switch name {
	case "lst":
		return []export.Format{export.FormatLST}
	case "m3u":
		return []export.Format{export.FormatM3U}
	default:
		return []export.Format{export.FormatLST, export.FormatM3U}
	}
}

// exportAll writes every requested format concurrently.
// Results keep the order of formats.
func exportAll(ctx context.Context, p *playlist.Playlist, base string, formats []export.Format, encodings []string, rec *metrics.Recorder) ([]*export.Result, error) {
	results := make([]*export.Result, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var (
				res *export.Result
				err error
			)
			switch f {
			case export.FormatLST:
				res, err = export.WriteLST(p, base)
			case export.FormatM3U:
				res, err = export.WriteM3U(p, base, encodings)
			}
			if err != nil {
				rec.ObserveExport(string(f), 0, 0, err)
				return err
			}
			rec.ObserveExport(string(f), res.Bytes, len(res.Warnings), nil)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "export failed")
	}
	return results, nil
}

func retime(cfg *config.Config) error {
	return retimeAndSave(cfg, *configPath, *retimeBlock, *retimeRange)
}

// retimeAndSave applies the cascade to block number (1-based) and saves
// the config to path. A legacy text config that would lose folder-less
// blocks is left untouched.
func retimeAndSave(cfg *config.Config, path string, number int, rangeText string) error {
	if path == "" {
		return errors.New("retime needs --config to save the new schedule")
	}
	if config.IsLegacyPath(path) {
		if dropped := cfg.FolderlessBlocks(); len(dropped) > 0 {
			return errors.Newf("blocks %v have no folder and cannot be saved to legacy config %s; convert it to YAML first", dropped, path)
		}
	}
	blocks, err := cfg.ScheduleBlocks()
	if err != nil {
		return err
	}
	start, end, err := schedule.ParseRange(rangeText)
	if err != nil {
		return err
	}
	if err := schedule.Retime(blocks, number-1, start, end); err != nil {
		return err
	}

	cfg.SetBlocks(blocks)
	if err := config.Save(cfg, path); err != nil {
		return err
	}
	for i, b := range blocks {
		fmt.Printf("Bloque %02d: %s - %s | %s\n", i+1, b.Start, b.End, b.Genre)
	}
	return nil
}

func inspect(cfg *config.Config, path string) error {
	doc, err := export.Read(path, cfg.Export.ReadEncodings)
	if err != nil {
		return err
	}

	fmt.Printf("File:        %s\n", doc.Path)
	fmt.Printf("Format:      %s\n", doc.Format)
	fmt.Printf("Encoding:    %s\n", doc.Encoding)
	if doc.Format == export.FormatLST {
		fmt.Printf("Date:        %s\n", doc.Header["Date"])
		fmt.Printf("Range:       %s - %s\n", doc.Header["Start"], doc.Header["End"])
		fmt.Printf("Blocks:      %d\n", doc.Blocks)
	}
	fmt.Printf("Entries:     %d\n", len(doc.Entries))
	fmt.Printf("Time marks:  %d\n", doc.TimeMarkers())

	missing := doc.Missing()
	fmt.Printf("Missing:     %d\n", len(missing))
	for _, m := range missing {
		fmt.Printf("  %s\n", m)
	}
	return nil
}

func convert(from, to string) error {
	cfg, err := config.Load(from)
	if err != nil {
		return err
	}
	if err := config.Save(cfg, to); err != nil {
		return err
	}
	fmt.Printf("Converted %s -> %s\n", from, to)
	return nil
}

func printFilters() {
	fmt.Println("Available Filters:")
	registered := filter.GetRegistered()
	names := make([]string, 0, len(registered))
	for name := range registered {
		names = append(names, name)
	}
	sort.Strings(names)

	// The duplicate filter is always first and needs no configuration
	filters := []filter.Filter{filter.NewDuplicatePathFilter(filter.NewUsedPaths())}
	for _, name := range names {
		filters = append(filters, registered[name]())
	}
	for _, f := range filters {
		codes := strings.Join(f.ReturnCodes(), ", ")
		fmt.Printf("  %-30s - %s [codes: %s]\n", f.Name(), f.Description(), codes)
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid date %q", s)
	}
	return d, nil
}
