// Package preview renders a generated playlist for the terminal.
package preview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/osa030/daylist/internal/domain/insertion"
	"github.com/osa030/daylist/internal/domain/playlist"
	"github.com/osa030/daylist/internal/domain/schedule"
)

// Options controls the preview.
type Options struct {
	Detail   bool     // List every item, not only block summaries
	Warnings []string // Shown after the summary
}

// Render returns the preview text of p.
func Render(p *playlist.Playlist, opts Options) string {
	sections := make([]string, 0, len(p.Blocks)+4)
	sections = append(sections, TitleStyle.Render(fmt.Sprintf("Lista %s  %s - %s", p.DateLabel(), p.Start, p.End)))

	if len(p.Opening) > 0 {
		sections = append(sections, ceremony("Apertura", p.Opening))
	}
	for _, b := range p.Blocks {
		sections = append(sections, block(b, opts.Detail))
	}
	if len(p.Closing) > 0 {
		sections = append(sections, ceremony("Cierre", p.Closing))
	}

	sections = append(sections, DividerStyle.Render(strings.Repeat("─", 40)))
	sections = append(sections, StatsStyle.Render(fmt.Sprintf(
		"%d blocks, %d tracks, %d special elements, ~%s",
		len(p.Blocks), p.TotalTracks(), p.TotalInsertions(), formatDuration(p.TotalDuration()),
	)))
	for _, w := range opts.Warnings {
		sections = append(sections, WarningStyle.Render("! "+w))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func ceremony(title string, items []insertion.Insertion) string {
	lines := []string{BlockStyle.Render(title)}
	for _, ins := range items {
		lines = append(lines, ItemStyle.Render(InsertionStyle.Render(ins.Label())))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func block(b *schedule.Block, detail bool) string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		BlockStyle.Render(b.RangeLabel()),
		"  ",
		GenreStyle.Render(string(b.Genre)),
		"  ",
		StatsStyle.Render(fmt.Sprintf("%d tracks, %d insertions, ~%s",
			b.TrackCount(), b.InsertionCount(), formatDuration(b.TotalDuration()))),
	)
	if !detail {
		return header
	}

	lines := []string{header}
	for _, it := range b.Items {
		lines = append(lines, ItemStyle.Render(itemLine(it)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func itemLine(it schedule.Item) string {
	switch {
	case it.IsTimeMarker():
		return MarkerStyle.Render("[" + insertion.TypeTimeAnnouncement.Name() + "]")
	case it.Kind == schedule.ItemInsertion:
		return InsertionStyle.Render("[" + it.Insertion.Label() + "]")
	default:
		return it.Track.Artist + " - " + it.Track.Title
	}
}

// formatDuration renders 1h05m or 3m30s.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
