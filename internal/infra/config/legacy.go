package config

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/daylist/internal/domain/schedule"
)

// ErrMalformedBlockLine is returned for block lines that do not match
// "Bloque NN: HH:mm:ss - HH:mm:ss | Genre | Path".
var ErrMalformedBlockLine = errors.New("malformed block line")

// legacyKeys are the folder keys of the text layout. "Promos" is the old name of PromosA.
var legacyKeys = map[string]bool{
	"ElementosEspeciales": true,
	"Identificaciones":    true,
	"Felicitaciones":      true,
	"PromosA":             true,
	"PromosB":             true,
	"Promos":              true,
}

var blockLine = regexp.MustCompile(`^Bloque\s+\d+:\s*(.+?)\s*\|\s*(.*?)\s*\|\s*(.*?)\s*$`)

// ParseBlockLine parses one legacy block line.
func ParseBlockLine(line string) (BlockConfig, error) {
	m := blockLine.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return BlockConfig{}, errors.Mark(errors.Newf("unexpected block line %q", line), ErrMalformedBlockLine)
	}
	start, end, err := schedule.ParseRange(m[1])
	if err != nil {
		return BlockConfig{}, errors.Mark(errors.Wrapf(err, "block line %q", line), ErrMalformedBlockLine)
	}
	return BlockConfig{
		Start:  start.String(),
		End:    end.String(),
		Genre:  string(schedule.ParseGenre(m[2])),
		Folder: m[3],
	}, nil
}

// decodeLegacy reads Key=Value folder lines and block lines into cfg.
// Comments, blank lines, unknown keys and malformed blocks are skipped.
func decodeLegacy(data []byte, cfg *Config) error {
	values := make(map[string]any)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "Bloque") {
			b, err := ParseBlockLine(line)
			if err != nil {
				zlog.Warn().Msgf("skipping block line: line=%d err=%v", lineNo, err)
				continue
			}
			cfg.Blocks = append(cfg.Blocks, b)
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok || !legacyKeys[strings.TrimSpace(key)] {
			zlog.Debug().Msgf("ignoring config line: line=%d", lineNo)
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "failed to scan config")
	}

	if old, ok := values["Promos"]; ok {
		if _, hasA := values["PromosA"]; !hasA {
			values["PromosA"] = old
		}
		delete(values, "Promos")
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &cfg.Folders,
		TagName: "mapstructure",
	})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder")
	}
	if err := decoder.Decode(values); err != nil {
		return errors.Wrap(err, "failed to decode folders")
	}
	return nil
}

// encodeLegacy writes the text layout. Only blocks with a folder are written.
func encodeLegacy(cfg *Config) []byte {
	var buf bytes.Buffer
	buf.WriteString("# Configuración de Lista ZaraRadio\n")
	fmt.Fprintf(&buf, "# Fecha de creación: %s\n", time.Now().Format("2006-01-02"))
	buf.WriteString("# Generado por: daylist\n\n")

	buf.WriteString("# === CARPETAS ESPECIALES ===\n")
	buf.WriteString("# Elementos especiales (himnos y poemas)\n")
	fmt.Fprintf(&buf, "ElementosEspeciales=%s\n\n", cfg.Folders.Special)
	buf.WriteString("# Carpetas de elementos rotatorios\n")
	fmt.Fprintf(&buf, "Identificaciones=%s\n", cfg.Folders.StationIDs)
	fmt.Fprintf(&buf, "Felicitaciones=%s\n", cfg.Folders.Congratulations)
	fmt.Fprintf(&buf, "PromosA=%s\n", cfg.Folders.PromoA)
	fmt.Fprintf(&buf, "PromosB=%s\n\n", cfg.Folders.PromoB)

	buf.WriteString("# === PROGRAMACIÓN POR HORAS ===\n")
	buf.WriteString("# Formato: Bloque XX: HH:MM:SS - HH:MM:SS | Género | Ruta\n")
	n := 0
	first, last := "", ""
	for _, b := range cfg.Blocks {
		if strings.TrimSpace(b.Folder) == "" {
			continue
		}
		n++
		fmt.Fprintf(&buf, "Bloque %02d: %s - %s | %s | %s\n", n, b.Start, b.End, b.Genre, b.Folder)
		if first == "" {
			first = b.Start
		}
		last = b.End
	}

	buf.WriteString("\n# === ESTADÍSTICAS ===\n")
	fmt.Fprintf(&buf, "# Total de bloques configurados: %d\n", n)
	if n > 0 {
		fmt.Fprintf(&buf, "# Hora de inicio: %s\n", shortTime(first))
		fmt.Fprintf(&buf, "# Hora de fin: %s\n", shortTime(last))
	} else {
		buf.WriteString("# Hora de inicio: N/A\n")
		buf.WriteString("# Hora de fin: N/A\n")
	}
	return buf.Bytes()
}

func shortTime(s string) string {
	if t, err := schedule.ParseTimeOfDay(s); err == nil {
		return t.Short()
	}
	return s
}
