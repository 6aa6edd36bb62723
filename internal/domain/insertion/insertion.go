// Package insertion provides the special insertion domain entity
// (anthems, poem, station IDs, congratulations, promos).
package insertion

import (
	"path/filepath"
	"time"

	"github.com/osa030/daylist/internal/domain/track"
)

// Type represents the kind of special insertion.
type Type int

const (
	TypeNationalAnthem   Type = iota // Opening/closing national anthem ("01")
	TypeRegionalAnthem                // Opening/closing regional anthem ("02")
	TypePoem                          // Opening/closing poem ("03")
	TypeTimeAnnouncement              // Hourly time announcement
	TypeStationID                     // Station identification (also congratulations)
	TypePromo                         // Promotional spot
)

// Name returns the display name written to playlist comments.
func (t Type) Name() string {
	switch t {
	case TypeNationalAnthem:
		return "Himno Nacional"
	case TypeRegionalAnthem:
		return "Himno de Guerrero"
	case TypePoem:
		return "Poema"
	case TypeTimeAnnouncement:
		return "Locución de Hora"
	case TypeStationID:
		return "Identificación"
	case TypePromo:
		return "Promo"
	default:
		return "Desconocido"
	}
}

// String returns the string representation of the type.
func (t Type) String() string {
	switch t {
	case TypeNationalAnthem:
		return "national_anthem"
	case TypeRegionalAnthem:
		return "regional_anthem"
	case TypePoem:
		return "poem"
	case TypeTimeAnnouncement:
		return "time_announcement"
	case TypeStationID:
		return "station_id"
	case TypePromo:
		return "promo"
	default:
		return "unknown"
	}
}

// Category identifies a source folder of special content.
type Category int

const (
	CategoryStationID       Category = iota // Rotating station IDs
	CategoryCongratulations                 // Rotating congratulatory messages
	CategoryPromoA                          // Rotating promos, first set
	CategoryPromoB                          // Rotating promos, second set
	CategoryNationalAnthem                  // Ceremonial "01"
	CategoryRegionalAnthem                  // Ceremonial "02"
	CategoryPoem                            // Ceremonial "03"
)

// String returns the category label used in logs and metrics.
func (c Category) String() string {
	switch c {
	case CategoryStationID:
		return "station_id"
	case CategoryCongratulations:
		return "congratulations"
	case CategoryPromoA:
		return "promo_a"
	case CategoryPromoB:
		return "promo_b"
	case CategoryNationalAnthem:
		return "national_anthem"
	case CategoryRegionalAnthem:
		return "regional_anthem"
	case CategoryPoem:
		return "poem"
	default:
		return "unknown"
	}
}

// Profile holds the fixed defaults of a category.
type Profile struct {
	Type     Type
	Duration time.Duration
}

var profiles = map[Category]Profile{
	CategoryStationID:       {Type: TypeStationID, Duration: 15 * time.Second},
	CategoryCongratulations: {Type: TypeStationID, Duration: 20 * time.Second},
	CategoryPromoA:          {Type: TypePromo, Duration: 30 * time.Second},
	CategoryPromoB:          {Type: TypePromo, Duration: 30 * time.Second},
	CategoryNationalAnthem:  {Type: TypeNationalAnthem, Duration: 90 * time.Second},
	CategoryRegionalAnthem:  {Type: TypeRegionalAnthem, Duration: 90 * time.Second},
	CategoryPoem:            {Type: TypePoem, Duration: 2 * time.Minute},
}

// ProfileOf returns the defaults for a category.
// Unknown categories are treated as promos.
func ProfileOf(c Category) Profile {
	if p, ok := profiles[c]; ok {
		return p
	}
	return Profile{Type: TypePromo, Duration: 30 * time.Second}
}

// Insertion represents a non-music audio item.
type Insertion struct {
	Name     string        // File name without extension
	Path     string        // Absolute file path
	Duration time.Duration // Estimated duration (category constant)
	Type     Type          // Insertion type
	Category Category      // Source category
}

// FromPath builds an insertion for a file of the given category.
func FromPath(path string, c Category) Insertion {
	p := ProfileOf(c)
	return Insertion{
		Name:     track.StripExtension(filepath.Base(path)),
		Path:     path,
		Duration: p.Duration,
		Type:     p.Type,
		Category: c,
	}
}

// Label returns "<TypeName>: <Name>" as used in playlist comments.
func (i *Insertion) Label() string {
	return i.Type.Name() + ": " + i.Name
}
