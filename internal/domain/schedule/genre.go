package schedule

import "strings"

// Genre is the musical genre tag of a block.
type Genre string

const (
	GenreInfantiles  Genre = "Infantiles"
	GenreCumbias     Genre = "Cumbias"
	GenreBaladas     Genre = "Baladas"
	GenreRock        Genre = "Rock"
	GenrePop         Genre = "Pop"
	GenreSalsa       Genre = "Salsa"
	GenreRegional    Genre = "Regional"
	GenreClasica     Genre = "Clásica"
	GenreJazz        Genre = "Jazz"
	GenreElectronica Genre = "Electrónica"
	GenreRanchera    Genre = "Ranchera"
	GenreBoleros     Genre = "Boleros"
	GenreVariado     Genre = "Variado"
)

// Genres lists the known genres in display order.
var Genres = []Genre{
	GenreInfantiles,
	GenreCumbias,
	GenreBaladas,
	GenreRock,
	GenrePop,
	GenreSalsa,
	GenreRegional,
	GenreClasica,
	GenreJazz,
	GenreElectronica,
	GenreRanchera,
	GenreBoleros,
	GenreVariado,
}

// ParseGenre looks a genre up by display name (case-insensitive).
// Unknown names fall back to GenreVariado.
func ParseGenre(name string) Genre {
	name = strings.TrimSpace(name)
	for _, g := range Genres {
		if strings.EqualFold(string(g), name) {
			return g
		}
	}
	return GenreVariado
}

// IsKnown reports whether g is one of the catalogued genres.
func (g Genre) IsKnown() bool {
	for _, known := range Genres {
		if g == known {
			return true
		}
	}
	return false
}
