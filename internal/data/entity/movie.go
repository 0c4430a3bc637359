package entity

import "time"

// Movie maps the pelicula table. Genre may encode multiple genres as a
// comma-delimited string, mirroring the catalog source.
type Movie struct {
	ID              int64     `db:"id"`
	Title           string    `db:"titulo"`
	Director        string    `db:"director"`
	Genre           string    `db:"genero"`
	DurationMinutes int       `db:"duracion"`
	Year            int       `db:"anio"`
	Classification  string    `db:"clasificacion"`
	Synopsis        *string   `db:"sinopsis"`
	Poster          []byte    `db:"poster"`
	CreatedAt       time.Time `db:"fecha_creacion"`
}
