package tmdb

// Wire shapes of the TMDB v3 API, trimmed to the fields the importer
// maps into the local catalog.

type MovieResult struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	GenreIDs    []int   `json:"genre_ids"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
}

type MovieListResponse struct {
	Page         int           `json:"page"`
	Results      []MovieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

type MovieDetails struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	Runtime     int     `json:"runtime"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	Genres      []Genre `json:"genres"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// genreNames maps TMDB genre ids to the Spanish genre labels used by
// the catalog.
var genreNames = map[int]string{
	28:    "Acción",
	12:    "Aventura",
	16:    "Animación",
	35:    "Comedia",
	80:    "Crimen",
	99:    "Documental",
	18:    "Drama",
	10751: "Familia",
	14:    "Fantasía",
	36:    "Historia",
	27:    "Terror",
	10402: "Música",
	9648:  "Misterio",
	10749: "Romance",
	878:   "Ciencia Ficción",
	10770: "Película de TV",
	53:    "Thriller",
	10752: "Guerra",
	37:    "Western",
}
