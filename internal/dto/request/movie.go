package request

type MovieRequest struct {
	Title           string  `json:"title" validate:"required,min=1,max=200"`
	Director        string  `json:"director" validate:"required,min=1,max=150"`
	Genre           string  `json:"genre" validate:"required,min=1,max=100"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gte=1,lte=600"`
	Year            int     `json:"year" validate:"required,gte=1888,lte=2100"`
	Classification  string  `json:"classification" validate:"required,oneof=G PG PG-13 R NC-17 NR ATP +13 +16 +18"`
	Synopsis        *string `json:"synopsis,omitempty" validate:"omitempty,max=1000"`
}

type MovieUpdateRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Director        *string `json:"director,omitempty" validate:"omitempty,min=1,max=150"`
	Genre           *string `json:"genre,omitempty" validate:"omitempty,min=1,max=100"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,gte=1,lte=600"`
	Year            *int    `json:"year,omitempty" validate:"omitempty,gte=1888,lte=2100"`
	Classification  *string `json:"classification,omitempty" validate:"omitempty,oneof=G PG PG-13 R NC-17 NR ATP +13 +16 +18"`
	Synopsis        *string `json:"synopsis,omitempty" validate:"omitempty,max=1000"`
}

// MovieSearchRequest carries the optional catalog search criteria from
// query parameters. Year and the year range are mutually exclusive.
type MovieSearchRequest struct {
	Title          *string `validate:"omitempty,max=200"`
	Director       *string `validate:"omitempty,max=150"`
	Genre          *string `validate:"omitempty,max=100"`
	Year           *int    `validate:"omitempty,gte=1888,lte=2100"`
	YearMin        *int    `validate:"omitempty,gte=1888,lte=2100"`
	YearMax        *int    `validate:"omitempty,gte=1888,lte=2100"`
	Classification *string `validate:"omitempty,max=10"`
	DurationMin    *int    `validate:"omitempty,gte=1"`
	DurationMax    *int    `validate:"omitempty,gte=1,lte=600"`
}
