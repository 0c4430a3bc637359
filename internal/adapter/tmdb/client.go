// Package tmdb is a thin client for The Movie Database REST API. The
// catalog importer uses it to pull popular titles and search results
// into the local pelicula table.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"movie-favorites/internal/dto/request"
	"movie-favorites/pkg/utils"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	imageURL   string
	token      string
}

func NewClient(config utils.TMDBConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    config.BaseURL,
		imageURL:   config.ImageURL,
		token:      config.BearerToken,
	}
}

// Enabled reports whether a bearer token is configured. Without it the
// import endpoints answer with an explanatory error instead of calling
// out.
func (c *Client) Enabled() bool {
	return c.token != ""
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build TMDB request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call TMDB: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("TMDB returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode TMDB response: %w", err)
	}

	return nil
}

func (c *Client) FetchPopular(ctx context.Context, page int) ([]MovieResult, error) {
	endpoint := fmt.Sprintf("%s/movie/popular?page=%d&language=es-ES", c.baseURL, page)

	var list MovieListResponse
	if err := c.get(ctx, endpoint, &list); err != nil {
		return nil, err
	}

	return list.Results, nil
}

func (c *Client) Search(ctx context.Context, query string, page int) ([]MovieResult, error) {
	params := url.Values{}
	params.Add("query", query)
	params.Add("page", strconv.Itoa(page))
	params.Add("language", "es-ES")

	endpoint := fmt.Sprintf("%s/search/movie?%s", c.baseURL, params.Encode())

	var list MovieListResponse
	if err := c.get(ctx, endpoint, &list); err != nil {
		return nil, err
	}

	return list.Results, nil
}

func (c *Client) FetchDetails(ctx context.Context, id int64) (*MovieDetails, error) {
	endpoint := fmt.Sprintf("%s/movie/%d?language=es-ES", c.baseURL, id)

	var details MovieDetails
	if err := c.get(ctx, endpoint, &details); err != nil {
		return nil, err
	}

	return &details, nil
}

// DownloadPoster fetches the poster image bytes for a TMDB poster path.
// A missing path yields nil without error.
func (c *Client) DownloadPoster(ctx context.Context, posterPath string) ([]byte, error) {
	if posterPath == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.imageURL+posterPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build poster request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download poster %s: %w", posterPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("poster %s returned status %d", posterPath, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// MapToMovieRequest converts a TMDB result into the local movie create
// shape. Details, when available, provide the runtime; otherwise the
// duration falls back to a placeholder the validator accepts.
func MapToMovieRequest(result MovieResult, details *MovieDetails) request.MovieRequest {
	year := 2000
	if len(result.ReleaseDate) >= 4 {
		if parsed, err := strconv.Atoi(result.ReleaseDate[:4]); err == nil {
			year = parsed
		}
	}

	genres := make([]string, 0, len(result.GenreIDs))
	for _, id := range result.GenreIDs {
		if name, ok := genreNames[id]; ok {
			genres = append(genres, name)
		}
	}
	if details != nil {
		genres = genres[:0]
		for _, genre := range details.Genres {
			genres = append(genres, genre.Name)
		}
	}
	genre := strings.Join(genres, ", ")
	if genre == "" {
		genre = "Sin clasificar"
	}

	duration := 120
	if details != nil && details.Runtime > 0 {
		duration = details.Runtime
	}

	// Approximate a content rating from the vote average; TMDB does not
	// expose certifications on the list endpoints.
	classification := "NR"
	if result.VoteAverage >= 7.5 {
		classification = "PG-13"
	}

	var synopsis *string
	if result.Overview != "" {
		// Truncate on rune boundaries; Spanish overviews carry accented
		// characters and a byte slice could split one mid-sequence.
		overview := result.Overview
		if utf8.RuneCountInString(overview) > 1000 {
			overview = string([]rune(overview)[:1000])
		}
		synopsis = &overview
	}

	return request.MovieRequest{
		Title:           result.Title,
		Director:        "Desconocido",
		Genre:           genre,
		DurationMinutes: duration,
		Year:            year,
		Classification:  classification,
		Synopsis:        synopsis,
	}
}
