// Package queue publishes domain events to RabbitMQ so downstream
// consumers (recommendation jobs, notification services) can react to
// catalog and favorite activity. Publishing is fire-and-forget: a
// broker outage never fails the originating request.
package queue

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventFavoriteMarked   = "favorite.marked"
	EventFavoriteUnmarked = "favorite.unmarked"
	EventMovieCreated     = "movie.created"
)

// Event is the envelope shared by all published messages.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`

	UserID  int64  `json:"user_id,omitempty"`
	MovieID int64  `json:"movie_id,omitempty"`
	Title   string `json:"title,omitempty"`
}

func NewFavoriteMarked(userID, movieID int64) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       EventFavoriteMarked,
		OccurredAt: time.Now(),
		UserID:     userID,
		MovieID:    movieID,
	}
}

func NewFavoriteUnmarked(userID, movieID int64) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       EventFavoriteUnmarked,
		OccurredAt: time.Now(),
		UserID:     userID,
		MovieID:    movieID,
	}
}

func NewMovieCreated(movieID int64, title string) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       EventMovieCreated,
		OccurredAt: time.Now(),
		MovieID:    movieID,
		Title:      title,
	}
}
