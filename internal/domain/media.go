package domain

import "time"

// Favorite marks a title as favorited by a user. Unique per (user, title).
type Favorite struct {
	ID             string    `json:"id" db:"id"`
	UserID         string    `json:"user_id" db:"user_id"`
	TitleID        int64     `json:"title_id" db:"title_id"`
	Title          string    `json:"title" db:"title"`
	NumberEpisodes *int      `json:"number_episodes" db:"number_episodes"`
	NumberSeasons  *int      `json:"number_seasons" db:"number_seasons"`
	MediaType      *string   `json:"media_type" db:"media_type"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// CompletedSeries marks a series as fully watched. Unique per (user, title).
type CompletedSeries struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	TitleID   int64     `json:"title_id" db:"title_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// WatchedEpisode marks a single episode as watched. Unique per
// (user, title, season, episode).
type WatchedEpisode struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	TitleID   int64     `json:"title_id" db:"title_id"`
	Season    int       `json:"season" db:"season"`
	Episode   int       `json:"episode" db:"episode"`
	Duration  int       `json:"duration" db:"duration"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// EpisodeKey is the composite key of a watched episode within a user's list
type EpisodeKey struct {
	TitleID int64
	Season  int
	Episode int
}
