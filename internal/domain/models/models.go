package models

import (
	"cinescope/proj/internal/domain/fields"
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AnonymousUser is attached to the request context when no valid
// Authorization header is present.
var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

type Movie struct {
	ID                int64       `json:"id"`           // Unique integer ID for the movie
	Title             string      `json:"title"`        // Movie title
	Director          string      `json:"director"`     // Movie director
	ReleaseDate       fields.Date `json:"release_date"` // Release date (date only)
	Description       string      `json:"description"`  // Free-form description
	ImageURL          *string     `json:"image_url"`    // Optional poster URL
	UserID            int64       `json:"created_by"`   // Owner, set from the authenticated requester
	CreatedByUsername string      `json:"created_by_username,omitempty"`
	AverageRating     *float64    `json:"average_rating,omitempty"` // Derived, absent when no reviews exist
	Reviews           []Review    `json:"reviews,omitempty" db:"-"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

func (m *Movie) OwnerID() int64 {
	return m.UserID
}

type Review struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movie"`
	UserID    int64     `json:"user"`
	Username  string    `json:"username,omitempty"` // Author username, joined on read
	Rating    int32     `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Review) OwnerID() int64 {
	return r.UserID
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
