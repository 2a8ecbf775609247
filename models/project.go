package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a production being scheduled.
// Scenes is filled by every read so stats can be computed from it.
type Project struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	Scenes      []Scene   `json:"scenes,omitempty"`
}

// CreateProjectRequest is the payload for creating a new project.
// Name must be non-blank; the check lives in the scheduling service so the
// error message matches what the front end shows.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProjectQuery filters and paginates project listings.
type ProjectQuery struct {
	Search string `form:"search"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}
