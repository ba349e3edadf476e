package reviews

import (
	"time"

	"github.com/google/uuid"
)

// AuthorDTO is the review author shape embedded in review responses.
type AuthorDTO struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	ProfilePicture *string   `json:"profile_picture"`
}

// ReviewDTO is the review shape returned by review operations.
type ReviewDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Author    AuthorDTO `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateReviewInput carries the fields accepted when creating a review.
type CreateReviewInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment"`
}

// UpdateReviewInput carries the mutable review fields; nil means keep.
type UpdateReviewInput struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}
