package review

import (
	"time"

	"github.com/parkatlas/core/internal/models"
)

type CreateReviewDTO struct {
	Rating int    `json:"rating" binding:"required"`
	Text   string `json:"text"`
}

type reviewResponse struct {
	ID      string          `json:"id"`
	ParkID  string          `json:"park_id"`
	Rating  int             `json:"rating"`
	Text    string          `json:"text"`
	Author  *authorResponse `json:"author,omitempty"`
	Created time.Time       `json:"created"`
}

type authorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func toReviewResponse(r *models.ReviewModel) reviewResponse {
	resp := reviewResponse{
		ID:      r.ID,
		ParkID:  r.ParkID,
		Rating:  r.Rating,
		Text:    r.Text,
		Created: r.CreatedAt,
	}
	if r.Author != nil {
		resp.Author = &authorResponse{ID: r.Author.ID, Username: r.Author.Username, Name: r.Author.Name}
	}
	return resp
}

func toReviewListResponse(reviews []models.ReviewModel) []reviewResponse {
	out := make([]reviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewResponse(&reviews[i]))
	}
	return out
}
