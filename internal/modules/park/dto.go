package park

import (
	"time"

	"github.com/parkatlas/core/internal/models"
	"github.com/parkatlas/core/internal/pkg/markdown"
)

type CreateParkDTO struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Lng         *float64 `json:"lng"`
	Lat         *float64 `json:"lat"`
	Address     string   `json:"address"`
	Photo       string   `json:"photo"`
}

type UpdateParkDTO struct {
	Name        *string  `json:"name" binding:"omitempty,max=200"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	Lng         *float64 `json:"lng"`
	Lat         *float64 `json:"lat"`
	Address     *string  `json:"address"`
	Photo       *string  `json:"photo"`
}

type authorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type reviewResponse struct {
	ID      string          `json:"id"`
	Rating  int             `json:"rating"`
	Text    string          `json:"text"`
	Author  *authorResponse `json:"author,omitempty"`
	Created time.Time       `json:"created"`
}

type parkResponse struct {
	ID              string           `json:"id"`
	Slug            string           `json:"slug"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	DescriptionHTML string           `json:"description_html,omitempty"`
	Tags            []string         `json:"tags"`
	Lng             float64          `json:"lng"`
	Lat             float64          `json:"lat"`
	Address         string           `json:"address"`
	Photo           string           `json:"photo"`
	Author          *authorResponse  `json:"author,omitempty"`
	Reviews         []reviewResponse `json:"reviews,omitempty"`
	Created         time.Time        `json:"created"`
	Modified        time.Time        `json:"modified"`
}

func toAuthorResponse(u *models.UserModel) *authorResponse {
	if u == nil {
		return nil
	}
	return &authorResponse{ID: u.ID, Username: u.Username, Name: u.Name}
}

func toParkResponse(p *models.ParkModel) parkResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return parkResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		Tags:        tags,
		Lng:         p.Lng,
		Lat:         p.Lat,
		Address:     p.Address,
		Photo:       p.Photo,
		Author:      toAuthorResponse(p.Author),
		Created:     p.CreatedAt,
		Modified:    p.UpdatedAt,
	}
}

// toParkDetailResponse additionally renders the description to HTML and
// expands the review list; only the single-park view pays that cost.
func toParkDetailResponse(p *models.ParkModel) parkResponse {
	resp := toParkResponse(p)
	resp.DescriptionHTML = markdown.Render(p.Description)
	reviews := make([]reviewResponse, 0, len(p.Reviews))
	for i := range p.Reviews {
		r := &p.Reviews[i]
		reviews = append(reviews, reviewResponse{
			ID:      r.ID,
			Rating:  r.Rating,
			Text:    r.Text,
			Author:  toAuthorResponse(r.Author),
			Created: r.CreatedAt,
		})
	}
	resp.Reviews = reviews
	return resp
}

func toParkListResponse(parks []models.ParkModel) []parkResponse {
	out := make([]parkResponse, 0, len(parks))
	for i := range parks {
		out = append(out, toParkResponse(&parks[i]))
	}
	return out
}
