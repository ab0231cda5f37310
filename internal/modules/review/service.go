package review

import (
	"errors"

	"github.com/parkatlas/core/internal/models"
	"github.com/parkatlas/core/internal/repository"
)

var (
	ErrParkNotFound  = errors.New("park not found")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// Service stores immutable reviews against existing parks.
type Service struct {
	reviews repository.ReviewRepository
	parks   repository.ParkRepository
}

func NewService(reviews repository.ReviewRepository, parks repository.ParkRepository) *Service {
	return &Service{reviews: reviews, parks: parks}
}

// Create attaches a review by authorID to the park. Reviews are append-only;
// there is no update or delete path.
func (s *Service) Create(authorID, parkID string, dto *CreateReviewDTO) (*models.ReviewModel, error) {
	if dto.Rating < 1 || dto.Rating > 5 {
		return nil, ErrInvalidRating
	}

	park, err := s.parks.ByID(parkID)
	if err != nil {
		return nil, err
	}
	if park == nil {
		return nil, ErrParkNotFound
	}

	review := models.ReviewModel{
		ParkID:   park.ID,
		AuthorID: authorID,
		Rating:   dto.Rating,
		Text:     dto.Text,
	}
	if err := s.reviews.Create(&review); err != nil {
		return nil, err
	}
	return &review, nil
}

// ByParkSlug lists a park's reviews, newest first. The read surface is
// slug-addressed, same as the park detail view.
func (s *Service) ByParkSlug(slug string) ([]models.ReviewModel, error) {
	park, err := s.parks.BySlug(slug)
	if err != nil {
		return nil, err
	}
	if park == nil {
		return nil, ErrParkNotFound
	}
	return s.reviews.ByPark(park.ID)
}
