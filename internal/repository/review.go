package repository

import (
	"github.com/parkatlas/core/internal/models"
	"gorm.io/gorm"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository returns the MySQL-backed ReviewRepository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.ReviewModel) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) ByPark(parkID string) ([]models.ReviewModel, error) {
	var reviews []models.ReviewModel
	err := r.db.Preload("Author").
		Where("park_id = ?", parkID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}
