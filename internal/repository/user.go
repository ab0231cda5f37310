package repository

import (
	"errors"

	"github.com/parkatlas/core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns the MySQL-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) ByID(id string) (*models.UserModel, error) {
	var user models.UserModel
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ByUsername(username string) (*models.UserModel, error) {
	var user models.UserModel
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(user *models.UserModel) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Hearts(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.HeartModel{}).
		Where("user_id = ?", userID).
		Order("created_at ASC, park_id ASC").
		Pluck("park_id", &ids).Error
	if ids == nil {
		ids = []string{}
	}
	return ids, err
}

// ToggleHeart is the single atomic conditional mutation: delete the heart row
// if present, otherwise insert it, ignoring a conflicting concurrent insert.
// The membership decision is made by the store inside one transaction, not by
// a read in the caller, so two racing toggles cannot both observe the same
// prior state and double-apply. The composite primary key on (user_id,
// park_id) rules out duplicates under any interleaving.
func (r *userRepository) ToggleHeart(userID, parkID string) ([]string, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND park_id = ?", userID, parkID).
			Delete(&models.HeartModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.HeartModel{UserID: userID, ParkID: parkID}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.Hearts(userID)
}
