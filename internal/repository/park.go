package repository

import (
	"errors"
	"fmt"

	"github.com/parkatlas/core/internal/models"
	"gorm.io/gorm"
)

type parkRepository struct {
	db *gorm.DB
}

// NewParkRepository returns the MySQL-backed ParkRepository.
func NewParkRepository(db *gorm.DB) ParkRepository {
	return &parkRepository{db: db}
}

func (r *parkRepository) Page(offset, limit int) ([]models.ParkModel, int64, error) {
	var total int64
	if err := r.db.Model(&models.ParkModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var parks []models.ParkModel
	err := r.db.Order("name ASC, id ASC").Offset(offset).Limit(limit).Find(&parks).Error
	return parks, total, err
}

func (r *parkRepository) BySlug(slug string) (*models.ParkModel, error) {
	var park models.ParkModel
	err := r.db.Preload("Author").Preload("Reviews").Preload("Reviews.Author").
		Where("slug = ?", slug).First(&park).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &park, nil
}

func (r *parkRepository) ByID(id string) (*models.ParkModel, error) {
	var park models.ParkModel
	if err := r.db.First(&park, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &park, nil
}

func (r *parkRepository) ByIDs(ids []string) ([]models.ParkModel, error) {
	if len(ids) == 0 {
		return []models.ParkModel{}, nil
	}
	var parks []models.ParkModel
	err := r.db.Where("id IN ?", ids).Order("name ASC, id ASC").Find(&parks).Error
	return parks, err
}

// ByTag interprets the TagFilter into the store's native form: a specific tag
// becomes a JSON containment check, "any tag" requires a non-empty tag array.
func (r *parkRepository) ByTag(filter TagFilter) ([]models.ParkModel, error) {
	tx := r.db.Model(&models.ParkModel{})
	if tag, ok := filter.Tag(); ok {
		tx = tx.Where("JSON_CONTAINS(tags, ?)", fmt.Sprintf("%q", tag))
	} else {
		tx = tx.Where("tags IS NOT NULL AND JSON_LENGTH(tags) > 0")
	}

	var parks []models.ParkModel
	err := tx.Order("name ASC, id ASC").Find(&parks).Error
	return parks, err
}

func (r *parkRepository) TagCounts() ([]TagCount, error) {
	var counts []TagCount
	err := r.db.Raw(`
		SELECT jt.tag AS tag, COUNT(*) AS count
		FROM parks,
		     JSON_TABLE(parks.tags, '$[*]' COLUMNS (tag VARCHAR(191) PATH '$')) AS jt
		WHERE parks.deleted_at IS NULL
		GROUP BY jt.tag
		ORDER BY count DESC, tag ASC`).Scan(&counts).Error
	return counts, err
}

func (r *parkRepository) Search(query string, limit int) ([]models.ParkModel, error) {
	var parks []models.ParkModel
	err := r.db.Raw(`
		SELECT * FROM parks
		WHERE deleted_at IS NULL
		  AND MATCH(name, description) AGAINST (? IN NATURAL LANGUAGE MODE)
		ORDER BY MATCH(name, description) AGAINST (? IN NATURAL LANGUAGE MODE) DESC
		LIMIT ?`, query, query, limit).Scan(&parks).Error
	return parks, err
}

// Near orders by spherical distance; the HAVING clause reuses the computed
// column so the radius and the ordering can never disagree.
func (r *parkRepository) Near(lng, lat, radiusMeters float64, limit int) ([]NearbyPark, error) {
	var rows []NearbyPark
	err := r.db.Raw(`
		SELECT slug, name, description, lng, lat, photo,
		       ST_Distance_Sphere(POINT(lng, lat), POINT(?, ?)) AS distance_m
		FROM parks
		WHERE deleted_at IS NULL
		HAVING distance_m <= ?
		ORDER BY distance_m ASC
		LIMIT ?`, lng, lat, radiusMeters, limit).Scan(&rows).Error
	return rows, err
}

func (r *parkRepository) TopRated(minReviews, limit int) ([]RatedPark, error) {
	var rows []RatedPark
	err := r.db.Raw(`
		SELECT parks.id, parks.slug, parks.name, parks.photo,
		       AVG(reviews.rating) AS average_rating,
		       COUNT(reviews.id)   AS review_count
		FROM parks
		JOIN reviews ON reviews.park_id = parks.id AND reviews.deleted_at IS NULL
		WHERE parks.deleted_at IS NULL
		GROUP BY parks.id, parks.slug, parks.name, parks.photo
		HAVING review_count >= ?
		ORDER BY average_rating DESC, review_count DESC, parks.name ASC
		LIMIT ?`, minReviews, limit).Scan(&rows).Error
	return rows, err
}

func (r *parkRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ParkModel{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *parkRepository) Create(park *models.ParkModel) error {
	return r.db.Create(park).Error
}

func (r *parkRepository) Update(park *models.ParkModel, updates map[string]interface{}) error {
	return r.db.Model(park).Updates(updates).Error
}
