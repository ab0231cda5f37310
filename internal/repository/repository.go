// Package repository defines typed, constructor-injected data access for each
// entity. The query core never builds store-native filter objects itself; it
// hands the repositories explicit query specifications and gets rows back.
package repository

import "github.com/parkatlas/core/internal/models"

// TagFilter is a discriminated tag query specification; construct with AnyTag
// or WithTag. The zero value behaves as AnyTag.
type TagFilter struct {
	tag    string
	tagged bool
}

// AnyTag matches parks that carry at least one tag. Parks with an empty tag
// set are excluded on purpose: the default tag view is "tagged parks", not
// "all parks".
func AnyTag() TagFilter { return TagFilter{} }

// WithTag matches parks whose tag set contains the given tag.
func WithTag(tag string) TagFilter { return TagFilter{tag: tag, tagged: true} }

// Tag returns the requested tag and whether a specific tag was requested.
func (f TagFilter) Tag() (string, bool) { return f.tag, f.tagged }

// TagCount is one distinct tag with its occurrence count across all parks.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// NearbyPark is the projected row returned by geo proximity queries. Full
// author/review data is deliberately absent; this feeds map rendering.
type NearbyPark struct {
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Lng         float64 `json:"lng"`
	Lat         float64 `json:"lat"`
	Photo       string  `json:"photo"`
	Distance    float64 `json:"distance" gorm:"column:distance_m"`
}

// RatedPark is one park in the top-rated ranking.
type RatedPark struct {
	ID            string  `json:"id"`
	Slug          string  `json:"slug"`
	Name          string  `json:"name"`
	Photo         string  `json:"photo"`
	AverageRating float64 `json:"average_rating" gorm:"column:average_rating"`
	ReviewCount   int     `json:"review_count"   gorm:"column:review_count"`
}

// ParkRepository exposes the query primitives the park module composes.
// Lookup methods return (nil, nil) when no row matches.
type ParkRepository interface {
	// Page returns one window of parks ordered by (name asc, id asc)
	// together with the total park count.
	Page(offset, limit int) ([]models.ParkModel, int64, error)
	BySlug(slug string) (*models.ParkModel, error)
	ByID(id string) (*models.ParkModel, error)
	ByIDs(ids []string) ([]models.ParkModel, error)
	ByTag(filter TagFilter) ([]models.ParkModel, error)
	TagCounts() ([]TagCount, error)
	// Search runs a relevance-scored text query over name and description,
	// best matches first.
	Search(query string, limit int) ([]models.ParkModel, error)
	// Near returns parks within radiusMeters of (lng, lat), nearest first.
	Near(lng, lat, radiusMeters float64, limit int) ([]NearbyPark, error)
	// TopRated ranks parks by review average desc, review count desc, name
	// asc; parks with fewer than minReviews reviews are excluded.
	TopRated(minReviews, limit int) ([]RatedPark, error)
	SlugExists(slug string) (bool, error)
	Create(park *models.ParkModel) error
	Update(park *models.ParkModel, updates map[string]interface{}) error
}

// UserRepository exposes user lookup and the hearts set.
type UserRepository interface {
	ByID(id string) (*models.UserModel, error)
	ByUsername(username string) (*models.UserModel, error)
	Create(user *models.UserModel) error
	// Hearts returns the park ids in the user's favorites set.
	Hearts(userID string) ([]string, error)
	// ToggleHeart flips membership of parkID in the user's hearts set as a
	// single atomic conditional mutation: remove if present, else insert.
	// Concurrent toggles for the same (user, park) pair converge to a
	// consistent state and can never produce duplicates. Returns the
	// updated set.
	ToggleHeart(userID, parkID string) ([]string, error)
}

// ReviewRepository stores immutable park reviews.
type ReviewRepository interface {
	Create(review *models.ReviewModel) error
	ByPark(parkID string) ([]models.ReviewModel, error)
}
