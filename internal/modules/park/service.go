package park

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/parkatlas/core/internal/models"
	"github.com/parkatlas/core/internal/pkg/pagination"
	"github.com/parkatlas/core/internal/pkg/response"
	"github.com/parkatlas/core/internal/pkg/slug"
	"github.com/parkatlas/core/internal/repository"
)

const (
	// ParksPerPage is the fixed page size for the browse listing.
	ParksPerPage = 6
	// searchLimit caps the text-search preview.
	searchLimit = 5
	// nearRadiusMeters and nearLimit bound the geo proximity query.
	nearRadiusMeters = 10000
	nearLimit        = 10
	// topMinReviews excludes parks with too few reviews from the ranking.
	topMinReviews = 2
	// DefaultTopLimit bounds the top-rated list when config does not.
	DefaultTopLimit = 10
)

var (
	ErrNotOwner           = errors.New("you must have created the park in order to edit it")
	ErrParkNotFound       = errors.New("park not found")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Service composes the repository query primitives into the catalog's read
// and mutation operations. It holds no per-request state.
type Service struct {
	parks    repository.ParkRepository
	users    repository.UserRepository
	topLimit int
}

func NewService(parks repository.ParkRepository, users repository.UserRepository, topLimit int) *Service {
	if topLimit <= 0 {
		topLimit = DefaultTopLimit
	}
	return &Service{parks: parks, users: users, topLimit: topLimit}
}

// List returns one page of parks in stable (name, id) order. A page past the
// end is corrected to the last valid page: the caller receives that page's
// items together with the corrected page number in the metadata. An empty
// catalog yields an empty page with zero total pages and no correction.
func (s *Service) List(page int) ([]models.ParkModel, response.Pagination, error) {
	if page < 1 {
		page = 1
	}

	parks, total, err := s.parks.Page(pagination.Offset(page, ParksPerPage), ParksPerPage)
	if err != nil {
		return nil, response.Pagination{}, err
	}

	pages := pagination.TotalPages(total, ParksPerPage)
	pag := response.Pagination{
		Total:       total,
		CurrentPage: page,
		TotalPage:   pages,
		Size:        ParksPerPage,
		HasNextPage: page < pages,
	}

	if len(parks) == 0 && page > 1 && total > 0 {
		corrected := pages
		parks, _, err = s.parks.Page(pagination.Offset(corrected, ParksPerPage), ParksPerPage)
		if err != nil {
			return nil, response.Pagination{}, err
		}
		pag.CurrentPage = corrected
		pag.CorrectedPage = &corrected
		pag.HasNextPage = false
	}

	return parks, pag, nil
}

// GetBySlug fetches a single park with its author and reviews resolved.
// Returns (nil, nil) when the slug does not exist.
func (s *Service) GetBySlug(slugStr string) (*models.ParkModel, error) {
	return s.parks.BySlug(slugStr)
}

// Tags returns the distinct tag menu with occurrence counts plus the park
// list matching the requested tag. An empty tag requests the default view:
// every park that carries at least one tag.
func (s *Service) Tags(tag string) ([]repository.TagCount, []models.ParkModel, error) {
	filter := repository.AnyTag()
	if tag != "" {
		filter = repository.WithTag(tag)
	}

	counts, err := s.parks.TagCounts()
	if err != nil {
		return nil, nil, err
	}
	parks, err := s.parks.ByTag(filter)
	if err != nil {
		return nil, nil, err
	}
	return counts, parks, nil
}

// Search runs the relevance-ranked text query, capped at 5 results. A blank
// query returns an empty set without touching the store.
func (s *Service) Search(query string) ([]models.ParkModel, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.ParkModel{}, nil
	}
	return s.parks.Search(query, searchLimit)
}

// ValidateCoordinates rejects NaN, infinities and out-of-range values before
// they can reach the store's geo query.
func ValidateCoordinates(lng, lat float64) error {
	if math.IsNaN(lng) || math.IsNaN(lat) || math.IsInf(lng, 0) || math.IsInf(lat, 0) {
		return ErrInvalidCoordinates
	}
	if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return ErrInvalidCoordinates
	}
	return nil
}

// Near returns up to 10 parks within 10 km of the given point, nearest first,
// with projected fields only.
func (s *Service) Near(lng, lat float64) ([]repository.NearbyPark, error) {
	if err := ValidateCoordinates(lng, lat); err != nil {
		return nil, err
	}
	return s.parks.Near(lng, lat, nearRadiusMeters, nearLimit)
}

// TopRated ranks reviewed parks by average rating. Parks with fewer than two
// reviews never appear; an undefined average is not a zero average.
func (s *Service) TopRated() ([]repository.RatedPark, error) {
	return s.parks.TopRated(topMinReviews, s.topLimit)
}

// Hearted returns the parks in the user's favorites set.
func (s *Service) Hearted(userID string) ([]models.ParkModel, error) {
	ids, err := s.users.Hearts(userID)
	if err != nil {
		return nil, err
	}
	return s.parks.ByIDs(ids)
}

// ToggleHeart flips the park's membership in the user's favorites set and
// returns the updated set. The membership decision happens inside the store's
// atomic conditional mutation, not here.
func (s *Service) ToggleHeart(userID, parkID string) ([]string, error) {
	park, err := s.parks.ByID(parkID)
	if err != nil {
		return nil, err
	}
	if park == nil {
		return nil, ErrParkNotFound
	}
	return s.users.ToggleHeart(userID, parkID)
}

// Create inserts a new park owned by authorID. The slug is derived from the
// name and suffixed until unique; a concurrent insert of the same slug shows
// up as a duplicate-key error and triggers one more derivation round.
func (s *Service) Create(authorID string, dto *CreateParkDTO) (*models.ParkModel, error) {
	if err := validateOptionalLocation(dto.Lng, dto.Lat); err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		slugStr, err := s.uniqueSlug(dto.Name)
		if err != nil {
			return nil, err
		}

		park := models.ParkModel{
			Slug:        slugStr,
			Name:        dto.Name,
			Description: dto.Description,
			Tags:        dto.Tags,
			Address:     dto.Address,
			Photo:       dto.Photo,
			AuthorID:    authorID,
		}
		if dto.Lng != nil {
			park.Lng = *dto.Lng
			park.Lat = *dto.Lat
		}

		err = s.parks.Create(&park)
		if err == nil {
			return &park, nil
		}
		if !repository.IsDuplicate(err) || attempt >= 3 {
			return nil, err
		}
	}
}

// Update patches a park by ID after confirming ownership. The slug is not
// re-derived on rename. Returns (nil, nil) when the park does not exist.
func (s *Service) Update(userID, id string, dto *UpdateParkDTO) (*models.ParkModel, error) {
	park, err := s.parks.ByID(id)
	if err != nil {
		return nil, err
	}
	if park == nil {
		return nil, nil
	}
	if err := confirmOwner(park, userID); err != nil {
		return nil, err
	}
	if err := validateOptionalLocation(dto.Lng, dto.Lat); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Tags != nil {
		updates["tags"] = models.StringSlice(dto.Tags)
	}
	if dto.Lng != nil {
		updates["lng"] = *dto.Lng
		updates["lat"] = *dto.Lat
	}
	if dto.Address != nil {
		updates["address"] = *dto.Address
	}
	if dto.Photo != nil {
		updates["photo"] = *dto.Photo
	}

	if len(updates) == 0 {
		return park, nil
	}
	if err := s.parks.Update(park, updates); err != nil {
		return nil, err
	}
	return park, nil
}

// confirmOwner returns a typed failure instead of panicking; the caller maps
// it to a rejected operation.
func confirmOwner(park *models.ParkModel, userID string) error {
	if park.AuthorID != userID {
		return ErrNotOwner
	}
	return nil
}

func validateOptionalLocation(lng, lat *float64) error {
	if lng == nil && lat == nil {
		return nil
	}
	if lng == nil || lat == nil {
		return ErrInvalidCoordinates
	}
	return ValidateCoordinates(*lng, *lat)
}

func (s *Service) uniqueSlug(name string) (string, error) {
	base := slug.From(name)
	if base == "" {
		base = "park"
	}

	candidate := base
	for i := 2; ; i++ {
		exists, err := s.parks.SlugExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
