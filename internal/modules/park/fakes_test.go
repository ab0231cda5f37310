package park

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/parkatlas/core/internal/models"
	"github.com/parkatlas/core/internal/repository"
)

// fakeParkRepo is an in-memory repository.ParkRepository mirroring the SQL
// implementation's ordering and filtering semantics closely enough for the
// service tests.
type fakeParkRepo struct {
	mu    sync.Mutex
	parks map[string]models.ParkModel
	seq   int
}

func newFakeParkRepo() *fakeParkRepo {
	return &fakeParkRepo{parks: map[string]models.ParkModel{}}
}

func (r *fakeParkRepo) sorted() []models.ParkModel {
	out := make([]models.ParkModel, 0, len(r.parks))
	for _, p := range r.parks {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *fakeParkRepo) Page(offset, limit int) ([]models.ParkModel, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted()
	total := int64(len(all))
	if offset >= len(all) {
		return []models.ParkModel{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeParkRepo) BySlug(slug string) (*models.ParkModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.parks {
		if p.Slug == slug {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeParkRepo) ByID(id string) (*models.ParkModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.parks[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (r *fakeParkRepo) ByIDs(ids []string) ([]models.ParkModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.ParkModel{}
	for _, id := range ids {
		if p, ok := r.parks[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParkRepo) ByTag(filter repository.TagFilter) ([]models.ParkModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tag, specific := filter.Tag()
	out := []models.ParkModel{}
	for _, p := range r.sorted() {
		if specific {
			for _, t := range p.Tags {
				if t == tag {
					out = append(out, p)
					break
				}
			}
		} else if len(p.Tags) > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParkRepo) TagCounts() ([]repository.TagCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int{}
	for _, p := range r.parks {
		for _, t := range p.Tags {
			counts[t]++
		}
	}
	out := make([]repository.TagCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, repository.TagCount{Tag: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out, nil
}

func (r *fakeParkRepo) Search(query string, limit int) ([]models.ParkModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	out := []models.ParkModel{}
	for _, p := range r.sorted() {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeParkRepo) Near(lng, lat, radiusMeters float64, limit int) ([]repository.NearbyPark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []repository.NearbyPark{}
	for _, p := range r.sorted() {
		// Equirectangular approximation is plenty for test fixtures.
		const metersPerDegree = 111320.0
		dx := (p.Lng - lng) * metersPerDegree * math.Cos(lat*math.Pi/180)
		dy := (p.Lat - lat) * metersPerDegree
		d := math.Sqrt(dx*dx + dy*dy)
		if d <= radiusMeters {
			out = append(out, repository.NearbyPark{
				Slug:        p.Slug,
				Name:        p.Name,
				Description: p.Description,
				Lng:         p.Lng,
				Lat:         p.Lat,
				Photo:       p.Photo,
				Distance:    d,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeParkRepo) TopRated(minReviews, limit int) ([]repository.RatedPark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []repository.RatedPark{}
	for _, p := range r.parks {
		if len(p.Reviews) < minReviews {
			continue
		}
		sum := 0
		for _, rv := range p.Reviews {
			sum += rv.Rating
		}
		out = append(out, repository.RatedPark{
			ID:            p.ID,
			Slug:          p.Slug,
			Name:          p.Name,
			Photo:         p.Photo,
			AverageRating: float64(sum) / float64(len(p.Reviews)),
			ReviewCount:   len(p.Reviews),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageRating != out[j].AverageRating {
			return out[i].AverageRating > out[j].AverageRating
		}
		if out[i].ReviewCount != out[j].ReviewCount {
			return out[i].ReviewCount > out[j].ReviewCount
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeParkRepo) SlugExists(slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.parks {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeParkRepo) Create(park *models.ParkModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if park.ID == "" {
		r.seq++
		park.ID = fmt.Sprintf("park-%03d", r.seq)
	}
	r.parks[park.ID] = *park
	return nil
}

func (r *fakeParkRepo) Update(park *models.ParkModel, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.parks[park.ID]
	for col, val := range updates {
		switch col {
		case "name":
			stored.Name = val.(string)
		case "description":
			stored.Description = val.(string)
		case "tags":
			stored.Tags = val.(models.StringSlice)
		case "lng":
			stored.Lng = val.(float64)
		case "lat":
			stored.Lat = val.(float64)
		case "address":
			stored.Address = val.(string)
		case "photo":
			stored.Photo = val.(string)
		}
	}
	r.parks[park.ID] = stored
	*park = stored
	return nil
}

// fakeUserRepo implements repository.UserRepository with map-backed hearts.
type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]models.UserModel
	hearts map[string][]string // userID -> park ids, insertion ordered
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  map[string]models.UserModel{},
		hearts: map[string][]string{},
	}
}

func (r *fakeUserRepo) ByID(id string) (*models.UserModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := u
	return &cp, nil
}

func (r *fakeUserRepo) ByUsername(username string) (*models.UserModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(user *models.UserModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Hearts(userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.hearts[userID]))
	copy(out, r.hearts[userID])
	return out, nil
}

func (r *fakeUserRepo) ToggleHeart(userID, parkID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := r.hearts[userID]
	for i, id := range set {
		if id == parkID {
			r.hearts[userID] = append(set[:i:i], set[i+1:]...)
			out := make([]string, len(r.hearts[userID]))
			copy(out, r.hearts[userID])
			return out, nil
		}
	}
	r.hearts[userID] = append(set, parkID)
	out := make([]string, len(r.hearts[userID]))
	copy(out, r.hearts[userID])
	return out, nil
}
