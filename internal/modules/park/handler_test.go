package park

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parkatlas/core/internal/middleware"
	"github.com/parkatlas/core/internal/models"
)

func newTestRouter(t *testing.T, parks *fakeParkRepo, users *fakeUserRepo, userID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	svc := newTestService(parks, users)
	h := NewHandler(svc, zap.NewNop())

	stubAuth := func(c *gin.Context) {
		if userID == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set(middleware.ContextKeyUserID, userID)
	}
	h.RegisterRoutes(r.Group("/api/v1"), stubAuth)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNearHandlerRejectsMalformedCoordinates(t *testing.T) {
	r := newTestRouter(t, newFakeParkRepo(), newFakeUserRepo(), "")

	cases := []string{
		"/api/v1/parks/near",
		"/api/v1/parks/near?lng=abc&lat=1",
		"/api/v1/parks/near?lng=1",
		"/api/v1/parks/near?lng=181&lat=0",
		"/api/v1/parks/near?lng=0&lat=-90.5",
	}
	for _, path := range cases {
		w := doJSON(t, r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, path)
	}
}

func TestNearHandlerReturnsProjectedFields(t *testing.T) {
	parks := newFakeParkRepo()
	p := models.ParkModel{Slug: "a", Name: "A", Description: "nice", Photo: "a.jpg", Lng: 151.0, Lat: -33.9}
	require.NoError(t, parks.Create(&p))
	r := newTestRouter(t, parks, newFakeUserRepo(), "")

	w := doJSON(t, r, http.MethodGet, "/api/v1/parks/near?lng=151.0&lat=-33.9", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	row := body.Data[0]
	assert.Equal(t, "a", row["slug"])
	assert.Contains(t, row, "distance")
	assert.NotContains(t, row, "tags")
	assert.NotContains(t, row, "author")
}

func TestSearchHandler(t *testing.T) {
	parks := newFakeParkRepo()
	p := models.ParkModel{Slug: "riverside", Name: "Riverside Park", Description: "by the river"}
	q := models.ParkModel{Slug: "hilltop", Name: "Hilltop Green", Description: "up high"}
	require.NoError(t, parks.Create(&p))
	require.NoError(t, parks.Create(&q))
	r := newTestRouter(t, parks, newFakeUserRepo(), "")

	w := doJSON(t, r, http.MethodGet, "/api/v1/parks/search?q=river", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []parkResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "riverside", body.Data[0].Slug)
}

func TestSearchHandlerBlankQuery(t *testing.T) {
	parks := newFakeParkRepo()
	seedParks(t, parks, 2)
	r := newTestRouter(t, parks, newFakeUserRepo(), "")

	w := doJSON(t, r, http.MethodGet, "/api/v1/parks/search", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []parkResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Data)
}

func TestListHandlerPaginationEnvelope(t *testing.T) {
	parks := newFakeParkRepo()
	seedParks(t, parks, 13)
	r := newTestRouter(t, parks, newFakeUserRepo(), "")

	w := doJSON(t, r, http.MethodGet, "/api/v1/parks?page=9", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data       []parkResponse `json:"data"`
		Pagination struct {
			Total         int64 `json:"total"`
			CurrentPage   int   `json:"current_page"`
			TotalPage     int   `json:"total_page"`
			CorrectedPage *int  `json:"corrected_page"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
	assert.Equal(t, int64(13), body.Pagination.Total)
	assert.Equal(t, 3, body.Pagination.TotalPage)
	require.NotNil(t, body.Pagination.CorrectedPage)
	assert.Equal(t, 3, *body.Pagination.CorrectedPage)
}

func TestGetBySlugNotFound(t *testing.T) {
	r := newTestRouter(t, newFakeParkRepo(), newFakeUserRepo(), "")

	w := doJSON(t, r, http.MethodGet, "/api/v1/parks/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleHeartHandler(t *testing.T) {
	parks := newFakeParkRepo()
	users := newFakeUserRepo()
	park := models.ParkModel{Slug: "a", Name: "A"}
	require.NoError(t, parks.Create(&park))
	user := models.UserModel{Username: "jess"}
	require.NoError(t, users.Create(&user))
	r := newTestRouter(t, parks, users, user.ID)

	w := doJSON(t, r, http.MethodPost, "/api/v1/parks/"+park.ID+"/heart", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Hearts []string `json:"hearts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{park.ID}, body.Hearts)

	w = doJSON(t, r, http.MethodPost, "/api/v1/parks/"+park.ID+"/heart", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Hearts)
}

func TestUpdateHandlerForbiddenForNonOwner(t *testing.T) {
	parks := newFakeParkRepo()
	users := newFakeUserRepo()
	owner := models.UserModel{Username: "owner"}
	intruder := models.UserModel{Username: "intruder"}
	require.NoError(t, users.Create(&owner))
	require.NoError(t, users.Create(&intruder))

	svc := newTestService(parks, users)
	park, err := svc.Create(owner.ID, &CreateParkDTO{Name: "A"})
	require.NoError(t, err)

	r := newTestRouter(t, parks, users, intruder.ID)
	w := doJSON(t, r, http.MethodPut, "/api/v1/parks/"+park.ID, `{"name":"Stolen"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
