package park

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parkatlas/core/internal/middleware"
	"github.com/parkatlas/core/internal/pkg/pagination"
	"github.com/parkatlas/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	parks := rg.Group("/parks")
	{
		parks.GET("", h.list)
		parks.GET("/search", h.search)
		parks.GET("/near", h.near)
		parks.GET("/top", h.top)
		parks.GET("/:slug", h.getBySlug)

		parks.POST("", auth, h.create)
		parks.PUT("/:id", auth, h.update)
		parks.POST("/:id/heart", auth, h.toggleHeart)
	}

	rg.GET("/tags", h.tags)
	rg.GET("/tags/:tag", h.tags)
	rg.GET("/hearts", auth, h.hearts)
}

func (h *Handler) list(c *gin.Context) {
	page := pagination.FromContext(c)

	parks, pag, err := h.svc.List(page)
	if err != nil {
		h.log.Error("failed to list parks", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Paged(c, toParkListResponse(parks), pag)
}

func (h *Handler) getBySlug(c *gin.Context) {
	park, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		h.log.Error("failed to get park", zap.Error(err))
		response.InternalError(c)
		return
	}
	if park == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toParkDetailResponse(park))
}

func (h *Handler) tags(c *gin.Context) {
	tag := c.Param("tag")

	counts, parks, err := h.svc.Tags(tag)
	if err != nil {
		h.log.Error("failed to aggregate tags", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{
		"tag":   tag,
		"tags":  counts,
		"parks": toParkListResponse(parks),
	})
}

func (h *Handler) search(c *gin.Context) {
	parks, err := h.svc.Search(c.Query("q"))
	if err != nil {
		h.log.Error("search failed", zap.Error(err), zap.String("q", c.Query("q")))
		response.InternalError(c)
		return
	}
	response.OK(c, toParkListResponse(parks))
}

func (h *Handler) near(c *gin.Context) {
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	if errLng != nil || errLat != nil {
		response.UnprocessableEntity(c, "lng and lat must be numbers")
		return
	}

	parks, err := h.svc.Near(lng, lat)
	if err != nil {
		if errors.Is(err, ErrInvalidCoordinates) {
			response.UnprocessableEntity(c, "coordinates out of range")
			return
		}
		h.log.Error("geo query failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, parks)
}

func (h *Handler) top(c *gin.Context) {
	parks, err := h.svc.TopRated()
	if err != nil {
		h.log.Error("top-rated query failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, parks)
}

func (h *Handler) hearts(c *gin.Context) {
	parks, err := h.svc.Hearted(middleware.CurrentUserID(c))
	if err != nil {
		h.log.Error("failed to load hearted parks", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, toParkListResponse(parks))
}

func (h *Handler) toggleHeart(c *gin.Context) {
	hearts, err := h.svc.ToggleHeart(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrParkNotFound) {
			response.NotFound(c)
			return
		}
		h.log.Error("failed to toggle heart", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"hearts": hearts})
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateParkDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	park, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, ErrInvalidCoordinates) {
			response.UnprocessableEntity(c, "coordinates out of range")
			return
		}
		h.log.Error("failed to create park", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, toParkResponse(park))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateParkDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	park, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotOwner):
			response.Forbidden(c, ErrNotOwner.Error())
		case errors.Is(err, ErrInvalidCoordinates):
			response.UnprocessableEntity(c, "coordinates out of range")
		default:
			h.log.Error("failed to update park", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	if park == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toParkResponse(park))
}
