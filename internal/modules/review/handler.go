package review

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parkatlas/core/internal/middleware"
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
	rg.GET("/parks/:slug/reviews", h.list)
	rg.POST("/parks/:id/reviews", auth, h.create)
}

func (h *Handler) list(c *gin.Context) {
	reviews, err := h.svc.ByParkSlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrParkNotFound) {
			response.NotFound(c)
			return
		}
		h.log.Error("failed to list reviews", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, toReviewListResponse(reviews))
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateReviewDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	review, err := h.svc.Create(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrParkNotFound):
			response.NotFound(c)
		case errors.Is(err, ErrInvalidRating):
			response.UnprocessableEntity(c, ErrInvalidRating.Error())
		default:
			h.log.Error("failed to create review", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.Created(c, toReviewResponse(review))
}
