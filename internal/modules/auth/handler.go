package auth

import (
	"errors"
	"net/http"

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
	grp := rg.Group("/auth")
	{
		grp.POST("/register", h.register)
		grp.POST("/login", h.login)
		grp.GET("/me", auth, h.me)
	}
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			response.Conflict(c, ErrUsernameTaken.Error())
			return
		}
		h.log.Error("registration failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, toSessionResponse(user, token))
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.svc.Login(&dto)
	if err != nil {
		if errors.Is(err, ErrInvalidCredential) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok": 0, "code": http.StatusUnauthorized, "message": ErrInvalidCredential.Error(),
			})
			return
		}
		h.log.Error("login failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, toSessionResponse(user, token))
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.svc.CurrentUser(middleware.CurrentUserID(c))
	if err != nil {
		h.log.Error("failed to load current user", zap.Error(err))
		response.InternalError(c)
		return
	}
	if user == nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, userResponse{ID: user.ID, Username: user.Username, Name: user.Name})
}
