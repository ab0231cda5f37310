package legacy

import (
	"archive/zip"
	"bytes"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parkatlas/core/internal/pkg/response"
)

// maxArchiveSize bounds the uploaded zip itself.
const maxArchiveSize = 128 << 20

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.POST("/import", auth, h.importArchive)
}

func (h *Handler) importArchive(c *gin.Context) {
	file, header, err := c.Request.FormFile("archive")
	if err != nil {
		response.BadRequest(c, "multipart field 'archive' is required")
		return
	}
	defer file.Close()

	if header.Size > maxArchiveSize {
		response.BadRequest(c, "archive too large")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxArchiveSize))
	if err != nil {
		h.log.Error("failed to read archive", zap.Error(err))
		response.InternalError(c)
		return
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		response.BadRequest(c, "archive is not a valid zip")
		return
	}

	stats, err := h.svc.ImportArchive(zr)
	if err != nil {
		h.log.Error("import failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	h.log.Info("legacy import complete",
		zap.Int("parks", stats.Parks),
		zap.Int("users", stats.Users),
		zap.Int("reviews", stats.Reviews),
		zap.Int("hearts", stats.Hearts),
		zap.Int("skipped", stats.Skipped))
	response.OK(c, stats)
}
