package http

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/Torteous44/santaCruzService/internal/usecase/photo"

	"github.com/labstack/echo/v4"
)

// Stager is the upload-reception staging area: incoming multipart files
// land there before the lifecycle manager takes over.
type Stager interface {
	Stage(src io.Reader, originalName string) (string, error)
	Remove(path string) error
}

type PhotoHandler struct {
	uc     *photo.Usecase
	stager Stager
}

func NewPhotoHandler(uc *photo.Usecase, stager Stager) *PhotoHandler {
	return &PhotoHandler{uc: uc, stager: stager}
}

type submitPhotoReq struct {
	Contributor string `form:"contributor" validate:"required,max=255"`
	FloorID     string `form:"floor_id"    validate:"required,max=64"`
	RoomID      string `form:"room_id"     validate:"omitempty,max=64"`
}

type listPhotosReq struct {
	Status  string `query:"status"   validate:"omitempty,oneof=pending approved rejected"`
	FloorID string `query:"floor_id" validate:"omitempty,max=64"`
}

// SubmitPhoto receives a multipart upload (file field "photo" plus form
// fields), stages the file locally, and hands it to the lifecycle manager.
func (h *PhotoHandler) SubmitPhoto(c echo.Context) error {
	var req submitPhotoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing photo file"})
	}
	if ct := fh.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file must be an image"})
	}

	src, err := fh.Open()
	if err != nil {
		log.Printf("photo handler: open multipart file: %v", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read upload"})
	}
	defer src.Close()

	stagedPath, err := h.stager.Stage(src, fh.Filename)
	if err != nil {
		log.Printf("photo handler: stage upload: %v", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to stage upload"})
	}

	dto, err := h.uc.Submit(c.Request().Context(), photo.SubmitInput{
		StagedPath:       stagedPath,
		Contributor:      req.Contributor,
		FloorID:          req.FloorID,
		RoomID:           req.RoomID,
		OriginalFileName: fh.Filename,
	})
	if err != nil {
		// The coordinator already released the staged file on its own
		// failure paths; this covers the ones it never reached.
		if rmErr := h.stager.Remove(stagedPath); rmErr != nil {
			log.Printf("photo handler: remove staged file: %v", rmErr)
		}
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// ListPhotos returns photos filtered by optional status and floor,
// most recently submitted first.
func (h *PhotoHandler) ListPhotos(c echo.Context) error {
	var req listPhotosReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	out, err := h.uc.List(c.Request().Context(), photo.ListFilter{
		Status:  req.Status,
		FloorID: req.FloorID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"photos": out,
		"count":  len(out),
	})
}

// SupportedFormats exposes the image host's extension allow-list.
func (h *PhotoHandler) SupportedFormats(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"supported_formats": h.uc.SupportedFormats(),
	})
}
