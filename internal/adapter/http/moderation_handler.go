package http

import (
	"net/http"

	"github.com/Torteous44/santaCruzService/internal/usecase/photo"

	"github.com/labstack/echo/v4"
)

type ModerationHandler struct{ uc *photo.Usecase }

func NewModerationHandler(uc *photo.Usecase) *ModerationHandler {
	return &ModerationHandler{uc: uc}
}

type moderatePhotoReq struct {
	PhotoID string `param:"photo_id" validate:"required,hex32"`
}

// ApprovePhoto moves a pending photo to approved.
func (h *ModerationHandler) ApprovePhoto(c echo.Context) error {
	var req moderatePhotoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Approve(c.Request().Context(), req.PhotoID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// RejectPhoto moves a pending photo to rejected and deletes its hosted
// image.
func (h *ModerationHandler) RejectPhoto(c echo.Context) error {
	var req moderatePhotoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Reject(c.Request().Context(), req.PhotoID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
