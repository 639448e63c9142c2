package diagnosis

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler provides REST endpoints for diagnosis reference data.
type Handler struct {
	svc *Service
}

// NewHandler creates a new diagnosis handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers diagnosis routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/diagnoses", h.ListDiagnoses)
	api.GET("/diagnoses/:code", h.GetDiagnosis)
}

// ListDiagnoses handles GET /api/diagnoses
func (h *Handler) ListDiagnoses(c echo.Context) error {
	results, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if results == nil {
		results = []*Diagnosis{}
	}
	return c.JSON(http.StatusOK, results)
}

// GetDiagnosis handles GET /api/diagnoses/:code
func (h *Handler) GetDiagnosis(c echo.Context) error {
	d, err := h.svc.Get(c.Request().Context(), c.Param("code"))
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "diagnosis not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}
