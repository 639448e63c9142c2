package patient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ehr/patientor/internal/platform/metrics"
)

const errorPrefix = "Something went wrong."

type Handler struct {
	svc        *Service
	normalizer *Normalizer
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewHandler wires the patient routes. m may be nil.
func NewHandler(svc *Service, normalizer *Normalizer, m *metrics.Metrics, logger zerolog.Logger) *Handler {
	if normalizer == nil {
		normalizer = defaultNormalizer
	}
	return &Handler{svc: svc, normalizer: normalizer, metrics: m, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/:id", h.GetPatient)
	api.POST("/patients", h.CreatePatient)
	api.PUT("/patients/:id", h.AddEntry)
}

func (h *Handler) ListPatients(c echo.Context) error {
	patients, err := h.svc.ListPatients(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

// CreatePatient ignores any entries in the body: new patients start with none.
func (h *Handler) CreatePatient(c echo.Context) error {
	raw, err := decodeBody(c)
	if err != nil {
		return h.badRequest(c, "patient", err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		obj = map[string]any{}
	}
	obj["entries"] = []any{}

	np, err := h.normalizer.Patient(obj)
	if err != nil {
		return h.badRequest(c, "patient", err)
	}
	p, err := h.svc.AddPatient(c.Request().Context(), np)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.metrics.IncrementPatientsCreated()
	return c.JSON(http.StatusOK, p)
}

// AddEntry handles PUT /api/patients/:id, appending one entry.
func (h *Handler) AddEntry(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	raw, err := decodeBody(c)
	if err != nil {
		return h.badRequest(c, "entry", err)
	}
	ne, err := h.normalizer.Entry(raw)
	if err != nil {
		return h.badRequest(c, "entry", err)
	}

	p, err := h.svc.AddEntry(c.Request().Context(), id, ne)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.metrics.IncrementEntriesAdded(string(ne.Type()))
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) badRequest(c echo.Context, resource string, err error) error {
	kind := "malformed_json"
	if ve, ok := AsValidationError(err); ok {
		kind = string(ve.Kind)
	}
	h.metrics.IncrementValidationFailure(resource, kind)
	h.logger.Warn().
		Str("request_id", fmt.Sprintf("%v", c.Get("request_id"))).
		Str("resource", resource).
		Str("kind", kind).
		Err(err).
		Msg("rejected payload")
	return c.String(http.StatusBadRequest, errorPrefix+" Error: "+err.Error())
}

// decodeBody decodes the request body into untyped JSON. An empty body
// decodes to nil.
func decodeBody(c echo.Context) (any, error) {
	body := c.Request().Body
	if body == nil {
		return nil, nil
	}
	var raw any
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return raw, nil
}
