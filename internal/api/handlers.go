package api

import (
	"crimestats/internal/engine"
	"crimestats/internal/models"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/labstack/echo/v4"
)

type dataset struct {
	store   *engine.Store
	summary *models.DashboardData
}

// Handler serves read-only queries over a store that may still be loading.
type Handler struct {
	data atomic.Pointer[dataset]
}

// NewHandler returns a handler that answers 503 until SetStore is called.
func NewHandler() *Handler {
	return &Handler{}
}

// SetStore publishes a fully loaded store. The summary is computed once here;
// an empty store publishes without one and summary requests answer 404.
// Any other summary error is returned, and the store is still published.
func (h *Handler) SetStore(store *engine.Store) error {
	summary, err := store.Aggregate()
	h.data.Store(&dataset{store: store, summary: summary})
	if err != nil && !errors.Is(err, engine.ErrNoData) {
		return fmt.Errorf("build summary: %w", err)
	}
	return nil
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/records", h.GetRecords)
	api.GET("/records/:year", h.GetRecord)
	api.GET("/extremes/:kind", h.GetExtreme)
	api.GET("/population/changes", h.GetPopulationChanges)
	api.GET("/summary", h.GetSummary)
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *Handler) loaded() (*dataset, error) {
	d := h.data.Load()
	if d == nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "data is still loading")
	}
	return d, nil
}

// queryError maps engine errors onto HTTP statuses.
func queryError(err error) error {
	switch {
	case errors.Is(err, engine.ErrInvalidCategory):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrNoData):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return err
	}
}

func (h *Handler) GetRecords(c echo.Context) error {
	d, err := h.loaded()
	if err != nil {
		return err
	}

	total := d.store.Len()
	limit, offset := getPaginationParams(c, total)

	records := make([]*models.CrimeRecord, 0, min(limit, total))
	d.store.Records(func(i int, r *models.CrimeRecord) bool {
		if i < offset {
			return true
		}
		records = append(records, r)
		return len(records) < limit
	})

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   records,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) GetRecord(c echo.Context) error {
	d, err := h.loaded()
	if err != nil {
		return err
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "year must be an integer")
	}
	rec, ok := d.store.Year(year)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no record for year "+c.Param("year"))
	}
	return c.JSON(http.StatusOK, rec)
}

// GetExtreme answers /extremes/max?category=Murder and /extremes/min?category=Murder.
func (h *Handler) GetExtreme(c echo.Context) error {
	d, err := h.loaded()
	if err != nil {
		return err
	}

	cat, err := models.ParseCategory(c.QueryParam("category"))
	if err != nil {
		return queryError(err)
	}

	var rec *models.CrimeRecord
	switch c.Param("kind") {
	case "max":
		rec, err = d.store.MaxBy(cat)
	case "min":
		rec, err = d.store.MinBy(cat)
	default:
		return echo.NewHTTPError(http.StatusNotFound, "kind must be max or min")
	}
	if err != nil {
		return queryError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"category": cat,
		"kind":     c.Param("kind"),
		"year":     rec.Year,
		"rate":     rec.Rate(cat),
		"count":    rec.Count(cat),
		"record":   rec,
	})
}

func (h *Handler) GetPopulationChanges(c echo.Context) error {
	d, err := h.loaded()
	if err != nil {
		return err
	}

	changes, err := d.store.PopulationChanges()
	if err != nil {
		return queryError(err)
	}
	return c.JSON(http.StatusOK, changes)
}

func (h *Handler) GetSummary(c echo.Context) error {
	d, err := h.loaded()
	if err != nil {
		return err
	}
	if d.summary == nil {
		return queryError(engine.ErrNoData)
	}
	return c.JSON(http.StatusOK, d.summary)
}
