package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"leasely/models"
	"leasely/services/search"
	"leasely/utils"
)

const dateLayout = "2006-01-02"

// SearchHandler serves the search, autocomplete and availability endpoints.
type SearchHandler struct {
	Service  search.SearchService
	Cache    *redis.Client
	Logger   *zap.Logger
	CacheTTL time.Duration
	Timeout  time.Duration
}

func NewSearchHandler(svc search.SearchService, cache *redis.Client, logger *zap.Logger, ttl, timeout time.Duration) *SearchHandler {
	return &SearchHandler{Service: svc, Cache: cache, Logger: logger, CacheTTL: ttl, Timeout: timeout}
}

// Search handles GET /api/search?q=...&date=YYYY-MM-DD.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "query parameter 'q' is required")
		return
	}

	date := time.Now()
	if ds := c.Query("date"); ds != "" {
		parsed, err := time.Parse(dateLayout, ds)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	ctx := c.Request.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	cacheKey := "search:" + date.Format(dateLayout) + ":" + query
	if h.Cache != nil {
		if cached, err := h.Cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		}
	}

	result, err := h.Service.Search(ctx, query, date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "search failed", err.Error())
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "search failed", err.Error())
		return
	}
	// Cancelled/partial results are not cached.
	if h.Cache != nil && !result.Cancelled {
		if err := h.Cache.Set(context.Background(), cacheKey, body, h.CacheTTL).Err(); err != nil {
			h.Logger.Warn("failed to cache search result", zap.Error(err))
		}
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Autocomplete handles GET /api/autocomplete?q=...
func (h *SearchHandler) Autocomplete(c *gin.Context) {
	centres, err := h.Service.Autocomplete(c.Request.Context(), c.Query("q"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "autocomplete failed", err.Error())
		return
	}
	if centres == nil {
		centres = []models.Centre{}
	}
	c.JSON(http.StatusOK, centres)
}

// SpaceCalendar handles GET /api/spaces/:id/calendar?start=...&end=...
// The window defaults to four weeks from today.
func (h *SearchHandler) SpaceCalendar(c *gin.Context) {
	spaceID := c.Param("id")

	start := time.Now()
	if ds := c.Query("start"); ds != "" {
		parsed, err := time.Parse(dateLayout, ds)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "start must be YYYY-MM-DD")
			return
		}
		start = parsed
	}
	end := start.AddDate(0, 0, 27)
	if ds := c.Query("end"); ds != "" {
		parsed, err := time.Parse(dateLayout, ds)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "end must be YYYY-MM-DD")
			return
		}
		end = parsed
	}

	bookings, err := h.Service.Calendar(c.Request.Context(), spaceID, start, end)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load calendar", err.Error())
		return
	}
	if bookings == nil {
		bookings = []models.BookingInterval{}
	}
	c.JSON(http.StatusOK, gin.H{"spaceId": spaceID, "bookings": bookings})
}

// CheckBooking handles POST /api/bookings/check. It runs the same overlap
// predicate the search calendar uses; the answer is advisory and the write
// point re-verifies.
func (h *SearchHandler) CheckBooking(c *gin.Context) {
	var input struct {
		SpaceID          string `json:"spaceId" binding:"required"`
		Start            string `json:"start" binding:"required"`
		End              string `json:"end" binding:"required"`
		ExcludeBookingID string `json:"excludeBookingId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	start, err := time.Parse(dateLayout, input.Start)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "start must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, input.End)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "end must be YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "end must not precede start")
		return
	}

	available, err := h.Service.CheckAvailability(c.Request.Context(), input.SpaceID, start, end, input.ExcludeBookingID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "availability check failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"spaceId": input.SpaceID, "available": available})
}
