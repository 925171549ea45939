package handler

import (
	"strconv"
	"time"

	"github.com/bright-horizons-travel/service-booking/internal/application"
	bookingDomain "github.com/bright-horizons-travel/service-booking/internal/domain/booking"
	"github.com/bright-horizons-travel/service-booking/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
	stats   *application.StatsService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService, stats *application.StatsService) *BookingHandler {
	return &BookingHandler{service: service, stats: stats}
}

// RegisterRoutes registers all booking routes. Submission is public; everything
// else sits behind the admin gate.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	bookings := r.Group("/api/v1/bookings")
	{
		bookings.POST("", h.CreateBooking)

		admin := bookings.Group("", adminOnly)
		{
			admin.GET("", h.ListBookings)
			admin.GET("/stats", h.GetStats)
			admin.GET("/stats/grouped", h.GetGroupedStats)
			admin.GET("/reference/:reference", h.GetBookingByReference)
			admin.GET("/:id", h.GetBooking)
			admin.PATCH("/:id", h.UpdateBooking)
			admin.POST("/:id/cancel", h.CancelBooking)
		}
	}
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var sub bookingDomain.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), sub)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListBookings handles GET /api/v1/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	page, limit := parsePagination(c)

	result, err := h.service.ListBookings(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBookingByReference handles GET /api/v1/bookings/reference/:reference.
func (h *BookingHandler) GetBookingByReference(c *gin.Context) {
	result, err := h.service.GetBookingByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateBooking handles PATCH /api/v1/bookings/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	var req application.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateBooking(c.Request.Context(), bookingID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	result, err := h.service.CancelBooking(c.Request.Context(), bookingID, body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetStats handles GET /api/v1/bookings/stats.
func (h *BookingHandler) GetStats(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.stats.GetBookingStats(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetGroupedStats handles GET /api/v1/bookings/stats/grouped.
func (h *BookingHandler) GetGroupedStats(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	groupBy := c.DefaultQuery("groupBy", application.GroupByMonth)
	includeDetails := c.Query("includeDetails") == "true"

	result, err := h.stats.GetGroupedStats(c.Request.Context(), from, to, groupBy, includeDetails)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// --- Query parsing helpers ---

func parseListFilter(c *gin.Context) (bookingDomain.ListFilter, error) {
	var filter bookingDomain.ListFilter

	if v := c.Query("status"); v != "" {
		status, err := bookingDomain.ParseStatus(v)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	if v := c.Query("bookingType"); v != "" {
		bookingType := bookingDomain.BookingType(v)
		filter.BookingType = &bookingType
	}
	if v := c.Query("priority"); v != "" {
		priority := bookingDomain.Priority(v)
		filter.Priority = &priority
	}
	if v := c.Query("isActive"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}
	filter.CustomerEmail = c.Query("customerEmail")
	filter.AssignedAgent = c.Query("assignedAgent")
	filter.SortBy = c.Query("sortBy")
	filter.SortDesc = c.DefaultQuery("sortOrder", "desc") == "desc"

	return filter, nil
}

func parseDateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if v := c.Query("from"); v != "" {
		parsed, err := bookingDomain.ParseDate(v)
		if err != nil {
			return nil, nil, err
		}
		from = &parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := bookingDomain.ParseDate(v)
		if err != nil {
			return nil, nil, err
		}
		// Inclusive end of day.
		end := parsed.AddDate(0, 0, 1).Add(-time.Second)
		to = &end
	}

	return from, to, nil
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
