package handler

import (
	"github.com/bright-horizons-travel/service-booking/internal/application"
	"github.com/bright-horizons-travel/service-booking/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler serves the admin read surface over customer records.
type CustomerHandler struct {
	service *application.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *application.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// RegisterRoutes registers the customer routes behind the admin gate.
func (h *CustomerHandler) RegisterRoutes(r *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	customers := r.Group("/api/v1/customers", adminOnly)
	{
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)
	}
}

// ListCustomers handles GET /api/v1/customers.
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.service.ListCustomers(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetCustomer handles GET /api/v1/customers/:id.
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid customer ID")
		return
	}

	result, err := h.service.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
