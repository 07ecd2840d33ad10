package handler

import (
	"github.com/gin-gonic/gin"

	"lightbnb/src/app/http/dto"
	"lightbnb/src/app/http/response"
	"lightbnb/src/app/middleware"
	"lightbnb/src/core/domain"
	"lightbnb/src/core/usecase"
)

// PropertyHandler handles property search, lookup and creation.
type PropertyHandler struct {
	propertyService *usecase.PropertyService
}

func NewPropertyHandler(propertyService *usecase.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// Search GET /v1/properties
func (h *PropertyHandler) Search(c *gin.Context) {
	var q dto.SearchPropertiesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query", middleware.GetRequestID(c))
		return
	}
	filter, err := q.Filter()
	if err != nil {
		fail(c, err)
		return
	}
	limit, err := q.PageLimit()
	if err != nil {
		fail(c, err)
		return
	}

	results, err := h.propertyService.Search(c.Request.Context(), filter, limit)
	if err != nil {
		fail(c, err)
		return
	}
	limit, _ = domain.NormalizeLimit(limit)
	response.OKList(c, dto.PropertiesFromDomain(results), len(results), limit)
}

// Get GET /v1/properties/:property_id
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "property_id")
	if !ok {
		return
	}

	p, err := h.propertyService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, dto.PropertyFromDomain(p.Property, p.AverageRating))
}

// Create POST /v1/properties. The caller becomes the owner.
func (h *PropertyHandler) Create(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	p, err := h.propertyService.Create(c.Request.Context(), req.ToDomain(ownerID))
	if err != nil {
		fail(c, err)
		return
	}

	// Read back through the same path as GET so the shape matches.
	stored, err := h.propertyService.Get(c.Request.Context(), p.ID)
	if err != nil {
		// The row is committed; answer 201 with the insert's result and leave the error to the request log.
		_ = c.Error(err)
		response.Created(c, dto.PropertyFromDomain(*p, nil))
		return
	}
	response.Created(c, dto.PropertyFromDomain(stored.Property, stored.AverageRating))
}
