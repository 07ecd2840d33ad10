package handler

import (
	"github.com/gin-gonic/gin"

	"lightbnb/src/app/http/dto"
	"lightbnb/src/app/http/response"
	"lightbnb/src/app/middleware"
	"lightbnb/src/core/domain"
	"lightbnb/src/core/usecase"
)

type ReservationHandler struct {
	reservationService *usecase.ReservationService
}

func NewReservationHandler(reservationService *usecase.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// List returns the caller's completed stays.
// GET /v1/reservations?limit=
func (h *ReservationHandler) List(c *gin.Context) {
	guestID, ok := currentUserID(c)
	if !ok {
		return
	}
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query", middleware.GetRequestID(c))
		return
	}
	limit, err := q.PageLimit()
	if err != nil {
		fail(c, err)
		return
	}

	stays, err := h.reservationService.ListForGuest(c.Request.Context(), guestID, limit)
	if err != nil {
		fail(c, err)
		return
	}
	limit, _ = domain.NormalizeLimit(limit)
	response.OKList(c, dto.ReservationsFromDomain(stays), len(stays), limit)
}
