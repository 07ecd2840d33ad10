package handler

import (
	"github.com/gin-gonic/gin"

	"lightbnb/src/app/http/dto"
	"lightbnb/src/app/http/response"
	"lightbnb/src/app/middleware"
	"lightbnb/src/core/usecase"
)

// UserHandler handles registration, login and profile endpoints.
type UserHandler struct {
	userService *usecase.UserService
}

func NewUserHandler(userService *usecase.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register POST /v1/users
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.ToDomain())
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, dto.UserFromDomain(user))
}

// Login POST /v1/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	user, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, dto.UserFromDomain(user))
}

// Me GET /v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.respondUser(c, userID)
}

// Get GET /v1/users/:user_id
func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}
	h.respondUser(c, userID)
}

func (h *UserHandler) respondUser(c *gin.Context, id int64) {
	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, dto.UserFromDomain(user))
}
