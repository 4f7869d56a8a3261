package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	usersdomain "github.com/pustakahq/bookstore-api/internal/domains/users/domain"
	usersports "github.com/pustakahq/bookstore-api/internal/domains/users/ports"
)

type authHandler struct {
	users usersports.Service
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(user *usersdomain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}

func (h *authHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	user, err := h.users.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "user registered", toUserResponse(user))
}

func (h *authHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "login successful", gin.H{"token": token})
}

func (h *authHandler) me(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), authenticatedUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "profile retrieved", toUserResponse(user))
}
