package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogpress/internal/app"
	"blogpress/internal/transport/http/response"
)

type PasswordResetHandler struct {
	resetService *app.PasswordResetService
}

type RequestResetRequest struct {
	Email string `json:"email" binding:"required,email,max=200"`
}

type RedeemResetRequest struct {
	Password string `json:"password" binding:"required,min=8,max=128"`
}

func NewPasswordResetHandler(resetService *app.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{resetService: resetService}
}

func (h *PasswordResetHandler) Request(c *gin.Context) {
	var req RequestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	if err := h.resetService.RequestReset(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrNoSuchAccount):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "request reset failed")
		}
		return
	}

	response.OK(c, gin.H{"message": "an email has been sent with instructions to reset your password"})
}

func (h *PasswordResetHandler) Redeem(c *gin.Context) {
	var req RedeemResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	if err := h.resetService.RedeemReset(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrInvalidOrExpiredToken):
			response.Error(c, http.StatusBadRequest, response.CodeInvalidOrExpiredToken, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "reset password failed")
		}
		return
	}

	response.OK(c, gin.H{"message": "your password has been updated"})
}
