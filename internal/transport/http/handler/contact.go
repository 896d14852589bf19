package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogpress/internal/app"
	"blogpress/internal/transport/http/response"
)

type ContactHandler struct {
	contactService *app.ContactService
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,max=200"`
	Message string `json:"message" binding:"required"`
}

func NewContactHandler(contactService *app.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	err := h.contactService.SubmitQuery(c.Request.Context(), app.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrInvalidEmail):
			response.Error(c, http.StatusBadRequest, response.CodeInvalidEmail, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "submit query failed")
		}
		return
	}

	response.OK(c, gin.H{"message": "your query has been received, we will respond as soon as we can"})
}
