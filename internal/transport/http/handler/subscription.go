package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blogpress/internal/app"
	"blogpress/internal/transport/http/response"
)

type SubscriptionHandler struct {
	subscriptionService *app.SubscriptionService
}

type RequestSubscriptionRequest struct {
	Email string `json:"email" binding:"required,max=200"`
}

func NewSubscriptionHandler(subscriptionService *app.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) Request(c *gin.Context) {
	var req RequestSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	if err := h.subscriptionService.RequestSubscription(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidEmail):
			response.Error(c, http.StatusBadRequest, response.CodeInvalidEmail, err.Error())
		case errors.Is(err, app.ErrAlreadySubscribed):
			response.Error(c, http.StatusConflict, response.CodeAlreadySubscribed, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "request subscription failed")
		}
		return
	}

	response.OK(c, gin.H{"message": "an email has been sent with instructions to subscribe to the monthly newsletter"})
}

func (h *SubscriptionHandler) Redeem(c *gin.Context) {
	subscriber, err := h.subscriptionService.RedeemSubscription(c.Request.Context(), c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidOrExpiredToken):
			response.Error(c, http.StatusBadRequest, response.CodeInvalidOrExpiredToken, err.Error())
		case errors.Is(err, app.ErrAlreadySubscribed):
			response.Error(c, http.StatusConflict, response.CodeAlreadySubscribed, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "confirm subscription failed")
		}
		return
	}

	response.OK(c, gin.H{
		"message":    "you have successfully subscribed to the monthly newsletter",
		"subscriber": subscriber,
	})
}

func (h *SubscriptionHandler) List(c *gin.Context) {
	actor := actorFromContext(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	subscribers, err := h.subscriptionService.ListSubscribers(actor, page, 12)
	if err != nil {
		respondSubscriptionError(c, err, "list subscribers failed")
		return
	}
	response.OK(c, gin.H{"page": page, "subscribers": subscribers})
}

func (h *SubscriptionHandler) Delete(c *gin.Context) {
	actor := actorFromContext(c)
	id, err := parseIDParam(c, "subscriber_id")
	if err != nil {
		return
	}

	if err := h.subscriptionService.DeleteSubscriber(actor, id); err != nil {
		respondSubscriptionError(c, err, "delete subscriber failed")
		return
	}
	response.OK(c, gin.H{"message": "subscriber has been deleted"})
}

func respondSubscriptionError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	case errors.Is(err, app.ErrSubscriberNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
