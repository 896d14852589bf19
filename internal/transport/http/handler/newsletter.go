package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blogpress/internal/app"
	"blogpress/internal/transport/http/response"
)

type NewsletterHandler struct {
	newsletterService *app.NewsletterService
}

func NewNewsletterHandler(newsletterService *app.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

// Create reads a multipart form: subject and message fields plus an
// attachment file, which is required on creation.
func (h *NewsletterHandler) Create(c *gin.Context) {
	input, cleanup, ok := h.newsletterInput(c, true)
	if !ok {
		return
	}
	defer cleanup()

	newsletter, err := h.newsletterService.Create(actorFromContext(c), input)
	if err != nil {
		respondNewsletterError(c, err, "create newsletter failed")
		return
	}
	response.OK(c, newsletter)
}

func (h *NewsletterHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "newsletter_id")
	if err != nil {
		return
	}

	newsletter, err := h.newsletterService.Get(actorFromContext(c), id)
	if err != nil {
		respondNewsletterError(c, err, "fetch newsletter failed")
		return
	}
	response.OK(c, newsletter)
}

func (h *NewsletterHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	newsletters, err := h.newsletterService.List(actorFromContext(c), page, 12)
	if err != nil {
		respondNewsletterError(c, err, "list newsletters failed")
		return
	}
	response.OK(c, gin.H{"page": page, "newsletters": newsletters})
}

func (h *NewsletterHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "newsletter_id")
	if err != nil {
		return
	}

	input, cleanup, ok := h.newsletterInput(c, false)
	if !ok {
		return
	}
	defer cleanup()

	newsletter, err := h.newsletterService.Update(actorFromContext(c), id, input)
	if err != nil {
		respondNewsletterError(c, err, "update newsletter failed")
		return
	}
	response.OK(c, newsletter)
}

func (h *NewsletterHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "newsletter_id")
	if err != nil {
		return
	}

	if err := h.newsletterService.Delete(actorFromContext(c), id); err != nil {
		respondNewsletterError(c, err, "delete newsletter failed")
		return
	}
	response.OK(c, gin.H{"message": "your newsletter has been deleted"})
}

func (h *NewsletterHandler) Broadcast(c *gin.Context) {
	id, err := parseIDParam(c, "newsletter_id")
	if err != nil {
		return
	}

	err = h.newsletterService.Broadcast(c.Request.Context(), actorFromContext(c), id)
	if errors.Is(err, app.ErrNoSubscribers) {
		// Not an error: there was simply nobody to email.
		response.OK(c, gin.H{"sent": false, "message": "newsletter was not emailed, the subscriber list is empty"})
		return
	}
	if err != nil {
		respondNewsletterError(c, err, "broadcast newsletter failed")
		return
	}
	response.OK(c, gin.H{"sent": true, "message": "newsletter has been emailed to all subscribers"})
}

// newsletterInput pulls the form fields and, if present, opens the
// attachment. The returned cleanup closes the attachment and must run
// after the service has consumed the reader.
func (h *NewsletterHandler) newsletterInput(c *gin.Context, attachmentRequired bool) (app.NewsletterInput, func(), bool) {
	input := app.NewsletterInput{
		Subject: c.PostForm("subject"),
		Message: c.PostForm("message"),
	}
	cleanup := func() {}

	fileHeader, err := c.FormFile("attachment")
	if err != nil {
		if attachmentRequired {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "attachment file is required")
			return input, cleanup, false
		}
		return input, cleanup, true
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "read attachment failed")
		return input, cleanup, false
	}

	input.Attachment = file
	input.AttachmentName = fileHeader.Filename
	return input, func() { _ = file.Close() }, true
}

func respondNewsletterError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	case errors.Is(err, app.ErrNewsletterNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	case errors.Is(err, app.ErrDispatchFailed):
		response.Error(c, http.StatusBadGateway, response.CodeDispatchFailed, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
