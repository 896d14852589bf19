package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blogpress/internal/app"
	"blogpress/internal/transport/http/response"
)

type PostHandler struct {
	postService *app.PostService
}

type PostRequest struct {
	Title    string `json:"title" binding:"required,max=150"`
	Subtitle string `json:"subtitle" binding:"required,max=200"`
	Category string `json:"category" binding:"required,max=50"`
	Content  string `json:"content" binding:"required"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func NewPostHandler(postService *app.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), actorFromContext(c), app.PostInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Category: req.Category,
		Content:  req.Content,
	})
	if err != nil {
		respondPostError(c, err, "create post failed")
		return
	}
	response.OK(c, post)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "post_id")
	if err != nil {
		return
	}

	post, err := h.postService.GetPost(id)
	if err != nil {
		respondPostError(c, err, "fetch post failed")
		return
	}
	response.OK(c, post)
}

func (h *PostHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	posts, err := h.postService.ListPosts(c.Request.Context(), page, 12)
	if err != nil {
		respondPostError(c, err, "list posts failed")
		return
	}
	response.OK(c, gin.H{"page": page, "posts": posts})
}

// Search filters the feed by content substring, category, archive year or
// author username, in that order of precedence.
func (h *PostHandler) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	year, _ := strconv.Atoi(c.Query("year"))

	posts, err := h.postService.SearchPosts(app.PostSearchQuery{
		Content:  c.Query("q"),
		Category: c.Query("category"),
		Year:     year,
		Author:   c.Query("author"),
	}, page, 12)
	if err != nil {
		respondPostError(c, err, "search posts failed")
		return
	}
	response.OK(c, gin.H{"page": page, "posts": posts})
}

func (h *PostHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "post_id")
	if err != nil {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), actorFromContext(c), id, app.PostInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Category: req.Category,
		Content:  req.Content,
	})
	if err != nil {
		respondPostError(c, err, "update post failed")
		return
	}
	response.OK(c, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "post_id")
	if err != nil {
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), actorFromContext(c), id); err != nil {
		respondPostError(c, err, "delete post failed")
		return
	}
	response.OK(c, gin.H{"message": "your post has been deleted"})
}

func (h *PostHandler) AddComment(c *gin.Context) {
	id, err := parseIDParam(c, "post_id")
	if err != nil {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	comment, err := h.postService.AddComment(actorFromContext(c), id, req.Content)
	if err != nil {
		respondPostError(c, err, "add comment failed")
		return
	}
	response.OK(c, comment)
}

func (h *PostHandler) AddReply(c *gin.Context) {
	id, err := parseIDParam(c, "comment_id")
	if err != nil {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	reply, err := h.postService.AddReply(actorFromContext(c), id, req.Content)
	if err != nil {
		respondPostError(c, err, "add reply failed")
		return
	}
	response.OK(c, reply)
}

func respondPostError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	case errors.Is(err, app.ErrPostNotFound), errors.Is(err, app.ErrCommentNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
