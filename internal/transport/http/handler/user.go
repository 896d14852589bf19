package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blogpress/internal/app"
	"blogpress/internal/model"
	"blogpress/internal/transport/http/response"
)

type UserHandler struct {
	userService *app.UserService
}

type SetAdminRequest struct {
	Admin *bool `json:"admin" binding:"required"`
}

func NewUserHandler(userService *app.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *gin.Context) {
	actor := actorFromContext(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	users, err := h.userService.ListUsers(actor, page, 12)
	if err != nil {
		respondUserError(c, err, "list users failed")
		return
	}

	views := make([]gin.H, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i]))
	}
	response.OK(c, gin.H{"page": page, "users": views})
}

func (h *UserHandler) Detail(c *gin.Context) {
	actor := actorFromContext(c)
	id, err := parseIDParam(c, "user_id")
	if err != nil {
		return
	}

	user, err := h.userService.GetUserDetail(actor, id)
	if err != nil {
		respondUserError(c, err, "fetch user failed")
		return
	}
	response.OK(c, userView(user))
}

func (h *UserHandler) SetAdmin(c *gin.Context) {
	actor := actorFromContext(c)
	id, err := parseIDParam(c, "user_id")
	if err != nil {
		return
	}

	var req SetAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	if err := h.userService.SetAdminStatus(actor, id, *req.Admin); err != nil {
		respondUserError(c, err, "update admin status failed")
		return
	}
	response.OK(c, gin.H{"user_id": id, "admin": *req.Admin})
}

func (h *UserHandler) Delete(c *gin.Context) {
	actor := actorFromContext(c)
	id, err := parseIDParam(c, "user_id")
	if err != nil {
		return
	}

	adminDelete, err := h.userService.DeleteUser(actor, id)
	if err != nil {
		respondUserError(c, err, "delete user failed")
		return
	}

	message := "your account has been deleted"
	if adminDelete {
		message = "user has been deleted"
	}
	response.OK(c, gin.H{"message": message})
}

func respondUserError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	case errors.Is(err, app.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid id")
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func userView(user *model.User) gin.H {
	return gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"admin":       user.Admin,
		"profile_pic": user.ProfilePic,
		"created_at":  user.CreatedAt,
	}
}
