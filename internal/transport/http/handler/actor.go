package handler

import (
	"github.com/gin-gonic/gin"

	"blogpress/internal/app"
	"blogpress/internal/transport/http/middleware"
)

// actorFromContext rebuilds the authenticated identity the JWT middleware
// stored. Without a session it returns the zero Actor, which every
// guarded service call rejects.
func actorFromContext(c *gin.Context) app.Actor {
	actor := app.Actor{}
	if v, ok := c.Get(middleware.ContextUserIDKey); ok {
		if id, ok := v.(uint); ok {
			actor.ID = id
		}
	}
	if v, ok := c.Get(middleware.ContextUsernameKey); ok {
		if username, ok := v.(string); ok {
			actor.Username = username
		}
	}
	if v, ok := c.Get(middleware.ContextAdminKey); ok {
		if admin, ok := v.(bool); ok {
			actor.Admin = admin
		}
	}
	return actor
}
