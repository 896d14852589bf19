package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "blogpress/internal/app"
	"blogpress/internal/bootstrap"
	"blogpress/internal/cache"
	"blogpress/internal/pkg/actiontoken"
	rabbitmqClient "blogpress/internal/platform/rabbitmq"
	"blogpress/internal/repository"
	"blogpress/internal/transport/http/handler"
	"blogpress/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	postRepo := repository.NewPostRepository(app.MySQL)
	commentRepo := repository.NewCommentRepository(app.MySQL)
	replyRepo := repository.NewReplyRepository(app.MySQL)
	subscriberRepo := repository.NewSubscriberRepository(app.MySQL)
	newsletterRepo := repository.NewNewsletterRepository(app.MySQL)

	codec := actiontoken.NewCodec(app.Config.Token.Secret)
	mailPublisher := rabbitmqClient.NewMailPublisher(app.MQConn, app.Config.RabbitMQ.MailQueue)
	feedCache := cache.NewFeedCache(app.Redis, time.Duration(app.Config.Redis.FeedTTLSeconds)*time.Second)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	userService := appsvc.NewUserService(userRepo)
	resetService := appsvc.NewPasswordResetService(
		userRepo,
		codec,
		mailPublisher,
		app.Config.App.BaseURL,
		app.Config.ResetTokenMaxAge(),
	)
	subscriptionService := appsvc.NewSubscriptionService(
		subscriberRepo,
		codec,
		mailPublisher,
		app.Config.App.BaseURL,
		app.Config.SubscribeTokenMaxAge(),
	)
	postService := appsvc.NewPostService(postRepo, commentRepo, replyRepo, feedCache)
	contactService := appsvc.NewContactService(mailPublisher, app.Config.Mail.ContactEmail)
	newsletterService := appsvc.NewNewsletterService(newsletterRepo, subscriberRepo, app.Attachments, app.Mailer)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	resetHandler := handler.NewPasswordResetHandler(resetService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	postHandler := handler.NewPostHandler(postService)
	newsletterHandler := handler.NewNewsletterHandler(newsletterService)
	contactHandler := handler.NewContactHandler(contactService)

	authRequired := middleware.AuthJWT(app.Config.Auth.JWTSecret)

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authRequired, authHandler.Me)
	authGroup.PUT("/account", authRequired, authHandler.UpdateAccount)

	v1.POST("/reset-password", resetHandler.Request)
	v1.POST("/reset-password/:token", resetHandler.Redeem)

	v1.POST("/subscribe", subscriptionHandler.Request)
	v1.POST("/subscribe/:token", subscriptionHandler.Redeem)

	subscriberGroup := v1.Group("/subscribers", authRequired)
	subscriberGroup.GET("", subscriptionHandler.List)
	subscriberGroup.DELETE("/:subscriber_id", subscriptionHandler.Delete)

	userGroup := v1.Group("/users", authRequired)
	userGroup.GET("", userHandler.List)
	userGroup.GET("/:user_id", userHandler.Detail)
	userGroup.PUT("/:user_id/admin", userHandler.SetAdmin)
	userGroup.DELETE("/:user_id", userHandler.Delete)

	v1.POST("/contact", contactHandler.Submit)

	postGroup := v1.Group("/posts")
	postGroup.GET("", postHandler.List)
	postGroup.GET("/search", postHandler.Search)
	postGroup.GET("/:post_id", postHandler.Get)
	postGroup.POST("", authRequired, postHandler.Create)
	postGroup.PUT("/:post_id", authRequired, postHandler.Update)
	postGroup.DELETE("/:post_id", authRequired, postHandler.Delete)
	postGroup.POST("/:post_id/comments", authRequired, postHandler.AddComment)
	v1.POST("/comments/:comment_id/replies", authRequired, postHandler.AddReply)

	newsletterGroup := v1.Group("/newsletters", authRequired)
	newsletterGroup.POST("", newsletterHandler.Create)
	newsletterGroup.GET("", newsletterHandler.List)
	newsletterGroup.GET("/:newsletter_id", newsletterHandler.Get)
	newsletterGroup.PUT("/:newsletter_id", newsletterHandler.Update)
	newsletterGroup.DELETE("/:newsletter_id", newsletterHandler.Delete)
	newsletterGroup.POST("/:newsletter_id/email", newsletterHandler.Broadcast)

	return router
}
