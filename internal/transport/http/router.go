package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/naemfares/weathermail/internal/token"
	"github.com/naemfares/weathermail/internal/transport/http/handler"
	"github.com/naemfares/weathermail/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	tokens *token.Issuer,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.POST("/register", authHandler.Register)
	r.POST("/token", authHandler.Token)

	authMW := middleware.Auth(tokens)
	r.GET("/me", authMW, authHandler.Me)
	r.POST("/unsubscribe", authMW, subscriptionHandler.Unsubscribe)
	r.POST("/resubscribe", authMW, subscriptionHandler.Resubscribe)

	return r
}
