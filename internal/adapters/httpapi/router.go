// Package httpapi wires the signaling endpoint into a gin router.
package httpapi

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/openvoice/voiceroom/internal/adapters/signal"
	"github.com/openvoice/voiceroom/internal/config"
	"github.com/openvoice/voiceroom/internal/service/local"
)

// ClientTokenMiddleware pins an anonymous identity cookie on every caller;
// it backs the uid fallback of the signaling endpoint.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = uuid.NewString()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(cfg *config.Config, hub *local.Hub) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("VoiceroomSessions", store))
	r.Use(ClientTokenMiddleware())

	log.Info().Str("module", "adapters.httpapi").Msg("router setup")

	ctrl := signal.NewController(hub)
	ctrl.ReadLimit = cfg.ReadLimit
	ctrl.PingPeriod = cfg.PingPeriod
	api := r.Group("/api")
	api.GET("/ws/signal", ctrl.HandleSignal)
	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(200, hub.List())
	})

	return r
}
