package api

import (
	"github.com/gin-gonic/gin"

	"github.com/eoralab/casechat/internal/api/gateway"
	"github.com/eoralab/casechat/internal/api/middleware"
	"github.com/eoralab/casechat/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(gatewayService *service.GatewayService, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Chat page
	SetupStaticRoutes(r)

	// Chat API, forwarded to the assistant backend
	gatewayHandler := gateway.NewHandler(gatewayService)
	apiGroup := r.Group("/api")
	gatewayHandler.RegisterRoutes(apiGroup)

	return r
}
