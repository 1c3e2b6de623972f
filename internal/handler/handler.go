package handler

import (
	"github.com/aps-extract/extract-service/internal/aps"
	"github.com/aps-extract/extract-service/internal/model"
	"github.com/aps-extract/extract-service/internal/service"
	"github.com/aps-extract/extract-service/internal/ws"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	services *service.Service
	auth     *aps.Authenticator
	hub      *ws.Hub
}

func New(services *service.Service, auth *aps.Authenticator, hub *ws.Hub) *Handler {
	return &Handler{
		services: services,
		auth:     auth,
		hub:      hub,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()

	router.SetTrustedProxies(nil)

	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	router.GET("/contentshub", func(c *gin.Context) {
		h.hub.HandleConnection(c.Writer, c.Request)
	})

	api := router.Group("/api/aps")
	{
		oauth := api.Group("/oauth")
		{
			oauth.GET("/signin", h.oauthSignin)
			oauth.GET("/callback", h.oauthCallback)
			oauth.GET("/signout", h.oauthSignout)
			oauth.GET("/token", h.mwAuth, h.oauthToken)
		}

		api.GET("/user/profile", h.mwAuth, h.userProfile)
		api.GET("/datamanagement", h.mwAuth, h.dataManagementTree)

		resource := api.Group("/resource", h.mwAuth)
		{
			resource.GET("/info", h.resourceInfo)
			resource.GET("/items", h.resourceItems)
			resource.GET("/history", h.resourceHistory)
		}
	}

	return router
}

func (h *Handler) getTokens(c *gin.Context) *model.Tokens {
	tokensReq, _ := c.Get("tokens")

	tokens, ok := tokensReq.(model.Tokens)
	if !ok {
		return nil
	}

	return &tokens
}
