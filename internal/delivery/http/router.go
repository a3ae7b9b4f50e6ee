package http

import (
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// NewRouter builds the HTTP surface: a health check, and in webhook mode an
// endpoint that decodes Telegram updates into the same channel the polling
// mode feeds. webhookPath is empty when running on long polling.
func NewRouter(webhookPath string, updates chan<- tgbotapi.Update) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	if webhookPath != "" {
		router.POST(webhookPath, func(c *gin.Context) {
			var update tgbotapi.Update
			if err := c.ShouldBindJSON(&update); err != nil {
				log.Warn().Err(err).Msg("failed to decode webhook update")
				c.Status(http.StatusBadRequest)
				return
			}
			updates <- update
			c.Status(http.StatusOK)
		})
	}

	return router
}
