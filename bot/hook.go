package bot

import (
	"context"

	"f1-route-bot/internal/config"
	"f1-route-bot/internal/logger"
	"f1-route-bot/internal/telegram/client"

	"github.com/gin-gonic/gin"
)

func InitHooks(app *gin.Engine, cnf *config.Conf, tg *client.Client) {
	logger.Info("Init receiving endpoint...")

	app.POST("/telegram/receive/", Receive)

	logger.Info("Setup webhook on Telegram...")

	_, err := tg.SetHook(context.Background(), cnf.Server.Host+"/telegram/receive/", cnf.Telegram.HookSecret)
	if err != nil {
		logger.Crit("Error while setup hook:", err)
	}
}

func DestroyHooks(tg *client.Client) {
	logger.Info("Destroy webhook on Telegram...")

	_, err := tg.DeleteHook(context.Background())
	if err != nil {
		logger.Warning("Error while delete hook:", err)
	}
}
