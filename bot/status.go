package bot

import (
	"fmt"
	"strings"
	"time"

	"f1-route-bot/internal/config"
	"f1-route-bot/internal/database"
	"f1-route-bot/internal/directory"
	"f1-route-bot/internal/logger"
	"f1-route-bot/internal/registry"
	"f1-route-bot/internal/sheets"
	"f1-route-bot/internal/telegram/requests"

	"github.com/gin-gonic/gin"
)

// processStatusAction обробляє натискання статусної кнопки під шапкою
// звернення. Дані кнопки: st:<ticket_id>:<status>
func processStatusAction(c *gin.Context, cb *requests.CallbackQuery) {
	cnf := c.MustGet("cnf").(*config.Conf)
	tg := c.MustGet("tg").(Sender)
	store := c.MustGet("store").(*database.Store)
	dir := c.MustGet("dir").(*directory.Directory)
	reg := c.MustGet("registry").(*registry.Registry)
	sheetsLog := c.MustGet("sheets").(*sheets.Logger)

	// не співробітник - мовчки ігноруємо, щоб не розкривати
	// хто входить у список
	if !isStaff(cb.From.ID, cnf, mergedStaff(dir, store)) {
		_ = tg.AnswerCallback(c, cb.ID, "", false)
		return
	}

	parts := strings.Split(strings.TrimPrefix(cb.Data, CB_STATUS_PREFIX), ":")
	if len(parts) != 2 || !database.IsKnownStatus(parts[1]) {
		logger.Warning("некоректні дані статусної кнопки:", cb.Data)
		_ = tg.AnswerCallback(c, cb.ID, "", false)
		return
	}
	ticketID, status := parts[0], parts[1]

	actor := cb.From.FullName()
	if actor == "" {
		actor = "@" + cb.From.Username
	}

	found, err := reg.SetStatus(ticketID, status, actor)
	if err != nil {
		logger.Warning("Error while set status", ticketID, err)
		_ = tg.AnswerCallback(c, cb.ID, "Не вдалося оновити статус", true)
		return
	}
	if !found {
		// помилку бачить тільки той хто натиснув
		_ = tg.AnswerCallback(c, cb.ID, "Звернення #"+ticketID+" не знайдено", true)
		return
	}

	logger.Event("Статус звернення", ticketID, "->", status, "від", actor)

	_ = tg.AnswerCallback(c, cb.ID, "Статус оновлено", false)

	// окреме підтвердження в той самий чат; оригінальну шапку
	// не редагуємо, щоб не втратити зміст звернення
	if cb.Message != nil {
		confirmation := fmt.Sprintf("Звернення #%s: %s — %s", ticketID, statusLabel(status), actor)
		if err := tg.ReplyMessage(c, cb.Message.Chat.ID, cb.Message.MessageID, confirmation, nil); err != nil {
			logger.Warning("Не вдалося надіслати підтвердження статусу", err)
		}
	}

	sheetsLog.LogEvent(c, sheets.Event{
		Event:     "status_change",
		Timestamp: time.Now().UTC(),
		CaseID:    ticketID,
		Status:    status,
		Actor:     actor,
	})
}
