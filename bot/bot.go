package bot

import (
	"context"
	"net/http"
	"strings"

	"f1-route-bot/internal/config"
	"f1-route-bot/internal/database"
	"f1-route-bot/internal/directory"
	"f1-route-bot/internal/logger"
	"f1-route-bot/internal/session"
	"f1-route-bot/internal/telegram/requests"

	"github.com/allegro/bigcache/v3"
	"github.com/gin-gonic/gin"
)

// Sender - операції платформи, які потрібні боту.
// *client.Client реалізує інтерфейс; у тестах підставляється фейк
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, keyboard *requests.InlineKeyboardMarkup) error
	ReplyMessage(ctx context.Context, chatID, replyTo int64, text string, keyboard *requests.InlineKeyboardMarkup) error
	CopyMessage(ctx context.Context, toChatID, fromChatID, messageID int64) error
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error
}

func InjectSender(key string, tg Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(key, tg)
	}
}

func Receive(c *gin.Context) {
	cnf := c.MustGet("cnf").(*config.Conf)

	if cnf.Telegram.HookSecret != "" && c.GetHeader("X-Telegram-Bot-Api-Secret-Token") != cnf.Telegram.HookSecret {
		c.Status(http.StatusForbidden)
		return
	}

	var upd requests.Update
	if err := c.BindJSON(&upd); err != nil {
		logger.Warning("Error while receive update", err)

		c.Status(http.StatusBadRequest)
		return
	}

	logger.Debug("Receive update:", upd)

	cCp := c.Copy()
	go func(c *gin.Context, upd requests.Update) {
		if upd.CallbackQuery != nil {
			processCallback(c, upd.CallbackQuery)
			return
		}
		if upd.Message != nil {
			processMessage(c, upd.Message)
		}
	}(cCp, upd)

	c.Status(http.StatusOK)
}

func processMessage(c *gin.Context, msg *requests.Message) {
	tg := c.MustGet("tg").(Sender)
	cache := c.MustGet("cache").(*bigcache.BigCache)
	dir := c.MustGet("dir").(*directory.Directory)

	// реагуємо тільки на людей у приватному чаті,
	// групове листування і чужих ботів пропускаємо
	if msg.From == nil || msg.From.IsBot || msg.Chat.Type != "private" {
		return
	}

	if cmd := msg.Command(); cmd != "" {
		processCommand(c, msg, cmd)
		return
	}

	m := dir.Config.Messages
	chatState := session.GetState(cache, msg.From.ID)

	switch chatState.CurrentState {
	case database.WAIT_MESSAGE:
		// захисний інваріант: без категорії звернення не створюється
		if chatState.Category == "" {
			logger.Warning("стан await_message без категорії, скидаємо в меню:", msg.From.ID)
			if err := chatState.ResetToMenu(cache, msg.From.ID); err != nil {
				logger.Warning("Error while reset state", err)
			}
			if err := tg.SendMessage(c, msg.Chat.ID, m.StartOver, menuKeyboard(dir)); err != nil {
				logger.Warning("Error while send menu", err)
			}
			return
		}

		if err := routeTicket(c, msg, &chatState); err != nil {
			logger.Warning("Error routeTicket", err)
		}

	case database.ANON:
		if err := tg.SendMessage(c, msg.Chat.ID, m.AnonQuestion, anonKeyboard()); err != nil {
			logger.Warning("Error while send anon question", err)
		}

	case database.CATEGORY:
		if err := tg.SendMessage(c, msg.Chat.ID, m.CategoryQuestion, categoriesKeyboard(dir)); err != nil {
			logger.Warning("Error while send categories", err)
		}

	default:
		// довільний текст поза майстром: не губимо повідомлення,
		// завжди пропонуємо вхід у меню, стан не міняємо
		if err := tg.SendMessage(c, msg.Chat.ID, m.StartOver, menuKeyboard(dir)); err != nil {
			logger.Warning("Error while send menu", err)
		}
	}
}

func processCallback(c *gin.Context, cb *requests.CallbackQuery) {
	tg := c.MustGet("tg").(Sender)
	cache := c.MustGet("cache").(*bigcache.BigCache)
	dir := c.MustGet("dir").(*directory.Directory)

	if strings.HasPrefix(cb.Data, CB_STATUS_PREFIX) {
		processStatusAction(c, cb)
		return
	}

	// майстер працює тільки в приватному чаті
	if cb.Message == nil || cb.Message.Chat.Type != "private" {
		_ = tg.AnswerCallback(c, cb.ID, "", false)
		return
	}

	userID := cb.From.ID
	chatID := cb.Message.Chat.ID
	m := dir.Config.Messages
	chatState := session.GetState(cache, userID)

	var err error
	switch {
	case cb.Data == CB_START:
		err = chatState.ChangeCacheState(cache, userID, database.ANON)
		if sendErr := tg.SendMessage(c, chatID, m.AnonQuestion, anonKeyboard()); sendErr != nil {
			logger.Warning("Error while send anon question", sendErr)
		}

	case cb.Data == CB_CATEGORIES:
		// вибір анонімності з минулого циклу дозволяє пропустити питання
		if chatState.HasAnonChoice() {
			err = chatState.ChangeCacheState(cache, userID, database.CATEGORY)
			if sendErr := tg.SendMessage(c, chatID, m.CategoryQuestion, categoriesKeyboard(dir)); sendErr != nil {
				logger.Warning("Error while send categories", sendErr)
			}
		} else {
			err = chatState.ChangeCacheState(cache, userID, database.ANON)
			if sendErr := tg.SendMessage(c, chatID, m.AnonQuestion, anonKeyboard()); sendErr != nil {
				logger.Warning("Error while send anon question", sendErr)
			}
		}

	case cb.Data == CB_ANON_YES, cb.Data == CB_ANON_NO:
		err = chatState.ChangeCacheAnonymous(cache, userID, cb.Data == CB_ANON_YES)
		if err == nil {
			err = chatState.ChangeCacheState(cache, userID, database.CATEGORY)
		}
		if sendErr := tg.SendMessage(c, chatID, m.CategoryQuestion, categoriesKeyboard(dir)); sendErr != nil {
			logger.Warning("Error while send categories", sendErr)
		}

	case strings.HasPrefix(cb.Data, CB_CAT_PREFIX):
		// категорію можна обрати лише після вибору анонімності
		if !chatState.HasAnonChoice() {
			err = chatState.ChangeCacheState(cache, userID, database.ANON)
			if sendErr := tg.SendMessage(c, chatID, m.AnonQuestion, anonKeyboard()); sendErr != nil {
				logger.Warning("Error while send anon question", sendErr)
			}
			break
		}

		key := strings.TrimPrefix(cb.Data, CB_CAT_PREFIX)
		if _, ok := dir.Category(key); !ok {
			// кнопка могла пережити правку довідника
			_ = tg.AnswerCallback(c, cb.ID, "Категорію не знайдено, оберіть іншу", true)
			if sendErr := tg.SendMessage(c, chatID, m.CategoryQuestion, categoriesKeyboard(dir)); sendErr != nil {
				logger.Warning("Error while send categories", sendErr)
			}
			return
		}

		err = chatState.ChangeCacheCategory(cache, userID, key)
		if err == nil {
			err = chatState.ChangeCacheState(cache, userID, database.WAIT_MESSAGE)
		}
		if sendErr := tg.SendMessage(c, chatID, m.MessagePrompt, cancelKeyboard()); sendErr != nil {
			logger.Warning("Error while send message prompt", sendErr)
		}

	case strings.HasPrefix(cb.Data, CB_INFO_PREFIX):
		section := strings.TrimPrefix(cb.Data, CB_INFO_PREFIX)
		if text, ok := dir.Info[section]; ok {
			if sendErr := tg.SendMessage(c, chatID, text, menuKeyboard(dir)); sendErr != nil {
				logger.Warning("Error while send info", sendErr)
			}
		}

	case cb.Data == CB_HOME:
		// скасування: звернення не створено, компенсувати нічого
		err = chatState.ResetToMenu(cache, userID)
		if sendErr := tg.SendMessage(c, chatID, m.Cancelled, menuKeyboard(dir)); sendErr != nil {
			logger.Warning("Error while send menu", sendErr)
		}

	default:
		logger.Warning("невідомі callback-дані:", cb.Data)
	}

	if err != nil {
		logger.Warning("Error while change state", err)
	}

	_ = tg.AnswerCallback(c, cb.ID, "", false)
}
