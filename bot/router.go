package bot

import (
	"fmt"
	"time"

	"f1-route-bot/internal/config"
	"f1-route-bot/internal/database"
	"f1-route-bot/internal/directory"
	"f1-route-bot/internal/logger"
	"f1-route-bot/internal/registry"
	"f1-route-bot/internal/session"
	"f1-route-bot/internal/sheets"
	"f1-route-bot/internal/telegram/requests"

	"github.com/allegro/bigcache/v3"
	"github.com/gin-gonic/gin"
)

// шапка перед копією повідомлення: хто, що і коли.
// для анонімних звернень особа відправника не розкривається
func buildHeader(ticket database.Ticket, dir *directory.Directory, from *requests.User) string {
	header := fmt.Sprintf("🟦 Нове звернення #%s\nКатегорія: %s\nЧас: %s",
		ticket.ID,
		dir.CategoryLabel(ticket.Category),
		ticket.CreatedAt.Format("02.01.2006 15:04"),
	)

	if ticket.Anonymous {
		return header + "\nВід: анонімно"
	}

	fromLine := fmt.Sprintf("Від: %s (id %d)", from.FullName(), from.ID)
	if from.Username != "" {
		fromLine += " @" + from.Username
	}
	return header + "\n" + fromLine
}

// routeTicket створює звернення і розсилає шапку з копією повідомлення
// всім активним групам і співробітникам. Помилка доставки одному адресату
// не зупиняє решту і не показується користувачу
func routeTicket(c *gin.Context, msg *requests.Message, chatState *session.Chat) error {
	cnf := c.MustGet("cnf").(*config.Conf)
	tg := c.MustGet("tg").(Sender)
	cache := c.MustGet("cache").(*bigcache.BigCache)
	store := c.MustGet("store").(*database.Store)
	dir := c.MustGet("dir").(*directory.Directory)
	reg := c.MustGet("registry").(*registry.Registry)
	sheetsLog := c.MustGet("sheets").(*sheets.Logger)

	ticket, err := reg.Create(msg.From.ID, chatState.IsAnonymous(), chatState.Category)
	if err != nil {
		return err
	}

	logger.Event("Нове звернення", ticket.ID, "категорія", ticket.Category)

	header := buildHeader(ticket, dir, msg.From)

	// 1) у робочі групи, зі статусними кнопками на шапці
	for _, group := range activeGroups(mergedGroups(cnf, dir, store)) {
		if err := tg.SendMessage(c, group.ChatID, header, statusKeyboard(ticket.ID)); err != nil {
			logger.Warning("Не вдалося передати шапку в групу", group.ChatID, err)
			continue
		}
		if err := tg.CopyMessage(c, group.ChatID, msg.Chat.ID, msg.MessageID); err != nil {
			logger.Warning("Не вдалося передати копію в групу", group.ChatID, err)
		}
	}

	// 2) в особисті співробітникам, без статусних кнопок
	for _, member := range activeStaff(mergedStaff(dir, store)) {
		if err := tg.SendMessage(c, member.UserID, header, nil); err != nil {
			logger.Warning("Не вдалося написати співробітнику", member.UserID, err)
			continue
		}
		if err := tg.CopyMessage(c, member.UserID, msg.Chat.ID, msg.MessageID); err != nil {
			logger.Warning("Не вдалося передати копію співробітнику", member.UserID, err)
		}
	}

	// рівно одне підтвердження користувачу, текст залежить від графіку
	reply := dir.Config.Messages.OffHoursReply
	if dir.IsWorkingTime(time.Now()) {
		reply = dir.Config.Messages.WorkHoursReply
	}
	if err := tg.SendMessage(c, msg.Chat.ID, reply, nil); err != nil {
		logger.Warning("Не вдалося надіслати підтвердження", msg.From.ID, err)
	}

	sheetsLog.LogEvent(c, sheets.Event{
		Event:         "new_ticket",
		Timestamp:     ticket.CreatedAt,
		CaseID:        ticket.ID,
		Anonymous:     ticket.Anonymous,
		CategoryKey:   ticket.Category,
		CategoryLabel: dir.CategoryLabel(ticket.Category),
		MessageType:   msg.Type(),
		Text:          msg.Text,
		UserID:        msg.From.ID,
		Username:      msg.From.Username,
		FullName:      msg.From.FullName(),
		Status:        ticket.Status,
	})

	return chatState.ResetToMenu(cache, msg.From.ID)
}
