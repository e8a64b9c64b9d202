package bot

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"f1-route-bot/internal/config"
	"f1-route-bot/internal/database"
	"f1-route-bot/internal/directory"
	"f1-route-bot/internal/logger"
	"f1-route-bot/internal/registry"
	"f1-route-bot/internal/session"
	"f1-route-bot/internal/telegram/requests"

	"github.com/allegro/bigcache/v3"
	"github.com/gin-gonic/gin"
	"github.com/kballard/go-shellquote"
)

const helpText = `Доступні команди:
/menu - головне меню
/staff - список співробітників (тільки власник)
/groups - список робочих груп (тільки власник)
/addstaff <user_id> [@username] ["Ім'я"] - додати співробітника (тільки власник)
/removestaff <user_id> - деактивувати співробітника (тільки власник)
/setgroup <group_id> - додати групу для пересилки (тільки власник)
/report [діб] - звіт за останні дні (тільки власник)

⚠️ Співробітник має натиснути /start боту,
інакше Telegram не дозволить писати йому в особисті.`

func processCommand(c *gin.Context, msg *requests.Message, cmd string) {
	cnf := c.MustGet("cnf").(*config.Conf)
	tg := c.MustGet("tg").(Sender)
	cache := c.MustGet("cache").(*bigcache.BigCache)
	dir := c.MustGet("dir").(*directory.Directory)

	switch cmd {
	case "/start", "/menu":
		chatState := session.GetState(cache, msg.From.ID)
		if err := chatState.ResetToMenu(cache, msg.From.ID); err != nil {
			logger.Warning("Error while reset state", err)
		}
		if err := tg.SendMessage(c, msg.Chat.ID, dir.Config.Messages.Greeting, menuKeyboard(dir)); err != nil {
			logger.Warning("Error while send greeting", err)
		}
		return

	case "/help":
		if err := tg.SendMessage(c, msg.Chat.ID, helpText, nil); err != nil {
			logger.Warning("Error while send help", err)
		}
		return
	}

	// решта команд - адмінські
	if msg.From.ID != cnf.OwnerID {
		if err := tg.SendMessage(c, msg.Chat.ID, dir.Config.Messages.AccessDenied, nil); err != nil {
			logger.Warning("Error while send denial", err)
		}
		return
	}

	var reply string
	switch cmd {
	case "/setgroup":
		reply = cmdSetGroup(c, msg.CommandArgs())
	case "/addstaff":
		reply = cmdAddStaff(c, msg.CommandArgs())
	case "/removestaff":
		reply = cmdRemoveStaff(c, msg.CommandArgs())
	case "/staff":
		reply = cmdListStaff(c)
	case "/groups":
		reply = cmdListGroups(c)
	case "/report":
		reply = cmdReport(c, msg.CommandArgs())
	default:
		reply = "Невідома команда. Команди: /help"
	}

	if err := tg.SendMessage(c, msg.Chat.ID, reply, nil); err != nil {
		logger.Warning("Error while send command reply", err)
	}
}

func cmdSetGroup(c *gin.Context, args string) string {
	store := c.MustGet("store").(*database.Store)

	fields, err := shellquote.Split(args)
	if err != nil || len(fields) == 0 {
		return "Використання: /setgroup <group_id>\nНаприклад: -1001234567890"
	}

	gid, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return "group_id має бути числом."
	}

	group := database.GroupTarget{ChatID: gid, Active: true}
	if len(fields) >= 2 {
		group.Name = strings.Join(fields[1:], " ")
	}

	if err := store.Put("groups/"+fields[0], group); err != nil {
		logger.Warning("Error while save group", err)
		return "Не вдалося зберегти групу."
	}

	return fmt.Sprintf("✅ Робочу групу встановлено: %d", gid)
}

func cmdAddStaff(c *gin.Context, args string) string {
	store := c.MustGet("store").(*database.Store)

	// shellquote дозволяє імена з пробілами в лапках
	fields, err := shellquote.Split(args)
	if err != nil || len(fields) == 0 {
		return "Використання: /addstaff <user_id> [@username] [\"Ім'я\"]"
	}

	uid, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return "user_id має бути числом."
	}

	member := database.StaffMember{UserID: uid, Active: true}
	if len(fields) >= 2 {
		member.Username = strings.TrimPrefix(fields[1], "@")
	}
	if len(fields) >= 3 {
		member.Name = strings.TrimSpace(strings.Join(fields[2:], " "))
	}

	if err := store.Put("staff/"+fields[0], member); err != nil {
		logger.Warning("Error while save staff", err)
		return "Не вдалося зберегти співробітника."
	}

	return fmt.Sprintf("✅ Співробітника додано: %d", uid)
}

func cmdRemoveStaff(c *gin.Context, args string) string {
	store := c.MustGet("store").(*database.Store)

	fields, err := shellquote.Split(args)
	if err != nil || len(fields) == 0 {
		return "Використання: /removestaff <user_id>"
	}

	uid, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return "user_id має бути числом."
	}

	var member database.StaffMember
	found, err := store.Get("staff/"+fields[0], &member)
	if err != nil {
		logger.Warning("Error while read staff", err)
	}
	if !found {
		return "Такого співробітника немає."
	}

	// м'яке видалення: запис лишається, розсилка його пропускає
	member.Active = false
	if err := store.Put("staff/"+fields[0], member); err != nil {
		logger.Warning("Error while save staff", err)
		return "Не вдалося зберегти зміни."
	}

	return fmt.Sprintf("✅ Співробітника деактивовано: %d", uid)
}

func cmdListStaff(c *gin.Context) string {
	store := c.MustGet("store").(*database.Store)
	dir := c.MustGet("dir").(*directory.Directory)

	staff := mergedStaff(dir, store)
	if len(staff) == 0 {
		return "Список співробітників порожній."
	}

	members := make([]database.StaffMember, 0, len(staff))
	for _, m := range staff {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].UserID < members[j].UserID })

	lines := make([]string, 0, len(members)+1)
	lines = append(lines, "👥 Співробітники:")
	for _, m := range members {
		line := fmt.Sprintf("- %d", m.UserID)
		if m.Username != "" {
			line += " @" + m.Username
		}
		if m.Name != "" {
			line += " " + m.Name
		}
		if !m.Active {
			line += " (неактивний)"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func cmdListGroups(c *gin.Context) string {
	cnf := c.MustGet("cnf").(*config.Conf)
	store := c.MustGet("store").(*database.Store)
	dir := c.MustGet("dir").(*directory.Directory)

	groups := mergedGroups(cnf, dir, store)
	if len(groups) == 0 {
		return "Список робочих груп порожній."
	}

	targets := make([]database.GroupTarget, 0, len(groups))
	for _, g := range groups {
		targets = append(targets, g)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].ChatID < targets[j].ChatID })

	lines := make([]string, 0, len(targets)+1)
	lines = append(lines, "💬 Робочі групи:")
	for _, g := range targets {
		line := fmt.Sprintf("- %d", g.ChatID)
		if g.Name != "" {
			line += " " + g.Name
		}
		if !g.Active {
			line += " (неактивна)"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func cmdReport(c *gin.Context, args string) string {
	dir := c.MustGet("dir").(*directory.Directory)
	reg := c.MustGet("registry").(*registry.Registry)

	days := 7
	if fields, err := shellquote.Split(args); err == nil && len(fields) > 0 {
		v, err := strconv.Atoi(fields[0])
		if err != nil || v <= 0 {
			return "Кількість діб має бути додатним числом."
		}
		days = v
	}

	report, err := reg.Report(days)
	if err != nil {
		logger.Warning("Error while build report", err)
		return "Не вдалося сформувати звіт."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Звіт за %d діб\nУсього звернень: %d\nАнонімних: %d\n", days, report.Total, report.Anonymous)

	if len(report.ByCategory) != 0 {
		b.WriteString("\nЗа категоріями:\n")
		for _, key := range sortedKeys(report.ByCategory) {
			fmt.Fprintf(&b, "- %s: %d\n", dir.CategoryLabel(key), report.ByCategory[key])
		}
	}
	if len(report.ByStatus) != 0 {
		b.WriteString("\nЗа статусами:\n")
		for _, key := range sortedKeys(report.ByStatus) {
			fmt.Fprintf(&b, "- %s: %d\n", statusLabel(key), report.ByStatus[key])
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
