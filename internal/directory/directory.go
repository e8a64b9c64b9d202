package directory

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"sync"

	"f1-route-bot/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-yaml"
)

var lock = &sync.RWMutex{}
var dir *Directory

func InitDirectory(path string) *Directory {
	if dir == nil {
		lock.Lock()
		defer lock.Unlock()
		if dir == nil {
			var err error
			dir, err = Load(path)
			if err != nil {
				logger.Crit(err)
			}
		} else {
			logger.Warning("Directory already created")
		}
	} else {
		logger.Warning("Directory already created")
	}
	return dir
}

func (_ *Directory) UpdateDirectory(path string) error {
	newDir, err := Load(path)
	if err != nil {
		return err
	}
	*dir = *newDir
	return nil
}

func Load(path string) (*Directory, error) {
	input, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не вдалося прочитати довідники: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewBuffer(input))
	d := &Directory{}
	if err := dec.Decode(d); err != nil {
		return nil, fmt.Errorf("не вдалося розібрати довідники: %w", err)
	}

	d.dropInvalid()
	setDefaultMessages(d)

	if err := d.compileSchedule(); err != nil {
		return nil, err
	}

	return d, nil
}

// невалідні записи відкидаються з попередженням, решта працює далі
func (d *Directory) dropInvalid() {
	kept := d.Categories[:0]
	seen := make(map[string]bool)
	for _, c := range d.Categories {
		if c.Key == "" || c.Label == "" {
			logger.Warning("Категорія без key або label пропущена:", c.Key, c.Label)
			continue
		}
		if seen[c.Key] {
			logger.Warning("Дублікат категорії пропущено:", c.Key)
			continue
		}
		seen[c.Key] = true
		kept = append(kept, c)
	}
	d.Categories = kept

	for id := range d.Staff {
		if _, err := strconv.ParseInt(id, 10, 64); err != nil {
			logger.Warning("Співробітник з нечисловим id пропущений:", id)
			delete(d.Staff, id)
		}
	}
	for id := range d.Groups {
		if _, err := strconv.ParseInt(id, 10, 64); err != nil {
			logger.Warning("Група з нечисловим id пропущена:", id)
			delete(d.Groups, id)
		}
	}
}

func setDefaultMessages(d *Directory) {
	m := &d.Config.Messages
	if m.Greeting == "" {
		m.Greeting = "Вітаю! Я офіційний бот ГО «Ф1».\n\nНатисніть «Подати звернення» - я передам його команді."
	}
	if m.AnonQuestion == "" {
		m.AnonQuestion = "Бажаєте залишитись анонімним?"
	}
	if m.CategoryQuestion == "" {
		m.CategoryQuestion = "Оберіть категорію звернення:"
	}
	if m.MessagePrompt == "" {
		m.MessagePrompt = "Напишіть ваше звернення одним повідомленням."
	}
	if m.Cancelled == "" {
		m.Cancelled = "Добре, скасовано. Ви завжди можете почати знову."
	}
	if m.StartOver == "" {
		m.StartOver = "Щоб подати звернення, скористайтесь меню нижче."
	}
	if m.WorkHoursReply == "" {
		m.WorkHoursReply = "✅ Дякуємо! Повідомлення передано команді."
	}
	if m.OffHoursReply == "" {
		m.OffHoursReply = "🌙 Дякуємо! Зараз неробочий час, команда відповість найближчого робочого дня."
	}
	if m.AccessDenied == "" {
		m.AccessDenied = "⛔ Немає доступу."
	}
}

// пошук категорії за ключем
func (d *Directory) Category(key string) (Category, bool) {
	for _, c := range d.Categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// підпис категорії, сам ключ якщо категорію вже прибрали з довідника
func (d *Directory) CategoryLabel(key string) string {
	if c, ok := d.Category(key); ok {
		return c.Label
	}
	return key
}

func InjectDirectory(key string, d *Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(key, d)
	}
}
