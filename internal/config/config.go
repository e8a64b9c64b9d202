package config

import (
	"os"
	"strconv"

	"f1-route-bot/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

const TELEGRAM_SERVER = "https://api.telegram.org"
const SHEETS_SERVER = "https://sheets.googleapis.com"

type (
	// налаштування застосунку
	Conf struct {
		Server Server `yaml:"server"`

		Telegram Telegram `yaml:"telegram"`
		Sheets   Sheets   `yaml:"sheets"`

		// файл зі станом виконання (групи, співробітники, звернення)
		DataFile string `yaml:"data_file"`
		// файл довідників (категорії, графік роботи, тексти)
		DirectoryFile string `yaml:"directory"`

		// id власника бота
		OwnerID int64 `yaml:"owner_id"`
		// робоча група за замовчуванням
		GroupID int64 `yaml:"group_id"`

		RunInDebug bool `yaml:"-"`
	}

	Server struct {
		// зовнішня адреса на яку Telegram шле вебхук
		Host   string `yaml:"host"`
		Listen string `yaml:"listen"`
	}

	Telegram struct {
		Addr string `yaml:"addr"`
		// токен бота, тільки з оточення
		Token string `yaml:"-"`
		// секрет вебхука, генерується на старті
		HookSecret string `yaml:"-"`
	}

	Sheets struct {
		Addr          string `yaml:"addr"`
		SpreadsheetID string `yaml:"spreadsheet_id"`
		Tab           string `yaml:"tab"`
		// токен сервісного акаунта, тільки з оточення
		Token string `yaml:"-"`
	}
)

func GetConfig(configPath string, cnf *Conf) {
	logger.Debug("Loading configuration")

	// .env не обов'язковий, секрети можуть бути в оточенні напряму
	_ = godotenv.Load()

	input, err := os.Open(configPath)
	if err != nil {
		logger.Crit("Error while reading config!")
	}
	defer input.Close()

	decoder := yaml.NewDecoder(input)
	err = decoder.Decode(cnf)
	if err != nil {
		logger.Crit("Error while decoding config!")
	}

	if cnf.Telegram.Addr == "" {
		cnf.Telegram.Addr = TELEGRAM_SERVER
	}
	if cnf.Sheets.Addr == "" {
		cnf.Sheets.Addr = SHEETS_SERVER
	}
	if cnf.DataFile == "" {
		cnf.DataFile = "./bot_data.json"
	}
	if cnf.Sheets.Tab == "" {
		cnf.Sheets.Tab = "log"
	}

	cnf.Telegram.Token = os.Getenv("TELEGRAM_BOT_TOKEN")
	cnf.Sheets.Token = os.Getenv("F1_SHEETS_TOKEN")

	if v := os.Getenv("F1_BOT_DATA"); v != "" {
		cnf.DataFile = v
	}
	if v, err := strconv.ParseInt(os.Getenv("BOT_OWNER_ID"), 10, 64); err == nil && v != 0 {
		cnf.OwnerID = v
	}
	if v, err := strconv.ParseInt(os.Getenv("ROUTING_GROUP_ID"), 10, 64); err == nil && v != 0 {
		cnf.GroupID = v
	}
}

func Inject(key string, cnf *Conf) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(key, cnf)
	}
}
