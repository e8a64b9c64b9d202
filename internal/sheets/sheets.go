package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"f1-route-bot/internal/config"
	"f1-route-bot/internal/logger"

	"github.com/gin-gonic/gin"
)

type (
	// Logger дописує події рядками в аркуш Google Sheets.
	// Вимкнений якщо не задано spreadsheet_id або токен
	Logger struct {
		addr          string
		spreadsheetID string
		tab           string
		token         string

		cl *http.Client
	}

	// плоский запис про подію, один рядок журналу
	Event struct {
		Event     string
		Timestamp time.Time
		CaseID    string
		Anonymous bool

		CategoryKey   string
		CategoryLabel string

		MessageType string
		Text        string

		UserID   int64
		Username string
		FullName string

		Status string
		Actor  string
	}
)

func New(cnf config.Sheets) *Logger {
	return &Logger{
		addr:          cnf.Addr,
		spreadsheetID: cnf.SpreadsheetID,
		tab:           cnf.Tab,
		token:         cnf.Token,

		cl: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (l *Logger) Enabled() bool {
	return l.spreadsheetID != "" && l.token != ""
}

// порядок колонок фіксований, не міняти - під нього розмічена таблиця
func (e Event) row() []string {
	text, userID, username, fullName := e.Text, strconv.FormatInt(e.UserID, 10), e.Username, e.FullName
	// для анонімних звернень текст і особа відправника не потрапляють у журнал
	if e.Anonymous {
		text, userID, username, fullName = "", "", "", ""
	}

	return []string{
		e.Event,
		e.Timestamp.UTC().Format(time.RFC3339),
		e.CaseID,
		strconv.FormatBool(e.Anonymous),
		e.CategoryKey,
		e.CategoryLabel,
		e.MessageType,
		text,
		userID,
		username,
		fullName,
		e.Status,
		e.Actor,
	}
}

// LogEvent дописує один рядок. Помилки журналу ніколи не зупиняють бота -
// тільки попередження в лог
func (l *Logger) LogEvent(ctx context.Context, e Event) {
	if !l.Enabled() {
		return
	}

	body, err := json.Marshal(map[string][][]string{
		"values": {e.row()},
	})
	if err != nil {
		logger.Warning("Sheets: не вдалося зібрати запис", err)
		return
	}

	rng := url.PathEscape(l.tab + "!A1")
	reqUrl := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:append?valueInputOption=RAW&insertDataOption=INSERT_ROWS",
		l.addr, l.spreadsheetID, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqUrl, bytes.NewBuffer(body))
	if err != nil {
		logger.Warning("Sheets: не вдалося створити запит", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+l.token)

	resp, err := l.cl.Do(req)
	if err != nil {
		logger.Warning("Sheets: запис не доставлено", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		logger.Warning("Sheets: запис відхилено", resp.StatusCode, string(respBody))
	}
}

func InjectSheets(key string, l *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(key, l)
	}
}
