package database

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"sync"

	"f1-route-bot/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/natefinch/atomic"
)

// Store - сховище стану в одному json-файлі.
// Get/Put працюють з вузькими підключами ("staff", "groups", "tickets/<id>",
// "counters/<name>"), тому паралельні оновлення різних ключів не
// перетирають одне одного: кожен запис зливається в повний документ
// під м'ютексом і пишеться атомарно через тимчасовий файл
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// завантажити весь документ; відсутній чи зіпсований файл -> порожній документ
func (s *Store) load() map[string]json.RawMessage {
	doc := make(map[string]json.RawMessage)

	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warning("Не вдалося прочитати файл стану", s.path, err)
		}
		return doc
	}

	if err := json.Unmarshal(b, &doc); err != nil {
		logger.Warning("Зіпсований файл стану, починаємо з порожнього", s.path, err)
		return make(map[string]json.RawMessage)
	}
	return doc
}

// Get читає значення підключа у out. Повертає false якщо ключа немає
func (s *Store) Get(key string, out interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := lookup(s.load(), strings.Split(key, "/"))
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// Put пише значення підключа і зберігає весь документ
func (s *Store) Put(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	doc := s.load()
	if err := insert(doc, strings.Split(key, "/"), raw); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	return atomic.WriteFile(s.path, bytes.NewReader(data))
}

func lookup(doc map[string]json.RawMessage, path []string) (json.RawMessage, bool) {
	raw, ok := doc[path[0]]
	if !ok {
		return nil, false
	}
	if len(path) == 1 {
		return raw, true
	}

	var nested map[string]json.RawMessage
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, false
	}
	return lookup(nested, path[1:])
}

func insert(doc map[string]json.RawMessage, path []string, value json.RawMessage) error {
	if len(path) == 1 {
		doc[path[0]] = value
		return nil
	}

	nested := make(map[string]json.RawMessage)
	if raw, ok := doc[path[0]]; ok {
		if err := json.Unmarshal(raw, &nested); err != nil {
			logger.Warning("Підключ має не той тип, перезаписуємо", path[0], err)
			nested = make(map[string]json.RawMessage)
		}
	}

	if err := insert(nested, path[1:], value); err != nil {
		return err
	}

	raw, err := json.Marshal(nested)
	if err != nil {
		return err
	}
	doc[path[0]] = raw
	return nil
}

func InjectStore(key string, s *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(key, s)
	}
}
