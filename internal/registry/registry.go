package registry

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"f1-route-bot/internal/database"

	"github.com/gin-gonic/gin"
)

// алфавіт без схожих символів (0/O, 1/I/L)
const idAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
const idLength = 6

// простір id великий відносно очікуваного потоку звернень,
// тому вичерпання спроб - внутрішня помилка, а не штатна ситуація
const maxIDAttempts = 32

// Registry - облік звернень поверх файлового сховища стану
type Registry struct {
	store *database.Store
}

func New(store *database.Store) *Registry {
	return &Registry{store: store}
}

func generateID() (string, error) {
	b := make([]byte, idLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(idAlphabet))))
		if err != nil {
			return "", err
		}
		b[i] = idAlphabet[n.Int64()]
	}
	return string(b), nil
}

// Create реєструє нове звернення зі статусом new і унікальним id
func (r *Registry) Create(userID int64, anonymous bool, category string) (database.Ticket, error) {
	existing := make(map[string]database.Ticket)
	if _, err := r.store.Get("tickets", &existing); err != nil {
		return database.Ticket{}, err
	}

	var id string
	for attempt := 0; ; attempt++ {
		if attempt == maxIDAttempts {
			return database.Ticket{}, fmt.Errorf("не вдалося підібрати вільний id за %d спроб", maxIDAttempts)
		}

		candidate, err := generateID()
		if err != nil {
			return database.Ticket{}, err
		}
		if _, exist := existing[candidate]; !exist {
			id = candidate
			break
		}
	}

	now := time.Now().UTC()
	ticket := database.Ticket{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    userID,
		Anonymous: anonymous,
		Category:  category,
		Status:    database.STATUS_NEW,
	}

	if err := r.store.Put("tickets/"+id, ticket); err != nil {
		return database.Ticket{}, err
	}

	var created int64
	_, _ = r.store.Get("counters/tickets_created", &created)
	_ = r.store.Put("counters/tickets_created", created+1)

	return ticket, nil
}

func (r *Registry) Get(id string) (ticket database.Ticket, found bool, err error) {
	found, err = r.store.Get("tickets/"+id, &ticket)
	return
}

// SetStatus безумовно перезаписує статус і виконавця.
// Таблиці переходів немає: будь-який статус досяжний з будь-якого,
// при одночасних натисканнях перемагає останній запис
func (r *Registry) SetStatus(id, status, assignee string) (bool, error) {
	var ticket database.Ticket
	found, err := r.store.Get("tickets/"+id, &ticket)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	ticket.Status = status
	ticket.Assignee = assignee
	ticket.UpdatedAt = time.Now().UTC()

	if err := r.store.Put("tickets/"+id, ticket); err != nil {
		return false, err
	}
	return true, nil
}

type Report struct {
	Total      int
	Anonymous  int
	ByCategory map[string]int
	ByStatus   map[string]int
}

// Report рахує звернення за останні sinceDays діб. Тільки читання
func (r *Registry) Report(sinceDays int) (Report, error) {
	report := Report{
		ByCategory: make(map[string]int),
		ByStatus:   make(map[string]int),
	}

	tickets := make(map[string]database.Ticket)
	if _, err := r.store.Get("tickets", &tickets); err != nil {
		return report, err
	}

	since := time.Now().UTC().AddDate(0, 0, -sinceDays)
	for _, t := range tickets {
		if t.CreatedAt.Before(since) {
			continue
		}
		report.Total++
		if t.Anonymous {
			report.Anonymous++
		}
		report.ByCategory[t.Category]++
		report.ByStatus[t.Status]++
	}

	return report, nil
}

func InjectRegistry(key string, r *Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(key, r)
	}
}
