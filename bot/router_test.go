package bot

import (
	"strings"
	"testing"
	"time"

	"f1-route-bot/internal/database"
	"f1-route-bot/internal/session"
	"f1-route-bot/internal/telegram/requests"
)

func TestBuildHeader(t *testing.T) {
	env := newTestEnv(t)

	ticket := database.Ticket{
		ID:        "AB23CD",
		CreatedAt: time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC),
		Category:  "psy",
	}
	from := &requests.User{ID: 42, FirstName: "Петро", LastName: "Петренко", Username: "petro"}

	header := buildHeader(ticket, env.dir, from)
	for _, want := range []string{"#AB23CD", "Психологічна підтримка", "Петро Петренко", "id 42", "@petro"} {
		if !strings.Contains(header, want) {
			t.Errorf("у шапці немає %q:\n%s", want, header)
		}
	}
}

func TestBuildHeader_anonymousHidesSender(t *testing.T) {
	env := newTestEnv(t)

	ticket := database.Ticket{
		ID:        "AB23CD",
		CreatedAt: time.Now(),
		Category:  "psy",
		Anonymous: true,
	}
	from := &requests.User{ID: 42, FirstName: "Петро", LastName: "Петренко", Username: "petro"}

	header := buildHeader(ticket, env.dir, from)
	if !strings.Contains(header, "анонімно") {
		t.Errorf("анонімна шапка без позначки:\n%s", header)
	}
	for _, leaked := range []string{"Петро", "42", "petro"} {
		if strings.Contains(header, leaked) {
			t.Errorf("анонімна шапка розкриває відправника (%q):\n%s", leaked, header)
		}
	}
}

// недоставка одному адресату не зриває розсилку решті
// і не позбавляє користувача підтвердження
func TestRouteTicket_toleratesDeliveryFailures(t *testing.T) {
	env := newTestEnv(t)
	var userID int64 = 42

	// другий співробітник крім 501 з довідника
	if err := env.store.Put("staff/502", database.StaffMember{UserID: 502, Active: true}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	// співробітник 501 заблокував бота
	env.tg.failSendTo[501] = true

	chatState := session.GetState(env.cache, userID)
	if err := chatState.ChangeCacheAnonymous(env.cache, userID, false); err != nil {
		t.Fatalf("ChangeCacheAnonymous: %v", err)
	}
	if err := chatState.ChangeCacheCategory(env.cache, userID, "legal"); err != nil {
		t.Fatalf("ChangeCacheCategory: %v", err)
	}

	if err := routeTicket(env.c, privateMsg(userID, "питання по документах"), &chatState); err != nil {
		t.Fatalf("routeTicket: %v", err)
	}

	if len(env.tg.callsTo("send", 501)) != 0 {
		t.Error("очікувалась недоставка співробітнику 501")
	}
	if len(env.tg.callsTo("send", 502)) != 1 || len(env.tg.callsTo("copy", 502)) != 1 {
		t.Error("співробітник 502 мав отримати шапку і копію попри збій на 501")
	}
	if len(env.tg.callsTo("send", env.cnf.GroupID)) != 1 {
		t.Error("група мала отримати шапку попри збій на 501")
	}
	if len(env.tg.callsTo("send", userID)) != 1 {
		t.Error("користувач має отримати рівно одне підтвердження")
	}

	// звернення все одно створене
	report, err := env.reg.Report(1)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if report.Total != 1 || report.ByCategory["legal"] != 1 {
		t.Errorf("звіт після розсилки: %+v", report)
	}
}

func TestRouteTicket_anonymousKeepsRealUserIDInRegistry(t *testing.T) {
	env := newTestEnv(t)
	var userID int64 = 42

	chatState := session.GetState(env.cache, userID)
	if err := chatState.ChangeCacheAnonymous(env.cache, userID, true); err != nil {
		t.Fatalf("ChangeCacheAnonymous: %v", err)
	}
	if err := chatState.ChangeCacheCategory(env.cache, userID, "psy"); err != nil {
		t.Fatalf("ChangeCacheCategory: %v", err)
	}

	if err := routeTicket(env.c, privateMsg(userID, "анонімне питання"), &chatState); err != nil {
		t.Fatalf("routeTicket: %v", err)
	}

	// шапка в групі без особи відправника
	groupSends := env.tg.callsTo("send", env.cnf.GroupID)
	if len(groupSends) != 1 || !strings.Contains(groupSends[0].Text, "анонімно") {
		t.Fatalf("шапки в групі: %+v", groupSends)
	}

	// але службовий запис зберігає справжній id для модерації
	tickets := make(map[string]database.Ticket)
	if _, err := env.store.Get("tickets", &tickets); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(tickets) != 1 {
		t.Fatalf("у сховищі %d звернень", len(tickets))
	}
	for _, ticket := range tickets {
		if !ticket.Anonymous || ticket.UserID != userID {
			t.Errorf("службовий запис: %+v", ticket)
		}
	}
}
