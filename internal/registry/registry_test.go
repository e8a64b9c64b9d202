package registry

import (
	"path/filepath"
	"testing"
	"time"

	"f1-route-bot/internal/database"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return New(database.NewStore(filepath.Join(t.TempDir(), "bot_data.json")))
}

func TestCreate_uniqueIDs(t *testing.T) {
	reg := newTestRegistry(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ticket, err := reg.Create(100, false, "psy")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if len(ticket.ID) != idLength {
			t.Fatalf("довжина id %q = %d, очікувалось %d", ticket.ID, len(ticket.ID), idLength)
		}
		if seen[ticket.ID] {
			t.Fatalf("id %q видано двічі", ticket.ID)
		}
		seen[ticket.ID] = true
	}
}

func TestCreate_fields(t *testing.T) {
	reg := newTestRegistry(t)

	ticket, err := reg.Create(777, true, "legal")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if ticket.Status != database.STATUS_NEW {
		t.Errorf("статус нового звернення %q, очікувалось new", ticket.Status)
	}
	// для анонімного звернення справжній user_id все одно зберігається
	if ticket.UserID != 777 {
		t.Errorf("UserID = %d, очікувалось 777", ticket.UserID)
	}
	if !ticket.Anonymous || ticket.Category != "legal" {
		t.Errorf("звернення збережено з не тими полями: %+v", ticket)
	}

	stored, found, err := reg.Get(ticket.ID)
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if stored.UserID != 777 {
		t.Errorf("у сховищі UserID = %d, очікувалось 777", stored.UserID)
	}
}

func TestSetStatus_unknownID(t *testing.T) {
	reg := newTestRegistry(t)

	found, err := reg.SetStatus("NOPE99", database.STATUS_DONE, "хтось")
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if found {
		t.Error("SetStatus по невідомому id має повертати false")
	}

	// і нічого не має з'явитись у сховищі
	report, err := reg.Report(1)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if report.Total != 0 {
		t.Errorf("після невдалого SetStatus у сховищі %d звернень", report.Total)
	}
}

func TestSetStatus_overwritesUnconditionally(t *testing.T) {
	reg := newTestRegistry(t)

	ticket, err := reg.Create(1, false, "psy")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// таблиці переходів немає: done -> in_progress теж дозволено
	for _, status := range []string{database.STATUS_DONE, database.STATUS_IN_PROGRESS, database.STATUS_WAITING} {
		found, err := reg.SetStatus(ticket.ID, status, "Оля")
		if err != nil || !found {
			t.Fatalf("SetStatus(%s): found=%v err=%v", status, found, err)
		}
	}

	got, found, err := reg.Get(ticket.ID)
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if got.Status != database.STATUS_WAITING || got.Assignee != "Оля" {
		t.Errorf("статус=%q виконавець=%q після останнього запису", got.Status, got.Assignee)
	}
	if got.UpdatedAt.Before(ticket.UpdatedAt) {
		t.Error("UpdatedAt не оновився")
	}
}

func TestReport(t *testing.T) {
	reg := newTestRegistry(t)

	if _, err := reg.Create(1, false, "psy"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := reg.Create(2, true, "psy"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	ticket, err := reg.Create(3, false, "legal")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := reg.SetStatus(ticket.ID, database.STATUS_DONE, "Оля"); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	report, err := reg.Report(7)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	if report.Total != 3 {
		t.Errorf("Total = %d, очікувалось 3", report.Total)
	}
	if report.Anonymous != 1 {
		t.Errorf("Anonymous = %d, очікувалось 1", report.Anonymous)
	}
	if report.ByCategory["psy"] != 2 || report.ByCategory["legal"] != 1 {
		t.Errorf("ByCategory = %+v", report.ByCategory)
	}
	if report.ByStatus[database.STATUS_NEW] != 2 || report.ByStatus[database.STATUS_DONE] != 1 {
		t.Errorf("ByStatus = %+v", report.ByStatus)
	}
}

func TestReport_window(t *testing.T) {
	reg := newTestRegistry(t)

	ticket, err := reg.Create(1, false, "psy")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// зсуваємо створення за межі вікна прямо в сховищі
	ticket.CreatedAt = time.Now().UTC().AddDate(0, 0, -30)
	if err := reg.store.Put("tickets/"+ticket.ID, ticket); err != nil {
		t.Fatalf("Put: %v", err)
	}

	report, err := reg.Report(7)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if report.Total != 0 {
		t.Errorf("звернення поза вікном потрапило у звіт: %+v", report)
	}
}
