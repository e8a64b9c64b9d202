package bot

import (
	"strings"
	"testing"

	"f1-route-bot/internal/database"
	"f1-route-bot/internal/session"
)

func TestCommand_menuResetsWizard(t *testing.T) {
	env := newTestEnv(t)
	var userID int64 = 42

	processCallback(env.c, privateCallback(userID, CB_START))
	processMessage(env.c, privateMsg(userID, "/menu"))

	if got := session.GetState(env.cache, userID); got.CurrentState != database.MENU {
		t.Errorf("стан після /menu %q", got.CurrentState)
	}

	greeted := false
	for _, call := range env.tg.callsTo("send", userID) {
		if call.Text == env.dir.Config.Messages.Greeting && call.Keyboard != nil {
			greeted = true
		}
	}
	if !greeted {
		t.Error("/menu має відповідати привітанням з клавіатурою меню")
	}
}

func TestCommand_adminOnlyForOwner(t *testing.T) {
	env := newTestEnv(t)

	processMessage(env.c, privateMsg(42, "/staff"))

	sent := env.tg.callsTo("send", 42)
	if len(sent) != 1 || sent[0].Text != env.dir.Config.Messages.AccessDenied {
		t.Errorf("не власнику відповіли: %+v", sent)
	}
}

func TestCommand_addAndRemoveStaff(t *testing.T) {
	env := newTestEnv(t)
	owner := env.cnf.OwnerID

	processMessage(env.c, privateMsg(owner, `/addstaff 777 @taras "Тарас Коваль"`))

	var member database.StaffMember
	found, err := env.store.Get("staff/777", &member)
	if err != nil || !found {
		t.Fatalf("запис співробітника: found=%v err=%v", found, err)
	}
	if member.Username != "taras" || member.Name != "Тарас Коваль" || !member.Active {
		t.Errorf("збережено: %+v", member)
	}

	// тепер 777 співробітник і для розсилки
	staff := activeStaff(mergedStaff(env.dir, env.store))
	ids := make(map[int64]bool)
	for _, m := range staff {
		ids[m.UserID] = true
	}
	if !ids[777] || !ids[501] {
		t.Errorf("активні співробітники: %+v", staff)
	}

	processMessage(env.c, privateMsg(owner, "/removestaff 777"))

	found, err = env.store.Get("staff/777", &member)
	if err != nil || !found {
		t.Fatalf("запис після деактивації: found=%v err=%v", found, err)
	}
	if member.Active {
		t.Error("співробітник мав стати неактивним")
	}

	// м'яке видалення: запис лишився, розсилка пропускає
	for _, m := range activeStaff(mergedStaff(env.dir, env.store)) {
		if m.UserID == 777 {
			t.Error("деактивований співробітник у списку розсилки")
		}
	}
}

func TestCommand_removeUnknownStaff(t *testing.T) {
	env := newTestEnv(t)

	processMessage(env.c, privateMsg(env.cnf.OwnerID, "/removestaff 888"))

	sent := env.tg.callsTo("send", env.cnf.OwnerID)
	if len(sent) != 1 || !strings.Contains(sent[0].Text, "немає") {
		t.Errorf("відповідь на видалення невідомого: %+v", sent)
	}
}

func TestCommand_setGroup(t *testing.T) {
	env := newTestEnv(t)

	processMessage(env.c, privateMsg(env.cnf.OwnerID, `/setgroup -100300 "Чергова зміна"`))

	var group database.GroupTarget
	found, err := env.store.Get("groups/-100300", &group)
	if err != nil || !found {
		t.Fatalf("запис групи: found=%v err=%v", found, err)
	}
	if group.ChatID != -100300 || group.Name != "Чергова зміна" || !group.Active {
		t.Errorf("збережено: %+v", group)
	}

	// обидві групи в розсилці: з конфігурації і додана командою
	groups := activeGroups(mergedGroups(env.cnf, env.dir, env.store))
	if len(groups) != 2 {
		t.Errorf("активні групи: %+v", groups)
	}
}

func TestCommand_report(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.reg.Create(1, false, "psy"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := env.reg.Create(2, true, "legal"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	processMessage(env.c, privateMsg(env.cnf.OwnerID, "/report 30"))

	sent := env.tg.callsTo("send", env.cnf.OwnerID)
	if len(sent) != 1 {
		t.Fatalf("відповідей на /report: %d", len(sent))
	}
	for _, want := range []string{"30 діб", "Усього звернень: 2", "Анонімних: 1", "Психологічна підтримка: 1", "Юридична допомога: 1"} {
		if !strings.Contains(sent[0].Text, want) {
			t.Errorf("у звіті немає %q:\n%s", want, sent[0].Text)
		}
	}
}

func TestCommand_badArguments(t *testing.T) {
	env := newTestEnv(t)
	owner := env.cnf.OwnerID

	for _, tt := range []struct {
		cmd  string
		want string
	}{
		{"/addstaff", "Використання"},
		{"/addstaff abc", "числом"},
		{"/setgroup", "Використання"},
		{"/report нуль", "додатним числом"},
	} {
		env.tg.mu.Lock()
		env.tg.calls = nil
		env.tg.mu.Unlock()

		processMessage(env.c, privateMsg(owner, tt.cmd))
		sent := env.tg.callsTo("send", owner)
		if len(sent) != 1 || !strings.Contains(sent[0].Text, tt.want) {
			t.Errorf("%s: відповідь %+v, очікувалось %q", tt.cmd, sent, tt.want)
		}
	}
}
