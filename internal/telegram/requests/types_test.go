package requests

import "testing"

func TestMessage_Command(t *testing.T) {
	for _, tt := range []struct {
		text string
		cmd  string
		args string
	}{
		{"/start", "/start", ""},
		{"/start@F1RouteBot", "/start", ""},
		{"/addstaff 123 \"Оля Іванова\"", "/addstaff", "123 \"Оля Іванова\""},
		{"/report 30", "/report", "30"},
		{"просто текст", "", ""},
		{"", "", ""},
	} {
		m := Message{Text: tt.text}
		if got := m.Command(); got != tt.cmd {
			t.Errorf("Command(%q) = %q, очікувалось %q", tt.text, got, tt.cmd)
		}
		if got := m.CommandArgs(); got != tt.args {
			t.Errorf("CommandArgs(%q) = %q, очікувалось %q", tt.text, got, tt.args)
		}
	}
}

func TestMessage_Type(t *testing.T) {
	for _, tt := range []struct {
		name string
		msg  Message
		want string
	}{
		{"text", Message{Text: "привіт"}, MESSAGE_TEXT},
		{"photo", Message{Photo: []PhotoSize{{FileID: "f1"}}}, MESSAGE_PHOTO},
		{"document", Message{Document: &Document{FileID: "f2"}}, MESSAGE_DOCUMENT},
		{"voice", Message{Voice: &Voice{FileID: "f3"}}, MESSAGE_VOICE},
		{"video", Message{Video: &Video{FileID: "f4"}}, MESSAGE_VIDEO},
		{"other", Message{}, MESSAGE_OTHER},
	} {
		if got := tt.msg.Type(); got != tt.want {
			t.Errorf("%s: Type() = %q, очікувалось %q", tt.name, got, tt.want)
		}
	}
}

func TestUser_FullName(t *testing.T) {
	u := User{FirstName: "Петро", LastName: "Петренко"}
	if got := u.FullName(); got != "Петро Петренко" {
		t.Errorf("FullName() = %q", got)
	}

	u = User{FirstName: "Петро"}
	if got := u.FullName(); got != "Петро" {
		t.Errorf("FullName() без прізвища = %q", got)
	}
}
