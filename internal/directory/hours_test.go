package directory

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeDirectory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "directory.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write directory: %v", err)
	}
	return path
}

func TestIsWorkingTime_inclusiveBounds(t *testing.T) {
	d, err := Load(writeDirectory(t, `
config:
  timezone: UTC
  working_hours:
    mon: [["09:00", "18:00"]]
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// понеділок 2024-01-01
	monday := func(clock string) time.Time {
		ts, err := time.Parse("2006-01-02 15:04", "2024-01-01 "+clock)
		if err != nil {
			t.Fatalf("parse time: %v", err)
		}
		return ts
	}

	tests := []struct {
		clock string
		want  bool
	}{
		{"08:59", false},
		{"09:00", true},
		{"12:30", true},
		{"18:00", true},
		{"18:01", false},
	}
	for _, tt := range tests {
		if got := d.IsWorkingTime(monday(tt.clock)); got != tt.want {
			t.Errorf("IsWorkingTime(mon %s) = %v, want %v", tt.clock, got, tt.want)
		}
	}

	// субота без інтервалів завжди неробоча
	saturday, _ := time.Parse("2006-01-02 15:04", "2024-01-06 12:00")
	if d.IsWorkingTime(saturday) {
		t.Error("IsWorkingTime(sat 12:00) = true, want false")
	}
}

func TestIsWorkingTime_timezone(t *testing.T) {
	d, err := Load(writeDirectory(t, `
config:
  timezone: Europe/Kyiv
  working_hours:
    mon: [["09:00", "18:00"]]
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// 07:30 UTC взимку = 09:30 у Києві
	ts, _ := time.Parse("2006-01-02 15:04", "2024-01-01 07:30")
	if !d.IsWorkingTime(ts) {
		t.Error("07:30 UTC у понеділок має бути робочим часом у Києві")
	}

	// 06:30 UTC = 08:30 у Києві, ще не робочий час
	ts, _ = time.Parse("2006-01-02 15:04", "2024-01-01 06:30")
	if d.IsWorkingTime(ts) {
		t.Error("06:30 UTC у понеділок ще не робочий час у Києві")
	}
}

func TestCompileSchedule_dropsInvalidIntervals(t *testing.T) {
	d, err := Load(writeDirectory(t, `
config:
  timezone: UTC
  working_hours:
    mon: [["18:00", "09:00"], ["ні", "08:00"], ["10:00"], ["12:00", "13:00"]]
    fooday: [["09:00", "18:00"]]
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := len(d.schedule[time.Monday]); got != 1 {
		t.Fatalf("після відкидання має лишитись 1 інтервал, є %d", got)
	}
	if sp := d.schedule[time.Monday][0]; sp.start != 12*60 || sp.end != 13*60 {
		t.Errorf("лишився не той інтервал: %+v", sp)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12", 0, true},
		{"aa:bb", 0, true},
	}
	for _, tt := range tests {
		got, err := parseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseClock(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
