package directory

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"f1-route-bot/internal/logger"
)

var weekdays = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

func (d *Directory) compileSchedule() error {
	loc := time.UTC
	if d.Config.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(d.Config.Timezone)
		if err != nil {
			logger.Warning("Невідома часова зона, використовуємо UTC:", d.Config.Timezone)
			loc = time.UTC
		}
	}
	d.loc = loc

	d.schedule = make(map[time.Weekday][]span)
	for day, intervals := range d.Config.WorkingHours {
		wd, ok := weekdays[strings.ToLower(day)]
		if !ok {
			logger.Warning("Невідомий день тижня в графіку пропущено:", day)
			continue
		}

		for _, iv := range intervals {
			if len(iv) != 2 {
				logger.Warning("Інтервал графіку має бути парою [start, end], пропущено:", day, iv)
				continue
			}
			start, err1 := parseClock(iv[0])
			end, err2 := parseClock(iv[1])
			if err1 != nil || err2 != nil || start > end {
				logger.Warning("Некоректний інтервал графіку пропущено:", day, iv)
				continue
			}
			d.schedule[wd] = append(d.schedule[wd], span{start: start, end: end})
		}
	}
	return nil
}

// "HH:MM" -> хвилини від початку доби
func parseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("очікувався час HH:MM: %s", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("час поза межами доби: %s", s)
	}
	return h*60 + m, nil
}

// IsWorkingTime - чи потрапляє момент у хоча б один інтервал графіку.
// Межі інтервалів включно; день без інтервалів завжди неробочий
func (d *Directory) IsWorkingTime(t time.Time) bool {
	lt := t.In(d.loc)
	mins := lt.Hour()*60 + lt.Minute()

	for _, sp := range d.schedule[lt.Weekday()] {
		if mins >= sp.start && mins <= sp.end {
			return true
		}
	}
	return false
}
