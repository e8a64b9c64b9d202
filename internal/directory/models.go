package directory

import "time"

type (
	// Довідники: категорії, співробітники, групи, тексти, графік роботи.
	// Читаються з одного yaml-файлу, перечитуються при зміні файлу
	Directory struct {
		Categories []Category              `yaml:"categories"`
		Staff      map[string]StaffEntry   `yaml:"staff"`
		Groups     map[string]GroupEntry   `yaml:"groups"`
		Config     Config                  `yaml:"config"`
		Info       map[string]string       `yaml:"info"`

		// розклад скомпільований з Config.WorkingHours
		schedule map[time.Weekday][]span
		loc      *time.Location
	}

	Category struct {
		Key   string `yaml:"key"`
		Label string `yaml:"label"`
	}

	StaffEntry struct {
		Username string `yaml:"username,omitempty"`
		Name     string `yaml:"name,omitempty"`
		Active   bool   `yaml:"active"`
	}

	GroupEntry struct {
		Name   string `yaml:"name,omitempty"`
		Active bool   `yaml:"active"`
	}

	Config struct {
		Timezone string `yaml:"timezone"`
		// день тижня -> список інтервалів [["09:00","18:00"], ...]
		WorkingHours map[string][][]string `yaml:"working_hours"`
		Messages     Messages              `yaml:"messages"`
	}

	Messages struct {
		// текст головного меню
		Greeting string `yaml:"greeting"`
		// питання про анонімність
		AnonQuestion string `yaml:"anon_question"`
		// запрошення вибрати категорію
		CategoryQuestion string `yaml:"category_question"`
		// запрошення написати текст звернення
		MessagePrompt string `yaml:"message_prompt"`
		// відповідь при скасуванні
		Cancelled string `yaml:"cancelled"`
		// відповідь коли текст прийшов поза майстром
		StartOver string `yaml:"start_over"`
		// підтвердження в робочий час
		WorkHoursReply string `yaml:"work_hours_reply"`
		// підтвердження в неробочий час
		OffHoursReply string `yaml:"off_hours_reply"`
		// відмова в доступі
		AccessDenied string `yaml:"access_denied"`
	}

	// інтервал у хвилинах від початку доби, межі включно
	span struct {
		start int
		end   int
	}
)
