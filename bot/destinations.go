package bot

import (
	"sort"
	"strconv"

	"f1-route-bot/internal/config"
	"f1-route-bot/internal/database"
	"f1-route-bot/internal/directory"
)

// Адресати розсилки збираються з двох джерел: довідник (правиться руками
// у файлі) і сховище стану (правиться адмін-командами). Записи зі сховища
// мають пріоритет при збігу id

func mergedStaff(d *directory.Directory, store *database.Store) map[int64]database.StaffMember {
	result := make(map[int64]database.StaffMember)

	for id, entry := range d.Staff {
		uid, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		result[uid] = database.StaffMember{
			UserID:   uid,
			Username: entry.Username,
			Name:     entry.Name,
			Active:   entry.Active,
		}
	}

	stored := make(map[string]database.StaffMember)
	_, _ = store.Get("staff", &stored)
	for id, member := range stored {
		uid, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		member.UserID = uid
		result[uid] = member
	}

	return result
}

func mergedGroups(cnf *config.Conf, d *directory.Directory, store *database.Store) map[int64]database.GroupTarget {
	result := make(map[int64]database.GroupTarget)

	if cnf.GroupID != 0 {
		result[cnf.GroupID] = database.GroupTarget{ChatID: cnf.GroupID, Active: true}
	}

	for id, entry := range d.Groups {
		gid, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		result[gid] = database.GroupTarget{
			ChatID: gid,
			Name:   entry.Name,
			Active: entry.Active,
		}
	}

	stored := make(map[string]database.GroupTarget)
	_, _ = store.Get("groups", &stored)
	for id, group := range stored {
		gid, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		group.ChatID = gid
		result[gid] = group
	}

	return result
}

// активні адресати у стабільному порядку
func activeStaff(staff map[int64]database.StaffMember) []database.StaffMember {
	var active []database.StaffMember
	for _, m := range staff {
		if m.Active {
			active = append(active, m)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].UserID < active[j].UserID })
	return active
}

func activeGroups(groups map[int64]database.GroupTarget) []database.GroupTarget {
	var active []database.GroupTarget
	for _, g := range groups {
		if g.Active {
			active = append(active, g)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ChatID < active[j].ChatID })
	return active
}

// співробітник - власник або активний запис у списку
func isStaff(userID int64, cnf *config.Conf, staff map[int64]database.StaffMember) bool {
	if userID == cnf.OwnerID {
		return true
	}
	m, ok := staff[userID]
	return ok && m.Active
}
