package store

import (
	"slices"

	"reminders-server/models"
)

// SortReminders orders reminders important-first, then oldest-first within
// each importance group. The sort is stable so equal timestamps keep their
// insertion order.
func SortReminders(reminders []models.Reminder) {
	slices.SortStableFunc(reminders, compareReminders)
}

func compareReminders(a, b models.Reminder) int {
	if a.Important != b.Important {
		if a.Important {
			return -1
		}
		return 1
	}
	return a.CreatedAt.Compare(b.CreatedAt)
}
