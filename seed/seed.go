// Package seed provisions the bootstrap user, and optionally a few sample
// reminders, on an empty store.
package seed

import (
	"context"
	"errors"
	"fmt"

	"reminders-server/auth"
	"reminders-server/config"
	"reminders-server/logging"
	"reminders-server/store"
)

type Store interface {
	store.UserStore
	store.ReminderStore
}

type sample struct {
	content   string
	important bool
}

var samples = []sample{
	{content: "Revisar el sistema de autenticación", important: true},
	{content: "Implementar validaciones"},
	{content: "Documentar la API", important: true},
}

// Run creates the configured user unless it already exists. Sample reminders
// are only added together with a freshly created user, so repeated runs
// never duplicate them.
func Run(ctx context.Context, st Store, cfg config.SeedConfig, log logging.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	_, err := st.GetUserByUsername(ctx, cfg.Username)
	if err == nil {
		log.Debug(ctx, "seed user present", "username", cfg.Username)
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("lookup seed user: %w", err)
	}

	cred, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	user, err := st.CreateUser(ctx, cfg.Username, cfg.Name, cred)
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return nil
		}
		return fmt.Errorf("create seed user: %w", err)
	}
	log.Info(ctx, "seed user created", "username", user.Username, "user_id", user.ID)

	if !cfg.SampleReminders {
		return nil
	}
	for _, s := range samples {
		if _, err := st.CreateReminder(ctx, user.ID, s.content, s.important); err != nil {
			return fmt.Errorf("create sample reminder: %w", err)
		}
	}
	log.Info(ctx, "sample reminders created", "count", len(samples))
	return nil
}
