package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Theme names accepted by the UI.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Prefs holds the settings remembered between runs. Quiz results are never
// stored.
type Prefs struct {
	Theme        string
	LastFunction string
	LastStart    int
	LastEnd      int
}

// DefaultPrefs is what Load returns before anything was saved.
func DefaultPrefs() Prefs {
	return Prefs{Theme: ThemeLight}
}

// PrefsRepo loads and saves learner preferences.
type PrefsRepo interface {
	// Load returns saved preferences, or DefaultPrefs if none exist.
	Load(ctx context.Context) (Prefs, error)

	// Save replaces the stored preferences.
	Save(ctx context.Context, p Prefs) error

	// Reset deletes stored preferences.
	Reset(ctx context.Context) error
}

// prefsRepo implements PrefsRepo with a single-row table.
type prefsRepo struct {
	db *sql.DB
}

func (r *prefsRepo) Load(ctx context.Context) (Prefs, error) {
	var p Prefs
	err := r.db.QueryRowContext(ctx,
		`SELECT theme, last_function, last_start, last_end FROM prefs WHERE id = 1`,
	).Scan(&p.Theme, &p.LastFunction, &p.LastStart, &p.LastEnd)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultPrefs(), nil
	}
	if err != nil {
		return Prefs{}, fmt.Errorf("query prefs: %w", err)
	}
	if p.Theme != ThemeDark {
		p.Theme = ThemeLight
	}
	return p, nil
}

func (r *prefsRepo) Save(ctx context.Context, p Prefs) error {
	if p.Theme != ThemeDark {
		p.Theme = ThemeLight
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO prefs (id, theme, last_function, last_start, last_end, updated_at)
		VALUES (1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			theme = excluded.theme,
			last_function = excluded.last_function,
			last_start = excluded.last_start,
			last_end = excluded.last_end,
			updated_at = excluded.updated_at`,
		p.Theme, p.LastFunction, p.LastStart, p.LastEnd,
	)
	if err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}

func (r *prefsRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM prefs`); err != nil {
		return fmt.Errorf("reset prefs: %w", err)
	}
	return nil
}
