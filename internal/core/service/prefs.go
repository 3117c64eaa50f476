package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.PrefsManager = (*PrefsService)(nil)

// PrefsService keeps the theme preference and the mock user session.
type PrefsService struct {
	store port.KVStore
}

func NewPrefsService(store port.KVStore) PrefsService {
	return PrefsService{store}
}

func (s PrefsService) Theme(ctx context.Context) (domain.Theme, error) {
	const op = "PrefsService.Theme"

	b, err := s.store.Get(ctx, themeKey)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return domain.ThemeLight, nil
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return domain.Theme(b), nil
}

func (s PrefsService) SetTheme(ctx context.Context, t domain.Theme) error {
	const op = "PrefsService.SetTheme"

	if t != domain.ThemeLight && t != domain.ThemeDark {
		return fmt.Errorf("%s: unknown theme %q", op, t)
	}

	if err := s.store.Set(ctx, themeKey, []byte(t)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s PrefsService) Session(ctx context.Context) (domain.Session, error) {
	const op = "PrefsService.Session"

	b, err := s.store.Get(ctx, sessionKey)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	var sess domain.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return sess, nil
}

func (s PrefsService) SaveSession(
	ctx context.Context, sess domain.Session,
) error {
	const op = "PrefsService.SaveSession"
	return saveState(ctx, s.store, sessionKey, sess, op)
}

func (s PrefsService) ClearSession(ctx context.Context) error {
	const op = "PrefsService.ClearSession"

	if err := s.store.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
