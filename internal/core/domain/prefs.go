package domain

import "time"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Session is a mock user session, no credentials are verified.
type Session struct {
	UserID    string
	Name      string
	Email     string
	CreatedAt time.Time
}
