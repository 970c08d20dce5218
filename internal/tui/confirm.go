package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	svnerrors "github.com/mrz1836/svnop/internal/errors"
)

// IsInteractive reports whether stdin is a terminal a prompt can read from.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Theme returns the huh theme in svnop colors.
func Theme() *huh.Theme {
	CheckNoColor()

	t := huh.ThemeBase()
	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(ColorPrimary)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)
	return t
}

// Confirm asks a yes/no question. It returns ErrNonInteractiveMode when
// stdin is not a terminal and ErrOperationCanceled when the user aborts.
func Confirm(title, description string) (bool, error) {
	if !IsInteractive() {
		return false, svnerrors.ErrNonInteractiveMode
	}

	_, accessible := os.LookupEnv("ACCESSIBLE")
	confirmed := false
	field := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(Theme()).
		WithAccessible(accessible)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, svnerrors.ErrOperationCanceled
		}
		return false, fmt.Errorf("confirm prompt failed: %w", err)
	}
	return confirmed, nil
}
