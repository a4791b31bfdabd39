package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/cycleinsights/internal/services"
)

type PasswordResetter interface {
	ResetPassword(email string) (string, error)
}

// RunResetPasswordCommand prints a freshly generated password for the owner.
// Sessions issued under the old password stop working.
func RunResetPasswordCommand(out io.Writer, auth PasswordResetter, email string) error {
	password, err := auth.ResetPassword(email)
	switch {
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return fmt.Errorf("invalid email address %q", email)
	case errors.Is(err, services.ErrOwnerNotFound):
		return fmt.Errorf("user %s not found", email)
	case err != nil:
		return fmt.Errorf("reset password: %w", err)
	}

	fmt.Fprintln(out, "✅ Password reset successful")
	fmt.Fprintf(out, "New password: %s\n", password)
	fmt.Fprintln(out, "Existing sessions have been signed out.")
	return nil
}
