package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/terraincognita07/cycleinsights/internal/models"
	"github.com/terraincognita07/cycleinsights/internal/services"
)

var ErrPasswordConfirmationMismatch = errors.New("passwords do not match")

type OwnerCreator interface {
	CreateOwner(email string, password string, now time.Time) (models.User, error)
}

func RunCreateOwnerCommand(out io.Writer, auth OwnerCreator, email string, password string, now time.Time) error {
	user, err := auth.CreateOwner(email, password, now)
	switch {
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return fmt.Errorf("invalid email address %q", email)
	case errors.Is(err, services.ErrWeakPassword):
		return errors.New("password must be 8 to 72 bytes and contain upper case, lower case and digit characters")
	case errors.Is(err, services.ErrOwnerAlreadyExists):
		return fmt.Errorf("user %s already exists", email)
	case err != nil:
		return fmt.Errorf("create owner: %w", err)
	}

	fmt.Fprintf(out, "✅ Owner %s created\n", user.Email)
	fmt.Fprintf(out, "Cycle model: %d day cycle, %d day period, last period start %s\n",
		user.CycleLength, user.PeriodLength, services.FormatDay(*user.LastPeriodStart))
	fmt.Fprintln(out, "Adjust it via PUT /api/settings/cycle after signing in.")
	return nil
}

// PromptNewPassword asks for a password twice without echoing it.
func PromptNewPassword(stdin *os.File, out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")
	first, err := readPasswordNoEcho(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(out, "Confirm password: ")
	second, err := readPasswordNoEcho(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password confirmation: %w", err)
	}

	if string(first) != string(second) {
		return "", ErrPasswordConfirmationMismatch
	}
	return string(first), nil
}
