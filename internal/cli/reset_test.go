package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/cycleinsights/internal/models"
	"github.com/terraincognita07/cycleinsights/internal/services"
)

type stubAuth struct {
	password  string
	resetErr  error
	createErr error
	created   models.User
}

func (stub *stubAuth) ResetPassword(string) (string, error) {
	return stub.password, stub.resetErr
}

func (stub *stubAuth) CreateOwner(email string, _ string, now time.Time) (models.User, error) {
	if stub.createErr != nil {
		return models.User{}, stub.createErr
	}
	start := services.DateOnly(now)
	stub.created = models.User{
		Email:           email,
		CycleLength:     models.DefaultCycleLength,
		PeriodLength:    models.DefaultPeriodLength,
		LastPeriodStart: &start,
	}
	return stub.created, nil
}

func TestRunResetPasswordCommandPrintsPassword(t *testing.T) {
	var out bytes.Buffer
	if err := RunResetPasswordCommand(&out, &stubAuth{password: "Generated1234abc"}, "owner@example.com"); err != nil {
		t.Fatalf("RunResetPasswordCommand returned error: %v", err)
	}
	if !strings.Contains(out.String(), "New password: Generated1234abc") {
		t.Fatalf("expected generated password in output, got %q", out.String())
	}
}

func TestRunResetPasswordCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "invalid email", err: services.ErrAuthCredentialsInvalid, want: "invalid email address"},
		{name: "unknown user", err: services.ErrOwnerNotFound, want: "not found"},
		{name: "storage", err: errors.New("disk full"), want: "reset password"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var out bytes.Buffer
			err := RunResetPasswordCommand(&out, &stubAuth{resetErr: testCase.err}, "owner@example.com")
			if err == nil || !strings.Contains(err.Error(), testCase.want) {
				t.Fatalf("expected error containing %q, got %v", testCase.want, err)
			}
			if out.Len() != 0 {
				t.Fatalf("expected no output on failure, got %q", out.String())
			}
		})
	}
}

func TestRunCreateOwnerCommand(t *testing.T) {
	var out bytes.Buffer
	now := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	if err := RunCreateOwnerCommand(&out, &stubAuth{}, "owner@example.com", "StrongPass1", now); err != nil {
		t.Fatalf("RunCreateOwnerCommand returned error: %v", err)
	}
	if !strings.Contains(out.String(), "last period start 2026-03-04") {
		t.Fatalf("unexpected output %q", out.String())
	}

	err := RunCreateOwnerCommand(&out, &stubAuth{createErr: services.ErrOwnerAlreadyExists}, "owner@example.com", "StrongPass1", now)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already exists error, got %v", err)
	}
	err = RunCreateOwnerCommand(&out, &stubAuth{createErr: services.ErrWeakPassword}, "owner@example.com", "weak", now)
	if err == nil || !strings.Contains(err.Error(), "password must be") {
		t.Fatalf("expected weak password error, got %v", err)
	}
}
