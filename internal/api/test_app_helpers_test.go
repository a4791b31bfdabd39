package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycleinsights/internal/db"
	"github.com/terraincognita07/cycleinsights/internal/i18n"
	"github.com/terraincognita07/cycleinsights/internal/models"
	"github.com/terraincognita07/cycleinsights/internal/services"
)

const (
	testSecretKey     = "test-secret-key-with-at-least-32-chars"
	testOwnerEmail    = "owner@example.com"
	testOwnerPassword = "StrongPass1"
)

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	app     *fiber.App
	handler *Handler
	repos   *db.Repositories
	owner   models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cycleinsights-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(database, testSecretKey, time.UTC, i18nManager, false)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return testNow }

	repos := db.NewRepositories(database)
	owner, err := services.NewAuthService(repos.Users).CreateOwner(testOwnerEmail, testOwnerPassword, testNow)
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return &testEnv{app: app, handler: handler, repos: repos, owner: owner}
}

func (env *testEnv) login(t *testing.T) string {
	t.Helper()

	response := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    testOwnerEmail,
		"password": testOwnerPassword,
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d", response.StatusCode)
	}

	var payload struct {
		Token string `json:"token"`
	}
	decodeJSON(t, response, &payload)
	if payload.Token == "" {
		t.Fatal("login response has no token")
	}
	return payload.Token
}

func (env *testEnv) do(t *testing.T, method string, target string, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, target, reader)
	if body != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, target, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func (env *testEnv) seedBleeding(t *testing.T, starts ...string) {
	t.Helper()
	for _, raw := range starts {
		start := mustParseTestDay(t, raw)
		for offset := 0; offset < 3; offset++ {
			entry := models.DayLog{
				UserID:       env.owner.ID,
				Date:         services.AddDays(start, offset),
				Menstruation: models.Menstruation{Active: true},
				Symptoms:     map[string]int{},
				LastModified: testNow,
			}
			if err := env.repos.DayLogs.Create(&entry); err != nil {
				t.Fatalf("seed day log: %v", err)
			}
		}
	}
}

func (env *testEnv) setLastPeriodStart(t *testing.T, raw string) {
	t.Helper()
	if err := env.repos.Users.UpdateByID(env.owner.ID, map[string]any{
		"last_period_start": mustParseTestDay(t, raw),
	}); err != nil {
		t.Fatalf("update last period start: %v", err)
	}
}

func mustParseTestDay(t *testing.T, raw string) time.Time {
	t.Helper()
	value, err := services.ParseDay(raw)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return value
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func readBody(t *testing.T, response *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(body)
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func newCookieRequest(method string, target string, cookie string) *http.Request {
	request := httptest.NewRequest(method, target, nil)
	request.Header.Set("Cookie", cookie)
	return request
}
