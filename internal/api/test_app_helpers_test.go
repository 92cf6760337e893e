package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/vergaracl/fitfam/internal/db"
	"github.com/vergaracl/fitfam/internal/services"
	"github.com/vergaracl/fitfam/internal/storage"
	"gorm.io/gorm"
)

// The injected clock pins every test to Wednesday of 2025-W24.
var testNow = time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)

type stubJudge struct {
	verdict services.Verdict
	err     error
}

func (judge stubJudge) Evaluate(ctx context.Context, excuse string, evidence []byte, evidenceMIME string) (services.Verdict, error) {
	return judge.verdict, judge.err
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	return newTestAppWithJudge(t, stubJudge{verdict: services.Verdict{Valid: false, Reason: "No evidence attached."}})
}

func newTestAppWithJudge(t *testing.T, judge services.ExcuseJudge) (*fiber.App, *gorm.DB) {
	t.Helper()
	app, database, _ := newTestAppWithMediaDir(t, judge)
	return app, database
}

// newTestAppWithMediaDir also returns the object store's root, for tests
// that assert on what did (or did not) get uploaded.
func newTestAppWithMediaDir(t *testing.T, judge services.ExcuseJudge) (*fiber.App, *gorm.DB, string) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "fitfam-test.db"))
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

	members, err := services.ParseRoster("jose:Jose,javi:Javi,gonza:Gonza,fran:Fran")
	if err != nil {
		t.Fatalf("parse roster: %v", err)
	}
	if err := services.EnsureRoster(db.NewUserRepository(database), members); err != nil {
		t.Fatalf("seed roster: %v", err)
	}

	mediaDir := t.TempDir()
	objects := storage.NewLocalStore(mediaDir, "/media")
	handler := NewHandler(database, "test-secret-key", time.UTC, objects, judge, false)
	handler.now = func() time.Time { return testNow }

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database, mediaDir
}

func loginAndExtractAuthCookie(t *testing.T, app *fiber.App, userID string, pin string) string {
	t.Helper()

	form := url.Values{
		"user_id": {userID},
		"pin":     {pin},
	}
	request := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("login returned status %d", response.StatusCode)
	}
	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	t.Fatal("login did not set the auth cookie")
	return ""
}

func authedRequest(t *testing.T, method string, target string, body io.Reader, authCookie string) *http.Request {
	t.Helper()
	request := httptest.NewRequest(method, target, body)
	request.Header.Set("Cookie", authCookie)
	return request
}

func decodeJSONBody(t *testing.T, body io.Reader, target any) {
	t.Helper()
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("decode response body %q: %v", raw, err)
	}
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()
	payload := map[string]string{}
	decodeJSONBody(t, body, &payload)
	return payload["error"]
}
