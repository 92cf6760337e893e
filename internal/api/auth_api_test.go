package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func postLoginForm(t *testing.T, app *fiber.App, userID string, pin string) *http.Response {
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
	return response
}

func TestLoginFirstTimeThenVerify(t *testing.T) {
	app, _ := newTestApp(t)

	// First login registers the PIN.
	response := postLoginForm(t, app, "javi", "2468")
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("first login status = %d", response.StatusCode)
	}

	payload := map[string]any{}
	decodeJSONBody(t, response.Body, &payload)
	if payload["user_id"] != "javi" || payload["name"] != "Javi" {
		t.Fatalf("unexpected login payload: %v", payload)
	}

	// The right PIN works, the wrong one does not.
	okResponse := postLoginForm(t, app, "javi", "2468")
	okResponse.Body.Close()
	if okResponse.StatusCode != http.StatusOK {
		t.Fatalf("repeat login status = %d", okResponse.StatusCode)
	}

	badResponse := postLoginForm(t, app, "javi", "8642")
	defer badResponse.Body.Close()
	if badResponse.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong PIN status = %d", badResponse.StatusCode)
	}
	if message := readAPIError(t, badResponse.Body); message != "wrong member or PIN" {
		t.Fatalf("wrong PIN error = %q", message)
	}
}

func TestLoginRejectsBadInput(t *testing.T) {
	app, _ := newTestApp(t)

	response := postLoginForm(t, app, "javi", "12")
	defer response.Body.Close()
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("short PIN status = %d", response.StatusCode)
	}

	unknown := postLoginForm(t, app, "stranger", "1234")
	defer unknown.Body.Close()
	if unknown.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unknown member status = %d", unknown.StatusCode)
	}
}

func TestMeRequiresAuth(t *testing.T) {
	app, _ := newTestApp(t)

	request := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("me request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated /me status = %d", response.StatusCode)
	}
}

func TestMeReturnsLedgerFields(t *testing.T) {
	app, _ := newTestApp(t)
	authCookie := loginAndExtractAuthCookie(t, app, "gonza", "1357")

	response, err := app.Test(authedRequest(t, http.MethodGet, "/api/auth/me", nil, authCookie), -1)
	if err != nil {
		t.Fatalf("me request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("/me status = %d", response.StatusCode)
	}

	payload := map[string]any{}
	decodeJSONBody(t, response.Body, &payload)
	if payload["user_id"] != "gonza" {
		t.Fatalf("user_id = %v", payload["user_id"])
	}
	for _, key := range []string{"wallet_balance", "extra_lives", "has_shield"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing %s in /me payload: %v", key, payload)
		}
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	app, _ := newTestApp(t)
	authCookie := loginAndExtractAuthCookie(t, app, "fran", "7777")

	response, err := app.Test(authedRequest(t, http.MethodPost, "/api/auth/logout", nil, authCookie), -1)
	if err != nil {
		t.Fatalf("logout request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d", response.StatusCode)
	}

	cleared := false
	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("logout did not clear the auth cookie")
	}
}
