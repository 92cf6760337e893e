package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/vergaracl/fitfam/internal/services"
)

func TestCloseWeekDefaultsToCurrentWeek(t *testing.T) {
	app, _ := newTestApp(t)
	authCookie := loginAndExtractAuthCookie(t, app, "jose", "1234")

	response, err := app.Test(authedRequest(t, http.MethodPost, "/api/settlement/close", nil, authCookie), -1)
	if err != nil {
		t.Fatalf("close request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("close status = %d", response.StatusCode)
	}

	payload := struct {
		WeekID  string                       `json:"week_id"`
		Results []services.SettlementResult  `json:"results"`
	}{}
	decodeJSONBody(t, response.Body, &payload)

	if payload.WeekID != "2025-W24" {
		t.Fatalf("settled week = %s, want the current week 2025-W24", payload.WeekID)
	}
	if len(payload.Results) != 4 {
		t.Fatalf("got %d results, want 4", len(payload.Results))
	}
	for _, result := range payload.Results {
		if result.Skipped {
			t.Fatalf("first close skipped %s", result.UserID)
		}
		if result.Summary == nil || result.Summary.Status != "missed" {
			t.Fatalf("unexpected summary for %s: %+v", result.UserID, result.Summary)
		}
	}

	// Re-closing the same week is a reported no-op.
	repeat, err := app.Test(authedRequest(t, http.MethodPost, "/api/settlement/close", nil, authCookie), -1)
	if err != nil {
		t.Fatalf("repeat close failed: %v", err)
	}
	defer repeat.Body.Close()
	decodeJSONBody(t, repeat.Body, &payload)
	for _, result := range payload.Results {
		if !result.Skipped {
			t.Fatalf("repeat close settled %s again", result.UserID)
		}
	}
}

func TestCloseWeekExplicitWeek(t *testing.T) {
	app, _ := newTestApp(t)
	authCookie := loginAndExtractAuthCookie(t, app, "jose", "1234")

	request := authedRequest(t, http.MethodPost, "/api/settlement/close", strings.NewReader(`{"week_id":"2025-W20"}`), authCookie)
	request.Header.Set("Content-Type", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("close request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("close status = %d", response.StatusCode)
	}

	payload := struct {
		WeekID string `json:"week_id"`
	}{}
	decodeJSONBody(t, response.Body, &payload)
	if payload.WeekID != "2025-W20" {
		t.Fatalf("settled week = %s, want 2025-W20", payload.WeekID)
	}

	// The summaries are queryable afterwards.
	summariesResponse, err := app.Test(authedRequest(t, http.MethodGet, "/api/summaries/week/2025-W20", nil, authCookie), -1)
	if err != nil {
		t.Fatalf("summaries request failed: %v", err)
	}
	defer summariesResponse.Body.Close()
	summaries := struct {
		Summaries []map[string]any `json:"summaries"`
	}{}
	decodeJSONBody(t, summariesResponse.Body, &summaries)
	if len(summaries.Summaries) != 4 {
		t.Fatalf("got %d summaries, want 4", len(summaries.Summaries))
	}
}

func TestCloseWeekRejectsMalformedWeek(t *testing.T) {
	app, _ := newTestApp(t)
	authCookie := loginAndExtractAuthCookie(t, app, "jose", "1234")

	request := authedRequest(t, http.MethodPost, "/api/settlement/close", strings.NewReader(`{"week_id":"last week"}`), authCookie)
	request.Header.Set("Content-Type", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("close request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("close status = %d, want 400", response.StatusCode)
	}
}
