package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestPlanAbsenceEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	authCookie := loginAndExtractAuthCookie(t, app, "fran", "1234")

	body := `{"frozen_week_id":"2025-W25","recovery_weeks":["2025-W26","2025-W27"]}`
	request := authedRequest(t, http.MethodPost, "/api/absences", strings.NewReader(body), authCookie)
	request.Header.Set("Content-Type", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("plan absence request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("plan absence status = %d", response.StatusCode)
	}

	payload := struct {
		Absence struct {
			FrozenWeekID                  string         `json:"FrozenWeekID"`
			MissedSessionsPerRecoveryWeek map[string]int `json:"MissedSessionsPerRecoveryWeek"`
		} `json:"absence"`
	}{}
	decodeJSONBody(t, response.Body, &payload)
	if payload.Absence.FrozenWeekID != "2025-W25" {
		t.Fatalf("frozen week = %s", payload.Absence.FrozenWeekID)
	}
	if payload.Absence.MissedSessionsPerRecoveryWeek["2025-W26"] != 2 {
		t.Fatalf("distribution = %v", payload.Absence.MissedSessionsPerRecoveryWeek)
	}

	// Freezing the same week twice is a conflict.
	repeat := authedRequest(t, http.MethodPost, "/api/absences", strings.NewReader(body), authCookie)
	repeat.Header.Set("Content-Type", "application/json")
	repeatResponse, err := app.Test(repeat, -1)
	if err != nil {
		t.Fatalf("repeat request failed: %v", err)
	}
	defer repeatResponse.Body.Close()
	if repeatResponse.StatusCode != http.StatusConflict {
		t.Fatalf("repeat status = %d, want 409", repeatResponse.StatusCode)
	}

	// And the plan is listed for the member.
	listResponse, err := app.Test(authedRequest(t, http.MethodGet, "/api/absences/user/fran", nil, authCookie), -1)
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	defer listResponse.Body.Close()
	list := struct {
		Absences []map[string]any `json:"absences"`
	}{}
	decodeJSONBody(t, listResponse.Body, &list)
	if len(list.Absences) != 1 {
		t.Fatalf("got %d absences, want 1", len(list.Absences))
	}
}

func TestPlanAbsenceRejectsDistantRecoveryWeek(t *testing.T) {
	app, _ := newTestApp(t)
	authCookie := loginAndExtractAuthCookie(t, app, "fran", "1234")

	body := `{"frozen_week_id":"2025-W25","recovery_weeks":["2025-W40"]}`
	request := authedRequest(t, http.MethodPost, "/api/absences", strings.NewReader(body), authCookie)
	request.Header.Set("Content-Type", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("plan absence request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", response.StatusCode)
	}
}
