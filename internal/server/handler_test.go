package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/nhle/assessment-calendar/internal/model"
)

// fakeRepo is an in-memory Repository for handler tests.
type fakeRepo struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]model.Assessment
	err    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, rows: make(map[int]model.Assessment)}
}

func (f *fakeRepo) List(ctx context.Context) ([]model.Assessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Assessment, 0, len(f.rows))
	for _, a := range f.rows {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SubmitDate == out[j].SubmitDate {
			return out[i].ID < out[j].ID
		}
		return out[i].SubmitDate < out[j].SubmitDate
	})
	return out, nil
}

func (f *fakeRepo) ListByDate(ctx context.Context, dateKey string) ([]model.Assessment, error) {
	all, err := f.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Assessment
	for _, a := range all {
		key := a.SubmitDate
		if len(key) > 10 {
			key = key[:10]
		}
		if key == dateKey {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int) (*model.Assessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeRepo) Create(ctx context.Context, a *model.Assessment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	a.ID = f.nextID
	f.nextID++
	f.rows[a.ID] = *a
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, a *model.Assessment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rows[a.ID] = *a
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.rows, id)
	return nil
}

func decodeEnvelope(t *testing.T, body io.Reader) Envelope {
	t.Helper()
	var env Envelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	return env
}

func decodeAssessment(t *testing.T, data interface{}) model.Assessment {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("re-marshaling data: %v", err)
	}
	var a model.Assessment
	if err := json.Unmarshal(raw, &a); err != nil {
		t.Fatalf("decoding assessment: %v", err)
	}
	return a
}

func decodeAssessments(t *testing.T, data interface{}) []model.Assessment {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("re-marshaling data: %v", err)
	}
	var out []model.Assessment
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decoding assessments: %v", err)
	}
	return out
}

func TestCreateRequiresSubmitDate(t *testing.T) {
	app := NewApp(newFakeRepo())

	body, _ := json.Marshal(map[string]string{"name": "Essay"})
	req := httptest.NewRequest("POST", "/api/calendar", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp.Body)
	if env.Success {
		t.Error("envelope should report failure")
	}
	if env.Message != "Name and submit_date are required" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	app := NewApp(newFakeRepo())

	body, _ := json.Marshal(map[string]string{
		"name":        "Essay",
		"submit_date": "2024-03-01",
	})
	req := httptest.NewRequest("POST", "/api/calendar", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 201 {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp.Body)
	created := decodeAssessment(t, env.Data)
	if created.ID == 0 {
		t.Error("expected a generated integer ID")
	}
	if created.Color != model.DefaultColor {
		t.Errorf("color = %q, want default %q", created.Color, model.DefaultColor)
	}
	if created.Description != "" {
		t.Errorf("description = %q, want empty default", created.Description)
	}

	// Subsequent GET includes the new row.
	getResp, err := app.Test(httptest.NewRequest("GET", "/api/calendar", nil))
	if err != nil {
		t.Fatalf("app.Test GET: %v", err)
	}
	defer getResp.Body.Close()

	if getResp.StatusCode != 200 {
		t.Fatalf("GET status = %d, want 200", getResp.StatusCode)
	}
	listEnv := decodeEnvelope(t, getResp.Body)
	rows := decodeAssessments(t, listEnv.Data)
	if len(rows) != 1 || rows[0].ID != created.ID {
		t.Errorf("GET returned %+v, want the created row", rows)
	}
}

func TestListOrderedAndIdempotent(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo)

	ctx := context.Background()
	for _, a := range []model.Assessment{
		{Name: "Later", SubmitDate: "2024-05-01 00:00:00"},
		{Name: "Sooner", SubmitDate: "2024-03-01 00:00:00"},
		{Name: "Middle", SubmitDate: "2024-04-01 00:00:00"},
	} {
		row := a
		if err := repo.Create(ctx, &row); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	fetch := func() []model.Assessment {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/calendar", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		defer resp.Body.Close()
		env := decodeEnvelope(t, resp.Body)
		return decodeAssessments(t, env.Data)
	}

	first := fetch()
	if len(first) != 3 {
		t.Fatalf("got %d rows, want 3", len(first))
	}
	if first[0].Name != "Sooner" || first[1].Name != "Middle" || first[2].Name != "Later" {
		t.Errorf("rows not ordered by submit_date: %+v", first)
	}

	second := fetch()
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("row %d differs between identical GETs", i)
		}
	}
}

func TestListByDate(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo)

	ctx := context.Background()
	for _, a := range []model.Assessment{
		{Name: "Match", SubmitDate: "2024-03-01 00:00:00"},
		{Name: "Other", SubmitDate: "2024-03-02 00:00:00"},
	} {
		row := a
		if err := repo.Create(ctx, &row); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/api/calendar/2024-03-01", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	env := decodeEnvelope(t, resp.Body)
	rows := decodeAssessments(t, env.Data)
	if len(rows) != 1 || rows[0].Name != "Match" {
		t.Errorf("got %+v, want only the matching row", rows)
	}
}

func TestUpdateMissingID(t *testing.T) {
	app := NewApp(newFakeRepo())

	body, _ := json.Marshal(map[string]string{
		"name":        "x",
		"description": "",
		"submit_date": "2024-01-01",
		"color":       "#FFFFFF",
	})
	req := httptest.NewRequest("PUT", "/api/calendar/99", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp.Body)
	if env.Message != "Assessment not found" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestUpdateReplacesAllFields(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo)

	seed := model.Assessment{
		Name: "Before", Description: "old", SubmitDate: "2024-03-01", Color: "#111111",
	}
	if err := repo.Create(context.Background(), &seed); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	body, _ := json.Marshal(map[string]string{
		"name":        "After",
		"description": "new",
		"submit_date": "2024-04-01",
		"color":       "#222222",
	})
	req := httptest.NewRequest("PUT", "/api/calendar/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp.Body)
	updated := decodeAssessment(t, env.Data)
	if updated.Name != "After" || updated.Description != "new" ||
		updated.SubmitDate != "2024-04-01" || updated.Color != "#222222" {
		t.Errorf("update did not replace all fields: %+v", updated)
	}
}

func TestDeleteMissingID(t *testing.T) {
	app := NewApp(newFakeRepo())

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/calendar/42", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDeleteRemovesRow(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo)

	seed := model.Assessment{Name: "Doomed", SubmitDate: "2024-03-01"}
	if err := repo.Create(context.Background(), &seed); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/calendar/1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp.Body)
	deleted := decodeAssessment(t, env.Data)
	if deleted.Name != "Doomed" {
		t.Errorf("delete should return the removed row, got %+v", deleted)
	}

	getResp, err := app.Test(httptest.NewRequest("GET", "/api/calendar", nil))
	if err != nil {
		t.Fatalf("app.Test GET: %v", err)
	}
	defer getResp.Body.Close()
	listEnv := decodeEnvelope(t, getResp.Body)
	rows := decodeAssessments(t, listEnv.Data)
	if len(rows) != 0 {
		t.Errorf("row survived deletion: %+v", rows)
	}
}

func TestHealthEnvelope(t *testing.T) {
	app := NewApp(newFakeRepo())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/health", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp.Body)
	if !env.Success || env.Message == "" || env.Timestamp == "" {
		t.Errorf("health envelope incomplete: %+v", env)
	}
}

func TestUnmatchedRoute(t *testing.T) {
	app := NewApp(newFakeRepo())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/nope", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp.Body)
	if env.Message != "Endpoint not found" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestListDatabaseError(t *testing.T) {
	repo := newFakeRepo()
	repo.err = context.DeadlineExceeded
	app := NewApp(repo)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/calendar", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 500 {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp.Body)
	if env.Success || env.Error == "" {
		t.Errorf("500 envelope should embed the error, got %+v", env)
	}
}
