package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type dbPingerMock struct {
	err   error
	calls int
}

func (m *dbPingerMock) Ping(ctx context.Context) error {
	m.calls++
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("probe without deadline")
	}
	return m.err
}

func probe(t *testing.T, handler http.HandlerFunc) (int, HealthResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
	return rec.Code, resp
}

func TestLive_DoesNotTouchDB(t *testing.T) {
	t.Parallel()
	db := &dbPingerMock{err: errors.New("down")}

	code, resp := probe(t, NewHealthHandler(db, "v1").Live)

	if code != http.StatusOK || resp.Status != "ok" {
		t.Errorf("Live = %d %q, want 200 ok", code, resp.Status)
	}
	if db.calls != 0 {
		t.Errorf("Live pinged the database %d times", db.calls)
	}
}

func TestReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus string
	}{
		{"db up", nil, http.StatusOK, "ok"},
		{"db down", errors.New("connection refused"), http.StatusServiceUnavailable, "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, resp := probe(t, NewHealthHandler(&dbPingerMock{err: tt.err}, "v1").Ready)
			if code != tt.wantCode || resp.Status != tt.wantStatus {
				t.Errorf("Ready = %d %q, want %d %q", code, resp.Status, tt.wantCode, tt.wantStatus)
			}
		})
	}
}

func TestHealth_Components(t *testing.T) {
	t.Parallel()

	code, resp := probe(t, NewHealthHandler(&dbPingerMock{}, "v1.2.3").Health)
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	if resp.Version != "v1.2.3" {
		t.Errorf("version = %q, want v1.2.3", resp.Version)
	}
	db, ok := resp.Components["database"]
	if !ok {
		t.Fatal("expected 'database' component in response")
	}
	if db.Status != "ok" || db.Latency == "" {
		t.Errorf("database component = %+v, want ok with latency", db)
	}

	code, resp = probe(t, NewHealthHandler(&dbPingerMock{err: errors.New("x")}, "v1.2.3").Health)
	if code != http.StatusServiceUnavailable || resp.Components["database"].Status != "down" {
		t.Errorf("Health with db down = %d %+v", code, resp)
	}
}
