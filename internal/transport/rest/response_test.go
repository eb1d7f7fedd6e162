package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSuccessEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, "OK", map[string]interface{}{"run_id": "runs:abc"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %q", ct)
	}

	var resp APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.Status != "success" || resp.ErrorCode != 0 || resp.Message != "OK" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok || data["run_id"] != "runs:abc" {
		t.Fatalf("data not preserved: %v", resp.Data)
	}
}

func TestErrorEnvelopeMirrorsHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		emit func(http.ResponseWriter, string)
		code int
	}{
		{"bad request", ErrorBadRequest, http.StatusBadRequest},
		{"unauthorized", ErrorUnauthorized, http.StatusUnauthorized},
		{"not found", ErrorNotFound, http.StatusNotFound},
		{"internal", ErrorInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tc.emit(w, "boom")

			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, w.Code)
			}
			var resp APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("bad body: %v", err)
			}
			if resp.Status != "error" || resp.ErrorCode != tc.code || resp.Message != "boom" {
				t.Fatalf("unexpected envelope: %+v", resp)
			}
			if resp.Data != nil {
				t.Fatalf("error responses carry no data, got %v", resp.Data)
			}
		})
	}
}
