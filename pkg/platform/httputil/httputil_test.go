package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dErrors "campus/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "map corrupted"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "internal_error" {
			t.Fatalf("expected error code internal_error, got %q", body["error"])
		}
		if _, ok := body["error_description"]; ok {
			t.Fatalf("expected error_description to be omitted for internal errors")
		}
	})

	t.Run("conflict includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeConflict, "email already in use"))

		if w.Code != http.StatusConflict {
			t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "conflict" {
			t.Fatalf("expected error code conflict, got %q", body["error"])
		}
		if body["error_description"] != "email already in use" {
			t.Fatalf("expected error_description to be returned for conflict")
		}
	})
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("decodes a single object", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Karim"}`))
		var p payload
		if err := DecodeJSON(r, &p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name != "Karim" {
			t.Fatalf("expected name Karim, got %q", p.Name)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nickname":"K"}`))
		var p payload
		if err := DecodeJSON(r, &p); !dErrors.HasCode(err, dErrors.CodeBadRequest) {
			t.Fatalf("expected bad_request, got %v", err)
		}
	})

	t.Run("rejects empty body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var p payload
		if err := DecodeJSON(r, &p); !dErrors.HasCode(err, dErrors.CodeBadRequest) {
			t.Fatalf("expected bad_request, got %v", err)
		}
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
		var p payload
		if err := DecodeJSON(r, &p); !dErrors.HasCode(err, dErrors.CodeBadRequest) {
			t.Fatalf("expected bad_request, got %v", err)
		}
	})
}
