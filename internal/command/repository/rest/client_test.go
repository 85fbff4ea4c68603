package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lifehub-assistant/internal/command/repository"
	"lifehub-assistant/internal/command/repository/rest"
	"lifehub-assistant/internal/model"
)

func TestStoreClient(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/records", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req rest.CreateRecordRequest
		json.NewDecoder(r.Body).Decode(&req)
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(rest.RecordPayload{
			Name:       "records/42",
			UID:        "42",
			Content:    req.Content,
			Visibility: req.Visibility,
			CreateTime: "2026-08-31T10:00:00Z",
		})
	})

	mux.HandleFunc("/api/v1/records/records/42", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(rest.RecordPayload{Name: "records/42", UID: "42", Content: "stored"})
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := rest.NewClient(ts.URL, "test-token")
	ctx := context.Background()

	t.Run("create record", func(t *testing.T) {
		payload, err := client.CreateRecord(ctx, rest.CreateRecordRequest{
			Content:    "# Buy milk\n\n#task",
			Visibility: "PRIVATE",
		})
		if err != nil {
			t.Fatalf("CreateRecord() error = %v", err)
		}
		if payload.UID != "42" {
			t.Errorf("uid = %q, want 42", payload.UID)
		}
	})

	t.Run("get record", func(t *testing.T) {
		payload, err := client.GetRecord(ctx, "records/42")
		if err != nil {
			t.Fatalf("GetRecord() error = %v", err)
		}
		if payload.Content != "stored" {
			t.Errorf("content = %q", payload.Content)
		}
	})

	t.Run("unauthorized is an error", func(t *testing.T) {
		bad := rest.NewClient(ts.URL, "wrong-token")
		if _, err := bad.CreateRecord(ctx, rest.CreateRecordRequest{Content: "x"}); err == nil {
			t.Fatal("CreateRecord() should fail on 401")
		}
	})
}

func TestStoreRepository(t *testing.T) {
	var captured rest.CreateRecordRequest

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/records", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(rest.RecordPayload{Name: "records/7", Content: captured.Content})
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	repo := rest.New(rest.NewClient(ts.URL, "token"), "http://app.local", &noopLogger{})

	record, err := repo.CreateRecord(context.Background(), repository.CreateRecordOptions{
		Kind:    model.KindTask,
		Title:   "Buy milk",
		Content: "- **Priority:** high",
	})
	if err != nil {
		t.Fatalf("CreateRecord() error = %v", err)
	}

	if !strings.Contains(captured.Content, "# Buy milk") {
		t.Errorf("content %q should start with the title heading", captured.Content)
	}
	if !strings.Contains(captured.Content, "#task") {
		t.Errorf("content %q should carry the kind tag", captured.Content)
	}
	if record.UID != "7" {
		t.Errorf("uid = %q, want parsed from name", record.UID)
	}
	if record.URL != "http://app.local/r/7" {
		t.Errorf("url = %q", record.URL)
	}
}

type noopLogger struct{}

func (l *noopLogger) Debug(ctx context.Context, arg ...any)                    {}
func (l *noopLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (l *noopLogger) Info(ctx context.Context, arg ...any)                     {}
func (l *noopLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (l *noopLogger) Warn(ctx context.Context, arg ...any)                     {}
func (l *noopLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (l *noopLogger) Error(ctx context.Context, arg ...any)                    {}
func (l *noopLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (l *noopLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (l *noopLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (l *noopLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (l *noopLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (l *noopLogger) Panic(ctx context.Context, arg ...any)                    {}
func (l *noopLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
