package qdrant_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lifehub-assistant/internal/command/repository"
	"lifehub-assistant/internal/command/repository/qdrant"
	"lifehub-assistant/internal/model"
	pkgQdrant "lifehub-assistant/pkg/qdrant"
	"lifehub-assistant/pkg/voyage"
)

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

func embedServer(t *testing.T, vector []float32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(voyage.EmbedResponse{
			Object: "list",
			Data:   []voyage.EmbeddingData{{Object: "embedding", Embedding: vector}},
		})
	}))
}

func newEmbedder(t *testing.T, baseURL string) *voyage.Client {
	t.Helper()
	embedder, err := voyage.New("test-key")
	if err != nil {
		t.Fatalf("voyage.New() error = %v", err)
	}
	return embedder.WithBaseURL(baseURL)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("point carries the owning user", func(t *testing.T) {
		var upserted pkgQdrant.UpsertPointsRequest

		mux := http.NewServeMux()
		mux.HandleFunc("/collections/artifacts/points", func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&upserted)
			w.WriteHeader(http.StatusOK)
		})
		qs := httptest.NewServer(mux)
		defer qs.Close()

		es := embedServer(t, []float32{0.1, 0.2})
		defer es.Close()

		repo := qdrant.New(pkgQdrant.NewClient(qs.URL), newEmbedder(t, es.URL), "artifacts", &noopLogger{})

		err := repo.Register(ctx, model.Artifact{
			RecordID:   "records/9",
			UserID:     "telegram_42",
			EntityType: model.KindNote,
			Content:    "wifi password location",
		})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if len(upserted.Points) != 1 {
			t.Fatalf("points = %d, want 1", len(upserted.Points))
		}
		if got := upserted.Points[0].Payload["user_id"]; got != "telegram_42" {
			t.Errorf("user_id = %v, want telegram_42", got)
		}
		if got := upserted.Points[0].Payload["record_id"]; got != "records/9" {
			t.Errorf("record_id = %v", got)
		}
	})

	t.Run("empty embedding response is a plain error", func(t *testing.T) {
		// Zero-length data array: Embed succeeds but yields no vectors.
		es := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(voyage.EmbedResponse{Object: "list"})
		}))
		defer es.Close()

		repo := qdrant.New(pkgQdrant.NewClient("http://unused.local"), newEmbedder(t, es.URL), "artifacts", &noopLogger{})

		err := repo.Register(ctx, model.Artifact{RecordID: "records/9", Content: "x"})
		if err == nil {
			t.Fatal("Register() should fail without a vector")
		}
		if strings.Contains(err.Error(), "%!w") {
			t.Errorf("error %q wraps a nil error", err.Error())
		}
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("search is scoped to the requesting user", func(t *testing.T) {
		var searched pkgQdrant.SearchRequest

		mux := http.NewServeMux()
		mux.HandleFunc("/collections/artifacts/points/search", func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&searched)
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(pkgQdrant.SearchResponse{
				Result: []pkgQdrant.ScoredPoint{
					{ID: "p1", Score: 0.9, Payload: map[string]interface{}{
						"record_id": "records/9",
						"user_id":   "telegram_42",
					}},
				},
			})
		})
		qs := httptest.NewServer(mux)
		defer qs.Close()

		es := embedServer(t, []float32{0.1, 0.2})
		defer es.Close()

		repo := qdrant.New(pkgQdrant.NewClient(qs.URL), newEmbedder(t, es.URL), "artifacts", &noopLogger{})

		results, err := repo.Search(ctx, repository.SearchOptions{
			Query:  "wifi",
			Limit:  5,
			UserID: "telegram_42",
		})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(results) != 1 || results[0].RecordID != "records/9" {
			t.Fatalf("results = %+v", results)
		}

		must, ok := searched.Filter["must"].([]interface{})
		if !ok || len(must) != 1 {
			t.Fatalf("filter = %+v, want one must condition", searched.Filter)
		}
		cond := must[0].(map[string]interface{})
		if cond["key"] != "user_id" {
			t.Errorf("filter key = %v, want user_id", cond["key"])
		}
		match := cond["match"].(map[string]interface{})
		if match["value"] != "telegram_42" {
			t.Errorf("filter value = %v, want telegram_42", match["value"])
		}
	})

	t.Run("no user means no filter", func(t *testing.T) {
		var searched pkgQdrant.SearchRequest

		mux := http.NewServeMux()
		mux.HandleFunc("/collections/artifacts/points/search", func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&searched)
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(pkgQdrant.SearchResponse{})
		})
		qs := httptest.NewServer(mux)
		defer qs.Close()

		es := embedServer(t, []float32{0.1, 0.2})
		defer es.Close()

		repo := qdrant.New(pkgQdrant.NewClient(qs.URL), newEmbedder(t, es.URL), "artifacts", &noopLogger{})

		if _, err := repo.Search(ctx, repository.SearchOptions{Query: "wifi", Limit: 5}); err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if searched.Filter != nil {
			t.Errorf("filter = %+v, want none", searched.Filter)
		}
	})
}
