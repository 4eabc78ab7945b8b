package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

func TestMiddlewareLabelsMatchedRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Middleware)
	router.Get("/api/v1/candidates/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{"abc-123", "def-456"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/candidates/"+id, nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	paths := requestPathLabels(t)
	if !paths["/api/v1/candidates/{id}"] {
		t.Fatalf("expected route pattern label, got %v", paths)
	}
	for _, raw := range []string{"/api/v1/candidates/abc-123", "/api/v1/candidates/def-456"} {
		if paths[raw] {
			t.Fatalf("raw request path %q leaked into labels", raw)
		}
	}
}

// requestPathLabels gathers the path label values recorded on the request
// counter so far.
func requestPathLabels(t *testing.T) map[string]bool {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	paths := make(map[string]bool)
	for _, mf := range families {
		if mf.GetName() != "interview_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "path" {
					paths[label.GetValue()] = true
				}
			}
		}
	}
	return paths
}
