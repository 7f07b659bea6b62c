package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"parkcareers/internal/http/handlers"
	"parkcareers/internal/http/metrics"
	httpmw "parkcareers/internal/http/middleware"
)

type RouterDependencies struct {
	WizardHandler    *handlers.WizardHandler
	TrackingHandler  *handlers.TrackingHandler
	AssistantHandler *handlers.AssistantHandler
	MetricsHandler   *handlers.MetricsHandler
	Metrics          *metrics.Collector
	Logger           *slog.Logger
	RequestTimeout   time.Duration
	MaxBodyBytes     int64
}

type Router struct {
	deps RouterDependencies
}

func NewRouter(deps RouterDependencies) http.Handler {
	if deps.MaxBodyBytes <= 0 {
		deps.MaxBodyBytes = 12 << 20
	}
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.BodyLimit(r.deps.MaxBodyBytes),
		httpmw.Recover,
		httpmw.Metrics(r.deps.Metrics),
		httpmw.Timeout(r.deps.RequestTimeout),
	)
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodPost && path == "/wizard":
			r.deps.WizardHandler.Open(w, req)
			return
		case req.Method == http.MethodPost && strings.HasPrefix(path, "/wizard/") && strings.HasSuffix(path, "/advance"):
			r.deps.WizardHandler.Advance(w, req)
			return
		case req.Method == http.MethodPost && strings.HasPrefix(path, "/wizard/") && strings.HasSuffix(path, "/retreat"):
			r.deps.WizardHandler.Retreat(w, req)
			return
		case req.Method == http.MethodPost && strings.HasPrefix(path, "/wizard/") && strings.HasSuffix(path, "/submit"):
			r.deps.WizardHandler.Submit(w, req)
			return
		case req.Method == http.MethodPut && strings.HasPrefix(path, "/wizard/") && strings.Contains(path, "/sections/"):
			r.deps.WizardHandler.UpdateSection(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/wizard/"):
			r.deps.WizardHandler.Get(w, req)
			return
		case req.Method == http.MethodDelete && strings.HasPrefix(path, "/wizard/"):
			r.deps.WizardHandler.Close(w, req)
			return
		case req.Method == http.MethodGet && path == "/tracking":
			r.deps.TrackingHandler.Quick(w, req)
			return
		case req.Method == http.MethodPost && path == "/tracking":
			r.deps.TrackingHandler.Detailed(w, req)
			return
		case req.Method == http.MethodPost && path == "/assistant":
			r.deps.AssistantHandler.Ask(w, req)
			return
		}

		http.NotFound(w, req)
	})
}
