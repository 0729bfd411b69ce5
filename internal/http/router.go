package httpx

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"log/slog"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/datelohan/projetorh/internal/service/auth"
	"github.com/datelohan/projetorh/internal/service/employee"
	"github.com/datelohan/projetorh/internal/service/hr"
	"github.com/datelohan/projetorh/internal/service/timeclock"
	"github.com/datelohan/projetorh/internal/service/user"
)

// Router wires HTTP endpoints to services.
type Router struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	auth      auth.Service
	users     user.Service
	employees employee.Service
	hr        hr.Service
	timeclock timeclock.Service
	upgrader  websocket.Upgrader
	limiter   RateLimiter
	dbHealth  func(context.Context) error

	metricsOnce        sync.Once
	metricsInitialized bool
	requestTotal       *prometheus.CounterVec
	requestLatency     *prometheus.HistogramVec
	rateLimitHits      *prometheus.CounterVec
}

const (
	rateWindowDefault  = time.Minute
	rateLimitRegister  = 5
	rateLimitLogin     = 12
	rateLimitUserWrite = 60
	rateLimitWebsocket = 30
	rateWindowRealtime = 30 * time.Second
)

// NewRouter assembles routes with dependencies.
func NewRouter(logger *slog.Logger, authSvc auth.Service, userSvc user.Service, employeeSvc employee.Service, hrSvc hr.Service, timeclockSvc timeclock.Service, limiter RateLimiter, dbHealth func(context.Context) error) *Router {
	r := &Router{
		mux:       http.NewServeMux(),
		logger:    logger,
		auth:      authSvc,
		users:     userSvc,
		employees: employeeSvc,
		hr:        hrSvc,
		timeclock: timeclockSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		limiter:  limiter,
		dbHealth: dbHealth,
	}
	if r.limiter == nil {
		r.limiter = NewMemoryRateLimiter()
	}
	r.initMetrics()
	r.register()
	return r
}

// ServeHTTP delegates to underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Close releases background resources.
func (r *Router) Close() {
	if r.limiter != nil {
		r.limiter.Close()
	}
}

func (r *Router) register() {
	r.mux.HandleFunc("/health", r.audit("/health", r.handleHealth))
	r.mux.Handle("/metrics", promhttp.Handler())
	r.mux.HandleFunc("/auth/login", r.audit("/auth/login", r.withRateLimit("/auth/login", rateLimitLogin, rateWindowDefault, rateLimitKeyIP, r.handleLogin)))
	r.mux.HandleFunc("/auth/register", r.audit("/auth/register", r.withRateLimit("/auth/register", rateLimitRegister, rateWindowDefault, rateLimitKeyIP, r.handleRegister)))
	r.mux.HandleFunc("/auth/me", r.audit("/auth/me", r.requireAuth(r.handleMe)))
	r.mux.HandleFunc("/usuarios", r.audit("/usuarios", r.handlerAuthRate("/usuarios", rateLimitUserWrite, rateWindowDefault, r.handleUsers)))
	r.mux.HandleFunc("/usuarios/", r.audit("/usuarios/{id}", r.handlerAuthRate("/usuarios/{id}", rateLimitUserWrite, rateWindowDefault, r.handleUserByID)))
	r.mux.HandleFunc("/funcionarios", r.audit("/funcionarios", r.handlerAuthRate("/funcionarios", rateLimitUserWrite, rateWindowDefault, r.handleEmployees)))
	r.mux.HandleFunc("/funcionarios/", r.audit("/funcionarios/{id}", r.handlerAuthRate("/funcionarios/{id}", rateLimitUserWrite, rateWindowDefault, r.handleEmployeeSubroutes)))
	r.mux.HandleFunc("/ferias", r.audit("/ferias", r.handlerAuthRate("/ferias", rateLimitUserWrite, rateWindowDefault, r.handleVacations)))
	r.mux.HandleFunc("/despesas", r.audit("/despesas", r.handlerAuthRate("/despesas", rateLimitUserWrite, rateWindowDefault, r.handleExpenses)))
	r.mux.HandleFunc("/holerites", r.audit("/holerites", r.handlerAuthRate("/holerites", rateLimitUserWrite, rateWindowDefault, r.handlePayslips)))
	r.mux.HandleFunc("/contratacoes", r.audit("/contratacoes", r.handlerAuthRate("/contratacoes", rateLimitUserWrite, rateWindowDefault, r.handleHiringProcesses)))
	r.mux.HandleFunc("/ws/ponto", r.audit("/ws/ponto", r.handlerAuthRate("/ws/ponto", rateLimitWebsocket, rateWindowRealtime, r.handleTimeclockWS)))
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	if r.dbHealth != nil {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := r.dbHealth(ctx); err != nil {
			r.logger.Warn("database health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail is the top-level fallback for errors no handler classified: the
// client gets a generic 500, the log gets the detail.
func (r *Router) fail(w http.ResponseWriter, req *http.Request, err error) {
	r.logger.Error("request failed", "error", err, "method", req.Method, "path", req.URL.Path)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func (r *Router) audit(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w}
		start := time.Now()
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("handler panic", "panic", rec, "method", req.Method, "path", req.URL.Path)
				if recorder.status == 0 {
					writeError(recorder, http.StatusInternalServerError, "internal server error")
				}
			}
		}()
		next(recorder, req)

		status := recorder.status
		if status == 0 {
			status = http.StatusOK
		}
		ctx := recorder.ctx
		if ctx == nil {
			ctx = req.Context()
		}
		duration := time.Since(start)
		actor := "anonymous"
		fields := []any{
			"method", req.Method,
			"path", req.URL.Path,
			"status", status,
			"bytes", recorder.bytes,
			"duration_ms", duration.Milliseconds(),
		}
		if ip := clientIP(req); ip != "" {
			fields = append(fields, "ip", ip)
		}
		if reqID := strings.TrimSpace(req.Header.Get("X-Request-ID")); reqID != "" {
			fields = append(fields, "request_id", reqID)
		}
		if userID, ok := userIDFromContext(ctx); ok {
			actor = "user"
			fields = append(fields, "user_id", userID)
		}
		fields = append(fields, "actor", actor)

		switch {
		case status >= http.StatusInternalServerError:
			r.logger.Error("http_request", fields...)
		case status >= http.StatusBadRequest:
			r.logger.Warn("http_request", fields...)
		default:
			r.logger.Info("http_request", fields...)
		}
		r.recordRequestMetrics(req.Method, route, status, duration)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
	ctx    context.Context
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

func (sr *statusRecorder) SetContext(ctx context.Context) {
	sr.ctx = ctx
}

func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (sr *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := sr.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, errors.New("hijacker not supported")
}

func clientIP(req *http.Request) string {
	if forwarded := strings.TrimSpace(req.Header.Get("X-Forwarded-For")); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			ip := strings.TrimSpace(parts[0])
			if ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(req.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(req.RemoteAddr)
	}
	return host
}

func (r *Router) methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func (r *Router) notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "not found")
}
