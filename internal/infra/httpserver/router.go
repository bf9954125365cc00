package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appaudit "github.com/bryanwahyu/automaton-seo/internal/application/audit"
	domai "github.com/bryanwahyu/automaton-seo/internal/domain/ai"
	domain "github.com/bryanwahyu/automaton-seo/internal/domain/audit"
	"github.com/bryanwahyu/automaton-seo/internal/middleware"
)

// maxCredentialsBytes caps the uploaded service-account key size.
const maxCredentialsBytes = 1 << 20

var errBadRequest = errors.New("bad request")

type Router struct {
	auditSvc *appaudit.Service
}

// Options wires the ambient middleware from config.
type Options struct {
	APIKeys        map[string]string // tenant -> key; empty disables auth
	RateCapacity   int               // 0 disables rate limiting
	RateRefill     int
	HealthCheckers map[string]middleware.HealthChecker
}

func NewRouter(auditSvc *appaudit.Service, opts Options) http.Handler {
	r := &Router{auditSvc: auditSvc}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if len(opts.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(opts.APIKeys))
	}
	if opts.RateCapacity > 0 {
		mux.Use(middleware.RateLimitMiddleware(opts.RateCapacity, opts.RateRefill))
	}

	mux.Get("/health", middleware.HealthHandler(opts.HealthCheckers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Post("/audits", r.wrap(r.handleRunAudit))
		rt.Get("/audits/latest", r.wrap(r.handleLatest))
		rt.Get("/audits/{id}", r.wrap(r.handleGet))
		rt.Get("/audits/{id}/export.pdf", r.wrap(r.handleExportDocument))
		rt.Get("/audits/{id}/export.csv", r.wrap(r.handleExportTable))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, errBadRequest):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, domain.ErrAuthenticationFailed):
				http.Error(w, err.Error(), http.StatusUnauthorized)
			case errors.Is(err, domain.ErrNotFound), errors.Is(err, sql.ErrNoRows):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, domai.ErrQuotaExceeded):
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

// POST /v1/{tenant}/audits
// multipart form: credentials=<service account json>, site_url=<optional override>
// Runs the full pipeline synchronously and returns the audit, raw payloads
// and narratives included, mirroring the interactive per-section view.
func (r *Router) handleRunAudit(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	if err := middleware.ValidateTenantID(tenant); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}

	if err := req.ParseMultipartForm(maxCredentialsBytes); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	f, _, err := req.FormFile("credentials")
	if err != nil {
		return fmt.Errorf("%w: credentials file is required", errBadRequest)
	}
	defer f.Close()
	creds, err := io.ReadAll(io.LimitReader(f, maxCredentialsBytes))
	if err != nil {
		return err
	}

	siteURL := req.FormValue("site_url")
	if siteURL != "" {
		if err := middleware.ValidateSiteURL(siteURL); err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}

	middleware.IncrementAudits()
	a, err := r.auditSvc.RunAudit(req.Context(), appaudit.RunAuditCommand{
		TenantID:        tenant,
		CredentialsJSON: creds,
		SiteURL:         siteURL,
	})
	if err != nil {
		middleware.IncrementAuditsFailed()
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(a)
}

// GET /v1/{tenant}/audits/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.auditSvc.Latest(req.Context(), tenant, middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{tenant}/audits/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	a, err := r.auditSvc.Get(req.Context(), tenant, domain.AuditID(id))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(a)
}

// GET /v1/{tenant}/audits/{id}/export.pdf
// Regenerates the document export; identical audits download identical bytes.
func (r *Router) handleExportDocument(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	a, err := r.auditSvc.Get(req.Context(), tenant, domain.AuditID(id))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := r.auditSvc.RenderDocument(&buf, a); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", domain.ArtifactFilename))
	_, err = w.Write(buf.Bytes())
	return err
}

// GET /v1/{tenant}/audits/{id}/export.csv?category=index_coverage
func (r *Router) handleExportTable(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")
	category := req.URL.Query().Get("category")
	if err := middleware.ValidateCategory(category); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}

	a, err := r.auditSvc.Get(req.Context(), tenant, domain.AuditID(id))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := r.auditSvc.RenderTable(&buf, a, domain.Category(category)); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", category+"_report.csv"))
	_, err = w.Write(buf.Bytes())
	return err
}
