// Package chi serves the company API over a chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/companydex/internal/domain"
	logpkg "github.com/kailas-cloud/companydex/internal/logger"
	companyuc "github.com/kailas-cloud/companydex/internal/usecase/company"
	healthuc "github.com/kailas-cloud/companydex/internal/usecase/health"
	"github.com/kailas-cloud/companydex/internal/version"
)

const (
	msgCompanyNotFound  = "Company not found"
	msgInvalidBody      = "Invalid request body"
	msgInvalidQuery     = "Invalid query"
	msgStoreUnavailable = "Service temporarily unavailable"
	msgInternal         = "Internal server error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the HTTP handlers for companies, health and metrics.
type Server struct {
	companies     *companyuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(companies *companyuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		companies: companies,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrStoreQuery, http.StatusBadRequest, msgInvalidQuery),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, msgStoreUnavailable),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, msgCompanyNotFound),
		invalidCompanyHandler,
	}
	return s
}

// Mount registers all routes on r.
func (s *Server) Mount(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/companies", func(r chi.Router) {
		r.Get("/", s.ListCompanies)
		r.Post("/", s.CreateCompany)
		r.Get("/{id}", s.GetCompany)
		r.Put("/{id}", s.UpdateCompany)
		r.Delete("/{id}", s.DeleteCompany)
	})
}

// ListCompanies handles GET /api/companies.
func (s *Server) ListCompanies(w http.ResponseWriter, r *http.Request) {
	res, err := s.companies.List(r.Context(), bindListParams(r.URL.Query()))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToResponse(res))
}

// GetCompany handles GET /api/companies/{id}.
func (s *Server) GetCompany(w http.ResponseWriter, r *http.Request) {
	c, err := s.companies.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Success: true, Data: companyToResponse(&c)})
}

// CreateCompany handles POST /api/companies.
func (s *Server) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	c, err := s.companies.Create(r.Context(), req.toFields())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dataResponse{Success: true, Data: companyToResponse(&c)})
}

// UpdateCompany handles PUT /api/companies/{id}. Only supplied fields change.
func (s *Server) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	c, err := s.companies.Update(r.Context(), chi.URLParam(r, "id"), req.toPatch())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Success: true, Data: companyToResponse(&c)})
}

// DeleteCompany handles DELETE /api/companies/{id}.
func (s *Server) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := s.companies.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Success: true, Data: id})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:  string(report.Status),
		Version: version.Version,
		Checks:  checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Message: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, message)
		return true
	}
}

// invalidCompanyHandler reports which field failed typing; the domain messages carry no internals.
func invalidCompanyHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrInvalidCompany) {
		return false
	}
	writeError(w, http.StatusBadRequest, err.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, msgInternal)
}
