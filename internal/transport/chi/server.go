package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	dommatch "github.com/kailas-cloud/jobmatch/internal/domain/match"
	"github.com/kailas-cloud/jobmatch/internal/extract"
	logpkg "github.com/kailas-cloud/jobmatch/internal/logger"
	healthuc "github.com/kailas-cloud/jobmatch/internal/usecase/health"
)

const (
	maxTopN = 100
	// multipart parts above this size spill to temp files
	multipartMemory = 8 << 20
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Limits caps request sizes.
type Limits struct {
	MaxBodyBytes   int64
	MaxUploadBytes int64
}

// Server holds the HTTP handlers of the matching API.
type Server struct {
	analyzer      dommatch.Analyzer
	health        *healthuc.Service
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	analyzer dommatch.Analyzer,
	health *healthuc.Service,
	limits Limits,
	logger *zap.Logger,
) *Server {
	s := &Server{
		analyzer: analyzer,
		health:   health,
		limits:   limits,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrUnsupportedFormat, http.StatusUnsupportedMediaType, ErrorCodeUnsupportedFormat),
		sentinelHandler(domain.ErrPayloadTooLarge, http.StatusRequestEntityTooLarge, ErrorCodePayloadTooLarge),
	}
	return s
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, WelcomeResponse{Message: WelcomeMessage})
}

// Match handles POST /match/.
func (s *Server) Match(w http.ResponseWriter, r *http.Request) {
	params, err := bindMatchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	if s.limits.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.limits.MaxBodyBytes)
	}
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if isTooLarge(err) {
			s.handleDomainError(w, fmt.Errorf("%w: request body", domain.ErrPayloadTooLarge))
			return
		}
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	s.analyze(w, r, req, params)
}

// MatchUpload handles POST /match/upload. Each document comes either as a
// text field or as a file (txt, pdf, docx); the text field wins when both are set.
func (s *Server) MatchUpload(w http.ResponseWriter, r *http.Request) {
	params, err := bindMatchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	if s.limits.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.limits.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isTooLarge(err) {
			s.handleDomainError(w, fmt.Errorf("%w: upload", domain.ErrPayloadTooLarge))
			return
		}
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	job, err := formDocument(r.MultipartForm, dommatch.FieldJobDescription, "job_file")
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	resume, err := formDocument(r.MultipartForm, dommatch.FieldResume, "resume_file")
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.analyze(w, r, MatchRequest{JobDescription: job, Resume: resume}, params)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request, req MatchRequest, params MatchParams) {
	topN := 0
	if params.TopN != nil {
		topN = *params.TopN
	}

	res, err := s.analyzer.Analyze(r.Context(), req.JobDescription, req.Resume, topN)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	logpkg.FromContext(r.Context()).Debug("match served",
		zap.String("job_preview", logpkg.TruncateForLog(req.JobDescription, 60)),
		zap.Float64("match_score", res.Similarity()),
	)
	writeJSON(w, http.StatusOK, resultToResponse(res))
}

func bindMatchParams(r *http.Request) (MatchParams, error) {
	var params MatchParams
	if err := runtime.BindQueryParameter("form", true, false, "top_n", r.URL.Query(), &params.TopN); err != nil {
		return MatchParams{}, fmt.Errorf("invalid format for parameter top_n: %w", err)
	}
	if params.TopN != nil && (*params.TopN < 1 || *params.TopN > maxTopN) {
		return MatchParams{}, fmt.Errorf("top_n must be between 1 and %d, got %d", maxTopN, *params.TopN)
	}
	return params, nil
}

// formDocument returns the text field if set, otherwise the extracted text of the file part.
// A missing document yields "" so the analyzer reports it as invalid input.
func formDocument(form *multipart.Form, textField, fileField string) (string, error) {
	if v := form.Value[textField]; len(v) > 0 && v[0] != "" {
		return v[0], nil
	}
	files := form.File[fileField]
	if len(files) == 0 {
		return "", nil
	}
	return readUpload(files[0])
}

func readUpload(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}

	mimeType := extract.DetectMIME(fh.Filename, fh.Header.Get("Content-Type"))
	text, err := extract.Text(mimeType, data)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", fh.Filename, err)
	}
	return text, nil
}

func resultToResponse(res dommatch.Result) MatchResponse {
	return MatchResponse{
		MatchScore:      res.Similarity(),
		MatchPercentage: res.Percentage(),
		KeyTermsFound:   nonNil(res.FoundTerms()),
		MissingTerms:    nonNil(res.MissingTerms()),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message without exposing internals.
// Input errors keep the field name so the caller knows what to fix.
func safeDomainMessage(err error) string {
	var ie *domain.InputError
	if errors.As(err, &ie) {
		return ie.Error()
	}
	sentinels := []error{
		domain.ErrInvalidInput,
		domain.ErrUnsupportedFormat,
		domain.ErrPayloadTooLarge,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
