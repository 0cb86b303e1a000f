package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/swaggo/swag"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driving"
)

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 1 << 20

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// HealthResponse reports backend configuration and dependency state
// @Description Health status of the API and its dependencies
type HealthResponse struct {
	OK               bool              `json:"ok" example:"true"`
	Version          string            `json:"version,omitempty" example:"1.0.0"`
	OpenAIConfigured bool              `json:"openai_configured"`
	Components       map[string]string `json:"components"`
}

// PreviewRequest carries raw scores to aggregate without storing
// @Description Raw per-indicator levels keyed by indicator name
type PreviewRequest struct {
	Scores domain.RawScores `json:"scores"`
}

// ExplainRequest asks for a plain-language description of an indicator
type ExplainRequest struct {
	CriterionName string `json:"criterion_name" example:"Data Minimisation Policy"`
}

// ExplainResponse is the explanation text
type ExplainResponse struct {
	Explanation string `json:"explanation"`
}

// FeedbackSavedResponse confirms a stored feedback entry
type FeedbackSavedResponse struct {
	Saved bool   `json:"saved" example:"true"`
	ID    string `json:"id" example:"6f1c2d9e-2b7a-4c1e-9a55-0c1f0e2d3b4a"`
}

// FeedbackListResponse wraps listed feedback entries
type FeedbackListResponse struct {
	Items []*domain.Feedback `json:"items"`
}

// DeletedResponse confirms a deleted company
type DeletedResponse struct {
	Deleted int64 `json:"deleted" example:"3"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns dependency health and whether a completion provider is configured
// @Tags         Health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse  "Database unreachable"
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		OK:         true,
		Version:    s.version,
		Components: map[string]string{"server": "healthy"},
	}

	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			resp.OK = false
			resp.Components["database"] = "unhealthy"
		} else {
			resp.Components["database"] = "healthy"
		}
	}

	// Redis is optional; a failure degrades caching but not correctness
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			resp.Components["redis"] = "unhealthy"
		} else {
			resp.Components["redis"] = "healthy"
		}
	}

	if s.chatStatus != nil && s.chatStatus.ChatCompleter() != nil {
		resp.OpenAIConfigured = true
		resp.Components["llm"] = "configured"
	} else {
		resp.Components["llm"] = "not_configured"
	}

	status := http.StatusOK
	if !resp.OK {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

// handleSwaggerDoc serves the registered OpenAPI document
func (s *Server) handleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusNotFound, "api documentation not registered")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// Auth endpoints

// handleLogin godoc
// @Summary      Staff login
// @Description  Authenticate with email and password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials or account disabled"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "email and password are required")
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "account disabled")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleRefresh godoc
// @Summary      Refresh token
// @Description  Exchange a refresh token for a new JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RefreshRequest  true  "Refresh token"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid refresh token"
// @Router       /auth/refresh [post]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.authService.RefreshToken(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary      Logout
// @Description  Invalidate the current session token
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Router       /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := extractBearerToken(r); token != "" {
		_ = s.authService.Logout(r.Context(), token)
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// Catalogue endpoints

// handleListIndicators godoc
// @Summary      List indicators
// @Description  Returns the loaded indicator catalogue in catalogue order
// @Tags         Indicators
// @Produce      json
// @Success      200  {array}  domain.IndicatorDefinition
// @Router       /indicators [get]
func (s *Server) handleListIndicators(w http.ResponseWriter, r *http.Request) {
	indicators := s.indicatorService.List(r.Context())
	if indicators == nil {
		indicators = []domain.IndicatorDefinition{}
	}
	writeJSON(w, http.StatusOK, indicators)
}

// handleGetIndicator godoc
// @Summary      Get indicator
// @Description  Looks an indicator up by its exact name
// @Tags         Indicators
// @Produce      json
// @Param        name  path      string  true  "Indicator name"
// @Success      200   {object}  domain.IndicatorDefinition
// @Failure      404   {object}  ErrorResponse  "Indicator not found"
// @Router       /indicators/{name} [get]
func (s *Server) handleGetIndicator(w http.ResponseWriter, r *http.Request) {
	ind, err := s.indicatorService.Get(r.Context(), r.PathValue("name"))
	if err != nil {
		writeServiceError(w, err, "failed to get indicator")
		return
	}
	writeJSON(w, http.StatusOK, ind)
}

// Company endpoints

// handleListCompanies godoc
// @Summary      List companies
// @Description  Returns every evaluated company with its stored scores
// @Tags         Companies
// @Produce      json
// @Success      200  {array}   domain.Company
// @Failure      500  {object}  ErrorResponse
// @Router       /companies [get]
func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.companyService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list companies")
		return
	}
	if companies == nil {
		companies = []*domain.Company{}
	}
	writeJSON(w, http.StatusOK, companies)
}

// handleGetCompany godoc
// @Summary      Get company
// @Tags         Companies
// @Produce      json
// @Param        id   path      int  true  "Company ID"
// @Success      200  {object}  domain.Company
// @Failure      400  {object}  ErrorResponse  "Invalid ID"
// @Failure      404  {object}  ErrorResponse  "Company not found"
// @Router       /companies/{id} [get]
func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := companyID(w, r)
	if !ok {
		return
	}

	company, err := s.companyService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get company")
		return
	}
	writeJSON(w, http.StatusOK, company)
}

// handleCreateCompany godoc
// @Summary      Create company
// @Description  Stores a company. Per-category and overall scores are computed server side; client supplied aggregates are ignored.
// @Tags         Companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.CompanyInput  true  "Company"
// @Success      201      {object}  domain.Company
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      403      {object}  ErrorResponse  "Admin access required"
// @Router       /companies [post]
func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var in domain.CompanyInput
	if !decodeJSON(w, r, &in) {
		return
	}

	company, err := s.companyService.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err, "failed to create company")
		return
	}
	writeJSON(w, http.StatusCreated, company)
}

// handleUpdateCompany godoc
// @Summary      Update company
// @Description  Applies a partial update and re-aggregates scores
// @Tags         Companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                  true  "Company ID"
// @Param        request  body      domain.CompanyInput  true  "Fields to change"
// @Success      200      {object}  domain.Company
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      404      {object}  ErrorResponse  "Company not found"
// @Router       /companies/{id} [put]
func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := companyID(w, r)
	if !ok {
		return
	}

	var in domain.CompanyInput
	if !decodeJSON(w, r, &in) {
		return
	}

	company, err := s.companyService.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, err, "failed to update company")
		return
	}
	writeJSON(w, http.StatusOK, company)
}

// handleDeleteCompany godoc
// @Summary      Delete company
// @Tags         Companies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Company ID"
// @Success      200  {object}  DeletedResponse
// @Failure      404  {object}  ErrorResponse  "Company not found"
// @Router       /companies/{id} [delete]
func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := companyID(w, r)
	if !ok {
		return
	}

	if err := s.companyService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete company")
		return
	}
	writeJSON(w, http.StatusOK, DeletedResponse{Deleted: id})
}

// handleGetCompanyScores godoc
// @Summary      Company scores
// @Description  Aggregates the stored raw scores against the current catalogue
// @Tags         Scores
// @Produce      json
// @Param        id   path      int  true  "Company ID"
// @Success      200  {object}  domain.ScoreResult
// @Failure      404  {object}  ErrorResponse  "Company not found"
// @Router       /companies/{id}/scores [get]
func (s *Server) handleGetCompanyScores(w http.ResponseWriter, r *http.Request) {
	id, ok := companyID(w, r)
	if !ok {
		return
	}

	result, err := s.companyService.Scores(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to score company")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handlePreviewScores godoc
// @Summary      Preview scores
// @Description  Aggregates arbitrary raw scores without storing anything
// @Tags         Scores
// @Accept       json
// @Produce      json
// @Param        request  body      PreviewRequest  true  "Raw scores"
// @Success      200      {object}  domain.ScoreResult
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Router       /scores/preview [post]
func (s *Server) handlePreviewScores(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.companyService.Preview(r.Context(), req.Scores))
}

// handleLeaderboard godoc
// @Summary      Leaderboard
// @Description  Companies ranked by overall score, ties broken by name
// @Tags         Scores
// @Produce      json
// @Param        limit  query     int  false  "Maximum entries; 0 or absent returns all"
// @Success      200    {array}   domain.LeaderboardEntry
// @Failure      400    {object}  ErrorResponse  "Invalid limit"
// @Router       /leaderboard [get]
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	entries, err := s.companyService.Leaderboard(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleRebuildLeaderboard godoc
// @Summary      Rebuild leaderboard
// @Description  Re-aggregates every company and replaces the leaderboard index
// @Tags         Scores
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /leaderboard/rebuild [post]
func (s *Server) handleRebuildLeaderboard(w http.ResponseWriter, r *http.Request) {
	if err := s.companyService.RebuildLeaderboard(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "leaderboard rebuild failed")
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleBadge godoc
// @Summary      Score badge
// @Description  Renders a 120x30 SVG badge showing the company's overall score
// @Tags         Companies
// @Produce      image/svg+xml
// @Param        id   path      int  true  "Company ID"
// @Success      200  {string}  string  "SVG image"
// @Failure      404  {string}  string  "Company not found"
// @Router       /badge/{id} [get]
func (s *Server) handleBadge(w http.ResponseWriter, r *http.Request) {
	id, ok := companyID(w, r)
	if !ok {
		return
	}

	company, err := s.companyService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Company not found", http.StatusNotFound)
			return
		}
		http.Error(w, "badge unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(renderBadge(company.Overall)))
}

// Assistant endpoints

// handleChat godoc
// @Summary      Assistant chat turn
// @Description  Answers one chat turn with topic-relevant context. Provider failures return a canned reply, never an error.
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ChatRequest  true  "Conversation and page context"
// @Success      200      {object}  domain.ChatResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Router       /llm/chat [post]
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.chatService.Reply(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid chat request")
			return
		}
		resp = &domain.ChatResponse{Reply: domain.FallbackReply}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleExplain godoc
// @Summary      Explain indicator
// @Description  Describes an indicator, its rationale and how it is scored
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Param        request  body      ExplainRequest  true  "Indicator name"
// @Success      200      {object}  ExplainResponse
// @Failure      400      {object}  ErrorResponse  "Criterion name not provided"
// @Router       /llm-explain [post]
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var req ExplainRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	text, err := s.explainService.Explain(r.Context(), req.CriterionName)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Criterion name not provided")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to explain criterion")
		return
	}
	writeJSON(w, http.StatusOK, ExplainResponse{Explanation: text})
}

// Feedback endpoints

// handleSubmitFeedback godoc
// @Summary      Submit feedback
// @Description  Stores a message from the feedback widget. session_id, route and message are required.
// @Tags         Feedback
// @Accept       json
// @Produce      json
// @Param        request  body      domain.FeedbackInput  true  "Feedback"
// @Success      201      {object}  FeedbackSavedResponse
// @Failure      400      {object}  ErrorResponse  "Missing required fields"
// @Failure      500      {object}  ErrorResponse  "Storage failure"
// @Router       /feedback [post]
func (s *Server) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var in domain.FeedbackInput
	if !decodeJSON(w, r, &in) {
		return
	}

	id, err := s.feedbackService.Submit(r.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to save feedback")
		return
	}
	writeJSON(w, http.StatusCreated, FeedbackSavedResponse{Saved: true, ID: id})
}

// handleListFeedback godoc
// @Summary      List feedback
// @Description  Newest feedback first. Requires an admin or reviewer token.
// @Tags         Feedback
// @Produce      json
// @Security     BearerAuth
// @Param        limit           query     int     false  "Maximum entries (default 100, max 1000)"
// @Param        route           query     string  false  "Filter by route"
// @Param        indicator_name  query     string  false  "Filter by indicator"
// @Success      200             {object}  FeedbackListResponse
// @Failure      400             {object}  ErrorResponse  "Invalid limit"
// @Failure      401             {object}  ErrorResponse  "Unauthorized"
// @Failure      403             {object}  ErrorResponse  "Insufficient permissions"
// @Router       /feedback [get]
func (s *Server) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	q := r.URL.Query()
	items, err := s.feedbackService.List(r.Context(), domain.FeedbackFilter{
		Limit:         limit,
		Route:         q.Get("route"),
		IndicatorName: q.Get("indicator_name"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list feedback")
		return
	}
	writeJSON(w, http.StatusOK, FeedbackListResponse{Items: items})
}

// Staff endpoints

// handleListUsers godoc
// @Summary      List staff accounts
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.UserSummary
// @Failure      500  {object}  ErrorResponse
// @Router       /users [get]
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	summaries := make([]*domain.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, u.ToSummary())
	}
	writeJSON(w, http.StatusOK, summaries)
}

// handleCreateUser godoc
// @Summary      Create staff account
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.CreateUserRequest  true  "Account details"
// @Success      201      {object}  domain.UserSummary
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      409      {object}  ErrorResponse  "Email already in use"
// @Router       /users [post]
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req driving.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.userService.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "email, password, name and a valid role are required")
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "email already in use")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}
	writeJSON(w, http.StatusCreated, user.ToSummary())
}

// handleDeleteUser godoc
// @Summary      Delete staff account
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  StatusResponse
// @Failure      403  {object}  ErrorResponse  "Cannot delete the last admin"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Router       /users/{id} [delete]
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "user id required")
		return
	}

	if err := s.userService.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "cannot delete the last admin")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete user")
		}
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError maps domain errors to status codes
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// decodeJSON reads a bounded JSON body, writing a 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func companyID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid company id")
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter; absent means 0
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return n, true
}
