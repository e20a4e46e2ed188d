package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/juju/errors"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
	"github.com/PaulBabatuyi/portfolio-cms/internal/middleware"
)

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login checks the admin passphrase and returns a bearer token
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.password.Check(req.Password); err != nil {
		middleware.RecordLogin(false)
		s.log.Warn().Str("ip", middleware.ClientIP(r)).Msg("failed admin login")
		middleware.WriteError(w, http.StatusUnauthorized, "invalid_passkey", "Invalid passkey")
		return
	}

	token, expiresAt, err := s.auth.GenerateToken()
	if err != nil {
		s.writeError(w, r, errors.Annotate(err, "generating token"))
		return
	}
	middleware.RecordLogin(true)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt})
}

type healthResponse struct {
	Status string `json:"status"`
	DB     string `json:"db"`
}

// Health reports liveness and whether the content store answers a ping.
// It always answers 200 so load balancers keep routing reads while the
// store reconnects.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", DB: "connected"}
	if err := s.store.Ping(ctx); err != nil {
		s.log.Warn().Err(err).Msg("health: content store unreachable")
		resp.DB = "disconnected"
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetSettings returns the stored settings document, or {} before the first save.
func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.GetSettings(r.Context())
	if errors.Is(err, errors.NotFound) {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// PutSettings merges the fields present in the body into the singleton.
func (s *Server) PutSettings(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	update, err := data.ParseSettingsUpdate(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	settings, err := s.settings.UpsertSettings(r.Context(), update)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.ListProjects(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.projects.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in data.NewProject
	if err := decodeJSON(r, &in, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := data.Validate(in); err != nil {
		s.writeError(w, r, err)
		return
	}
	project, err := s.projects.CreateProject(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (s *Server) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var patch data.ProjectPatch
	if err := decodeJSON(r, &patch, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := data.Validate(patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	project, err := s.projects.UpdateProject(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.projects.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Project deleted")
}

// CreateMessage stores a contact form submission. No auth: visitors post here.
func (s *Server) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var in data.NewMessage
	if err := decodeJSON(r, &in, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	// validate what will be stored, not what was sent
	in = in.Normalize()
	if err := data.Validate(in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := s.msgs.CreateMessage(r.Context(), in); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Message sent successfully")
}

func (s *Server) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.msgs.ListMessages(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (s *Server) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := s.msgs.DeleteMessage(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Message deleted")
}

type batchDeleteRequest struct {
	IDs []string `json:"ids"`
}

// DeleteMessages removes the listed messages in one store call. An empty
// or missing ids list clears the inbox.
func (s *Server) DeleteMessages(w http.ResponseWriter, r *http.Request) {
	var req batchDeleteRequest
	if err := decodeJSON(r, &req, true); err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.msgs.DeleteMessages(r.Context(), req.IDs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info().Int64("deleted", result.Deleted).Int("missing", len(result.Missing)).Msg("batch delete messages")
	writeJSON(w, http.StatusOK, result)
}
