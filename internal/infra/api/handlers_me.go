package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"devlink-platform/internal/domain/model"
	"devlink-platform/internal/usecase"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	usr, err := s.userUC.Get(r.Context(), SessionUserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       usr.ID,
		"email":    usr.Email,
		"username": usr.Username,
	})
}

func (s *Server) handleGetOwnProfile(w http.ResponseWriter, r *http.Request) {
	prof, err := s.profileUC.GetOwn(r.Context(), SessionUserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileView(prof))
}

type profileUpdateRequest struct {
	DisplayName    string   `json:"display_name"`
	Bio            string   `json:"bio"`
	AvatarURL      string   `json:"avatar_url"`
	Theme          string   `json:"theme"`
	TechStack      []string `json:"tech_stack"`
	GithubUsername string   `json:"github_username"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	prof, err := s.profileUC.Update(r.Context(), SessionUserID(r.Context()), usecase.ProfileUpdate{
		DisplayName:    req.DisplayName,
		Bio:            req.Bio,
		AvatarURL:      req.AvatarURL,
		Theme:          req.Theme,
		TechStack:      req.TechStack,
		GithubUsername: req.GithubUsername,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileView(prof))
}

// ===== Links =====

type linkRequest struct {
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

type linkView struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

func toLinkView(l *model.Link) linkView {
	return linkView{ID: l.ID, Kind: string(l.Kind), Title: l.Title, URL: l.URL, Position: l.Position}
}

func (s *Server) handleListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := s.contentUC.ListLinks(r.Context(), SessionUserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	items := make([]linkView, 0, len(links))
	for _, l := range links {
		items = append(items, toLinkView(l))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (s *Server) handleAddLink(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l, err := s.contentUC.AddLink(r.Context(), SessionUserID(r.Context()), model.LinkKind(req.Kind), req.Title, req.URL, req.Position)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLinkView(l))
}

func (s *Server) handleUpdateLink(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l, err := s.contentUC.UpdateLink(r.Context(), SessionUserID(r.Context()), chi.URLParam(r, "id"), req.Title, req.URL, req.Position)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLinkView(l))
}

func (s *Server) handleDeleteLink(w http.ResponseWriter, r *http.Request) {
	if err := s.contentUC.DeleteLink(r.Context(), SessionUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== Projects =====

type projectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	RepoURL     string `json:"repo_url"`
	LiveURL     string `json:"live_url"`
	Position    int    `json:"position"`
}

type projectView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	RepoURL     string `json:"repo_url,omitempty"`
	LiveURL     string `json:"live_url,omitempty"`
	Position    int    `json:"position"`
}

func toProjectView(p *model.Project) projectView {
	return projectView{ID: p.ID, Title: p.Title, Description: p.Description, RepoURL: p.RepoURL, LiveURL: p.LiveURL, Position: p.Position}
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.contentUC.ListProjects(r.Context(), SessionUserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	items := make([]projectView, 0, len(projects))
	for _, p := range projects {
		items = append(items, toProjectView(p))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (s *Server) handleAddProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := s.contentUC.AddProject(r.Context(), SessionUserID(r.Context()), req.Title, req.Description, req.RepoURL, req.LiveURL, req.Position)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProjectView(p))
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := s.contentUC.UpdateProject(r.Context(), SessionUserID(r.Context()), chi.URLParam(r, "id"), req.Title, req.Description, req.RepoURL, req.LiveURL, req.Position)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectView(p))
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.contentUC.DeleteProject(r.Context(), SessionUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== Experiences =====

type experienceRequest struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}

type experienceView struct {
	ID          string `json:"id"`
	Role        string `json:"role"`
	Company     string `json:"company"`
	Period      string `json:"period,omitempty"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`
}

func toExperienceView(e *model.Experience) experienceView {
	return experienceView{ID: e.ID, Role: e.Role, Company: e.Company, Period: e.Period, Description: e.Description, Position: e.Position}
}

func (s *Server) handleListExperiences(w http.ResponseWriter, r *http.Request) {
	experiences, err := s.contentUC.ListExperiences(r.Context(), SessionUserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	items := make([]experienceView, 0, len(experiences))
	for _, e := range experiences {
		items = append(items, toExperienceView(e))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	var req experienceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e, err := s.contentUC.AddExperience(r.Context(), SessionUserID(r.Context()), req.Role, req.Company, req.Period, req.Description, req.Position)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExperienceView(e))
}

func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	var req experienceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e, err := s.contentUC.UpdateExperience(r.Context(), SessionUserID(r.Context()), chi.URLParam(r, "id"), req.Role, req.Company, req.Period, req.Description, req.Position)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExperienceView(e))
}

func (s *Server) handleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	if err := s.contentUC.DeleteExperience(r.Context(), SessionUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== Stats, subscriptions, access =====

type linkClicksView struct {
	LinkID string `json:"link_id"`
	Title  string `json:"title"`
	Clicks int64  `json:"clicks"`
}

type statsView struct {
	Views      int64            `json:"views"`
	LinkClicks []linkClicksView `json:"link_clicks"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.analyticsUC.Stats(r.Context(), SessionUserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	view := statsView{Views: stats.Views, LinkClicks: make([]linkClicksView, 0, len(stats.LinkClicks))}
	for _, lc := range stats.LinkClicks {
		view.LinkClicks = append(view.LinkClicks, linkClicksView{LinkID: lc.LinkID, Title: lc.Title, Clicks: lc.Clicks})
	}
	writeJSON(w, http.StatusOK, view)
}

type subscriptionView struct {
	ID        string     `json:"id"`
	FeatureID string     `json:"feature_id"`
	Status    string     `json:"status"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.accessUC.ListGrants(r.Context(), SessionUserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	items := make([]subscriptionView, 0, len(subs))
	for _, sub := range subs {
		items = append(items, subscriptionView{
			ID:        sub.ID,
			FeatureID: sub.FeatureID,
			Status:    string(sub.Status),
			StartDate: sub.StartDate,
			EndDate:   sub.EndDate,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (s *Server) handleHasAccess(w http.ResponseWriter, r *http.Request) {
	ok, err := s.accessUC.HasAccess(r.Context(), SessionUserID(r.Context()), chi.URLParam(r, "feature"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"has_access": ok})
}
