package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"devlink-platform/internal/domain/model"
	"devlink-platform/internal/usecase"
)

// ===== Auth =====

type registerRequest struct {
	SubjectID string `json:"subject_id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
}

type sessionResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	usr, err := s.userUC.Register(r.Context(), req.SubjectID, req.Email, req.Username)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	token, err := s.auth.Mint(w, usr.ID, usr.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, UserID: usr.ID, Username: usr.Username})
}

type loginRequest struct {
	SubjectID string `json:"subject_id"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	usr, err := s.userUC.Resolve(r.Context(), req.SubjectID)
	if err != nil {
		// Unknown subjects get the same answer as bad tokens.
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	token, err := s.auth.Mint(w, usr.ID, usr.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, UserID: usr.ID, Username: usr.Username})
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	s.auth.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// ===== Feature catalog =====

type featureView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
}

func (s *Server) handleListFeatures(w http.ResponseWriter, r *http.Request) {
	features, err := s.featureUC.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	items := make([]featureView, 0, len(features))
	for _, f := range features {
		items = append(items, featureView{
			ID:          f.ID,
			Name:        f.Name,
			DisplayName: f.DisplayName,
			Description: f.Description,
			Price:       f.Price,
			Currency:    f.Currency,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// ===== Public profile =====

type publicLinkView struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

type publicProjectView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	RepoURL     string `json:"repo_url,omitempty"`
	LiveURL     string `json:"live_url,omitempty"`
}

type publicExperienceView struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description,omitempty"`
}

type publicProfileView struct {
	Username       string                 `json:"username"`
	DisplayName    string                 `json:"display_name"`
	Bio            string                 `json:"bio,omitempty"`
	AvatarURL      string                 `json:"avatar_url,omitempty"`
	Theme          string                 `json:"theme"`
	TechStack      []string               `json:"tech_stack,omitempty"`
	GithubUsername string                 `json:"github_username,omitempty"`
	Links          []publicLinkView       `json:"links"`
	Projects       []publicProjectView    `json:"projects"`
	Experiences    []publicExperienceView `json:"experiences"`
}

func toPublicProfileView(p *usecase.PublicProfile) publicProfileView {
	out := publicProfileView{
		Username:       p.Username,
		DisplayName:    p.Profile.DisplayName,
		Bio:            p.Profile.Bio,
		AvatarURL:      p.Profile.AvatarURL,
		Theme:          p.Profile.Theme,
		TechStack:      p.Profile.TechStack,
		GithubUsername: p.Profile.GithubUsername,
		Links:          make([]publicLinkView, 0, len(p.Links)),
		Projects:       make([]publicProjectView, 0, len(p.Projects)),
		Experiences:    make([]publicExperienceView, 0, len(p.Experiences)),
	}
	for _, l := range p.Links {
		out.Links = append(out.Links, publicLinkView{ID: l.ID, Kind: string(l.Kind), Title: l.Title, URL: l.URL, Position: l.Position})
	}
	for _, pr := range p.Projects {
		out.Projects = append(out.Projects, publicProjectView{Title: pr.Title, Description: pr.Description, RepoURL: pr.RepoURL, LiveURL: pr.LiveURL})
	}
	for _, e := range p.Experiences {
		out.Experiences = append(out.Experiences, publicExperienceView{Role: e.Role, Company: e.Company, Period: e.Period, Description: e.Description})
	}
	return out
}

func (s *Server) handlePublicProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	pub, err := s.profileUC.GetPublic(r.Context(), username)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPublicProfileView(pub))
}

func (s *Server) handleLinkClick(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	linkID := chi.URLParam(r, "linkID")
	url, err := s.profileUC.RecordLinkClick(r.Context(), username, linkID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// profileView is the owner's own (private) profile representation. Unlike the
// public view it includes the activation state.
type profileView struct {
	UserID             string   `json:"user_id"`
	DisplayName        string   `json:"display_name"`
	Bio                string   `json:"bio,omitempty"`
	AvatarURL          string   `json:"avatar_url,omitempty"`
	Theme              string   `json:"theme"`
	TechStack          []string `json:"tech_stack,omitempty"`
	GithubUsername     string   `json:"github_username,omitempty"`
	IsPublicLinkActive bool     `json:"is_public_link_active"`
}

func toProfileView(p *model.Profile) profileView {
	return profileView{
		UserID:             p.UserID,
		DisplayName:        p.DisplayName,
		Bio:                p.Bio,
		AvatarURL:          p.AvatarURL,
		Theme:              p.Theme,
		TechStack:          p.TechStack,
		GithubUsername:     p.GithubUsername,
		IsPublicLinkActive: p.IsPublicLinkActive,
	}
}
