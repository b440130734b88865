package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/recipecard/pkg/buildinfo"
	"github.com/matzehuels/recipecard/pkg/errors"
	"github.com/matzehuels/recipecard/pkg/template"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Version:   buildinfo.Get().Version,
		Timestamp: time.Now().UTC(),
	})
}

func (s *Server) listSizes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, template.Sizes())
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	ts, err := s.Store.List(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

type createRequest struct {
	Name string `json:"name"`
	Size string `json:"size,omitempty"`
	From string `json:"from,omitempty"`
}

// createTemplate makes an empty template of a size, or a copy of From.
func (s *Server) createTemplate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := errors.ValidateTemplateName(req.Name); err != nil {
		s.handleError(w, r, err)
		return
	}

	var tmpl template.Template
	switch {
	case req.From != "":
		src, err := s.Store.Get(r.Context(), req.From)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		tmpl = template.Duplicate(src, req.Name)
		if req.Size != "" {
			size, err := template.ParseSize(req.Size)
			if err != nil {
				s.handleError(w, r, err)
				return
			}
			tmpl = template.Resize(tmpl, size)
		}
	case req.Size != "":
		size, err := template.ParseSize(req.Size)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		tmpl = template.New(req.Name, size)
	default:
		s.handleError(w, r, errors.New(errors.ErrCodeInvalidInput, "size or from is required"))
		return
	}

	if err := s.Store.Create(r.Context(), tmpl); err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tmpl)
}

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tmpl)
}

// replaceTemplate stores a full template body. Sections are clamped before
// validation so editors can send raw drag coordinates.
func (s *Server) replaceTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var tmpl template.Template
	if err := decode(w, r, &tmpl); err != nil {
		s.handleError(w, r, err)
		return
	}
	if tmpl.ID != "" && tmpl.ID != id {
		s.handleError(w, r, errors.New(errors.ErrCodeInvalidInput, "body id %s does not match path id %s", tmpl.ID, id))
		return
	}
	stored, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := template.CheckEditable(stored); err != nil {
		s.handleError(w, r, err)
		return
	}
	tmpl.ID = id
	if size, err := template.ParseSize(tmpl.Size.Name); err == nil {
		tmpl.Size = size
	}
	tmpl = template.ClampAll(tmpl)
	tmpl.UpdatedAt = time.Now().UTC()

	if err := s.Store.Update(r.Context(), tmpl); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.respondStored(w, r, id, http.StatusOK)
}

func (s *Server) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addSectionRequest struct {
	Type *template.SectionType `json:"type"`
}

func (s *Server) addSection(w http.ResponseWriter, r *http.Request) {
	var req addSectionRequest
	if err := decode(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if req.Type == nil {
		s.handleError(w, r, errors.New(errors.ErrCodeInvalidSection, "section type is required"))
		return
	}
	s.mutate(w, r, http.StatusCreated, func(t template.Template) (template.Template, error) {
		return template.AddSection(t, *req.Type), nil
	})
}

func (s *Server) updateSection(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	var patch template.SectionPatch
	if err := decode(w, r, &patch); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.mutate(w, r, http.StatusOK, func(t template.Template) (template.Template, error) {
		if _, ok := t.FindSection(sid); !ok {
			return t, sectionNotFound(t.ID, sid)
		}
		return template.UpdateSection(t, sid, patch), nil
	})
}

func (s *Server) removeSection(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	s.mutate(w, r, http.StatusOK, func(t template.Template) (template.Template, error) {
		if _, ok := t.FindSection(sid); !ok {
			return t, sectionNotFound(t.ID, sid)
		}
		return template.RemoveSection(t, sid), nil
	})
}

func sectionNotFound(templateID, sectionID string) error {
	return errors.New(errors.ErrCodeNotFound, "section %s not found in template %s", sectionID, templateID)
}

// mutate loads the template named in the path, applies fn and stores the
// result. The stored template is written back to the client. Default
// templates are refused before fn runs.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, status int, fn func(template.Template) (template.Template, error)) {
	id := chi.URLParam(r, "id")
	tmpl, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := template.CheckEditable(tmpl); err != nil {
		s.handleError(w, r, err)
		return
	}
	tmpl, err = fn(tmpl)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.Store.Update(r.Context(), tmpl); err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, status, tmpl)
}

func (s *Server) respondStored(w http.ResponseWriter, r *http.Request, id string, status int) {
	tmpl, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, status, tmpl)
}
