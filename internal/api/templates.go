package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pvaldas/sprintbot/internal/database"
)

type CreateTemplateRequest struct {
	Message string `json:"message"`
}

type UpdateTemplateRequest struct {
	Message *string `json:"message"`
}

func (s *App) listTemplates(w http.ResponseWriter, _ *http.Request) {
	templates, err := s.db.ListTemplates()
	if err != nil {
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, templates)
}

func (s *App) createTemplate(w http.ResponseWriter, r *http.Request) {
	var req CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError())
		return
	}

	req.Message = strings.TrimSpace(req.Message)

	if err := validateTemplateMessage(req.Message); err != nil {
		s.writeError(w, NewValidationError(err.Error()))
		return
	}

	_, err := s.db.GetTemplateByMessage(req.Message)
	if err == nil {
		s.writeError(w, NewValidationError("template with this message already exists"))
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		s.writeError(w, NewInternalServerError(err))
		return
	}

	template, err := s.db.CreateTemplate(database.CreateTemplateParams{Message: req.Message})
	if err != nil {
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusCreated, template)
}

func (s *App) getTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathId(r)
	if err != nil {
		s.writeError(w, NewBadRequestError())
		return
	}

	template, err := s.db.GetTemplateById(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("template with this id does not exist"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, template)
}

func (s *App) updateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathId(r)
	if err != nil {
		s.writeError(w, NewBadRequestError())
		return
	}

	var req UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError())
		return
	}

	if req.Message != nil {
		*req.Message = strings.TrimSpace(*req.Message)
		if err := validateTemplateMessage(*req.Message); err != nil {
			s.writeError(w, NewValidationError(err.Error()))
			return
		}

		_, err := s.db.GetTemplateByMessage(*req.Message)
		if err == nil {
			s.writeError(w, NewValidationError("template with this message already exists"))
			return
		}
		if !errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewInternalServerError(err))
			return
		}
	}

	template, err := s.db.UpdateTemplate(database.UpdateTemplateParams{
		Id:      id,
		Message: req.Message,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("template with this id does not exist"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, template)
}

func (s *App) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathId(r)
	if err != nil {
		s.writeError(w, NewBadRequestError())
		return
	}

	_, err = s.db.DeleteTemplate(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("template with this id does not exist"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusNoContent, nil)
}
