package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/pvaldas/sprintbot/internal/database"
)

type CreateSprintRequest struct {
	SprintCode string `json:"sprintCode"`
	Name       string `json:"name"`
}

type UpdateSprintRequest struct {
	SprintCode *string `json:"sprintCode"`
	Name       *string `json:"name"`
}

func (s *App) pathId(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, err
	}
	if err := validateId(id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *App) listSprints(w http.ResponseWriter, _ *http.Request) {
	sprints, err := s.db.ListSprints()
	if err != nil {
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, sprints)
}

func (s *App) createSprint(w http.ResponseWriter, r *http.Request) {
	var req CreateSprintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError())
		return
	}

	req.SprintCode = strings.TrimSpace(req.SprintCode)
	req.Name = strings.TrimSpace(req.Name)

	if err := validateSprintCode(req.SprintCode); err != nil {
		s.writeError(w, NewValidationError(err.Error()))
		return
	}
	if err := validateSprintName(req.Name); err != nil {
		s.writeError(w, NewValidationError(err.Error()))
		return
	}

	// Code uniqueness is a business rule, not a schema constraint.
	_, err := s.db.GetSprintByCode(req.SprintCode)
	if err == nil {
		s.writeError(w, NewValidationError("sprint with this code already exists"))
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		s.writeError(w, NewInternalServerError(err))
		return
	}

	sprint, err := s.db.CreateSprint(database.CreateSprintParams{
		SprintCode: req.SprintCode,
		Name:       req.Name,
	})
	if err != nil {
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusCreated, sprint)
}

func (s *App) getSprint(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathId(r)
	if err != nil {
		s.writeError(w, NewBadRequestError())
		return
	}

	sprint, err := s.db.GetSprintById(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("sprint with this id does not exist"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, sprint)
}

func (s *App) updateSprint(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathId(r)
	if err != nil {
		s.writeError(w, NewBadRequestError())
		return
	}

	var req UpdateSprintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError())
		return
	}

	if req.SprintCode != nil {
		*req.SprintCode = strings.TrimSpace(*req.SprintCode)
		if err := validateSprintCode(*req.SprintCode); err != nil {
			s.writeError(w, NewValidationError(err.Error()))
			return
		}

		_, err := s.db.GetSprintByCode(*req.SprintCode)
		if err == nil {
			s.writeError(w, NewValidationError("sprint with this code already exists"))
			return
		}
		if !errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewInternalServerError(err))
			return
		}
	}

	if req.Name != nil {
		*req.Name = strings.TrimSpace(*req.Name)
		if err := validateSprintName(*req.Name); err != nil {
			s.writeError(w, NewValidationError(err.Error()))
			return
		}
	}

	sprint, err := s.db.UpdateSprint(database.UpdateSprintParams{
		Id:         id,
		SprintCode: req.SprintCode,
		Name:       req.Name,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("sprint with this id does not exist"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, sprint)
}

func (s *App) deleteSprint(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathId(r)
	if err != nil {
		s.writeError(w, NewBadRequestError())
		return
	}

	_, err = s.db.DeleteSprint(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("sprint with this id does not exist"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusNoContent, nil)
}
