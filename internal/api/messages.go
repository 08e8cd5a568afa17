package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pvaldas/sprintbot/internal/database"
	"github.com/pvaldas/sprintbot/internal/notify"
	"github.com/pvaldas/sprintbot/internal/stats"
)

type CreateMessageRequest struct {
	SprintCode string `json:"sprintCode"`
	Username   string `json:"username"`
	// TemplateId is optional; zero means "pick one at random".
	TemplateId int `json:"templateId"`
}

// createMessage records a sprint completion and triggers the
// congratulation notification. The record is persisted and returned
// regardless of whether the notification can be delivered.
func (s *App) createMessage(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError())
		return
	}

	req.SprintCode = strings.TrimSpace(req.SprintCode)
	req.Username = strings.TrimSpace(req.Username)

	if err := validateSprintCode(req.SprintCode); err != nil {
		s.writeError(w, NewValidationError(err.Error()))
		return
	}
	if err := validateUsername(req.Username); err != nil {
		s.writeError(w, NewValidationError(err.Error()))
		return
	}
	if req.TemplateId < 0 {
		s.writeError(w, NewValidationError("templateId must be a positive integer"))
		return
	}

	sprint, err := s.db.GetSprintByCode(req.SprintCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewValidationError("sprint does not exist"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	_, err = s.db.GetMessageBySprintAndUsername(sprint.Id, req.Username)
	if err == nil {
		s.writeError(w, NewValidationError("message for this sprint and user already exists"))
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		s.writeError(w, NewInternalServerError(err))
		return
	}

	// An explicit template id is taken as-is; existence is checked by the
	// lookup below. Otherwise pick one of the existing templates at random.
	templateId := req.TemplateId
	if templateId == 0 {
		templateId, err = s.db.GetRandomTemplateId()
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				s.writeError(w, NewValidationError("no template available"))
				return
			}
			s.writeError(w, NewInternalServerError(err))
			return
		}
	}

	template, err := s.db.GetTemplateById(templateId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewValidationError("template with this id does not exist"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	msg, err := s.db.CreateMessage(database.Message{
		SprintId:   sprint.Id,
		TemplateId: template.Id,
		Username:   req.Username,
	})
	if err != nil {
		// The unique index catches concurrent submissions that raced past
		// the duplicate check above.
		if database.IsUniqueViolation(err) {
			s.writeError(w, NewValidationError("message for this sprint and user already exists"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.stats.Incr(stats.MessagesCreated)

	// Fire-and-forget: delivery failures are the notifier's problem, the
	// record is already committed.
	s.notifier.Dispatch(notify.CompletionEvent{
		Username:   msg.Username,
		SprintCode: sprint.SprintCode,
		SprintName: sprint.Name,
		Template:   template.Message,
	})

	s.writeJson(w, http.StatusCreated, msg)
}

func (s *App) listMessages(w http.ResponseWriter, r *http.Request) {
	sprintCode := strings.TrimSpace(r.URL.Query().Get("sprint"))
	username := strings.TrimSpace(r.URL.Query().Get("username"))

	if sprintCode != "" {
		if err := validateSprintCode(sprintCode); err != nil {
			s.writeError(w, NewValidationError(err.Error()))
			return
		}
	}
	if username != "" {
		if err := validateUsername(username); err != nil {
			s.writeError(w, NewValidationError(err.Error()))
			return
		}
	}

	messages, err := s.db.ListMessages(sprintCode, username)
	if err != nil {
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, messages)
}
