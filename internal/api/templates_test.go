package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pvaldas/sprintbot/internal/database"
	"github.com/pvaldas/sprintbot/internal/notify"
)

func TestCreateTemplateHandler(t *testing.T) {
	template := database.Template{Id: 1, Message: "Congrats {username} on finishing {sprintName}!"}

	tcases := []struct {
		name       string
		body       any
		setupMocks func(repo *database.MockSprintbotRepository)
		wantCode   int
		wantErrMsg string
	}{
		{
			name: "creates a template",
			body: CreateTemplateRequest{Message: template.Message},
			setupMocks: func(repo *database.MockSprintbotRepository) {
				repo.On("GetTemplateByMessage", template.Message).Return(database.Template{}, sql.ErrNoRows).Once()
				repo.On("CreateTemplate", database.CreateTemplateParams{Message: template.Message}).
					Return(template, nil).Once()
			},
			wantCode: http.StatusCreated,
		},
		{
			name:       "fails with invalid json body",
			body:       "not json",
			wantCode:   http.StatusBadRequest,
			wantErrMsg: "bad request",
		},
		{
			name:       "fails without the username placeholder",
			body:       CreateTemplateRequest{Message: "Congrats on finishing {sprintName}!"},
			wantCode:   http.StatusBadRequest,
			wantErrMsg: "message must contain the {username} placeholder",
		},
		{
			name:       "fails without the sprintName placeholder",
			body:       CreateTemplateRequest{Message: "Congrats {username}!"},
			wantCode:   http.StatusBadRequest,
			wantErrMsg: "message must contain the {sprintName} placeholder",
		},
		{
			name:       "fails with an empty message",
			body:       CreateTemplateRequest{Message: ""},
			wantCode:   http.StatusBadRequest,
			wantErrMsg: "message must be between 1 and 500 characters",
		},
		{
			name:       "fails with an overlong message",
			body:       CreateTemplateRequest{Message: "{username} {sprintName} " + strings.Repeat("x", 500)},
			wantCode:   http.StatusBadRequest,
			wantErrMsg: "message must be between 1 and 500 characters",
		},
		{
			name: "fails when the message already exists",
			body: CreateTemplateRequest{Message: template.Message},
			setupMocks: func(repo *database.MockSprintbotRepository) {
				repo.On("GetTemplateByMessage", template.Message).Return(template, nil).Once()
			},
			wantCode:   http.StatusBadRequest,
			wantErrMsg: "template with this message already exists",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &database.MockSprintbotRepository{}
			defer mockRepo.AssertExpectations(t)

			if tc.setupMocks != nil {
				tc.setupMocks(mockRepo)
			}

			app := newTestApp(t, mockRepo, &notify.MockDispatcher{})

			var req *http.Request
			switch v := tc.body.(type) {
			case string:
				req = httptest.NewRequest(http.MethodPost, "/templates", strings.NewReader(v))
			case CreateTemplateRequest:
				body, err := json.Marshal(v)
				assert.NoError(t, err, "failed to marshal request body")
				req = httptest.NewRequest(http.MethodPost, "/templates", bytes.NewBuffer(body))
			default:
				t.Fatalf("unsupported request body type: %T", v)
			}

			rr := httptest.NewRecorder()
			app.createTemplate(rr, req)

			assert.Equal(t, tc.wantCode, rr.Code)

			if tc.wantCode == http.StatusCreated {
				var got database.Template
				err := json.NewDecoder(rr.Body).Decode(&got)
				assert.NoError(t, err, "failed to decode response body")
				assert.Equal(t, template, got)
			} else {
				assert.Equal(t, tc.wantErrMsg, decodeErrorMessage(t, rr))
			}
		})
	}
}

func TestGetTemplateHandler(t *testing.T) {
	template := database.Template{Id: 3, Message: "Way to go {username}, {sprintName} is done!"}

	tcases := []struct {
		name       string
		id         string
		setupMocks func(repo *database.MockSprintbotRepository)
		wantCode   int
	}{
		{
			name: "returns a template by id",
			id:   "3",
			setupMocks: func(repo *database.MockSprintbotRepository) {
				repo.On("GetTemplateById", 3).Return(template, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name: "fails when the template does not exist",
			id:   "42",
			setupMocks: func(repo *database.MockSprintbotRepository) {
				repo.On("GetTemplateById", 42).Return(database.Template{}, sql.ErrNoRows).Once()
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "fails with a non-positive id",
			id:       "0",
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &database.MockSprintbotRepository{}
			defer mockRepo.AssertExpectations(t)

			if tc.setupMocks != nil {
				tc.setupMocks(mockRepo)
			}

			app := newTestApp(t, mockRepo, &notify.MockDispatcher{})

			req := httptest.NewRequest(http.MethodGet, "/templates/"+tc.id, nil)
			req.SetPathValue("id", tc.id)
			rr := httptest.NewRecorder()
			app.getTemplate(rr, req)

			assert.Equal(t, tc.wantCode, rr.Code)
		})
	}
}

func TestDeleteTemplateHandler(t *testing.T) {
	template := database.Template{Id: 1, Message: "Congrats {username} on finishing {sprintName}!"}

	t.Run("deletes a template", func(t *testing.T) {
		mockRepo := &database.MockSprintbotRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("DeleteTemplate", 1).Return(template, nil).Once()

		app := newTestApp(t, mockRepo, &notify.MockDispatcher{})

		req := httptest.NewRequest(http.MethodDelete, "/templates/1", nil)
		req.SetPathValue("id", "1")
		rr := httptest.NewRecorder()
		app.deleteTemplate(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("fails when the template does not exist", func(t *testing.T) {
		mockRepo := &database.MockSprintbotRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("DeleteTemplate", 42).Return(database.Template{}, sql.ErrNoRows).Once()

		app := newTestApp(t, mockRepo, &notify.MockDispatcher{})

		req := httptest.NewRequest(http.MethodDelete, "/templates/42", nil)
		req.SetPathValue("id", "42")
		rr := httptest.NewRecorder()
		app.deleteTemplate(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
