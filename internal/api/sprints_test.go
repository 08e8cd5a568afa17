package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pvaldas/sprintbot/internal/database"
	"github.com/pvaldas/sprintbot/internal/notify"
)

func TestCreateSprintHandler(t *testing.T) {
	sprint := database.Sprint{Id: 1, SprintCode: "WD-1.1", Name: "First Steps Into Programming with Python"}

	tcases := []struct {
		name       string
		body       any
		setupMocks func(repo *database.MockSprintbotRepository)
		wantCode   int
		wantErrMsg string
	}{
		{
			name: "creates a sprint",
			body: CreateSprintRequest{SprintCode: sprint.SprintCode, Name: sprint.Name},
			setupMocks: func(repo *database.MockSprintbotRepository) {
				repo.On("GetSprintByCode", sprint.SprintCode).Return(database.Sprint{}, sql.ErrNoRows).Once()
				repo.On("CreateSprint", database.CreateSprintParams{SprintCode: sprint.SprintCode, Name: sprint.Name}).
					Return(sprint, nil).Once()
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
			name:       "fails with malformed sprint code",
			body:       CreateSprintRequest{SprintCode: "wd-1", Name: sprint.Name},
			wantCode:   http.StatusBadRequest,
			wantErrMsg: "sprintCode must match the PROGRAM-N.N format",
		},
		{
			name:       "fails with empty name",
			body:       CreateSprintRequest{SprintCode: sprint.SprintCode, Name: ""},
			wantCode:   http.StatusBadRequest,
			wantErrMsg: "name must be between 1 and 100 characters",
		},
		{
			name: "fails when the code is already taken",
			body: CreateSprintRequest{SprintCode: sprint.SprintCode, Name: sprint.Name},
			setupMocks: func(repo *database.MockSprintbotRepository) {
				repo.On("GetSprintByCode", sprint.SprintCode).Return(sprint, nil).Once()
			},
			wantCode:   http.StatusBadRequest,
			wantErrMsg: "sprint with this code already exists",
		},
		{
			name: "fails with a db error",
			body: CreateSprintRequest{SprintCode: sprint.SprintCode, Name: sprint.Name},
			setupMocks: func(repo *database.MockSprintbotRepository) {
				repo.On("GetSprintByCode", sprint.SprintCode).Return(database.Sprint{}, sql.ErrNoRows).Once()
				repo.On("CreateSprint", database.CreateSprintParams{SprintCode: sprint.SprintCode, Name: sprint.Name}).
					Return(database.Sprint{}, errors.New("db error")).Once()
			},
			wantCode:   http.StatusInternalServerError,
			wantErrMsg: "internal server error",
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
				req = httptest.NewRequest(http.MethodPost, "/sprints", strings.NewReader(v))
			case CreateSprintRequest:
				body, err := json.Marshal(v)
				assert.NoError(t, err, "failed to marshal request body")
				req = httptest.NewRequest(http.MethodPost, "/sprints", bytes.NewBuffer(body))
			default:
				t.Fatalf("unsupported request body type: %T", v)
			}

			rr := httptest.NewRecorder()
			app.createSprint(rr, req)

			assert.Equal(t, tc.wantCode, rr.Code)

			if tc.wantCode == http.StatusCreated {
				var got database.Sprint
				err := json.NewDecoder(rr.Body).Decode(&got)
				assert.NoError(t, err, "failed to decode response body")
				assert.Equal(t, sprint, got)
			} else {
				assert.Equal(t, tc.wantErrMsg, decodeErrorMessage(t, rr))
			}
		})
	}
}

func TestGetSprintHandler(t *testing.T) {
	sprint := database.Sprint{Id: 1, SprintCode: "DA-2.3", Name: "Intermediate SQL and Data Modeling"}

	tcases := []struct {
		name       string
		id         string
		setupMocks func(repo *database.MockSprintbotRepository)
		wantCode   int
	}{
		{
			name: "returns a sprint by id",
			id:   "1",
			setupMocks: func(repo *database.MockSprintbotRepository) {
				repo.On("GetSprintById", 1).Return(sprint, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "fails with non-numeric id",
			id:       "abc",
			wantCode: http.StatusBadRequest,
		},
		{
			name: "fails when the sprint does not exist",
			id:   "42",
			setupMocks: func(repo *database.MockSprintbotRepository) {
				repo.On("GetSprintById", 42).Return(database.Sprint{}, sql.ErrNoRows).Once()
			},
			wantCode: http.StatusNotFound,
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

			req := httptest.NewRequest(http.MethodGet, "/sprints/"+tc.id, nil)
			req.SetPathValue("id", tc.id)
			rr := httptest.NewRecorder()
			app.getSprint(rr, req)

			assert.Equal(t, tc.wantCode, rr.Code)

			if tc.wantCode == http.StatusOK {
				var got database.Sprint
				err := json.NewDecoder(rr.Body).Decode(&got)
				assert.NoError(t, err, "failed to decode response body")
				assert.Equal(t, sprint, got)
			}
		})
	}
}

func TestUpdateSprintHandler(t *testing.T) {
	newName := "Improving Websites with Javascript"
	updated := database.Sprint{Id: 1, SprintCode: "WD-1.2", Name: newName}

	t.Run("updates the name only", func(t *testing.T) {
		mockRepo := &database.MockSprintbotRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("UpdateSprint", database.UpdateSprintParams{Id: 1, Name: &newName}).
			Return(updated, nil).Once()

		app := newTestApp(t, mockRepo, &notify.MockDispatcher{})

		body, err := json.Marshal(UpdateSprintRequest{Name: &newName})
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPatch, "/sprints/1", bytes.NewBuffer(body))
		req.SetPathValue("id", "1")
		rr := httptest.NewRecorder()
		app.updateSprint(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got database.Sprint
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, updated, got)
	})

	t.Run("rejects an update to an existing code", func(t *testing.T) {
		mockRepo := &database.MockSprintbotRepository{}
		defer mockRepo.AssertExpectations(t)

		code := "WD-1.2"
		mockRepo.On("GetSprintByCode", code).Return(updated, nil).Once()

		app := newTestApp(t, mockRepo, &notify.MockDispatcher{})

		body, err := json.Marshal(UpdateSprintRequest{SprintCode: &code})
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPatch, "/sprints/2", bytes.NewBuffer(body))
		req.SetPathValue("id", "2")
		rr := httptest.NewRecorder()
		app.updateSprint(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "sprint with this code already exists", decodeErrorMessage(t, rr))
	})

	t.Run("returns 404 for a missing sprint", func(t *testing.T) {
		mockRepo := &database.MockSprintbotRepository{}
		defer mockRepo.AssertExpectations(t)

		mockRepo.On("UpdateSprint", database.UpdateSprintParams{Id: 42, Name: &newName}).
			Return(database.Sprint{}, sql.ErrNoRows).Once()

		app := newTestApp(t, mockRepo, &notify.MockDispatcher{})

		body, err := json.Marshal(UpdateSprintRequest{Name: &newName})
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPatch, "/sprints/42", bytes.NewBuffer(body))
		req.SetPathValue("id", "42")
		rr := httptest.NewRecorder()
		app.updateSprint(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteSprintHandler(t *testing.T) {
	sprint := database.Sprint{Id: 1, SprintCode: "WD-1.1", Name: "First Steps Into Programming with Python"}

	tcases := []struct {
		name       string
		id         string
		setupMocks func(repo *database.MockSprintbotRepository)
		wantCode   int
	}{
		{
			name: "deletes a sprint",
			id:   "1",
			setupMocks: func(repo *database.MockSprintbotRepository) {
				repo.On("DeleteSprint", 1).Return(sprint, nil).Once()
			},
			wantCode: http.StatusNoContent,
		},
		{
			name: "fails when the sprint does not exist",
			id:   "42",
			setupMocks: func(repo *database.MockSprintbotRepository) {
				repo.On("DeleteSprint", 42).Return(database.Sprint{}, sql.ErrNoRows).Once()
			},
			wantCode: http.StatusNotFound,
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

			req := httptest.NewRequest(http.MethodDelete, "/sprints/"+tc.id, nil)
			req.SetPathValue("id", tc.id)
			rr := httptest.NewRecorder()
			app.deleteSprint(rr, req)

			assert.Equal(t, tc.wantCode, rr.Code)
		})
	}
}
