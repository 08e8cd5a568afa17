package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"

	"github.com/pvaldas/sprintbot/internal/config"
	"github.com/pvaldas/sprintbot/internal/database"
	"github.com/pvaldas/sprintbot/internal/notify"
	"github.com/pvaldas/sprintbot/internal/stats"
)

type App struct {
	log      *log.Logger
	db       database.SprintbotRepository
	notifier notify.Dispatcher
	stats    stats.StatsProvider
	mux      *http.Server
}

func NewApp(mux *http.ServeMux, logger *log.Logger, db database.SprintbotRepository, notifier notify.Dispatcher, statsProvider stats.StatsProvider, cfg *config.Config) *App {
	s := &App{
		log:      logger,
		db:       db,
		notifier: notifier,
		stats:    statsProvider,
	}

	statsProvider.RegisterMetric(stats.MessagesCreated)

	mux.HandleFunc("GET /healthz", s.healthCheck)

	mux.HandleFunc("GET /sprints", s.listSprints)
	mux.HandleFunc("POST /sprints", s.createSprint)
	mux.HandleFunc("GET /sprints/{id}", s.getSprint)
	mux.HandleFunc("PATCH /sprints/{id}", s.updateSprint)
	mux.HandleFunc("DELETE /sprints/{id}", s.deleteSprint)

	mux.HandleFunc("GET /templates", s.listTemplates)
	mux.HandleFunc("POST /templates", s.createTemplate)
	mux.HandleFunc("GET /templates/{id}", s.getTemplate)
	mux.HandleFunc("PATCH /templates/{id}", s.updateTemplate)
	mux.HandleFunc("DELETE /templates/{id}", s.deleteTemplate)

	mux.HandleFunc("GET /messages", s.listMessages)
	mux.HandleFunc("POST /messages", s.createMessage)

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
	)(mux)

	h = s.requestLogger(h)
	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

func (s *App) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *App) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

func (s *App) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("json encode: %v", err)
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
}

func (s *App) writeError(w http.ResponseWriter, apiErr *ApiError) {
	if apiErr.Err != nil {
		s.log.Printf("api error: %v", apiErr)
	}

	s.writeJson(w, apiErr.StatusCode, errorBody{Error: errorDetail{Message: apiErr.Message}})
}

func (s *App) healthCheck(w http.ResponseWriter, _ *http.Request) {
	if err := s.db.Ping(); err != nil {
		errResp := NewInternalServerError(err)
		s.writeError(w, errResp)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
