package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/AgriGenie/plantcare/internal/assessment"
	"github.com/AgriGenie/plantcare/internal/broker"
	"github.com/AgriGenie/plantcare/internal/config"
	"github.com/AgriGenie/plantcare/internal/middlewares"
	"github.com/AgriGenie/plantcare/internal/models"
	"github.com/AgriGenie/plantcare/internal/websocket"
)

type analyzerI interface {
	StartAssessment(ctx context.Context, sessionID, cropName string, image []byte) (*models.Assessment, error)
	Advise(ctx context.Context, message string) (string, error)
}

type storageI interface {
	GetAssessment(id string) (*models.Assessment, bool)
	GetAllAssessments() []*models.Assessment
}

type Server struct {
	config   *config.Config
	analyzer analyzerI
	storage  storageI
	events   *broker.Broker[websocket.ProgressDTO]
	server   *http.Server
	hub      *websocket.Hub
}

func NewServer(cfg *config.Config, analyzer analyzerI, store storageI, events *broker.Broker[websocket.ProgressDTO]) *Server {
	hub := websocket.NewHub()
	go hub.Run()

	return &Server{
		config:   cfg,
		analyzer: analyzer,
		storage:  store,
		events:   events,
		hub:      hub,
	}
}

// Handler собирает весь роутинг API
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/assessments", s.handleAssessments)
	mux.HandleFunc("/api/assessments/", s.handleGetAssessment)
	mux.HandleFunc("/api/recommendations/", s.handleRecommendations)
	mux.HandleFunc("/api/chat", s.handleChat)

	// WebSocket endpoint
	mux.HandleFunc("/ws", s.hub.ServeWS)

	// Health check
	mux.HandleFunc(
		"/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok","service":"plantcare-api"}`))
		},
	)

	return middlewares.CORS(mux)
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    s.config.Web.ListenAddr,
		Handler: s.Handler(),
		// Диагностика + генерация могут занимать десятки секунд
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	log.Printf("📊 API server listening on %s", s.config.Web.ListenAddr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// PumpEvents переливает события оценок из брокера в WebSocket hub.
// Блокируется до отмены контекста.
func (s *Server) PumpEvents(ctx context.Context) {
	ch := s.events.Subscribe(assessment.EventsTopic)

	for {
		select {
		case <-ctx.Done():
			return
		case dto, ok := <-ch:
			if !ok {
				return
			}
			s.hub.Broadcast("assessment", dto)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
