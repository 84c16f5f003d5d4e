package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/AgriGenie/plantcare/internal/diagnosis"
	"github.com/AgriGenie/plantcare/internal/models"
)

// maxImageSize ограничивает размер загружаемого изображения (10 MB)
const maxImageSize = 10 << 20

// handleAssessments: POST запускает оценку, GET возвращает историю
func (s *Server) handleAssessments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateAssessment(w, r)
	case http.MethodGet:
		s.handleHistory(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read image")
		return
	}

	sessionID := r.FormValue("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	cropName := r.FormValue("crop_name")

	rec, err := s.analyzer.StartAssessment(r.Context(), sessionID, cropName, image)
	if err != nil {
		if errors.Is(err, diagnosis.ErrUnsupportedImage) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		// Ошибка диагностики прерывает оценку и показывается пользователю
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rec.ToDTO())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	all := s.storage.GetAllAssessments()

	res := make([]models.AssessmentDTO, 0, len(all))
	for _, a := range all {
		res = append(res, a.ToDTO())
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := r.URL.Path[len("/api/assessments/"):]
	rec, ok := s.storage.GetAssessment(id)
	if !ok {
		writeError(w, http.StatusNotFound, "assessment not found")
		return
	}

	writeJSON(w, http.StatusOK, rec.ToDTO())
}

// handleRecommendations возвращает статические рекомендации по болезни
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	disease := strings.TrimPrefix(r.URL.Path, "/api/recommendations/")
	if disease == "" {
		writeError(w, http.StatusBadRequest, "disease parameter is required")
		return
	}

	writeJSON(w, http.StatusOK, models.RecommendationsDTO{
		Disease: disease,
		Treatment: []string{
			"Apply appropriate fungicide/pesticide",
			"Remove infected plant parts",
			"Improve air circulation",
			"Maintain proper watering schedule",
		},
		Prevention: []string{
			"Regular plant inspection",
			"Proper spacing between plants",
			"Use disease-resistant varieties",
			"Maintain good soil health",
		},
		Monitoring: []string{
			"Check plants daily for symptoms",
			"Monitor weather conditions",
			"Keep records of outbreaks",
			"Regular soil testing",
		},
	})
}

// handleChat - сельскохозяйственный советник
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	response, err := s.analyzer.Advise(r.Context(), req.Message)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: response})
}
