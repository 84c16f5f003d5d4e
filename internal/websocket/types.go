package websocket

import "github.com/AgriGenie/plantcare/internal/models"

// ProgressDTO - сообщение о продвижении оценки, уходит на фронтенд
// после каждой стадии (diseases_ready, complete, failed)
type ProgressDTO struct {
	Assessment models.AssessmentDTO `json:"assessment"`
	Stage      string               `json:"stage"`
}
