package assessment

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/AgriGenie/plantcare/internal/broker"
	"github.com/AgriGenie/plantcare/internal/diagnosis"
	"github.com/AgriGenie/plantcare/internal/llm"
	"github.com/AgriGenie/plantcare/internal/models"
	"github.com/AgriGenie/plantcare/internal/storage"
	"github.com/AgriGenie/plantcare/internal/websocket"
)

// EventsTopic - топик брокера с событиями продвижения оценок
const EventsTopic = "assessments"

// diagnosisClient - внешний диагностический сервис
type diagnosisClient interface {
	AssessHealth(ctx context.Context, image []byte) ([]models.Disease, error)
}

// Analyzer - оркестратор двухшагового workflow:
// диагностика изображения, затем генерация плана лечения.
// Шаги строго последовательны: генерация не запускается,
// пока диагностика не завершилась успешно.
type Analyzer struct {
	diag     diagnosisClient
	provider llm.Provider
	store    *storage.MemoryStorage
	events   *broker.Broker[websocket.ProgressDTO]
}

func NewAnalyzer(
	diag diagnosisClient,
	provider llm.Provider,
	store *storage.MemoryStorage,
	events *broker.Broker[websocket.ProgressDTO],
) *Analyzer {
	return &Analyzer{
		diag:     diag,
		provider: provider,
		store:    store,
		events:   events,
	}
}

// StartAssessment выполняет полный цикл оценки для загруженного изображения.
//
// Ошибка диагностики прерывает оценку: частичный результат не показывается.
// Ошибка генерации плана наоборот не распространяется - подставляется
// fallback план, а диагноз остаётся валидным.
func (a *Analyzer) StartAssessment(ctx context.Context, sessionID, cropName string, image []byte) (*models.Assessment, error) {
	if err := diagnosis.ValidateImage(image); err != nil {
		return nil, err
	}

	now := time.Now()
	rec := &models.Assessment{
		ID:           uuid.NewString(),
		SessionID:    sessionID,
		CropName:     cropName,
		ImagePreview: dataURL(image),
		Status:       models.StatusAssessing,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Новая оценка вытесняет текущую оценку сессии: прежний результат сброшен
	a.store.StoreAssessment(rec)
	log.Printf("🌱 Assessment %s started (session=%s, crop=%q, image=%d bytes)",
		rec.ID, sessionID, cropName, len(image))

	// Шаг 1: диагностика
	diseases, err := a.diag.AssessHealth(ctx, image)
	if err != nil {
		rec.Status = models.StatusFailed
		rec.Error = err.Error()
		a.commit(rec, "failed")
		log.Printf("❌ Assessment %s: diagnosis failed: %v", rec.ID, err)
		return nil, fmt.Errorf("diagnosis failed: %w", err)
	}

	rec.Diseases = diseases
	rec.Status = models.StatusDiseasesReady
	a.commit(rec, "diseases_ready")
	log.Printf("🔬 Assessment %s: %d disease candidate(s) found", rec.ID, len(diseases))

	// Шаг 2: генерация плана лечения.
	// Запрашивается всегда, даже при пустом списке болезней.
	resp, genErr := a.provider.GenerateTreatmentPlan(ctx, &llm.TreatmentPlanRequest{
		CropName: cropName,
		Diseases: diseases,
	})
	if genErr != nil {
		log.Printf("⚠️ Assessment %s: treatment generation failed: %v. Applying fallback plan", rec.ID, genErr)
	}

	plan, source := llm.ResolveTreatmentPlan(resp, genErr)
	if genErr == nil && source == models.PlanSourceFallback {
		log.Printf("⚠️ Assessment %s: treatment response incomplete. Applying fallback plan", rec.ID)
	}

	rec.Plan = plan
	rec.PlanSource = source
	rec.Status = models.StatusComplete
	a.commit(rec, "complete")
	log.Printf("✅ Assessment %s complete (plan source: %s)", rec.ID, source)

	return rec, nil
}

// Advise отвечает на свободный вопрос фермера
func (a *Analyzer) Advise(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", fmt.Errorf("message is required")
	}

	resp, err := a.provider.GenerateAdvice(ctx, &llm.AdviceRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("advice generation failed: %w", err)
	}

	return resp.Response, nil
}

// commit сохраняет состояние и публикует событие продвижения.
// Оценка, вытесненная более новой загрузкой той же сессии, свои поздние
// результаты не публикует: работа просто забрасывается, не отменяется.
func (a *Analyzer) commit(rec *models.Assessment, stage string) {
	rec.UpdatedAt = time.Now()

	if !a.store.IsCurrent(rec) {
		log.Printf("Assessment %s superseded, dropping %s update", rec.ID, stage)
		return
	}

	a.store.UpdateAssessment(rec)
	a.events.Publish(EventsTopic, websocket.ProgressDTO{
		Assessment: rec.ToDTO(),
		Stage:      stage,
	})
}

// dataURL собирает data URL для превью загруженного изображения
func dataURL(image []byte) string {
	contentType := http.DetectContentType(image)
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(image)
}
