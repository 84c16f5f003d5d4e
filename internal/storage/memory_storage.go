package storage

import (
	"sync"

	"github.com/AgriGenie/plantcare/internal/models"
)

// MemoryStorage хранит оценки в памяти: текущая оценка на сессию + история.
// Принимает и отдаёт копии: воркер оценки мутирует только свой экземпляр,
// читатели видят неизменяемые снапшоты.
type MemoryStorage struct {
	byID    map[string]*models.Assessment
	current map[string]string // session id -> assessment id
	history []string          // assessment ids, append-only
	mu      sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		byID:    make(map[string]*models.Assessment),
		current: make(map[string]string),
	}
}

// StoreAssessment сохраняет оценку и делает её текущей для сессии.
// Предыдущая текущая оценка сессии при этом сбрасывается (новая загрузка
// изображения всегда очищает прежний результат).
func (s *MemoryStorage) StoreAssessment(a *models.Assessment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[a.ID] = snapshot(a)
	s.current[a.SessionID] = a.ID
	s.history = append(s.history, a.ID)
}

// UpdateAssessment заменяет запись, если она всё ещё существует
func (s *MemoryStorage) UpdateAssessment(a *models.Assessment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[a.ID]; ok {
		s.byID[a.ID] = snapshot(a)
	}
}

// GetAssessment возвращает оценку по id
func (s *MemoryStorage) GetAssessment(id string) (*models.Assessment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return snapshot(a), true
}

// GetCurrent возвращает текущую оценку сессии
func (s *MemoryStorage) GetCurrent(sessionID string) (*models.Assessment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.current[sessionID]
	if !ok {
		return nil, false
	}
	a, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return snapshot(a), true
}

// IsCurrent сообщает, является ли оценка текущей для своей сессии.
// Воркер, чья оценка вытеснена новой загрузкой, не должен публиковать
// поздние результаты.
func (s *MemoryStorage) IsCurrent(a *models.Assessment) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current[a.SessionID] == a.ID
}

// GetAllAssessments возвращает историю в порядке создания
func (s *MemoryStorage) GetAllAssessments() []*models.Assessment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assessments := make([]*models.Assessment, 0, len(s.history))
	for _, id := range s.history {
		if a, ok := s.byID[id]; ok {
			assessments = append(assessments, snapshot(a))
		}
	}
	return assessments
}

// snapshot делает копию записи. Слайсы (болезни, списки плана) после
// записи в хранилище никогда не мутируются - только заменяются целиком,
// поэтому поверхностной копии достаточно.
func snapshot(a *models.Assessment) *models.Assessment {
	cp := *a
	return &cp
}

// DeleteAssessment удаляет оценку
func (s *MemoryStorage) DeleteAssessment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.byID[id]; ok {
		if s.current[a.SessionID] == id {
			delete(s.current, a.SessionID)
		}
		delete(s.byID, id)
	}
}
