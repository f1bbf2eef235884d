package services

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vnkhanh/e-learning-backend/matching"
)

var (
	ErrSessionNotFound = errors.New("không tìm thấy phiên làm bài")
)

// PlaySession là 1 phiên làm bài đang mở: board của câu hỏi hiện tại,
// sequencer điều phối pha, và attempt đang gắn với phiên. Trạng thái chỉ
// sống trong bộ nhớ, đóng phiên là mất (attempt đã nằm trong DB).
type PlaySession struct {
	ID         string
	StudentID  string
	MatchingID string
	AttemptID  string

	Seq   *matching.Sequencer
	Board *matching.Board

	// Cộng dồn qua các câu đã nộp; điểm cuối của attempt tính trên tổng này.
	Answers    map[string]string
	CorrectSum int
	PairsSum   int

	LastResult *matching.ScoredAttempt // kết quả câu vừa nộp (feedback pha giữa)
	CreatedAt  time.Time
	LastTouch  time.Time

	mu sync.Mutex
}

// Lock khoá phiên trong lúc xử lý 1 request: học sinh bấm đúp nộp bài thì
// request sau phải chờ và sẽ thấy board đã khoá.
func (s *PlaySession) Lock()   { s.mu.Lock(); s.LastTouch = time.Now() }
func (s *PlaySession) Unlock() { s.mu.Unlock() }

// SessionManager giữ các phiên đang mở theo id, kèm janitor dọn phiên bỏ dở.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*PlaySession
	maxIdle  time.Duration
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*PlaySession),
		maxIdle:  2 * time.Hour,
	}
}

// Create mở phiên mới quanh 1 sequencer đã dựng sẵn.
func (m *SessionManager) Create(studentID, matchingID, attemptID string, seq *matching.Sequencer) *PlaySession {
	now := time.Now()
	session := &PlaySession{
		ID:         uuid.NewString(),
		StudentID:  studentID,
		MatchingID: matchingID,
		AttemptID:  attemptID,
		Seq:        seq,
		Board:      matching.NewBoard(seq.Current()),
		Answers:    make(map[string]string),
		CreatedAt:  now,
		LastTouch:  now,
	}
	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()
	return session
}

func (m *SessionManager) Get(id string) (*PlaySession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (m *SessionManager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// StartJanitor dọn định kỳ các phiên bị bỏ quá maxIdle. Attempt của phiên
// bỏ dở giữ nguyên trong DB với time_end rỗng.
func (m *SessionManager) StartJanitor() {
	ticker := time.NewTicker(15 * time.Minute)
	go func() {
		defer ticker.Stop()
		for range ticker.C {
			m.sweep()
		}
	}()
}

func (m *SessionManager) sweep() {
	cutoff := time.Now().Add(-m.maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.LastTouch.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("Đã dọn %d phiên làm bài bỏ dở", removed)
	}
}
