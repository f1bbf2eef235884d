package services

import (
	"errors"
	"testing"
	"time"

	"github.com/vnkhanh/e-learning-backend/matching"
)

func sessionQuestions() []matching.Question {
	return []matching.Question{
		{ID: "q1", Kind: matching.KindLegacy, Pairs: []matching.Pair{{Left: "a", Right: "1"}}},
	}
}

func TestSessionManager_CreateGetDelete(t *testing.T) {
	m := NewSessionManager()

	seq, err := matching.NewSequencer(sessionQuestions())
	if err != nil {
		t.Fatalf("NewSequencer lỗi: %v", err)
	}
	session := m.Create("sv1", "m1", "att1", seq)
	if session.ID == "" {
		t.Fatalf("phiên phải có id")
	}
	if session.Board == nil || session.Board.Question().ID != "q1" {
		t.Fatalf("phiên mới phải có board của câu đầu tiên")
	}
	if session.Answers == nil {
		t.Fatalf("map answers phải được khởi tạo")
	}

	got, err := m.Get(session.ID)
	if err != nil || got != session {
		t.Fatalf("Get phải trả đúng phiên: %v", err)
	}

	m.Delete(session.ID)
	if _, err := m.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("phiên đã xóa phải báo not found, có %v", err)
	}
}

func TestSessionManager_SweepRemovesIdleSessions(t *testing.T) {
	m := NewSessionManager()

	seq, _ := matching.NewSequencer(sessionQuestions())
	stale := m.Create("sv1", "m1", "att1", seq)
	fresh := m.Create("sv2", "m1", "att2", seq)

	// phiên cũ quá maxIdle, phiên mới vừa chạm
	stale.LastTouch = time.Now().Add(-3 * time.Hour)
	m.sweep()

	if _, err := m.Get(stale.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("phiên bỏ dở phải bị dọn, có %v", err)
	}
	if _, err := m.Get(fresh.ID); err != nil {
		t.Fatalf("phiên còn sống không được dọn: %v", err)
	}
}

func TestPlaySession_LockTouchesSession(t *testing.T) {
	m := NewSessionManager()
	seq, _ := matching.NewSequencer(sessionQuestions())
	session := m.Create("sv1", "m1", "att1", seq)

	before := session.LastTouch
	time.Sleep(5 * time.Millisecond)
	session.Lock()
	session.Unlock()
	if !session.LastTouch.After(before) {
		t.Fatalf("Lock phải cập nhật LastTouch")
	}
}
