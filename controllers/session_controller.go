package controllers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/matching"
	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/services"
)

// Sessions giữ các phiên làm bài đang mở, khởi tạo 1 lần ở main.
var Sessions = services.NewSessionManager()

type StartSessionInput struct {
	MatchingID string `json:"matching_id" binding:"required"`
	AttemptID  string `json:"attempt_id"` // client được phép tự cấp id
}

// sessionView là trạng thái phiên trả cho client sau mỗi thao tác.
func sessionView(s *services.PlaySession) gin.H {
	q := s.Board.Question()
	view := gin.H{
		"session_id":  s.ID,
		"attempt_id":  s.AttemptID,
		"matching_id": s.MatchingID,
		"question": gin.H{
			"id":     q.ID,
			"prompt": q.Prompt,
			"kind":   q.Kind,
			"lefts":  q.LeftItems(),
			"rights": s.Board.Rights(),
		},
		"matches":       s.Board.Matches(),
		"board_state":   s.Board.State(),
		"index":         s.Seq.Index(),
		"total":         s.Seq.Total(),
		"sequential":    s.Seq.Sequential(),
		"awaiting_gate": s.Seq.AwaitingGate(),
		"finished":      s.Seq.Finished(),
	}
	if s.LastResult != nil {
		view["last_result"] = s.LastResult
	}
	return view
}

// POST /api/play-sessions
// Mở phiên làm bài server-side: dựng câu hỏi, tạo attempt và board đầu tiên.
// Activity không có câu hỏi nào thì không mở phiên, trả danh sách rỗng.
func StartPlaySession(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	studentID := c.GetString("user_id")

	var input StartSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var activity models.MatchingActivity
	if err := db.First(&activity, "id = ?", input.MatchingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy hoạt động ghép cặp"})
		return
	}

	questions, _, err := buildQuestionsForActivity(db, activity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể dựng câu hỏi"})
		return
	}
	if len(questions) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"matching_id": activity.ID,
			"questions":   []matching.Question{},
			"total":       0,
			"message":     "Hoạt động chưa có câu hỏi nào",
		})
		return
	}

	seq, err := matching.NewSequencer(questions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể khởi tạo phiên làm bài"})
		return
	}

	tracker := services.NewAttemptTracker(db)
	attempt, err := tracker.StartAttempt(studentID, input.MatchingID, input.AttemptID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo lượt làm bài"})
		return
	}

	session := Sessions.Create(studentID, input.MatchingID, attempt.ID, seq)

	c.JSON(http.StatusCreated, sessionView(session))
}

// lấy phiên thuộc về học sinh đang đăng nhập
func ownedSession(c *gin.Context) (*services.PlaySession, bool) {
	session, err := Sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy phiên làm bài"})
		return nil, false
	}
	if session.StudentID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Phiên làm bài không thuộc về bạn"})
		return nil, false
	}
	return session, true
}

// GET /api/play-sessions/:id
func GetPlaySession(c *gin.Context) {
	session, ok := ownedSession(c)
	if !ok {
		return
	}
	session.Lock()
	defer session.Unlock()
	c.JSON(http.StatusOK, sessionView(session))
}

type PlaceItemInput struct {
	Left  string `json:"left" binding:"required"`
	Right string `json:"right" binding:"required"`
}

// POST /api/play-sessions/:id/place
// Thả 1 mục trái vào 1 ô phải. Ô đã có mục khác thì thả sau thắng.
func PlaceItem(c *gin.Context) {
	session, ok := ownedSession(c)
	if !ok {
		return
	}

	var input PlaceItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session.Lock()
	defer session.Unlock()

	err := session.Board.PlaceItem(input.Left, input.Right)
	switch {
	case errors.Is(err, matching.ErrBoardSubmitted):
		c.JSON(http.StatusConflict, gin.H{"error": "Câu này đã nộp, không thể ghép thêm"})
		return
	case errors.Is(err, matching.ErrAlreadyPlaced):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mục này đã được ghép rồi"})
		return
	case errors.Is(err, matching.ErrUnknownItem):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mục không thuộc câu hỏi này"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sessionView(session))
}

// POST /api/play-sessions/:id/submit
// Chấm câu hiện tại. Câu cuối cùng mới chốt attempt; dạng 2 pha dừng chờ
// học sinh bấm tiếp tục, các dạng khác sang câu kế luôn.
func SubmitBoard(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	session, ok := ownedSession(c)
	if !ok {
		return
	}

	session.Lock()
	defer session.Unlock()

	result, err := session.Board.Submit()
	switch {
	case errors.Is(err, matching.ErrBoardSubmitted):
		// nộp lần 2: trả kết quả cũ, không chấm lại
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Câu này đã nộp rồi",
			"result": result,
		})
		return
	case errors.Is(err, matching.ErrIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chưa ghép đủ tất cả các mục"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Cộng dồn cho điểm cuối của attempt
	for left, right := range session.Board.Matches() {
		session.Answers[left] = right
	}
	session.CorrectSum += result.CorrectCount
	session.PairsSum += result.TotalPairs
	session.LastResult = &result

	finished, err := session.Seq.OnSubmitted()
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	if finished {
		score := 0
		if session.PairsSum > 0 {
			score = int(math.Round(float64(session.CorrectSum) / float64(session.PairsSum) * 100))
		}
		tracker := services.NewAttemptTracker(db)
		attempt, err := tracker.CompleteAttempt(session.AttemptID, session.Answers, score, 100)
		if err != nil && attempt == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể chốt lượt làm bài"})
			return
		}
		broadcastAttempt(attempt)
		Sessions.Delete(session.ID)

		c.JSON(http.StatusOK, gin.H{
			"finished": true,
			"result":   result,
			"attempt":  attempt,
		})
		return
	}

	if session.Seq.AwaitingGate() {
		// pha 1 xong, chờ học sinh bấm tiếp tục
		c.JSON(http.StatusOK, gin.H{
			"finished":      false,
			"awaiting_gate": true,
			"result":        result,
		})
		return
	}

	// sang câu kế tiếp luôn
	session.Board = matching.NewBoard(session.Seq.Current())
	c.JSON(http.StatusOK, sessionView(session))
}

// POST /api/play-sessions/:id/continue
// Hành động "tiếp tục" tường minh sau pha 1 của dạng tuần tự.
func ContinueSession(c *gin.Context) {
	session, ok := ownedSession(c)
	if !ok {
		return
	}

	session.Lock()
	defer session.Unlock()

	if err := session.Seq.Gate(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Không ở trạng thái chờ tiếp tục"})
		return
	}

	session.Board = matching.NewBoard(session.Seq.Current())
	c.JSON(http.StatusOK, sessionView(session))
}

// DELETE /api/play-sessions/:id
// Bỏ dở phiên: chỉ đóng trạng thái bộ nhớ, attempt đang mở giữ nguyên trong DB.
func AbandonSession(c *gin.Context) {
	session, ok := ownedSession(c)
	if !ok {
		return
	}
	Sessions.Delete(session.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Đã đóng phiên làm bài"})
}
