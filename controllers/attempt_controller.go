package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/services"
	"github.com/vnkhanh/e-learning-backend/ws"
)

type StartAttemptInput struct {
	ID         string `json:"id"` // client được phép tự cấp id (offline-first)
	MatchingID string `json:"matching_id" binding:"required"`
}

// POST /api/matching-attempts
// Tạo attempt khi học sinh bắt đầu làm bài; time_start cố định từ lúc này.
func StartAttempt(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	studentID := c.GetString("user_id")

	var input StartAttemptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var activity models.MatchingActivity
	if err := db.First(&activity, "id = ?", input.MatchingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy hoạt động ghép cặp"})
		return
	}

	tracker := services.NewAttemptTracker(db)
	attempt, err := tracker.StartAttempt(studentID, input.MatchingID, input.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo lượt làm bài"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Bắt đầu lượt làm bài",
		"attempt": attempt,
	})
}

type CompleteAttemptInput struct {
	Answers  map[string]string `json:"answers" binding:"required"`
	Score    *int              `json:"score" binding:"required"`
	MaxScore *int              `json:"max_score" binding:"required"`
}

// PATCH /api/matching-attempts/:id
// Chốt attempt đúng 1 lần: có time_end rồi thì trả conflict, bản ghi
// không bị đụng tới.
func CompleteAttempt(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	studentID := c.GetString("user_id")
	attemptID := c.Param("id")

	var input CompleteAttemptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Chỉ chủ attempt mới được chốt
	var existing models.MatchingAttempt
	if err := db.First(&existing, "id = ?", attemptID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy lượt làm bài"})
		return
	}
	if existing.StudentID != studentID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Lượt làm bài không thuộc về bạn"})
		return
	}

	tracker := services.NewAttemptTracker(db)
	attempt, err := tracker.CompleteAttempt(attemptID, input.Answers, *input.Score, *input.MaxScore)
	switch {
	case errors.Is(err, services.ErrAttemptNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy lượt làm bài"})
		return
	case errors.Is(err, services.ErrAttemptFinalized):
		c.JSON(http.StatusConflict, gin.H{"error": "Lượt làm bài đã được chốt"})
		return
	case err != nil && attempt == nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu kết quả"})
		return
	}
	// attempt != nil kèm err: attempt đã lưu nhưng streak lỗi, vẫn trả OK

	broadcastAttempt(attempt)

	c.JSON(http.StatusOK, gin.H{
		"message": "Đã chốt lượt làm bài",
		"attempt": attempt,
	})
}

// GET /api/matching-attempts/:id
func GetAttempt(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	studentID := c.GetString("user_id")
	role := c.GetString("role")

	var attempt models.MatchingAttempt
	if err := db.First(&attempt, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy lượt làm bài"})
		return
	}

	isStaff := role == string(models.RoleAdmin) || role == string(models.RoleTeacher)
	if attempt.StudentID != studentID && !isStaff {
		c.JSON(http.StatusForbidden, gin.H{"error": "Bạn không có quyền xem lượt làm bài này"})
		return
	}

	c.JSON(http.StatusOK, attempt)
}

// GET /api/students/:studentId/attempts?matching_id=...
// Lịch sử làm bài, mới nhất trước. Học sinh chỉ xem được của mình.
func GetStudentAttempts(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	targetID := c.Param("studentId")

	if !canViewStudent(c, targetID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Bạn không có quyền xem dữ liệu học sinh khác"})
		return
	}

	tracker := services.NewAttemptTracker(db)
	attempts, err := tracker.Attempts(targetID, c.Query("matching_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy lịch sử làm bài"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  attempts,
		"total": len(attempts),
	})
}

// GET /api/students/:studentId/attempts/summary?matching_id=...
func GetStudentAttemptSummary(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	targetID := c.Param("studentId")

	if !canViewStudent(c, targetID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Bạn không có quyền xem dữ liệu học sinh khác"})
		return
	}

	tracker := services.NewAttemptTracker(db)
	summary, err := tracker.Summary(targetID, c.Query("matching_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tính thống kê"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// canViewStudent: học sinh chỉ xem được dữ liệu của mình, admin/giáo viên
// xem được tất cả.
func canViewStudent(c *gin.Context, targetID string) bool {
	if c.GetString("user_id") == targetID {
		return true
	}
	role := c.GetString("role")
	return role == string(models.RoleAdmin) || role == string(models.RoleTeacher)
}

// báo realtime cho màn hình theo dõi của giáo viên
func broadcastAttempt(attempt *models.MatchingAttempt) {
	if attempt == nil || attempt.Score == nil || attempt.MaxScore == nil || attempt.IsCorrect == nil {
		return
	}
	ws.SendAttemptUpdate(ws.AttemptUpdate{
		MatchingID:    attempt.MatchingID,
		AttemptID:     attempt.ID,
		StudentID:     attempt.StudentID,
		Score:         *attempt.Score,
		MaxScore:      *attempt.MaxScore,
		IsCorrect:     *attempt.IsCorrect,
		AttemptNumber: attempt.AttemptNumber,
	})
}
