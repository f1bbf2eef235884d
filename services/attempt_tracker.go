package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/models"
)

var (
	ErrAttemptNotFound  = errors.New("không tìm thấy attempt")
	ErrAttemptFinalized = errors.New("attempt đã được chốt, không thể cập nhật")
)

// AttemptTracker quản lý vòng đời của matching attempt: tạo khi bắt đầu,
// chốt đúng 1 lần khi chấm xong, và tính thống kê từ toàn bộ lịch sử.
type AttemptTracker struct {
	db *gorm.DB
}

func NewAttemptTracker(db *gorm.DB) *AttemptTracker {
	return &AttemptTracker{db: db}
}

// StartAttempt tạo attempt mới với time_start cố định tại thời điểm gọi và
// attempt_number = số lần làm trước đó + 1. Lỗi ghi DB trả thẳng cho caller,
// không tự retry.
func (t *AttemptTracker) StartAttempt(studentID, matchingID, clientID string) (*models.MatchingAttempt, error) {
	var prior int64
	if err := t.db.Model(&models.MatchingAttempt{}).
		Where("student_id = ? AND matching_id = ?", studentID, matchingID).
		Count(&prior).Error; err != nil {
		return nil, fmt.Errorf("không đếm được số lần làm trước: %w", err)
	}

	id := clientID
	if id == "" {
		id = uuid.NewString()
	}
	attempt := models.MatchingAttempt{
		ID:            id,
		StudentID:     studentID,
		MatchingID:    matchingID,
		TimeStart:     time.Now(),
		AttemptNumber: int(prior) + 1,
	}
	if err := t.db.Create(&attempt).Error; err != nil {
		return nil, fmt.Errorf("không thể lưu attempt: %w", err)
	}
	return &attempt, nil
}

// CompleteAttempt chốt attempt: duration tính từ time_start đã cố định lúc
// bắt đầu, is_correct = score == max_score. Attempt đã có time_end thì từ
// chối, bản ghi không bao giờ bị sửa sau khi chốt.
func (t *AttemptTracker) CompleteAttempt(attemptID string, answers map[string]string, score, maxScore int) (*models.MatchingAttempt, error) {
	var attempt models.MatchingAttempt
	if err := t.db.First(&attempt, "id = ?", attemptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.TimeEnd != nil {
		return nil, ErrAttemptFinalized
	}

	payload, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("không mã hoá được answers: %w", err)
	}

	now := time.Now()
	duration := int(now.Sub(attempt.TimeStart).Seconds())
	isCorrect := score == maxScore

	attempt.Answers = payload
	attempt.Score = &score
	attempt.MaxScore = &maxScore
	attempt.IsCorrect = &isCorrect
	attempt.TimeEnd = &now
	attempt.DurationSeconds = &duration

	if err := t.db.Save(&attempt).Error; err != nil {
		return nil, fmt.Errorf("không thể lưu kết quả attempt: %w", err)
	}

	// Chuỗi ngày học cập nhật sau khi chốt; lỗi streak không làm hỏng attempt.
	if err := RecordDailyActivity(t.db, attempt.StudentID, score); err != nil {
		return &attempt, fmt.Errorf("attempt đã lưu nhưng lỗi cập nhật streak: %w", err)
	}
	return &attempt, nil
}

// Attempts trả về lịch sử làm bài, mới nhất trước.
func (t *AttemptTracker) Attempts(studentID, matchingID string) ([]models.MatchingAttempt, error) {
	var attempts []models.MatchingAttempt
	query := t.db.Where("student_id = ?", studentID)
	if matchingID != "" {
		query = query.Where("matching_id = ?", matchingID)
	}
	if err := query.Order("created_at DESC").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

// AttemptSummary là thống kê hiển thị cạnh bảng ghép cặp.
type AttemptSummary struct {
	TotalAttempts int     `json:"total_attempts"`
	BestScore     int     `json:"best_score"`
	AverageScore  float64 `json:"average_score"`
	TotalPoints   int     `json:"total_points"`
}

// Summary tính lại toàn bộ từ danh sách attempt, không giữ số liệu dồn.
func (t *AttemptTracker) Summary(studentID, matchingID string) (AttemptSummary, error) {
	attempts, err := t.Attempts(studentID, matchingID)
	if err != nil {
		return AttemptSummary{}, err
	}
	summary := AttemptSummary{TotalAttempts: len(attempts)}
	for _, a := range attempts {
		score := 0
		if a.Score != nil {
			score = *a.Score
		}
		if score > summary.BestScore {
			summary.BestScore = score
		}
		summary.TotalPoints += score
	}
	if len(attempts) > 0 {
		summary.AverageScore = float64(summary.TotalPoints) / float64(len(attempts))
	}
	return summary, nil
}
