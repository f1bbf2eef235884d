package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/models"
)

// RecordDailyActivity cộng dồn hoạt động trong ngày và cập nhật chuỗi ngày
// học của học sinh. Gọi mỗi khi 1 attempt được chốt.
func RecordDailyActivity(db *gorm.DB, studentID string, points int) error {
	today := startOfDay(time.Now())

	var daily models.DailyActivity
	err := db.Where("student_id = ? AND activity_date = ?", studentID, today).First(&daily).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		daily = models.DailyActivity{
			ID:              uuid.NewString(),
			StudentID:       studentID,
			ActivityDate:    today,
			ActivitiesCount: 1,
			PointsEarned:    points,
		}
		if err := db.Create(&daily).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		daily.ActivitiesCount++
		daily.PointsEarned += points
		if err := db.Save(&daily).Error; err != nil {
			return err
		}
	}

	return updateStreak(db, studentID, today)
}

func updateStreak(db *gorm.DB, studentID string, today time.Time) error {
	var streak models.StudentStreak
	err := db.Where("student_id = ?", studentID).First(&streak).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		streak = models.StudentStreak{
			ID:            uuid.NewString(),
			StudentID:     studentID,
			CurrentStreak: 1,
			LongestStreak: 1,
		}
		streak.LastActivityDate = &today
		return db.Create(&streak).Error
	}
	if err != nil {
		return err
	}

	if streak.LastActivityDate != nil {
		// Đưa về cùng location với today trước khi cắt ngày: DB có thể trả
		// timestamp ở UTC.
		last := startOfDay(streak.LastActivityDate.In(today.Location()))
		switch {
		case last.Equal(today):
			// đã tính cho hôm nay rồi
			return nil
		case last.AddDate(0, 0, 1).Equal(today):
			// so theo ngày lịch, không theo 24h (ngày DST dài 23/25 tiếng)
			streak.CurrentStreak++
		default:
			streak.CurrentStreak = 1 // đứt chuỗi
		}
	} else {
		streak.CurrentStreak = 1
	}
	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	streak.LastActivityDate = &today
	return db.Save(&streak).Error
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
