package services

import (
	"testing"
	"time"

	"github.com/vnkhanh/e-learning-backend/models"
)

func TestRecordDailyActivity_StartsStreakAtOne(t *testing.T) {
	db := newTestDB(t)

	if err := RecordDailyActivity(db, "sv1", 80); err != nil {
		t.Fatalf("RecordDailyActivity lỗi: %v", err)
	}

	var streak models.StudentStreak
	if err := db.First(&streak, "student_id = ?", "sv1").Error; err != nil {
		t.Fatalf("phải tạo streak mới: %v", err)
	}
	if streak.CurrentStreak != 1 || streak.LongestStreak != 1 {
		t.Fatalf("streak khởi tạo sai: %+v", streak)
	}
}

func TestRecordDailyActivity_SameDayDoesNotDouble(t *testing.T) {
	db := newTestDB(t)

	_ = RecordDailyActivity(db, "sv1", 50)
	_ = RecordDailyActivity(db, "sv1", 30)

	var streak models.StudentStreak
	db.First(&streak, "student_id = ?", "sv1")
	if streak.CurrentStreak != 1 {
		t.Fatalf("cùng ngày không được tăng streak: %d", streak.CurrentStreak)
	}

	var daily models.DailyActivity
	db.First(&daily, "student_id = ?", "sv1")
	if daily.ActivitiesCount != 2 || daily.PointsEarned != 80 {
		t.Fatalf("daily phải cộng dồn trong ngày: %+v", daily)
	}
}

func TestRecordDailyActivity_ConsecutiveDayExtends(t *testing.T) {
	db := newTestDB(t)

	// Giả lập hoạt động từ hôm qua
	yesterday := startOfDay(time.Now().AddDate(0, 0, -1))
	seed := models.StudentStreak{
		ID:               "st1",
		StudentID:        "sv1",
		CurrentStreak:    3,
		LongestStreak:    5,
		LastActivityDate: &yesterday,
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed lỗi: %v", err)
	}

	if err := RecordDailyActivity(db, "sv1", 10); err != nil {
		t.Fatalf("RecordDailyActivity lỗi: %v", err)
	}

	var streak models.StudentStreak
	db.First(&streak, "student_id = ?", "sv1")
	if streak.CurrentStreak != 4 {
		t.Fatalf("ngày liên tiếp phải tăng streak lên 4, có %d", streak.CurrentStreak)
	}
	if streak.LongestStreak != 5 {
		t.Fatalf("longest giữ nguyên khi chưa vượt: %d", streak.LongestStreak)
	}
}

func TestUpdateStreak_ConsecutiveCalendarDaysAcrossDST(t *testing.T) {
	db := newTestDB(t)

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("không có tzdata: %v", err)
	}
	// 09/03/2025 là ngày đổi giờ mùa hè ở Mỹ: chỉ dài 23 tiếng
	shortDay := time.Date(2025, 3, 9, 0, 0, 0, 0, loc)
	seed := models.StudentStreak{
		ID:               "st1",
		StudentID:        "sv1",
		CurrentStreak:    2,
		LongestStreak:    2,
		LastActivityDate: &shortDay,
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed lỗi: %v", err)
	}

	nextDay := startOfDay(time.Date(2025, 3, 10, 8, 0, 0, 0, loc))
	if err := updateStreak(db, "sv1", nextDay); err != nil {
		t.Fatalf("updateStreak lỗi: %v", err)
	}

	var streak models.StudentStreak
	db.First(&streak, "student_id = ?", "sv1")
	if streak.CurrentStreak != 3 {
		t.Fatalf("ngày lịch liên tiếp phải tăng streak lên 3 dù cách nhau 23h, có %d", streak.CurrentStreak)
	}
}

func TestRecordDailyActivity_GapResetsToOne(t *testing.T) {
	db := newTestDB(t)

	lastWeek := startOfDay(time.Now().AddDate(0, 0, -7))
	seed := models.StudentStreak{
		ID:               "st1",
		StudentID:        "sv1",
		CurrentStreak:    6,
		LongestStreak:    6,
		LastActivityDate: &lastWeek,
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed lỗi: %v", err)
	}

	if err := RecordDailyActivity(db, "sv1", 10); err != nil {
		t.Fatalf("RecordDailyActivity lỗi: %v", err)
	}

	var streak models.StudentStreak
	db.First(&streak, "student_id = ?", "sv1")
	if streak.CurrentStreak != 1 {
		t.Fatalf("đứt chuỗi phải reset về 1, có %d", streak.CurrentStreak)
	}
	if streak.LongestStreak != 6 {
		t.Fatalf("longest không được mất: %d", streak.LongestStreak)
	}
}
