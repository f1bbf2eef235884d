package models

import "time"

// STUDENT STREAK (CHUỖI NGÀY HỌC)
type StudentStreak struct {
	ID               string     `gorm:"type:text;primaryKey" json:"id"`
	StudentID        string     `gorm:"type:text;not null;uniqueIndex" json:"student_id"`
	CurrentStreak    int        `gorm:"default:0" json:"current_streak"`
	LongestStreak    int        `gorm:"default:0" json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StudentStreak) TableName() string { return "student_streaks" }

// DAILY ACTIVITY (HOẠT ĐỘNG TRONG NGÀY)
// Mỗi học sinh 1 dòng cho mỗi ngày có hoạt động, cộng dồn số lần và điểm.
type DailyActivity struct {
	ID              string    `gorm:"type:text;primaryKey" json:"id"`
	StudentID       string    `gorm:"type:text;not null;index" json:"student_id"`
	ActivityDate    time.Time `gorm:"not null;index" json:"activity_date"`
	ActivitiesCount int       `gorm:"default:0" json:"activities_count"`
	PointsEarned    int       `gorm:"default:0" json:"points_earned"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DailyActivity) TableName() string { return "daily_activities" }
