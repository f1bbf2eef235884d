package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/models"
)

type (
	Point struct {
		Date  string `json:"date"`
		Count int64  `json:"count"`
	}

	TopActivity struct {
		MatchingID string  `json:"matching_id"`
		Topic      string  `json:"topic"`
		Attempts   int64   `json:"attempts"`
		AvgScore   float64 `json:"avg_score"`
	}

	StudentStat struct {
		StudentID string  `json:"student_id"`
		Attempts  int64   `json:"attempts"`
		AvgScore  float64 `json:"avg_score"`
		BestScore int64   `json:"best_score"`
	}
)

// GET /admin/stats/overview
func GetStatsOverview(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var totalActivities, totalAttempts, totalStudents, totalContent int64
	db.Model(&models.MatchingActivity{}).Count(&totalActivities)
	db.Model(&models.MatchingAttempt{}).Count(&totalAttempts)
	db.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&totalStudents)
	db.Model(&models.Content{}).Count(&totalContent)

	var avgScore float64
	db.Model(&models.MatchingAttempt{}).
		Where("score IS NOT NULL").
		Select("COALESCE(AVG(score), 0)").
		Scan(&avgScore)

	c.JSON(http.StatusOK, gin.H{
		"total_activities": totalActivities,
		"total_attempts":   totalAttempts,
		"total_students":   totalStudents,
		"total_content":    totalContent,
		"average_score":    avgScore,
	})
}

// GET /admin/stats/daily-attempts?from=...&to=...
func GetDailyAttempts(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	fromStr, toStr := c.Query("from"), c.Query("to")
	to := time.Now()
	from := to.AddDate(0, 0, -7)

	if fromStr != "" {
		if t, err := time.Parse("2006-01-02", fromStr); err == nil {
			from = t
		}
	}
	if toStr != "" {
		if t, err := time.Parse("2006-01-02", toStr); err == nil {
			to = t
		}
	}

	var res []Point
	db.Raw(`
		SELECT TO_CHAR(created_at::date, 'YYYY-MM-DD') AS date,
		       COUNT(*) AS count
		FROM matching_attempts
		WHERE created_at BETWEEN ? AND ?
		GROUP BY created_at::date
		ORDER BY created_at::date
	`, from, to.Add(24*time.Hour)).Scan(&res)

	c.JSON(http.StatusOK, res)
}

// GET /admin/stats/top-activities
func GetTopActivities(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var res []TopActivity
	db.Raw(`
		SELECT m.id AS matching_id,
		       COALESCE(m.topic, '') AS topic,
		       COUNT(a.id) AS attempts,
		       COALESCE(AVG(a.score), 0) AS avg_score
		FROM matching m
		LEFT JOIN matching_attempts a ON a.matching_id = m.id
		GROUP BY m.id, m.topic
		ORDER BY attempts DESC
		LIMIT 10
	`).Scan(&res)

	c.JSON(http.StatusOK, res)
}

// GET /admin/stats/top-students
func GetTopStudents(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var res []StudentStat
	db.Raw(`
		SELECT student_id,
		       COUNT(*) AS attempts,
		       COALESCE(AVG(score), 0) AS avg_score,
		       COALESCE(MAX(score), 0) AS best_score
		FROM matching_attempts
		WHERE score IS NOT NULL
		GROUP BY student_id
		ORDER BY avg_score DESC
		LIMIT 10
	`).Scan(&res)

	c.JSON(http.StatusOK, res)
}
