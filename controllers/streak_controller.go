package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/models"
)

// GET /api/streaks/:studentId
// Chuỗi ngày học + hoạt động 30 ngày gần nhất của học sinh.
func GetStudentStreak(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	targetID := c.Param("studentId")

	if !canViewStudent(c, targetID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Bạn không có quyền xem dữ liệu học sinh khác"})
		return
	}

	var streak models.StudentStreak
	err := db.Where("student_id = ?", targetID).First(&streak).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Chưa có hoạt động nào: trả chuỗi rỗng thay vì 404
		c.JSON(http.StatusOK, gin.H{
			"streak": gin.H{
				"student_id":     targetID,
				"current_streak": 0,
				"longest_streak": 0,
			},
			"recent_activities": []models.DailyActivity{},
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy chuỗi ngày học"})
		return
	}

	since := time.Now().AddDate(0, 0, -30)
	var activities []models.DailyActivity
	if err := db.Where("student_id = ? AND activity_date >= ?", targetID, since).
		Order("activity_date DESC").
		Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy hoạt động gần đây"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"streak":            streak,
		"recent_activities": activities,
	})
}
