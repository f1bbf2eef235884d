package controllers

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/config"
	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/services"
	"github.com/vnkhanh/e-learning-backend/utils"
)

type TTSRequest struct {
	Text         string  `json:"text" binding:"required"`
	Voice        string  `json:"voice"`
	SpeakingRate float64 `json:"speaking_rate"`
}

// POST /admin/tts
func TextToSpeechHandler(c *gin.Context) {
	var req TTSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	audioContent, err := services.SynthesizeText(req.Text, req.Voice, req.SpeakingRate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"voice_used":    req.Voice,
		"audio_content": base64.StdEncoding.EncodeToString(audioContent),
		"message":       "Text converted to speech successfully",
	})
}

type VoiceoverRequest struct {
	Voice        string  `json:"voice"`
	SpeakingRate float64 `json:"speaking_rate"`
}

// POST /admin/content/:id/voiceover
// Sinh audio đọc nội dung (title + mô tả), upload lên Supabase rồi lưu
// link và thời lượng vào content.
func GenerateContentVoiceover(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	id := c.Param("id")

	var req VoiceoverRequest
	_ = c.ShouldBindJSON(&req) // body rỗng dùng giọng mặc định

	var content models.Content
	if err := db.First(&content, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy nội dung"})
		return
	}

	parts := []string{content.Title}
	if content.ShortDescription != nil && strings.TrimSpace(*content.ShortDescription) != "" {
		parts = append(parts, *content.ShortDescription)
	}
	text := strings.Join(parts, ". ")

	audioContent, err := services.SynthesizeText(text, req.Voice, req.SpeakingRate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể sinh audio", "details": err.Error()})
		return
	}

	// Thay voiceover cũ nếu có
	if content.VoiceoverLink != nil && *content.VoiceoverLink != "" {
		_ = utils.DeleteFileFromSupabase(*content.VoiceoverLink)
	}

	filename := fmt.Sprintf("voiceover-%s.mp3", content.ID)
	publicURL, err := utils.UploadBytesToSupabase(audioContent, filename, "audio/mpeg")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload audio thất bại", "details": err.Error()})
		return
	}

	// Thời lượng đọc từ chính file vừa upload; lỗi đọc không chặn lưu link
	var seconds *float64
	if d, err := services.GetMP3DurationFromURL(publicURL); err == nil {
		seconds = &d
	}

	content.VoiceoverLink = &publicURL
	content.VoiceoverSeconds = seconds
	if err := config.DB.Save(&content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu voiceover"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sinh voiceover thành công",
		"content": content,
	})
}
