package controllers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/services"
)

// POST /admin/matching/generate (multipart)
// Giáo viên upload tài liệu (pdf/docx/txt) hoặc dán text; Gemini rút các cặp
// tiêu đề/mô tả, mỗi cặp thành 1 bản ghi content và prompt1..6 của activity
// title-description trỏ vào đó.
func GenerateMatchingFromDocument(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var source services.InputSource

	if file, err := c.FormFile("file"); err == nil {
		if file.Size > 20*1024*1024 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File vượt quá 20MB"})
			return
		}
		ext := strings.ToLower(filepath.Ext(file.Filename))
		inputType, err := services.GetInputTypeFromExt(ext)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		source = services.InputSource{Type: inputType, FileHeader: file}
	} else if text := c.PostForm("text"); strings.TrimSpace(text) != "" {
		source = services.InputSource{Type: services.InputText, Text: text}
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cần file tài liệu hoặc text"})
		return
	}

	topicID := c.PostForm("topic_id")
	if topicID != "" {
		var topic models.Topic
		if err := db.First(&topic, "id = ?", topicID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Chủ đề không tồn tại"})
			return
		}
	}

	maxPairs := 6
	if v := c.PostForm("max_pairs"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxPairs = n
		}
	}

	// Trích xuất và làm sạch văn bản nguồn
	raw, err := services.NormalizeInput(source)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể trích xuất nội dung", "details": err.Error()})
		return
	}
	cleaned := services.PreCleanText(raw)
	if strings.TrimSpace(cleaned) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tài liệu không có nội dung văn bản"})
		return
	}

	pairs, err := services.GenerateMatchingPairs(cleaned, maxPairs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể sinh cặp từ Gemini", "details": err.Error()})
		return
	}
	if len(pairs) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Gemini không rút được cặp nào từ tài liệu"})
		return
	}

	// Mỗi cặp thành 1 content; activity trỏ vào qua prompt1..6
	activityType := "title-description"
	activity := models.MatchingActivity{
		ID:   uuid.NewString(),
		Type: &activityType,
	}
	if topicID != "" {
		activity.TopicID = &topicID
	}
	if desc := c.PostForm("description"); desc != "" {
		activity.Description = &desc
	}

	var contents []models.Content
	err = db.Transaction(func(tx *gorm.DB) error {
		prompts := []**string{
			&activity.Prompt1, &activity.Prompt2, &activity.Prompt3,
			&activity.Prompt4, &activity.Prompt5, &activity.Prompt6,
		}
		for i, pair := range pairs {
			if i >= len(prompts) {
				break
			}
			desc := pair.ShortDescription
			content := models.Content{
				ID:               uuid.NewString(),
				Title:            pair.Title,
				ShortDescription: &desc,
			}
			if topicID != "" {
				content.TopicID = &topicID
			}
			if err := tx.Create(&content).Error; err != nil {
				return err
			}
			contents = append(contents, content)
			id := content.ID
			*prompts[i] = &id
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu hoạt động đã sinh"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Sinh hoạt động ghép cặp thành công",
		"matching": activity,
		"content":  contents,
	})
}
