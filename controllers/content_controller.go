package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/config"
	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/utils"
)

// GET /api/content
// Danh mục nội dung; matching activity trỏ vào đây qua prompt1..6.
func GetContent(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.Content{})

	if topicID := c.Query("topic_id"); topicID != "" {
		query = query.Where("topicid = ?", topicID)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	offset := (page - 1) * limit

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể đếm tổng số nội dung"})
		return
	}

	var items []models.Content
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách nội dung"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GET /api/content/:id
func GetContentDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	id := c.Param("id")

	var content models.Content
	if err := db.First(&content, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy nội dung"})
		return
	}

	// Ảnh gắn kèm: ưu tiên image.contentid, sau đó content.imageid
	var image *models.Image
	var byContent models.Image
	if err := db.First(&byContent, "contentid = ?", content.ID).Error; err == nil {
		image = &byContent
	} else if content.ImageID != nil && *content.ImageID != "" {
		var byID models.Image
		if err := db.First(&byID, "id = ?", *content.ImageID).Error; err == nil {
			image = &byID
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"content": content,
		"image":   image,
	})
}

type CreateContentInput struct {
	Title            string  `json:"title" binding:"required"`
	TopicID          *string `json:"topicid"`
	ImageID          *string `json:"imageid"`
	ShortDescription *string `json:"short_description"`
	ShortBlurb       *string `json:"short_blurb"`
	URL              *string `json:"url"`
	ImageLink        *string `json:"imagelink"`
}

// POST /admin/content
func CreateContent(c *gin.Context) {
	var input CreateContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tiêu đề bắt buộc"})
		return
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tiêu đề không được trống"})
		return
	}

	if input.TopicID != nil && *input.TopicID != "" {
		var topic models.Topic
		if err := config.DB.First(&topic, "id = ?", *input.TopicID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Chủ đề không tồn tại"})
			return
		}
	}

	content := models.Content{
		ID:               uuid.NewString(),
		Title:            title,
		TopicID:          input.TopicID,
		ImageID:          input.ImageID,
		ShortDescription: input.ShortDescription,
		ShortBlurb:       input.ShortBlurb,
		URL:              input.URL,
		ImageLink:        input.ImageLink,
	}

	if err := config.DB.Create(&content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo nội dung"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo nội dung thành công",
		"content": content,
	})
}

type UpdateContentInput struct {
	Title            *string `json:"title"`
	TopicID          *string `json:"topicid"`
	ImageID          *string `json:"imageid"`
	ShortDescription *string `json:"short_description"`
	ShortBlurb       *string `json:"short_blurb"`
	URL              *string `json:"url"`
	ImageLink        *string `json:"imagelink"`
}

// PUT /admin/content/:id
func UpdateContent(c *gin.Context) {
	var input UpdateContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ"})
		return
	}

	id := c.Param("id")
	var content models.Content
	if err := config.DB.First(&content, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Nội dung không tồn tại"})
		return
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tiêu đề không được trống"})
			return
		}
		content.Title = title
	}
	if input.TopicID != nil {
		content.TopicID = input.TopicID
	}
	if input.ImageID != nil {
		content.ImageID = input.ImageID
	}
	if input.ShortDescription != nil {
		content.ShortDescription = input.ShortDescription
	}
	if input.ShortBlurb != nil {
		content.ShortBlurb = input.ShortBlurb
	}
	if input.URL != nil {
		content.URL = input.URL
	}
	if input.ImageLink != nil {
		content.ImageLink = input.ImageLink
	}

	if err := config.DB.Save(&content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cập nhật nội dung thất bại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật thành công",
		"content": content,
	})
}

// DELETE /admin/content/:id
func DeleteContent(c *gin.Context) {
	id := c.Param("id")

	var content models.Content
	if err := config.DB.First(&content, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy nội dung"})
		return
	}

	// Không xóa content còn được activity nào tham chiếu
	var count int64
	config.DB.Model(&models.MatchingActivity{}).
		Where("? IN (prompt1, prompt2, prompt3, prompt4, prompt5, prompt6)", id).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nội dung đang được hoạt động ghép cặp sử dụng, không thể xóa"})
		return
	}

	// Dọn voiceover trên storage nếu có (lỗi xóa file không chặn xóa bản ghi)
	if content.VoiceoverLink != nil && *content.VoiceoverLink != "" {
		_ = utils.DeleteFileFromSupabase(*content.VoiceoverLink)
	}

	if err := config.DB.Delete(&content).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Xóa nội dung thành công"})
}
