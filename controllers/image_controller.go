package controllers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/config"
	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/utils"
)

// GET /api/images
func GetImages(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.Image{})

	if contentID := c.Query("content_id"); contentID != "" {
		query = query.Where("contentid = ?", contentID)
	}
	if topicID := c.Query("topic_id"); topicID != "" {
		query = query.Where("topicid = ?", topicID)
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể đếm tổng số ảnh"})
		return
	}

	var images []models.Image
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách ảnh"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  images,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// POST /admin/images (multipart)
// Upload file ảnh lên Supabase Storage rồi lưu bản ghi.
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu file ảnh"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Định dạng ảnh không hỗ trợ"})
		return
	}

	imageID := uuid.NewString()
	publicURL, err := utils.UploadImageToSupabase(fileHeader, imageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload ảnh thất bại: " + err.Error()})
		return
	}

	image := models.Image{
		ID:        imageID,
		ImageLink: &publicURL,
	}
	if name := c.PostForm("name"); name != "" {
		image.Name = &name
	}
	if desc := c.PostForm("description"); desc != "" {
		image.Description = &desc
	}
	if contentID := c.PostForm("content_id"); contentID != "" {
		var content models.Content
		if err := config.DB.First(&content, "id = ?", contentID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nội dung gắn ảnh không tồn tại"})
			return
		}
		image.ContentID = &contentID
	}
	if topicID := c.PostForm("topic_id"); topicID != "" {
		image.TopicID = &topicID
	}

	if err := config.DB.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu bản ghi ảnh"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Upload ảnh thành công",
		"image":   image,
	})
}

type UpdateImageInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ContentID   *string `json:"contentid"`
	TopicID     *string `json:"topicid"`
}

// PUT /admin/images/:id
func UpdateImage(c *gin.Context) {
	var input UpdateImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ"})
		return
	}

	id := c.Param("id")
	var image models.Image
	if err := config.DB.First(&image, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy ảnh"})
		return
	}

	if input.Name != nil {
		image.Name = input.Name
	}
	if input.Description != nil {
		image.Description = input.Description
	}
	if input.ContentID != nil {
		image.ContentID = input.ContentID
	}
	if input.TopicID != nil {
		image.TopicID = input.TopicID
	}

	if err := config.DB.Save(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cập nhật ảnh thất bại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật thành công",
		"image":   image,
	})
}

// DELETE /admin/images/:id
func DeleteImage(c *gin.Context) {
	id := c.Param("id")

	var image models.Image
	if err := config.DB.First(&image, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy ảnh"})
		return
	}

	// Xóa file trên storage trước, lỗi xóa file không chặn xóa bản ghi
	if image.ImageLink != nil && *image.ImageLink != "" {
		_ = utils.DeleteFileFromSupabase(*image.ImageLink)
	}

	if err := config.DB.Delete(&image).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Xóa ảnh thành công"})
}
