package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/config"
	"github.com/vnkhanh/e-learning-backend/models"
)

// Input cho Create / Update
type CreateTopicInput struct {
	Name         string  `json:"topic" binding:"required"`
	ShortSummary *string `json:"short_summary"`
	ParentID     *string `json:"parentid"`
	ShowStudent  *bool   `json:"showstudent"`
}

// POST /admin/topics
func CreateTopic(c *gin.Context) {
	var input CreateTopicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tên chủ đề bắt buộc"})
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tên chủ đề không được trống"})
		return
	}

	// === Kiểm tra trùng tên ===
	var count int64
	config.DB.Model(&models.Topic{}).Where("LOWER(topic) = LOWER(?)", name).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chủ đề đã tồn tại"})
		return
	}

	// Nếu có parent thì parent phải tồn tại
	if input.ParentID != nil && *input.ParentID != "" {
		var parent models.Topic
		if err := config.DB.First(&parent, "id = ?", *input.ParentID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Chủ đề cha không tồn tại"})
			return
		}
	}

	topic := models.Topic{
		ID:           uuid.NewString(),
		Name:         name,
		Slug:         slug.Make(name),
		ShortSummary: input.ShortSummary,
		ParentID:     input.ParentID,
		ShowStudent:  true,
	}
	if input.ShowStudent != nil {
		topic.ShowStudent = *input.ShowStudent
	}

	if err := config.DB.Create(&topic).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo chủ đề"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo chủ đề thành công",
		"topic":   topic,
	})
}

// GET /api/topics
// Học sinh chỉ thấy chủ đề showstudent = true; admin truyền ?all=true để xem hết.
func GetTopics(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.Topic{})

	role := c.GetString("role")
	isStaff := role == string(models.RoleAdmin) || role == string(models.RoleTeacher)
	if !(isStaff && c.Query("all") == "true") {
		query = query.Where("showstudent = ?", true)
	}

	// Lọc theo chủ đề cha
	if parent := c.Query("parentid"); parent != "" {
		query = query.Where("parentid = ?", parent)
	}

	// Tìm kiếm theo tên
	if search := c.Query("search"); search != "" {
		query = query.Where("topic ILIKE ?", "%"+search+"%")
	}

	// Phân trang
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể đếm tổng số chủ đề"})
		return
	}

	var topics []models.Topic
	if err := query.
		Order("topic ASC").
		Limit(limit).
		Offset(offset).
		Find(&topics).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách chủ đề"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  topics,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GET /api/topics/:id
func GetTopicDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	id := c.Param("id")

	var topic models.Topic
	if err := db.First(&topic, "id = ?", id).Error; err != nil {
		// Cho phép tra theo slug để client dựng URL đẹp
		if err := db.First(&topic, "slug = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy chủ đề"})
			return
		}
	}

	// Chủ đề con (nếu có)
	var children []models.Topic
	db.Where("parentid = ?", topic.ID).Order("topic ASC").Find(&children)

	c.JSON(http.StatusOK, gin.H{
		"topic":    topic,
		"children": children,
	})
}

type UpdateTopicInput struct {
	Name         *string `json:"topic"`
	ShortSummary *string `json:"short_summary"`
	ParentID     *string `json:"parentid"`
	ShowStudent  *bool   `json:"showstudent"`
}

// PUT /admin/topics/:id
func UpdateTopic(c *gin.Context) {
	var input UpdateTopicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ"})
		return
	}

	id := c.Param("id")
	var topic models.Topic
	if err := config.DB.First(&topic, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chủ đề không tồn tại"})
		return
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tên chủ đề không được trống"})
			return
		}
		slugValue := slug.Make(name)
		var count int64
		config.DB.Model(&models.Topic{}).
			Where("(LOWER(topic) = LOWER(?) OR slug = ?) AND id <> ?", name, slugValue, id).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tên chủ đề đã tồn tại"})
			return
		}
		topic.Name = name
		topic.Slug = slugValue
	}
	if input.ShortSummary != nil {
		topic.ShortSummary = input.ShortSummary
	}
	if input.ParentID != nil {
		if *input.ParentID == topic.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Chủ đề không thể là cha của chính nó"})
			return
		}
		topic.ParentID = input.ParentID
	}
	if input.ShowStudent != nil {
		topic.ShowStudent = *input.ShowStudent
	}

	if err := config.DB.Save(&topic).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cập nhật chủ đề thất bại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật thành công",
		"topic":   topic,
	})
}

// DELETE /admin/topics/:id
func DeleteTopic(c *gin.Context) {
	id := c.Param("id")

	var topic models.Topic
	if err := config.DB.First(&topic, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy chủ đề"})
		return
	}

	// Không xóa chủ đề còn activity hoặc content gắn vào
	var activityCount int64
	config.DB.Model(&models.MatchingActivity{}).Where("topicid = ?", id).Count(&activityCount)
	if activityCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chủ đề còn hoạt động ghép cặp, không thể xóa"})
		return
	}
	var contentCount int64
	config.DB.Model(&models.Content{}).Where("topicid = ?", id).Count(&contentCount)
	if contentCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chủ đề còn nội dung, không thể xóa"})
		return
	}

	if err := config.DB.Delete(&topic).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Xóa chủ đề thành công"})
}
