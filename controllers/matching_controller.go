package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-learning-backend/config"
	"github.com/vnkhanh/e-learning-backend/matching"
	"github.com/vnkhanh/e-learning-backend/models"
)

// GET /api/matching
func GetMatchingActivities(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.MatchingActivity{})

	if topicID := c.Query("topic_id"); topicID != "" {
		query = query.Where("topicid = ?", topicID)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("(topic ILIKE ? OR subject ILIKE ? OR description ILIKE ?)",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể đếm tổng số hoạt động"})
		return
	}

	var activities []models.MatchingActivity
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách hoạt động"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  activities,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GET /api/matching/:id
func GetMatchingActivity(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	id := c.Param("id")

	var activity models.MatchingActivity
	if err := db.First(&activity, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy hoạt động ghép cặp"})
		return
	}

	c.JSON(http.StatusOK, activity)
}

// GET /api/topics/:id/matching
func GetMatchingByTopic(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	topicID := c.Param("id")

	var activities []models.MatchingActivity
	if err := db.Where("topicid = ?", topicID).
		Order("created_at DESC").
		Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách hoạt động"})
		return
	}

	c.JSON(http.StatusOK, activities)
}

// buildQuestionsForActivity tra content/image cho các prompt rồi dựng câu hỏi.
// Trả về slice rỗng khi dữ liệu thiếu đến mức không còn cặp nào.
func buildQuestionsForActivity(db *gorm.DB, activity models.MatchingActivity) ([]matching.Question, matching.Resolution, error) {
	// Activity legacy giữ text literal trong promptN, không phải id content:
	// không tra DB để khỏi báo nhầm missing_content.
	kinds := matching.ParseKinds(activity.Type)
	if len(kinds) == 1 && kinds[0] == matching.KindLegacy {
		return matching.BuildQuestions(activity, matching.Resolution{}), matching.Resolution{}, nil
	}

	var promptIDs []string
	for _, p := range activity.Prompts() {
		if p != nil && *p != "" {
			promptIDs = append(promptIDs, *p)
		}
	}

	var content []models.Content
	var images []models.Image
	if len(promptIDs) > 0 {
		if err := db.Where("id IN ?", promptIDs).Find(&content).Error; err != nil {
			return nil, matching.Resolution{}, err
		}

		var imageIDs []string
		for _, item := range content {
			if item.ImageID != nil && *item.ImageID != "" {
				imageIDs = append(imageIDs, *item.ImageID)
			}
		}
		query := db.Where("contentid IN ?", promptIDs)
		if len(imageIDs) > 0 {
			query = query.Or("id IN ?", imageIDs)
		}
		if err := query.Find(&images).Error; err != nil {
			return nil, matching.Resolution{}, err
		}
	}

	res := matching.Resolve(activity, content, images)
	return matching.BuildQuestions(activity, res), res, nil
}

// questionView là câu hỏi cho học sinh: chỉ có 2 cột hiển thị,
// không kèm đáp án chuẩn.
type questionView struct {
	ID     string        `json:"id"`
	Prompt string        `json:"prompt"`
	Kind   matching.Kind `json:"kind"`
	Lefts  []string      `json:"lefts"`
	Rights []string      `json:"rights"` // thứ tự hiển thị, không phải đáp án
}

// GET /api/matching/:id/questions
// Không có câu hỏi nào là trạng thái hợp lệ: trả 200 với danh sách rỗng
// để client hiển thị "không có câu hỏi" thay vì báo lỗi.
func GetMatchingQuestions(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	id := c.Param("id")

	var activity models.MatchingActivity
	if err := db.First(&activity, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy hoạt động ghép cặp"})
		return
	}

	questions, res, err := buildQuestionsForActivity(db, activity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể dựng câu hỏi"})
		return
	}

	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, questionView{
			ID:     q.ID,
			Prompt: q.Prompt,
			Kind:   q.Kind,
			Lefts:  q.LeftItems(),
			Rights: matching.ShuffledRights(q.Pairs),
		})
	}

	response := gin.H{
		"matching_id": activity.ID,
		"questions":   views,
		"total":       len(views),
	}
	if len(views) == 0 {
		response["message"] = "Hoạt động chưa có câu hỏi nào"
	}
	if len(res.Missing) > 0 {
		response["missing_content"] = res.Missing
	}
	c.JSON(http.StatusOK, response)
}

type MatchingInput struct {
	Type        *string `json:"type"`
	Subject     *string `json:"subject"`
	Topic       *string `json:"topic"`
	Description *string `json:"description"`
	TopicID     *string `json:"topicid"`

	Prompt1 *string `json:"prompt1"`
	Prompt2 *string `json:"prompt2"`
	Prompt3 *string `json:"prompt3"`
	Prompt4 *string `json:"prompt4"`
	Prompt5 *string `json:"prompt5"`
	Prompt6 *string `json:"prompt6"`

	Choice1 *string `json:"choice1"`
	Choice2 *string `json:"choice2"`
	Choice3 *string `json:"choice3"`
	Choice4 *string `json:"choice4"`
	Choice5 *string `json:"choice5"`
	Choice6 *string `json:"choice6"`
}

func (in *MatchingInput) apply(activity *models.MatchingActivity) {
	activity.Type = in.Type
	activity.Subject = in.Subject
	activity.Topic = in.Topic
	activity.Description = in.Description
	activity.TopicID = in.TopicID
	activity.Prompt1, activity.Prompt2, activity.Prompt3 = in.Prompt1, in.Prompt2, in.Prompt3
	activity.Prompt4, activity.Prompt5, activity.Prompt6 = in.Prompt4, in.Prompt5, in.Prompt6
	activity.Choice1, activity.Choice2, activity.Choice3 = in.Choice1, in.Choice2, in.Choice3
	activity.Choice4, activity.Choice5, activity.Choice6 = in.Choice4, in.Choice5, in.Choice6
}

// validateType chỉ chấp nhận tag đã biết trong cột type (nếu có).
func validateType(activityType *string) bool {
	if activityType == nil || strings.TrimSpace(*activityType) == "" {
		return true
	}
	for _, tag := range strings.Split(*activityType, ", ") {
		switch matching.Kind(strings.TrimSpace(tag)) {
		case matching.KindPictureTitle, matching.KindTitleDescription:
		default:
			return false
		}
	}
	return true
}

// POST /admin/matching
func CreateMatching(c *gin.Context) {
	var input MatchingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ"})
		return
	}

	if !validateType(input.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cột type chứa loại câu hỏi không hỗ trợ"})
		return
	}
	if input.TopicID != nil && *input.TopicID != "" {
		var topic models.Topic
		if err := config.DB.First(&topic, "id = ?", *input.TopicID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Chủ đề không tồn tại"})
			return
		}
	}

	activity := models.MatchingActivity{ID: uuid.NewString()}
	input.apply(&activity)

	if err := config.DB.Create(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo hoạt động ghép cặp"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Tạo hoạt động ghép cặp thành công",
		"matching": activity,
	})
}

// PUT /admin/matching/:id
func UpdateMatching(c *gin.Context) {
	var input MatchingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ"})
		return
	}

	if !validateType(input.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cột type chứa loại câu hỏi không hỗ trợ"})
		return
	}

	id := c.Param("id")
	var activity models.MatchingActivity
	if err := config.DB.First(&activity, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hoạt động không tồn tại"})
		return
	}

	input.apply(&activity)

	if err := config.DB.Save(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cập nhật hoạt động thất bại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Cập nhật thành công",
		"matching": activity,
	})
}

// DELETE /admin/matching/:id
func DeleteMatching(c *gin.Context) {
	id := c.Param("id")

	var activity models.MatchingActivity
	if err := config.DB.First(&activity, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy hoạt động ghép cặp"})
		return
	}

	// Lịch sử làm bài giữ nguyên: attempt là bản ghi học tập của học sinh
	if err := config.DB.Delete(&activity).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Xóa hoạt động ghép cặp thành công"})
}
