package models

import (
	"time"

	"gorm.io/datatypes"
)

// MATCHING ACTIVITY (HOẠT ĐỘNG GHÉP CẶP)
// Mỗi prompt1..6 chứa id của 1 content; đường dữ liệu cũ (legacy)
// chứa text trực tiếp kèm choice1..6.
type MatchingActivity struct {
	ID          string  `gorm:"type:text;primaryKey" json:"id"`
	Type        *string `gorm:"type:text" json:"type"` // "picture-title, title-description"
	Subject     *string `gorm:"type:text" json:"subject"`
	Topic       *string `gorm:"type:text" json:"topic"`
	Description *string `gorm:"type:text" json:"description"`
	TopicID     *string `gorm:"column:topicid;type:text" json:"topicid"`

	Prompt1 *string `gorm:"type:text" json:"prompt1"`
	Prompt2 *string `gorm:"type:text" json:"prompt2"`
	Prompt3 *string `gorm:"type:text" json:"prompt3"`
	Prompt4 *string `gorm:"type:text" json:"prompt4"`
	Prompt5 *string `gorm:"type:text" json:"prompt5"`
	Prompt6 *string `gorm:"type:text" json:"prompt6"`

	Choice1 *string `gorm:"type:text" json:"choice1"`
	Choice2 *string `gorm:"type:text" json:"choice2"`
	Choice3 *string `gorm:"type:text" json:"choice3"`
	Choice4 *string `gorm:"type:text" json:"choice4"`
	Choice5 *string `gorm:"type:text" json:"choice5"`
	Choice6 *string `gorm:"type:text" json:"choice6"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (MatchingActivity) TableName() string { return "matching" }

// Prompts trả về prompt1..6 theo thứ tự
func (m *MatchingActivity) Prompts() []*string {
	return []*string{m.Prompt1, m.Prompt2, m.Prompt3, m.Prompt4, m.Prompt5, m.Prompt6}
}

// Choices trả về choice1..6 theo thứ tự
func (m *MatchingActivity) Choices() []*string {
	return []*string{m.Choice1, m.Choice2, m.Choice3, m.Choice4, m.Choice5, m.Choice6}
}

// MATCHING ATTEMPT (LẦN LÀM BÀI)
// Được tạo khi học sinh bắt đầu, chốt đúng 1 lần khi chấm xong.
type MatchingAttempt struct {
	ID         string `gorm:"type:text;primaryKey" json:"id"`
	StudentID  string `gorm:"type:text;not null;index" json:"student_id"`
	MatchingID string `gorm:"type:text;not null;index" json:"matching_id"`

	Answers   datatypes.JSON `gorm:"type:jsonb" json:"answers"` // map left -> right học sinh đã ghép
	Score     *int           `json:"score"`                     // 0-100
	MaxScore  *int           `json:"max_score"`                 // luôn 100
	IsCorrect *bool          `json:"is_correct"`

	TimeStart       time.Time  `gorm:"autoCreateTime" json:"time_start"`
	TimeEnd         *time.Time `json:"time_end"`
	DurationSeconds *int       `json:"duration_seconds"`
	AttemptNumber   int        `gorm:"default:1" json:"attempt_number"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (MatchingAttempt) TableName() string { return "matching_attempts" }
