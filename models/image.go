package models

import "time"

// IMAGE (HÌNH ẢNH)
// Ảnh gắn với content qua contentid, hoặc content trỏ ngược qua imageid.
type Image struct {
	ID          string  `gorm:"type:text;primaryKey" json:"id"`
	ImageLink   *string `gorm:"column:imagelink;type:text" json:"imagelink"`
	ContentID   *string `gorm:"column:contentid;type:text;index" json:"contentid"`
	Name        *string `gorm:"type:text" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	TopicID     *string `gorm:"column:topicid;type:text" json:"topicid"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Image) TableName() string { return "image" }
