package models

import "time"

// TOPIC (CHỦ ĐỀ)
// Chủ đề có thể lồng nhau qua parentid; matching activity gắn vào topic qua topicid.
type Topic struct {
	ID           string  `gorm:"type:text;primaryKey" json:"id"`
	Name         string  `gorm:"column:topic;type:text;not null" json:"topic"`
	Slug         string  `gorm:"size:150;uniqueIndex" json:"slug"`
	ShortSummary *string `gorm:"type:text" json:"short_summary"`
	ParentID     *string `gorm:"column:parentid;type:text;index" json:"parentid"`
	ShowStudent  bool    `gorm:"column:showstudent;default:true" json:"showstudent"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Topic) TableName() string { return "topic" }
