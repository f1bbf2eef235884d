package models

import "time"

// CONTENT (NỘI DUNG HỌC)
// Bản ghi nội dung trong danh mục; matching activity tham chiếu qua prompt1..6.
type Content struct {
	ID               string  `gorm:"type:text;primaryKey" json:"id"`
	TopicID          *string `gorm:"column:topicid;type:text;index" json:"topicid"`
	ImageID          *string `gorm:"column:imageid;type:text" json:"imageid"`
	Title            string  `gorm:"type:text;not null" json:"title"`
	ShortDescription *string `gorm:"type:text" json:"short_description"`
	ShortBlurb       *string `gorm:"type:text" json:"short_blurb"`
	URL              *string `gorm:"type:text" json:"url"`
	ImageLink        *string `gorm:"column:imagelink;type:text" json:"imagelink"`

	// Audio đọc nội dung (sinh bằng TTS, lưu trên Supabase Storage)
	VoiceoverLink    *string  `gorm:"column:voiceoverlink;type:text" json:"voiceoverlink"`
	VoiceoverSeconds *float64 `gorm:"column:voiceoverseconds" json:"voiceoverseconds"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Content) TableName() string { return "content" }
