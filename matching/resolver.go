package matching

import (
	"github.com/vnkhanh/e-learning-backend/models"
)

// ResolvedItem là 1 prompt đã tra được content, kèm ảnh nếu tìm thấy.
type ResolvedItem struct {
	ContentID string
	Content   models.Content
	Image     *models.Image // nil nếu content không có ảnh
}

// Resolution là kết quả tra cứu toàn bộ prompt1..6 của 1 activity.
// Id không tra được chỉ bị ghi nhận vào Missing, không làm hỏng cả activity.
type Resolution struct {
	Items   []ResolvedItem
	Missing []string
}

// Resolve tra từng promptN (N=1..6) có giá trị trong danh mục content, rồi
// tìm ảnh gắn kèm: ưu tiên image.contentid == contentID, sau đó
// image.id == content.imageid. Không có ảnh là kết quả hợp lệ.
func Resolve(activity models.MatchingActivity, content []models.Content, images []models.Image) Resolution {
	byID := make(map[string]models.Content, len(content))
	for _, c := range content {
		byID[c.ID] = c
	}
	byContentID := make(map[string]models.Image, len(images))
	imageByID := make(map[string]models.Image, len(images))
	for _, img := range images {
		imageByID[img.ID] = img
		if img.ContentID != nil && *img.ContentID != "" {
			if _, ok := byContentID[*img.ContentID]; !ok {
				byContentID[*img.ContentID] = img
			}
		}
	}

	var res Resolution
	for _, prompt := range activity.Prompts() {
		if prompt == nil || *prompt == "" {
			continue
		}
		contentID := *prompt
		item, ok := byID[contentID]
		if !ok {
			res.Missing = append(res.Missing, contentID)
			continue
		}
		resolved := ResolvedItem{ContentID: contentID, Content: item}
		if img, ok := byContentID[contentID]; ok {
			resolved.Image = &img
		} else if item.ImageID != nil && *item.ImageID != "" {
			if img, ok := imageByID[*item.ImageID]; ok {
				resolved.Image = &img
			}
		}
		res.Items = append(res.Items, resolved)
	}
	return res
}
