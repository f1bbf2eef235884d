// Package matching chứa engine của hoạt động ghép cặp: biến content/image
// thành câu hỏi, xáo thứ tự hiển thị, chấm điểm kéo-thả và điều phối
// hoạt động nhiều pha. Toàn bộ là dữ liệu trong bộ nhớ, không đụng DB.
package matching

import "strings"

// Kind của 1 câu hỏi ghép cặp, parse 1 lần từ cột type của activity.
type Kind string

const (
	KindPictureTitle     Kind = "picture-title"
	KindTitleDescription Kind = "title-description"
	KindLegacy           Kind = "legacy" // prompt/choice literal, không tra content
)

// ParseKinds tách cột type ("picture-title, title-description") thành danh
// sách kind theo đúng thứ tự khai báo. Tag lạ bị bỏ qua; nếu không còn tag
// nào hợp lệ thì rơi về legacy (dữ liệu cũ không có type).
func ParseKinds(activityType *string) []Kind {
	var kinds []Kind
	if activityType != nil {
		for _, tag := range strings.Split(*activityType, ", ") {
			switch Kind(strings.TrimSpace(tag)) {
			case KindPictureTitle:
				kinds = append(kinds, KindPictureTitle)
			case KindTitleDescription:
				kinds = append(kinds, KindTitleDescription)
			}
		}
	}
	if len(kinds) == 0 {
		return []Kind{KindLegacy}
	}
	return kinds
}

// Pair là 1 cặp ghép đúng. Left/Right luôn khác rỗng sau khi build.
type Pair struct {
	Left        string `json:"left"`
	Right       string `json:"right"`
	LeftIsImage bool   `json:"left_is_image"`
}

// Question là đáp án chuẩn của 1 màn ghép cặp. Pairs không bao giờ bị xáo;
// thứ tự hiển thị cột phải do ShuffledRights quyết định.
type Question struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
	Kind   Kind   `json:"kind"`
	Pairs  []Pair `json:"pairs"`
}

// LeftItems trả về cột trái theo thứ tự gốc.
func (q Question) LeftItems() []string {
	items := make([]string, 0, len(q.Pairs))
	for _, p := range q.Pairs {
		items = append(items, p.Left)
	}
	return items
}

// RightItems trả về cột phải theo thứ tự gốc (chưa xáo).
func (q Question) RightItems() []string {
	items := make([]string, 0, len(q.Pairs))
	for _, p := range q.Pairs {
		items = append(items, p.Right)
	}
	return items
}

// IsImageURL nhận diện giá trị là link ảnh raster để client render ảnh
// thay vì text.
func IsImageURL(item string) bool {
	if !strings.HasPrefix(item, "http") {
		return false
	}
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp", ".gif"} {
		if strings.Contains(item, ext) {
			return true
		}
	}
	return false
}
