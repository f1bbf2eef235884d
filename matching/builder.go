package matching

import (
	"fmt"
	"strings"

	"github.com/vnkhanh/e-learning-backend/models"
)

// Prompt mặc định cho từng loại câu hỏi (giữ nguyên wording dữ liệu gốc).
const (
	promptPictureTitle     = "Match the images with their corresponding titles."
	promptTitleDescription = "Match the titles with their descriptions."
	promptLegacyDefault    = "Match the corresponding items."
)

// BuildQuestions biến activity + kết quả tra cứu thành danh sách câu hỏi,
// theo đúng thứ tự tag trong cột type. Dữ liệu thiếu (ảnh rỗng, title trống,
// thiếu mô tả) chỉ làm rơi cặp đó; kind không còn cặp nào thì không sinh
// câu hỏi. Trả về slice rỗng là kết quả hợp lệ, caller phải hiển thị trạng
// thái "không có câu hỏi" thay vì lỗi.
func BuildQuestions(activity models.MatchingActivity, res Resolution) []Question {
	var questions []Question
	for _, kind := range ParseKinds(activity.Type) {
		var q Question
		switch kind {
		case KindPictureTitle:
			q = buildPictureTitle(activity, res)
		case KindTitleDescription:
			q = buildTitleDescription(activity, res)
		case KindLegacy:
			q = buildLegacy(activity)
		}
		q.Pairs = dedupePairs(q.Pairs)
		if len(q.Pairs) > 0 {
			questions = append(questions, q)
		}
	}
	return questions
}

// dedupePairs giữ lần xuất hiện đầu tiên của mỗi giá trị trái/phải. Board
// ghép theo giá trị nên left và right phải duy nhất trong 1 câu hỏi; cặp
// trùng (cùng content ở 2 ô prompt, hoặc 2 content cùng title/mô tả) sẽ
// làm câu hỏi không bao giờ ghép đủ.
func dedupePairs(pairs []Pair) []Pair {
	seenLeft := make(map[string]bool, len(pairs))
	seenRight := make(map[string]bool, len(pairs))
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if seenLeft[p.Left] || seenRight[p.Right] {
			continue
		}
		seenLeft[p.Left] = true
		seenRight[p.Right] = true
		out = append(out, p)
	}
	return out
}

func buildPictureTitle(activity models.MatchingActivity, res Resolution) Question {
	q := Question{
		ID:     fmt.Sprintf("%s-%s", activity.ID, KindPictureTitle),
		Prompt: promptPictureTitle,
		Kind:   KindPictureTitle,
	}
	for _, item := range res.Items {
		if item.Image == nil || item.Image.ImageLink == nil {
			continue
		}
		link := strings.TrimSpace(*item.Image.ImageLink)
		title := strings.TrimSpace(item.Content.Title)
		if link == "" || title == "" {
			continue
		}
		q.Pairs = append(q.Pairs, Pair{Left: link, Right: title, LeftIsImage: true})
	}
	return q
}

func buildTitleDescription(activity models.MatchingActivity, res Resolution) Question {
	q := Question{
		ID:     fmt.Sprintf("%s-%s", activity.ID, KindTitleDescription),
		Prompt: promptTitleDescription,
		Kind:   KindTitleDescription,
	}
	for _, item := range res.Items {
		title := strings.TrimSpace(item.Content.Title)
		if title == "" || item.Content.ShortDescription == nil {
			continue
		}
		desc := strings.TrimSpace(*item.Content.ShortDescription)
		if desc == "" {
			continue
		}
		q.Pairs = append(q.Pairs, Pair{Left: title, Right: desc})
	}
	return q
}

// buildLegacy đọc promptN/choiceN literal trực tiếp trên activity,
// không tra content/image (dữ liệu được nhập tay trước khi có type).
func buildLegacy(activity models.MatchingActivity) Question {
	prompt := promptLegacyDefault
	if activity.Description != nil && strings.TrimSpace(*activity.Description) != "" {
		prompt = *activity.Description
	}
	q := Question{ID: activity.ID, Prompt: prompt, Kind: KindLegacy}

	prompts := activity.Prompts()
	choices := activity.Choices()
	for i := range prompts {
		if prompts[i] == nil || choices[i] == nil {
			continue
		}
		left := strings.TrimSpace(*prompts[i])
		right := strings.TrimSpace(*choices[i])
		if left == "" || right == "" {
			continue
		}
		q.Pairs = append(q.Pairs, Pair{Left: left, Right: right, LeftIsImage: IsImageURL(left)})
	}
	return q
}
