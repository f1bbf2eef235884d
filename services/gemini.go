package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGenerateText gửi prompt cho Gemini và trả text kết quả
func GeminiGenerateText(prompt string) (string, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, option.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		return "", fmt.Errorf("không thể tạo Gemini client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("lỗi Gemini xử lý: %v", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini không trả kết quả hợp lệ")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// PairSuggestion là 1 cặp title/mô tả do Gemini đề xuất từ tài liệu nguồn
type PairSuggestion struct {
	Title            string `json:"title"`
	ShortDescription string `json:"short_description"`
}

// GenerateMatchingPairs nhờ Gemini rút các cặp khái niệm/mô tả từ văn bản
// để dựng hoạt động ghép cặp title-description. Tối đa maxPairs cặp (giới
// hạn 6 vì activity chỉ có prompt1..6).
func GenerateMatchingPairs(text string, maxPairs int) ([]PairSuggestion, error) {
	if maxPairs < 1 || maxPairs > 6 {
		maxPairs = 6
	}

	prompt := fmt.Sprintf(`Bạn là AI tạo học liệu.
Từ đoạn văn bản sau, hãy rút ra tối đa %d khái niệm quan trọng để làm bài tập ghép cặp.

Yêu cầu:
- Mỗi khái niệm gồm "title" (tên ngắn gọn) và "short_description" (mô tả 1-2 câu, không lặp lại title).
- Các mô tả phải phân biệt được với nhau, không mơ hồ.

Trả về JSON hợp lệ đúng cấu trúc:
[
  {"title": "Tên khái niệm", "short_description": "Mô tả ngắn."}
]

Chỉ trả về JSON hợp lệ, không thêm bất kỳ văn bản nào khác.

Văn bản:
%s
`, maxPairs, text)

	raw, err := GeminiGenerateText(prompt)
	if err != nil {
		return nil, err
	}

	// Làm sạch JSON Gemini (hay bọc trong ```json ... ```)
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "`")
	clean = strings.TrimPrefix(clean, "json")
	clean = strings.TrimSpace(clean)

	var suggestions []PairSuggestion
	if err := json.Unmarshal([]byte(clean), &suggestions); err != nil {
		return nil, fmt.Errorf("không parse được JSON từ Gemini: %v", err)
	}

	// Lọc cặp thiếu dữ liệu, cắt về maxPairs
	valid := make([]PairSuggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if strings.TrimSpace(s.Title) == "" || strings.TrimSpace(s.ShortDescription) == "" {
			continue
		}
		valid = append(valid, s)
		if len(valid) == maxPairs {
			break
		}
	}
	return valid, nil
}
