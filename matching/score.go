package matching

import "math"

// ScoredAttempt là kết quả chấm duy nhất cho 1 lần nộp: board, tracker và
// API đều dùng chung, đúng/sai không thể lệch nhau giữa các tầng.
type ScoredAttempt struct {
	CorrectCount int             `json:"correct_count"`
	TotalPairs   int             `json:"total_pairs"`
	Score        int             `json:"score"` // 0-100
	IsCorrect    bool            `json:"is_correct"`
	PerPair      map[string]bool `json:"per_pair"` // left -> đúng/sai
}

// Score chấm answers (left -> right học sinh đã ghép) theo đáp án chuẩn.
// score = round(correct/total*100); total = 0 thì score = 0.
func Score(pairs []Pair, answers map[string]string) ScoredAttempt {
	scored := ScoredAttempt{
		TotalPairs: len(pairs),
		PerPair:    make(map[string]bool, len(pairs)),
	}
	for _, p := range pairs {
		ok := answers[p.Left] == p.Right
		scored.PerPair[p.Left] = ok
		if ok {
			scored.CorrectCount++
		}
	}
	if scored.TotalPairs > 0 {
		scored.Score = int(math.Round(float64(scored.CorrectCount) / float64(scored.TotalPairs) * 100))
	}
	scored.IsCorrect = scored.TotalPairs > 0 && scored.CorrectCount == scored.TotalPairs
	return scored
}
