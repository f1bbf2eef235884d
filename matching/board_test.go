package matching

import (
	"errors"
	"sort"
	"testing"
)

func capitalQuestion() Question {
	return Question{
		ID:     "q1",
		Prompt: "Match the corresponding items.",
		Kind:   KindLegacy,
		Pairs:  capitalPairs(),
	}
}

func TestShuffledRights_PreservesAnswerKey(t *testing.T) {
	pairs := capitalPairs()
	for i := 0; i < 50; i++ {
		rights := ShuffledRights(pairs)
		if len(rights) != len(pairs) {
			t.Fatalf("xáo làm đổi số phần tử: %d", len(rights))
		}
		// cùng multiset giá trị
		want := []string{"France", "Italy", "Vietnam"}
		got := append([]string(nil), rights...)
		sort.Strings(got)
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("xáo làm đổi giá trị: %v", rights)
			}
		}
		// đáp án chuẩn không bị đụng tới
		if pairs[0].Right != "France" || pairs[1].Right != "Vietnam" || pairs[2].Right != "Italy" {
			t.Fatalf("pairs bị mutate sau xáo: %+v", pairs)
		}
	}
}

func TestBoard_ShuffleNeverCorruptsScoring(t *testing.T) {
	// Xáo kiểu gì thì ghép đúng theo giá trị vẫn phải ra 100
	for i := 0; i < 20; i++ {
		b := NewBoard(capitalQuestion())
		for _, p := range capitalQuestion().Pairs {
			if err := b.PlaceItem(p.Left, p.Right); err != nil {
				t.Fatalf("PlaceItem lỗi: %v", err)
			}
		}
		result, err := b.Submit()
		if err != nil {
			t.Fatalf("Submit lỗi: %v", err)
		}
		if result.Score != 100 || !result.IsCorrect {
			t.Fatalf("ghép đúng theo giá trị phải ra 100: %+v", result)
		}
	}
}

func TestBoard_PlaceItemValidation(t *testing.T) {
	b := NewBoard(capitalQuestion())

	if err := b.PlaceItem("Tokyo", "France"); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("mục lạ phải bị từ chối, có %v", err)
	}
	if err := b.PlaceItem("Paris", "Japan"); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("ô phải lạ phải bị từ chối, có %v", err)
	}

	if err := b.PlaceItem("Paris", "France"); err != nil {
		t.Fatalf("ghép hợp lệ lỗi: %v", err)
	}
	if err := b.PlaceItem("Paris", "Italy"); !errors.Is(err, ErrAlreadyPlaced) {
		t.Fatalf("mục đã ghép phải bị từ chối, có %v", err)
	}
}

func TestBoard_LastDropWins(t *testing.T) {
	b := NewBoard(capitalQuestion())

	if err := b.PlaceItem("Paris", "France"); err != nil {
		t.Fatalf("PlaceItem lỗi: %v", err)
	}
	// Hanoi thả vào ô France: Paris bị gỡ ra
	if err := b.PlaceItem("Hanoi", "France"); err != nil {
		t.Fatalf("thả sau phải thắng: %v", err)
	}

	matches := b.Matches()
	if _, ok := matches["Paris"]; ok {
		t.Fatalf("Paris phải bị gỡ khỏi ô France: %v", matches)
	}
	if matches["Hanoi"] != "France" {
		t.Fatalf("Hanoi phải giữ ô France: %v", matches)
	}
	// Paris được ghép lại bình thường
	if err := b.PlaceItem("Paris", "Italy"); err != nil {
		t.Fatalf("mục bị gỡ phải ghép lại được: %v", err)
	}
}

func TestBoard_SubmitRequiresComplete(t *testing.T) {
	b := NewBoard(capitalQuestion())
	_ = b.PlaceItem("Paris", "France")

	if _, err := b.Submit(); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("chưa ghép đủ phải bị từ chối, có %v", err)
	}
	if b.State() != BoardUnsubmitted {
		t.Fatalf("submit hụt không được đổi trạng thái")
	}
}

func TestBoard_ResubmitHasNoObservableEffect(t *testing.T) {
	b := NewBoard(capitalQuestion())
	_ = b.PlaceItem("Paris", "France")
	_ = b.PlaceItem("Hanoi", "Vietnam")
	_ = b.PlaceItem("Rome", "Vietnam") // gỡ Hanoi
	_ = b.PlaceItem("Hanoi", "Italy")

	first, err := b.Submit()
	if err != nil {
		t.Fatalf("Submit lỗi: %v", err)
	}
	if b.State() != BoardSubmitted {
		t.Fatalf("board phải khoá sau submit")
	}

	// Nộp lần 2: lỗi, kết quả cũ giữ nguyên
	second, err := b.Submit()
	if !errors.Is(err, ErrBoardSubmitted) {
		t.Fatalf("nộp lần 2 phải báo ErrBoardSubmitted, có %v", err)
	}
	if second.Score != first.Score || second.CorrectCount != first.CorrectCount {
		t.Fatalf("kết quả không được đổi: %+v vs %+v", first, second)
	}

	// Khoá luôn thao tác ghép
	if err := b.PlaceItem("Paris", "Italy"); !errors.Is(err, ErrBoardSubmitted) {
		t.Fatalf("board đã nộp phải từ chối ghép, có %v", err)
	}
}

// Kịch bản đầy đủ: ghép nhầm, thả đè, sửa lại rồi nộp.
func TestBoard_ParisScenario(t *testing.T) {
	q := Question{
		ID:   "geo",
		Kind: KindTitleDescription,
		Pairs: []Pair{
			{Left: "Paris", Right: "Capital of France"},
			{Left: "Hanoi", Right: "Capital of Vietnam"},
		},
	}
	b := NewBoard(q)

	// Nhầm: Paris vào ô Vietnam
	if err := b.PlaceItem("Paris", "Capital of Vietnam"); err != nil {
		t.Fatalf("PlaceItem lỗi: %v", err)
	}
	// Hanoi thả đè vào đúng ô đó, Paris bật ra
	if err := b.PlaceItem("Hanoi", "Capital of Vietnam"); err != nil {
		t.Fatalf("PlaceItem lỗi: %v", err)
	}
	// Paris về đúng chỗ
	if err := b.PlaceItem("Paris", "Capital of France"); err != nil {
		t.Fatalf("PlaceItem lỗi: %v", err)
	}

	result, err := b.Submit()
	if err != nil {
		t.Fatalf("Submit lỗi: %v", err)
	}
	if result.Score != 100 || !result.IsCorrect || result.CorrectCount != 2 {
		t.Fatalf("kết quả sai: %+v", result)
	}
}
