package matching

import (
	"errors"
	"testing"
)

func twoPhaseQuestions() []Question {
	return []Question{
		{ID: "q1", Kind: KindPictureTitle, Pairs: []Pair{{Left: "a", Right: "1"}}},
		{ID: "q2", Kind: KindTitleDescription, Pairs: []Pair{{Left: "b", Right: "2"}}},
	}
}

func TestNewSequencer_RejectsEmpty(t *testing.T) {
	if _, err := NewSequencer(nil); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("muốn ErrNoQuestions, có %v", err)
	}
}

func TestSequencer_SingleQuestionFinishesOnSubmit(t *testing.T) {
	seq, err := NewSequencer([]Question{{ID: "q", Kind: KindLegacy, Pairs: []Pair{{Left: "a", Right: "1"}}}})
	if err != nil {
		t.Fatalf("NewSequencer lỗi: %v", err)
	}
	if seq.Sequential() {
		t.Fatalf("1 câu legacy không phải dạng tuần tự")
	}
	finished, err := seq.OnSubmitted()
	if err != nil || !finished {
		t.Fatalf("câu duy nhất nộp xong phải finished: %v %v", finished, err)
	}
	if !seq.Finished() {
		t.Fatalf("sequencer phải ở trạng thái finished")
	}
	if _, err := seq.OnSubmitted(); !errors.Is(err, ErrSequencerFinished) {
		t.Fatalf("nộp sau khi xong phải báo lỗi, có %v", err)
	}
}

func TestSequencer_TwoPhaseRequiresExplicitGate(t *testing.T) {
	seq, err := NewSequencer(twoPhaseQuestions())
	if err != nil {
		t.Fatalf("NewSequencer lỗi: %v", err)
	}
	if !seq.Sequential() {
		t.Fatalf("khai báo cả 2 kind phải là dạng tuần tự")
	}

	// Pha 1 nộp xong: dừng chờ, không tự sang pha 2
	finished, err := seq.OnSubmitted()
	if err != nil || finished {
		t.Fatalf("pha 1 chưa phải kết thúc: %v %v", finished, err)
	}
	if !seq.AwaitingGate() {
		t.Fatalf("phải chờ học sinh bấm tiếp tục")
	}
	if seq.Index() != 0 {
		t.Fatalf("chưa gate thì chưa được sang câu sau")
	}

	// Nộp tiếp khi đang chờ gate là sai luồng
	if _, err := seq.OnSubmitted(); !errors.Is(err, ErrNotAwaitingGate) {
		t.Fatalf("muốn ErrNotAwaitingGate, có %v", err)
	}

	// Gate mở pha 2
	if err := seq.Gate(); err != nil {
		t.Fatalf("Gate lỗi: %v", err)
	}
	if seq.Index() != 1 || seq.Current().ID != "q2" {
		t.Fatalf("sau gate phải ở câu 2: index=%d", seq.Index())
	}

	// Pha 2 là câu cuối
	finished, err = seq.OnSubmitted()
	if err != nil || !finished {
		t.Fatalf("pha 2 nộp xong phải finished: %v %v", finished, err)
	}
}

func TestSequencer_GateOnlyValidWhileAwaiting(t *testing.T) {
	seq, _ := NewSequencer(twoPhaseQuestions())
	if err := seq.Gate(); !errors.Is(err, ErrNotAwaitingGate) {
		t.Fatalf("gate khi chưa nộp phải bị từ chối, có %v", err)
	}
}

func TestSequencer_NonSequentialAutoAdvances(t *testing.T) {
	questions := []Question{
		{ID: "q1", Kind: KindTitleDescription, Pairs: []Pair{{Left: "a", Right: "1"}}},
		{ID: "q2", Kind: KindTitleDescription, Pairs: []Pair{{Left: "b", Right: "2"}}},
	}
	seq, _ := NewSequencer(questions)
	if seq.Sequential() {
		t.Fatalf("chỉ 1 loại kind thì không tuần tự")
	}

	finished, err := seq.OnSubmitted()
	if err != nil || finished {
		t.Fatalf("còn câu sau: %v %v", finished, err)
	}
	if seq.AwaitingGate() {
		t.Fatalf("dạng không tuần tự không được chờ gate")
	}
	if seq.Current().ID != "q2" {
		t.Fatalf("phải tự sang câu kế: %s", seq.Current().ID)
	}
}
