package matching

import "errors"

var (
	ErrNoQuestions       = errors.New("activity không có câu hỏi nào")
	ErrNotAwaitingGate   = errors.New("không ở trạng thái chờ xác nhận")
	ErrSequencerFinished = errors.New("activity đã hoàn thành")
)

// Sequencer điều phối thứ tự câu hỏi của 1 activity. Activity khai báo cả
// picture-title lẫn title-description là dạng 2 pha tuần tự: pha 2 chỉ mở
// khi học sinh bấm tiếp tục sau khi nộp pha 1, không tự nhảy. Các trường hợp
// còn lại nộp xong là sang câu kế tiếp luôn. Chỉ câu cuối cùng mới chốt
// attempt.
type Sequencer struct {
	questions    []Question
	index        int
	sequential   bool
	awaitingGate bool
	finished     bool
}

func NewSequencer(questions []Question) (*Sequencer, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	hasPicture, hasDescription := false, false
	for _, q := range questions {
		switch q.Kind {
		case KindPictureTitle:
			hasPicture = true
		case KindTitleDescription:
			hasDescription = true
		}
	}
	return &Sequencer{
		questions:  questions,
		sequential: hasPicture && hasDescription,
	}, nil
}

func (s *Sequencer) Current() Question  { return s.questions[s.index] }
func (s *Sequencer) Index() int         { return s.index }
func (s *Sequencer) Total() int         { return len(s.questions) }
func (s *Sequencer) Sequential() bool   { return s.sequential }
func (s *Sequencer) AwaitingGate() bool { return s.awaitingGate }
func (s *Sequencer) Finished() bool     { return s.finished }

// OnSubmitted ghi nhận câu hiện tại đã nộp. Trả về true khi đó là câu cuối
// (activity hoàn thành, caller chốt attempt). Dạng tuần tự dừng lại chờ
// Gate; các dạng khác tự sang câu kế tiếp.
func (s *Sequencer) OnSubmitted() (finished bool, err error) {
	if s.finished {
		return true, ErrSequencerFinished
	}
	if s.awaitingGate {
		return false, ErrNotAwaitingGate
	}
	if s.index >= len(s.questions)-1 {
		s.finished = true
		return true, nil
	}
	if s.sequential {
		s.awaitingGate = true
		return false, nil
	}
	s.index++
	return false, nil
}

// Gate là hành động "tiếp tục" tường minh của học sinh sau pha 1.
func (s *Sequencer) Gate() error {
	if !s.awaitingGate {
		return ErrNotAwaitingGate
	}
	s.awaitingGate = false
	s.index++
	return nil
}
