package matching

import "errors"

// BoardState: unsubmitted (đang kéo-thả) -> submitted (đã khoá).
// Không có chiều ngược lại; sang câu hỏi mới thì tạo board mới.
type BoardState string

const (
	BoardUnsubmitted BoardState = "unsubmitted"
	BoardSubmitted   BoardState = "submitted"
)

var (
	ErrBoardSubmitted = errors.New("board đã nộp, không thể thao tác thêm")
	ErrAlreadyPlaced  = errors.New("mục bên trái đã được ghép")
	ErrUnknownItem    = errors.New("mục không thuộc câu hỏi này")
	ErrIncomplete     = errors.New("chưa ghép đủ tất cả các mục")
)

// Board giữ trạng thái kéo-thả của 1 câu hỏi. Rights là thứ tự hiển thị
// (đã xáo); Question.Pairs là đáp án chuẩn.
type Board struct {
	question Question
	rights   []string
	matches  map[string]string
	state    BoardState
	result   *ScoredAttempt
}

func NewBoard(q Question) *Board {
	return &Board{
		question: q,
		rights:   ShuffledRights(q.Pairs),
		matches:  make(map[string]string, len(q.Pairs)),
		state:    BoardUnsubmitted,
	}
}

func (b *Board) Question() Question     { return b.question }
func (b *Board) State() BoardState      { return b.state }
func (b *Board) Rights() []string       { return append([]string(nil), b.rights...) }
func (b *Board) Result() *ScoredAttempt { return b.result }

// Matches trả về bản sao các cặp đã ghép.
func (b *Board) Matches() map[string]string {
	out := make(map[string]string, len(b.matches))
	for k, v := range b.matches {
		out[k] = v
	}
	return out
}

// Complete báo đã ghép đủ mọi mục bên trái chưa.
func (b *Board) Complete() bool {
	return len(b.matches) == len(b.question.Pairs)
}

// PlaceItem ghép left vào right. Chỉ hợp lệ khi board chưa nộp, left chưa
// được ghép và cả 2 giá trị thuộc câu hỏi. Mỗi ô bên phải chỉ giữ 1 mục:
// thả sau thắng, mục cũ bị gỡ ra.
func (b *Board) PlaceItem(left, right string) error {
	if b.state != BoardUnsubmitted {
		return ErrBoardSubmitted
	}
	if !b.hasLeft(left) || !b.hasRight(right) {
		return ErrUnknownItem
	}
	if _, placed := b.matches[left]; placed {
		return ErrAlreadyPlaced
	}
	for l, r := range b.matches {
		if r == right {
			delete(b.matches, l)
		}
	}
	b.matches[left] = right
	return nil
}

// Submit chấm board khi đã ghép đủ và khoá lại. Gọi lần 2 không có tác dụng
// quan sát được: trả lỗi, matches và kết quả giữ nguyên.
func (b *Board) Submit() (ScoredAttempt, error) {
	if b.state == BoardSubmitted {
		return *b.result, ErrBoardSubmitted
	}
	if !b.Complete() {
		return ScoredAttempt{}, ErrIncomplete
	}
	scored := Score(b.question.Pairs, b.matches)
	b.result = &scored
	b.state = BoardSubmitted
	return scored, nil
}

func (b *Board) hasLeft(item string) bool {
	for _, p := range b.question.Pairs {
		if p.Left == item {
			return true
		}
	}
	return false
}

func (b *Board) hasRight(item string) bool {
	for _, p := range b.question.Pairs {
		if p.Right == item {
			return true
		}
	}
	return false
}
