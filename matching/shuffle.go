package matching

import "math/rand"

// ShuffledRights trả về cột phải theo thứ tự hiển thị ngẫu nhiên
// (Fisher–Yates, math/rand là đủ cho mục đích hiển thị). Đáp án chuẩn nằm
// trong Pairs và không bị đụng tới: chấm điểm so theo giá trị, không theo
// vị trí, nên xáo kiểu gì cũng không làm sai key.
func ShuffledRights(pairs []Pair) []string {
	rights := make([]string, len(pairs))
	for i, p := range pairs {
		rights[i] = p.Right
	}
	rand.Shuffle(len(rights), func(i, j int) {
		rights[i], rights[j] = rights[j], rights[i]
	})
	return rights
}
