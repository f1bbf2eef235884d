package matching

import (
	"reflect"
	"testing"

	"github.com/vnkhanh/e-learning-backend/models"
)

func strPtr(s string) *string { return &s }

func TestParseKinds(t *testing.T) {
	cases := []struct {
		name string
		in   *string
		want []Kind
	}{
		{"nil về legacy", nil, []Kind{KindLegacy}},
		{"rỗng về legacy", strPtr(""), []Kind{KindLegacy}},
		{"một tag", strPtr("picture-title"), []Kind{KindPictureTitle}},
		{"hai tag giữ thứ tự", strPtr("picture-title, title-description"), []Kind{KindPictureTitle, KindTitleDescription}},
		{"thứ tự ngược", strPtr("title-description, picture-title"), []Kind{KindTitleDescription, KindPictureTitle}},
		{"tag lạ bị bỏ qua", strPtr("picture-title, bogus"), []Kind{KindPictureTitle}},
		{"toàn tag lạ về legacy", strPtr("bogus, whatever"), []Kind{KindLegacy}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseKinds(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseKinds = %v, muốn %v", got, tc.want)
			}
		})
	}
}

func TestIsImageURL(t *testing.T) {
	if !IsImageURL("https://cdn.example.com/x.png") {
		t.Fatalf("link .png phải là ảnh")
	}
	if IsImageURL("Paris") {
		t.Fatalf("text thường không phải ảnh")
	}
	if IsImageURL("https://example.com/page") {
		t.Fatalf("link không có đuôi ảnh không phải ảnh")
	}
}

func testCatalog() ([]models.Content, []models.Image) {
	content := []models.Content{
		{ID: "c1", Title: "Paris", ShortDescription: strPtr("Capital of France"), ImageID: strPtr("i1")},
		{ID: "c2", Title: "Hanoi", ShortDescription: strPtr("Capital of Vietnam")},
		{ID: "c3", Title: "  ", ShortDescription: strPtr("blank title")},
		{ID: "c4", Title: "Rome"}, // không có mô tả, không có ảnh
	}
	images := []models.Image{
		{ID: "i1", ImageLink: strPtr("https://img/paris.png"), ContentID: strPtr("c1")},
		{ID: "i2", ImageLink: strPtr("https://img/hanoi.jpg"), ContentID: strPtr("c2")},
	}
	return content, images
}

func TestResolve_MissingContentDoesNotBreakActivity(t *testing.T) {
	activity := models.MatchingActivity{
		ID:      "m1",
		Prompt1: strPtr("c1"),
		Prompt2: strPtr("ghost"),
		Prompt3: strPtr("c2"),
	}
	content, images := testCatalog()

	res := Resolve(activity, content, images)
	if len(res.Items) != 2 {
		t.Fatalf("muốn 2 item tra được, có %d", len(res.Items))
	}
	if len(res.Missing) != 1 || res.Missing[0] != "ghost" {
		t.Fatalf("muốn Missing=[ghost], có %v", res.Missing)
	}
	if res.Items[0].Image == nil || *res.Items[0].Image.ImageLink != "https://img/paris.png" {
		t.Fatalf("c1 phải tra được ảnh qua contentid")
	}
}

func TestResolve_ImageFallbackViaContentImageID(t *testing.T) {
	content := []models.Content{{ID: "c9", Title: "Mars", ImageID: strPtr("i9")}}
	images := []models.Image{{ID: "i9", ImageLink: strPtr("https://img/mars.webp")}}
	activity := models.MatchingActivity{ID: "m9", Prompt1: strPtr("c9")}

	res := Resolve(activity, content, images)
	if len(res.Items) != 1 || res.Items[0].Image == nil {
		t.Fatalf("phải tìm được ảnh qua content.imageid")
	}
}

func TestBuildQuestions_PictureTitleDropsPairsWithoutImage(t *testing.T) {
	activity := models.MatchingActivity{
		ID:      "m1",
		Type:    strPtr("picture-title"),
		Prompt1: strPtr("c1"),
		Prompt2: strPtr("c2"),
		Prompt3: strPtr("c4"), // không có ảnh -> rơi cặp
	}
	content, images := testCatalog()

	questions := BuildQuestions(activity, Resolve(activity, content, images))
	if len(questions) != 1 {
		t.Fatalf("muốn 1 câu hỏi, có %d", len(questions))
	}
	q := questions[0]
	if q.Kind != KindPictureTitle || q.ID != "m1-picture-title" {
		t.Fatalf("kind/id sai: %s %s", q.Kind, q.ID)
	}
	if len(q.Pairs) != 2 {
		t.Fatalf("muốn 2 cặp (c4 không ảnh bị rơi), có %d", len(q.Pairs))
	}
	for _, p := range q.Pairs {
		if !p.LeftIsImage {
			t.Fatalf("cột trái của picture-title phải là ảnh")
		}
	}
}

func TestBuildQuestions_TitleDescriptionSkipsBlankData(t *testing.T) {
	activity := models.MatchingActivity{
		ID:      "m2",
		Type:    strPtr("title-description"),
		Prompt1: strPtr("c1"),
		Prompt2: strPtr("c3"), // title trắng -> rơi
		Prompt3: strPtr("c4"), // thiếu mô tả -> rơi
	}
	content, images := testCatalog()

	questions := BuildQuestions(activity, Resolve(activity, content, images))
	if len(questions) != 1 || len(questions[0].Pairs) != 1 {
		t.Fatalf("chỉ c1 đủ dữ liệu: %+v", questions)
	}
	pair := questions[0].Pairs[0]
	if pair.Left != "Paris" || pair.Right != "Capital of France" {
		t.Fatalf("cặp sai: %+v", pair)
	}
}

func TestBuildQuestions_TwoKindsKeepDeclaredOrder(t *testing.T) {
	activity := models.MatchingActivity{
		ID:      "m3",
		Type:    strPtr("title-description, picture-title"),
		Prompt1: strPtr("c1"),
		Prompt2: strPtr("c2"),
	}
	content, images := testCatalog()

	questions := BuildQuestions(activity, Resolve(activity, content, images))
	if len(questions) != 2 {
		t.Fatalf("muốn 2 câu hỏi, có %d", len(questions))
	}
	if questions[0].Kind != KindTitleDescription || questions[1].Kind != KindPictureTitle {
		t.Fatalf("thứ tự câu hỏi phải theo thứ tự tag: %s, %s", questions[0].Kind, questions[1].Kind)
	}
}

func TestBuildQuestions_LegacyReadsLiteralsAndDefaults(t *testing.T) {
	activity := models.MatchingActivity{
		ID:      "m4",
		Prompt1: strPtr("Paris"),
		Choice1: strPtr("Capital of France"),
		Prompt2: strPtr("https://img/x.jpg"),
		Choice2: strPtr("X"),
		Prompt3: strPtr("   "), // trắng -> rơi
		Choice3: strPtr("y"),
		Prompt4: strPtr("orphan"), // thiếu choice -> rơi
	}

	questions := BuildQuestions(activity, Resolution{})
	if len(questions) != 1 {
		t.Fatalf("muốn 1 câu legacy, có %d", len(questions))
	}
	q := questions[0]
	if q.ID != "m4" || q.Kind != KindLegacy {
		t.Fatalf("câu legacy giữ id activity: %s %s", q.ID, q.Kind)
	}
	if q.Prompt != "Match the corresponding items." {
		t.Fatalf("prompt mặc định sai: %q", q.Prompt)
	}
	if len(q.Pairs) != 2 {
		t.Fatalf("muốn 2 cặp, có %d", len(q.Pairs))
	}
	if !q.Pairs[1].LeftIsImage {
		t.Fatalf("link ảnh trong prompt legacy phải được nhận diện")
	}
}

func TestBuildQuestions_LegacyUsesDescriptionAsPrompt(t *testing.T) {
	activity := models.MatchingActivity{
		ID:          "m5",
		Description: strPtr("Nối thủ đô với quốc gia"),
		Prompt1:     strPtr("Paris"),
		Choice1:     strPtr("France"),
	}
	questions := BuildQuestions(activity, Resolution{})
	if questions[0].Prompt != "Nối thủ đô với quốc gia" {
		t.Fatalf("prompt phải lấy từ description: %q", questions[0].Prompt)
	}
}

func TestBuildQuestions_DuplicateValuesKeepFirstPair(t *testing.T) {
	t.Run("cùng content ở 2 ô prompt", func(t *testing.T) {
		activity := models.MatchingActivity{
			ID:      "m7",
			Type:    strPtr("title-description"),
			Prompt1: strPtr("c1"),
			Prompt2: strPtr("c1"),
			Prompt3: strPtr("c2"),
		}
		content, images := testCatalog()

		questions := BuildQuestions(activity, Resolve(activity, content, images))
		if len(questions) != 1 || len(questions[0].Pairs) != 2 {
			t.Fatalf("cặp trùng phải bị loại, giữ lại 2 cặp: %+v", questions)
		}
	})

	t.Run("2 content trùng mô tả", func(t *testing.T) {
		content := []models.Content{
			{ID: "c1", Title: "Paris", ShortDescription: strPtr("A capital city")},
			{ID: "c2", Title: "Hanoi", ShortDescription: strPtr("A capital city")},
			{ID: "c3", Title: "Rome", ShortDescription: strPtr("Ancient city")},
		}
		activity := models.MatchingActivity{
			ID:      "m8",
			Type:    strPtr("title-description"),
			Prompt1: strPtr("c1"),
			Prompt2: strPtr("c2"),
			Prompt3: strPtr("c3"),
		}

		questions := BuildQuestions(activity, Resolve(activity, content, nil))
		if len(questions) != 1 {
			t.Fatalf("muốn 1 câu hỏi, có %d", len(questions))
		}
		q := questions[0]
		if len(q.Pairs) != 2 {
			t.Fatalf("right trùng phải bị loại (giữ cặp đầu), có %d cặp", len(q.Pairs))
		}
		if q.Pairs[0].Left != "Paris" || q.Pairs[1].Left != "Rome" {
			t.Fatalf("phải giữ lần xuất hiện đầu tiên: %+v", q.Pairs)
		}
		// câu hỏi sau khi loại trùng phải ghép đủ và nộp được
		board := NewBoard(q)
		for _, p := range q.Pairs {
			if err := board.PlaceItem(p.Left, p.Right); err != nil {
				t.Fatalf("PlaceItem(%s) lỗi: %v", p.Left, err)
			}
		}
		scored, err := board.Submit()
		if err != nil {
			t.Fatalf("board từ câu hỏi đã loại trùng phải nộp được: %v", err)
		}
		if !scored.IsCorrect {
			t.Fatalf("ghép đúng hết phải IsCorrect: %+v", scored)
		}
	})

	t.Run("legacy trùng choice", func(t *testing.T) {
		activity := models.MatchingActivity{
			ID:      "m9",
			Prompt1: strPtr("Paris"),
			Choice1: strPtr("A capital city"),
			Prompt2: strPtr("Hanoi"),
			Choice2: strPtr("A capital city"),
		}
		questions := BuildQuestions(activity, Resolution{})
		if len(questions) != 1 || len(questions[0].Pairs) != 1 {
			t.Fatalf("choice trùng chỉ giữ cặp đầu: %+v", questions)
		}
	})
}

func TestBuildQuestions_NoUsablePairsYieldsEmptySlice(t *testing.T) {
	activity := models.MatchingActivity{
		ID:      "m6",
		Type:    strPtr("picture-title"),
		Prompt1: strPtr("c4"), // content không có ảnh
	}
	content, images := testCatalog()

	questions := BuildQuestions(activity, Resolve(activity, content, images))
	if len(questions) != 0 {
		t.Fatalf("không còn cặp nào thì không sinh câu hỏi, có %d", len(questions))
	}
}
