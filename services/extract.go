package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Loại input nhận được từ form upload tài liệu nguồn
type InputType string

const (
	InputText InputType = "text"
	InputTXT  InputType = "txt"
	InputDOCX InputType = "docx"
	InputPDF  InputType = "pdf"
)

// InputSource là nguồn văn bản để sinh hoạt động ghép cặp
type InputSource struct {
	Type       InputType
	FileHeader *multipart.FileHeader // nếu là file (txt, docx, pdf)
	Text       string                // nếu giáo viên nhập tay
}

// GetInputTypeFromExt ánh xạ phần mở rộng file sang InputType
func GetInputTypeFromExt(ext string) (InputType, error) {
	switch ext {
	case ".pdf":
		return InputPDF, nil
	case ".docx":
		return InputDOCX, nil
	case ".txt":
		return InputTXT, nil
	default:
		return "", errors.New("định dạng file không hỗ trợ")
	}
}

// NormalizeInput đưa mọi nguồn về plain text
func NormalizeInput(input InputSource) (string, error) {
	switch input.Type {
	case InputText:
		return input.Text, nil

	case InputTXT:
		return ExtractTextFromTXT(input.FileHeader)

	case InputPDF:
		f, err := input.FileHeader.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		return ExtractTextFromPDF(f)

	case InputDOCX:
		return ExtractTextFromDOCX(input.FileHeader)

	default:
		return "", errors.New("loại input không hỗ trợ")
	}
}

func ExtractTextFromTXT(fileHeader *multipart.FileHeader) (string, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func ExtractTextFromPDF(file multipart.File) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", fmt.Errorf("lỗi đọc file PDF: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return "", fmt.Errorf("không thể tạo reader PDF: %w", err)
	}

	var textBuilder bytes.Buffer
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(content)
	}

	return textBuilder.String(), nil
}

func ExtractTextFromDOCX(fileHeader *multipart.FileHeader) (string, error) {
	// Lưu tạm vì zip reader cần ReaderAt
	tmpFile, err := os.CreateTemp("", "upload-*.docx")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	if _, err := io.Copy(tmpFile, src); err != nil {
		return "", err
	}

	// .docx là file zip, nội dung nằm trong word/document.xml
	r, err := zip.OpenReader(tmpFile.Name())
	if err != nil {
		return "", err
	}
	defer r.Close()

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("không tìm thấy word/document.xml trong file DOCX")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	return extractDOCXText(data), nil
}

// extractDOCXText gom text trong các node <w:t>, xuống dòng theo <w:p>
func extractDOCXText(data []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var sb strings.Builder
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		if el, ok := tok.(xml.StartElement); ok {
			switch el.Name.Local {
			case "t":
				var text string
				if err := decoder.DecodeElement(&text, &el); err == nil {
					sb.WriteString(text)
				}
			case "p":
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
