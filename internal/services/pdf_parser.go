package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ResumeExtractor turns an uploaded resume into plain text.
type ResumeExtractor interface {
	// ExtractText never fails: any extraction problem degrades to the
	// placeholder text so a broken resume never blocks an interview.
	ExtractText(filePath string) string
}

type resumeExtractor struct{}

func NewResumeExtractor() ResumeExtractor {
	return &resumeExtractor{}
}

// ExtractText implements ResumeExtractor.
func (r *resumeExtractor) ExtractText(filePath string) string {
	text, err := ExtractPDFText(filePath)
	if err != nil {
		log.Printf("⚠️  Resume extraction failed, using placeholder: %v\n", err)
		return ResumePlaceholder
	}
	return text
}

// ExtractPDFText pulls plain text out of a PDF, skipping unreadable pages.
func ExtractPDFText(filePath string) (string, error) {
	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

// CleanText normalizes extracted text before it is embedded into prompts.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
