package loaders

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/google/uuid"
)

var _ driven.Loader = (*DOCXLoader)(nil)

// DOCXLoader extracts paragraph and table text from Word documents.
// A .docx file is a ZIP archive; the text lives in word/document.xml.
type DOCXLoader struct{}

func NewDOCXLoader() *DOCXLoader {
	return &DOCXLoader{}
}

func (l *DOCXLoader) Extensions() []string {
	return []string{".docx"}
}

func (l *DOCXLoader) Load(ctx context.Context, path string) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer reader.Close()

	content, err := extractDocumentText(&reader.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", path, err)
	}
	if content == "" {
		return nil, nil
	}

	doc := domain.Document{
		ID:      uuid.NewString(),
		Content: content,
		Metadata: map[string]any{
			domain.MetadataSourceKey: path,
			"file_type":              "docx",
		},
	}
	return []domain.Document{doc}, nil
}

// extractDocumentText pulls the text out of word/document.xml.
func extractDocumentText(reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}

		return parseDocumentXML(raw)
	}
	return "", domain.ErrInvalidInput
}

// documentXML mirrors the parts of word/document.xml we read. Body children
// keep document order, so paragraphs and tables interleave correctly.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
		Tables     []table     `xml:"tbl"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

type table struct {
	Rows []tableRow `xml:"tr"`
}

type tableRow struct {
	Cells []tableCell `xml:"tc"`
}

type tableCell struct {
	Paragraphs []paragraph `xml:"p"`
}

func parseDocumentXML(content []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", err
	}

	var lines []string
	for _, para := range doc.Body.Paragraphs {
		if text := para.text(); text != "" {
			lines = append(lines, text)
		}
	}
	for _, tbl := range doc.Body.Tables {
		for _, row := range tbl.Rows {
			var cells []string
			for _, cell := range row.Cells {
				var parts []string
				for _, para := range cell.Paragraphs {
					if text := para.text(); text != "" {
						parts = append(parts, text)
					}
				}
				cells = append(cells, strings.Join(parts, " "))
			}
			line := strings.Join(cells, " | ")
			if strings.TrimSpace(strings.ReplaceAll(line, "|", "")) != "" {
				lines = append(lines, line)
			}
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func (p paragraph) text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Text {
			b.WriteString(t.Content)
		}
	}
	return strings.TrimSpace(b.String())
}
