package loaders

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
)

var _ driven.Loader = (*PDFLoader)(nil)

// PDFLoader extracts text from PDF files via their page content streams.
// One document is emitted per file; page texts are separated by blank lines.
type PDFLoader struct{}

func NewPDFLoader() *PDFLoader {
	return &PDFLoader{}
}

func (l *PDFLoader) Extensions() []string {
	return []string{".pdf"}
}

func (l *PDFLoader) Load(ctx context.Context, path string) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outDir, err := os.MkdirTemp("", "docqa-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := api.LoadConfiguration()
	if err := api.ExtractContentFile(path, outDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract content from %s: %w", path, err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read extraction dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var pages []string
	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read page content: %w", err)
		}
		if text := textFromContentStream(raw); text != "" {
			pages = append(pages, text)
		}
	}

	content := strings.TrimSpace(strings.Join(pages, "\n\n"))
	if content == "" {
		return nil, nil
	}

	doc := domain.Document{
		ID:      uuid.NewString(),
		Content: content,
		Metadata: map[string]any{
			domain.MetadataSourceKey: path,
			"file_type":              "pdf",
			"pages":                  len(pages),
		},
	}
	return []domain.Document{doc}, nil
}

// textFromContentStream pulls the literal strings shown by Tj/TJ/'/" text
// operators out of a decoded PDF content stream. Positioning operators
// (Td, TD, T*) become line breaks. Hex strings and font handling are out of
// scope; this covers the text-heavy office documents the corpus contains.
func textFromContentStream(raw []byte) string {
	var (
		out     strings.Builder
		pending strings.Builder
		token   strings.Builder
		line    strings.Builder
	)

	flushLine := func() {
		if s := strings.TrimSpace(line.String()); s != "" {
			if out.Len() > 0 {
				out.WriteByte('\n')
			}
			out.WriteString(s)
		}
		line.Reset()
	}

	handleToken := func() {
		switch token.String() {
		case "Tj", "TJ", "'", "\"":
			line.WriteString(pending.String())
			pending.Reset()
		case "Td", "TD", "T*", "ET":
			pending.Reset()
			flushLine()
		}
		token.Reset()
	}

	inString := false
	depth := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if inString {
			switch c {
			case '\\':
				if i+1 < len(raw) {
					i++
					switch e := raw[i]; e {
					case 'n':
						pending.WriteByte('\n')
					case 't':
						pending.WriteByte('\t')
					case 'r', 'b', 'f':
						// ignored
					case '(', ')', '\\':
						pending.WriteByte(e)
					default:
						if e >= '0' && e <= '7' {
							// octal escape, up to three digits
							v := int(e - '0')
							for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
								i++
								v = v*8 + int(raw[i]-'0')
							}
							pending.WriteByte(byte(v))
						}
					}
				}
			case '(':
				depth++
				pending.WriteByte(c)
			case ')':
				if depth == 0 {
					inString = false
				} else {
					depth--
					pending.WriteByte(c)
				}
			default:
				pending.WriteByte(c)
			}
			continue
		}

		switch {
		case c == '(':
			handleToken()
			inString = true
			depth = 0
		case isPDFTokenByte(c):
			token.WriteByte(c)
		default:
			handleToken()
		}
	}
	handleToken()
	flushLine()

	return out.String()
}

func isPDFTokenByte(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '*' || c == '\'' || c == '"'
}
