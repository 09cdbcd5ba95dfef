package loaders

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
	"github.com/docqa-labs/docqa-cli/internal/core/ports/driven"
	"github.com/google/uuid"
)

var _ driven.Loader = (*CSVLoader)(nil)

// Headers the roster rendering requires. Anything else falls back to the
// generic row-per-document rendering.
var requiredRosterHeaders = []string{"employee_id", "full_name", "department"}

// departmentSynonyms is the glossary appended to the roster document so
// keyword retrieval matches colloquial department names.
var departmentSynonyms = map[string][]string{
	"Sales":           {"sales", "sales team", "account executives", "business development"},
	"Engineering":     {"engineering", "development", "developers", "tech team"},
	"Marketing":       {"marketing", "growth", "communications"},
	"Human Resources": {"hr", "people", "recruiting", "talent"},
	"Finance":         {"finance", "accounting", "payroll"},
	"Support":         {"support", "customer success", "helpdesk"},
}

// CSVConfig tunes CSV parsing.
type CSVConfig struct {
	Comma rune // field delimiter, ',' when zero
}

// CSVLoader loads employee roster CSVs into a single enriched document.
// Files that do not look like a roster are loaded one document per row.
type CSVLoader struct {
	comma rune
}

func NewCSVLoader(cfg CSVConfig) *CSVLoader {
	comma := cfg.Comma
	if comma == 0 {
		comma = ','
	}
	return &CSVLoader{comma: comma}
}

func (l *CSVLoader) Extensions() []string {
	return []string{".csv"}
}

func (l *CSVLoader) Load(ctx context.Context, path string) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := l.readRows(path, false)
	if err == nil {
		if doc, rosterErr := l.rosterDocument(path, rows); rosterErr == nil {
			return []domain.Document{doc}, nil
		}
	}

	return l.loadGeneric(path)
}

// readRows parses the whole file. Lenient mode tolerates ragged rows and
// stray quotes for the generic fallback.
func (l *CSVLoader) readRows(path string, lenient bool) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = l.comma
	r.TrimLeadingSpace = true
	if lenient {
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rows, nil
}

// rosterDocument renders the roster as one document: a header summary,
// per-department counts, one labelled block per employee, and the synonym
// glossary.
func (l *CSVLoader) rosterDocument(path string, rows [][]string) (domain.Document, error) {
	if len(rows) < 2 {
		return domain.Document{}, fmt.Errorf("%s: roster needs a header and at least one row", path)
	}

	header := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range requiredRosterHeaders {
		if _, ok := header[required]; !ok {
			return domain.Document{}, fmt.Errorf("%s: missing roster column %q", path, required)
		}
	}

	cell := func(row []string, name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	records := rows[1:]
	var departments []string
	counts := make(map[string]int)
	for _, row := range records {
		dept := cell(row, "department")
		if dept == "" {
			continue
		}
		if counts[dept] == 0 {
			departments = append(departments, dept)
		}
		counts[dept]++
	}

	var b strings.Builder
	b.WriteString("=== Employee Roster ===\n")
	fmt.Fprintf(&b, "Total employees: %d\n\n", len(records))

	b.WriteString("=== Employees by Department ===\n")
	for _, dept := range departments {
		fmt.Fprintf(&b, "%s: %d\n", dept, counts[dept])
	}
	b.WriteString("\n=== Employee Details ===\n")

	for i, row := range records {
		fmt.Fprintf(&b, "\n%s%d]\n", domain.RecordBoundaryPrefix, i+1)
		for _, label := range domain.FieldLabels {
			name := strings.TrimSuffix(label.Prefix, ": ")
			name = strings.TrimSuffix(name, ":")
			if v := cell(row, name); v != "" {
				fmt.Fprintf(&b, "%s%s\n", label.Prefix, v)
			}
		}
		if dept := cell(row, "department"); dept != "" {
			fmt.Fprintf(&b, "%s%s%s\n", domain.DepartmentLabel, dept, domain.DepartmentGroupSuffix)
		}
	}

	b.WriteString("\n=== Search Keywords ===\n")
	for _, dept := range departments {
		syns, ok := departmentSynonyms[dept]
		if !ok {
			syns = []string{strings.ToLower(dept)}
		}
		fmt.Fprintf(&b, "%s: %s\n", dept, strings.Join(syns, ", "))
	}

	return domain.Document{
		ID:      uuid.NewString(),
		Content: b.String(),
		Metadata: map[string]any{
			domain.MetadataSourceKey: path,
			"file_type":              "csv",
			"total_employees":        len(records),
			"departments":            departments,
		},
	}, nil
}

// loadGeneric renders each data row as its own "header: value" document.
func (l *CSVLoader) loadGeneric(path string) ([]domain.Document, error) {
	rows, err := l.readRows(path, true)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	docs := make([]domain.Document, 0, len(rows)-1)
	for i, row := range rows[1:] {
		var lines []string
		for j, v := range row {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			name := fmt.Sprintf("column_%d", j+1)
			if j < len(header) {
				if h := strings.TrimSpace(header[j]); h != "" {
					name = h
				}
			}
			lines = append(lines, fmt.Sprintf("%s: %s", name, v))
		}
		if len(lines) == 0 {
			continue
		}
		docs = append(docs, domain.Document{
			ID:      uuid.NewString(),
			Content: strings.Join(lines, "\n"),
			Metadata: map[string]any{
				domain.MetadataSourceKey: path,
				"file_type":              "csv",
				"row":                    i + 1,
			},
		})
	}
	return docs, nil
}
