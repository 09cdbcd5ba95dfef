package services

import (
	"strings"

	"github.com/docqa-labs/docqa-cli/internal/core/domain"
)

// rosterSourceMarker identifies documents whose text carries the roster
// layout. Only those are scanned for employee records.
const rosterSourceMarker = "roster"

// ExtractRecords rebuilds employee records from retrieved roster text.
//
// The scan makes two passes over each employee block. The first pass walks
// lines inside a record boundary, parsing labelled fields into a buffer and
// checking the department grouping line against the query. The second pass,
// triggered when the buffer closes (next boundary or end of document),
// promotes the buffer to a record only when the department matched and both
// identifying fields were present. Partial blocks produced by chunking are
// dropped rather than guessed at.
func ExtractRecords(docs []domain.Document, departmentQuery string) []domain.EmployeeRecord {
	query := strings.ToLower(strings.TrimSpace(departmentQuery))
	if query == "" {
		return nil
	}

	var records []domain.EmployeeRecord
	for _, doc := range docs {
		if !strings.Contains(strings.ToLower(doc.Source()), rosterSourceMarker) {
			continue
		}
		records = append(records, scanRoster(doc.Content, query)...)
	}
	return records
}

// scanRoster extracts matching records from one roster text.
func scanRoster(content, query string) []domain.EmployeeRecord {
	var (
		records  []domain.EmployeeRecord
		buffer   domain.EmployeeRecord
		inRecord bool
		matches  bool
	)

	flush := func() {
		if inRecord && matches && buffer.Complete() {
			records = append(records, buffer)
		}
		buffer = domain.EmployeeRecord{}
		matches = false
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, domain.RecordBoundaryPrefix) {
			flush()
			inRecord = true
			continue
		}
		if !inRecord {
			continue
		}

		if dept, ok := domain.ParseDepartmentLine(trimmed); ok {
			buffer.Department = dept
			if departmentMatches(dept, query) {
				matches = true
			}
			continue
		}

		for _, label := range domain.FieldLabels {
			if strings.HasPrefix(trimmed, label.Prefix) {
				label.Assign(&buffer, strings.TrimSpace(strings.TrimPrefix(trimmed, label.Prefix)))
				break
			}
		}
	}
	flush()

	return records
}

// departmentMatches reports whether a declared department value matches the
// query. Containment runs both ways so "Sales" matches the query "sales
// department" and the query "sales" matches "Sales & Partnerships".
func departmentMatches(department, query string) bool {
	dept := strings.ToLower(department)
	return strings.Contains(dept, query) || strings.Contains(query, dept)
}
