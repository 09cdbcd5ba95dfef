package domain

import "strings"

// EmployeeRecord is a single roster row reconstructed from flattened text.
// It is derived on demand per query and never persisted.
type EmployeeRecord struct {
	ID         string
	Name       string
	Title      string
	Category   string
	HireDate   string
	Age        string
	Email      string
	Department string
}

// Roster text markers. The roster loader writes these and the extractor scans
// for them, so both sides share one declaration.
const (
	// RecordBoundaryPrefix starts a new employee block in the roster text.
	// Full form: "[Employee N]".
	RecordBoundaryPrefix = "[Employee "

	// DepartmentLabel prefixes the department line of an employee block.
	DepartmentLabel = "department: "

	// DepartmentGroupSuffix marks the department line as the grouping field.
	// Full form: "department: <value> (primary department)".
	DepartmentGroupSuffix = " (primary department)"
)

// FieldLabel binds a line prefix in the roster text to a record field.
type FieldLabel struct {
	Prefix string
	Assign func(*EmployeeRecord, string)
}

// FieldLabels is the declared schema of the roster text, in the order the
// loader emits the lines. The extractor is driven by this table rather than
// by inline string literals.
var FieldLabels = []FieldLabel{
	{"employee_id: ", func(r *EmployeeRecord, v string) { r.ID = v }},
	{"full_name: ", func(r *EmployeeRecord, v string) { r.Name = v }},
	{"title: ", func(r *EmployeeRecord, v string) { r.Title = v }},
	{"employee_category: ", func(r *EmployeeRecord, v string) { r.Category = v }},
	{"hire_date: ", func(r *EmployeeRecord, v string) { r.HireDate = v }},
	{"age: ", func(r *EmployeeRecord, v string) { r.Age = v }},
	{"email: ", func(r *EmployeeRecord, v string) { r.Email = v }},
}

// Complete reports whether the record carries the minimum fields required
// for presentation. Buffers missing either field are discarded.
func (r EmployeeRecord) Complete() bool {
	return r.ID != "" && r.Name != ""
}

// ParseDepartmentLine extracts the department value from a grouping line.
// Returns ("", false) when the line is not a department grouping line.
func ParseDepartmentLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, DepartmentLabel) || !strings.HasSuffix(trimmed, DepartmentGroupSuffix) {
		return "", false
	}
	value := strings.TrimPrefix(trimmed, DepartmentLabel)
	value = strings.TrimSuffix(value, DepartmentGroupSuffix)
	return strings.TrimSpace(value), true
}
