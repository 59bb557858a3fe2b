package models

import (
	"time"

	"github.com/lib/pq"
)

// Employee represents a directory record stored in the employees table.
// Optional columns map to pointers so a missing value survives the round
// trip to the API as null.
type Employee struct {
	ID         string         `db:"id" json:"id"`
	Name       string         `db:"name" json:"name"`
	Age        *int           `db:"age" json:"age"`
	Class      *string        `db:"class" json:"class"`
	Subjects   pq.StringArray `db:"subjects" json:"subjects"`
	Attendance *float64       `db:"attendance" json:"attendance"`
	Email      *string        `db:"email" json:"email"`
	Phone      *string        `db:"phone" json:"phone"`
	Department *string        `db:"department" json:"department"`
	Flagged    bool           `db:"flagged" json:"flagged"`
	CreatedAt  time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updatedAt"`
}

// EmployeeFilter captures the filterable subset of employee fields.
// A zero-value field imposes no constraint; min/max bounds apply
// independently and are inclusive when both are present.
type EmployeeFilter struct {
	Name          string
	Class         string
	Department    string
	MinAge        *int
	MaxAge        *int
	MinAttendance *float64
	MaxAttendance *float64
}

// SortOrder is the direction of a single-key ordering.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// EmployeeSortField enumerates the sortable employee columns.
type EmployeeSortField string

const (
	SortByName       EmployeeSortField = "NAME"
	SortByAge        EmployeeSortField = "AGE"
	SortByAttendance EmployeeSortField = "ATTENDANCE"
	SortByCreatedAt  EmployeeSortField = "CREATED_AT"
)

// EmployeeSort pairs a sort field with its direction. An empty or unknown
// field sorts by creation time descending regardless of Order.
type EmployeeSort struct {
	Field EmployeeSortField
	Order SortOrder
}

// EmployeePatch is a sparse update: nil fields are left untouched.
// Subjects set to a non-nil slice (including empty) replaces the stored list.
type EmployeePatch struct {
	Name       *string
	Age        *int
	Class      *string
	Subjects   []string
	Attendance *float64
	Email      *string
	Phone      *string
	Department *string
	Flagged    *bool
}

// Empty reports whether the patch carries no field changes.
func (p EmployeePatch) Empty() bool {
	return p.Name == nil && p.Age == nil && p.Class == nil && p.Subjects == nil &&
		p.Attendance == nil && p.Email == nil && p.Phone == nil &&
		p.Department == nil && p.Flagged == nil
}

// EmployeePage is the windowed read envelope. TotalCount reflects every
// record matching the filter, not just the returned window.
type EmployeePage struct {
	Items      []Employee `json:"items"`
	TotalCount int        `json:"totalCount"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
}
