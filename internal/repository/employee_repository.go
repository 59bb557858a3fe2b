package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/employee-graph-api/internal/models"
)

const employeeColumns = `id, name, age, class, subjects, attendance, email, phone, department, flagged, created_at, updated_at`

// EmployeeRepository manages persistence for employee records.
type EmployeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository constructs an EmployeeRepository.
func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// buildEmployeeFilter translates a filter spec into a WHERE fragment and its
// positional arguments. Absent fields impose no constraint. Range bounds on
// age and attendance apply independently; rows where the column is NULL never
// match a bound.
func buildEmployeeFilter(f models.EmployeeFilter) (string, []interface{}) {
	conditions := []string{"1=1"}
	var args []interface{}

	if f.Name != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(f.Name)+"%")
	}
	if f.Class != "" {
		conditions = append(conditions, fmt.Sprintf("class = $%d", len(args)+1))
		args = append(args, f.Class)
	}
	if f.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)+1))
		args = append(args, f.Department)
	}
	if f.MinAge != nil {
		conditions = append(conditions, fmt.Sprintf("age >= $%d", len(args)+1))
		args = append(args, *f.MinAge)
	}
	if f.MaxAge != nil {
		conditions = append(conditions, fmt.Sprintf("age <= $%d", len(args)+1))
		args = append(args, *f.MaxAge)
	}
	if f.MinAttendance != nil {
		conditions = append(conditions, fmt.Sprintf("attendance >= $%d", len(args)+1))
		args = append(args, *f.MinAttendance)
	}
	if f.MaxAttendance != nil {
		conditions = append(conditions, fmt.Sprintf("attendance <= $%d", len(args)+1))
		args = append(args, *f.MaxAttendance)
	}

	return strings.Join(conditions, " AND "), args
}

var employeeSortColumns = map[models.EmployeeSortField]string{
	models.SortByName:       "name",
	models.SortByAge:        "age",
	models.SortByAttendance: "attendance",
	models.SortByCreatedAt:  "created_at",
}

// buildEmployeeOrder maps a sort spec onto an ORDER BY clause. An empty or
// unknown field yields created_at DESC; the direction argument only applies
// alongside an explicit, known field.
func buildEmployeeOrder(s models.EmployeeSort) string {
	column, ok := employeeSortColumns[s.Field]
	if !ok {
		return "created_at DESC"
	}
	order := "ASC"
	if s.Order == models.SortDesc {
		order = "DESC"
	}
	return column + " " + order
}

// List returns every employee matching the filter in the requested order.
func (r *EmployeeRepository) List(ctx context.Context, filter models.EmployeeFilter, sort models.EmployeeSort) ([]models.Employee, error) {
	where, args := buildEmployeeFilter(filter)
	query := fmt.Sprintf("SELECT %s FROM employees WHERE %s ORDER BY %s", employeeColumns, where, buildEmployeeOrder(sort))

	employees := []models.Employee{}
	if err := r.db.SelectContext(ctx, &employees, query, args...); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// ListPage returns one window of employees matching the filter. Callers are
// expected to pass a normalized page (>= 1) and pageSize (>= 1).
func (r *EmployeeRepository) ListPage(ctx context.Context, filter models.EmployeeFilter, sort models.EmployeeSort, page, pageSize int) ([]models.Employee, error) {
	where, args := buildEmployeeFilter(filter)
	offset := (page - 1) * pageSize
	query := fmt.Sprintf("SELECT %s FROM employees WHERE %s ORDER BY %s LIMIT %d OFFSET %d",
		employeeColumns, where, buildEmployeeOrder(sort), pageSize, offset)

	employees := []models.Employee{}
	if err := r.db.SelectContext(ctx, &employees, query, args...); err != nil {
		return nil, fmt.Errorf("list employees page: %w", err)
	}
	return employees, nil
}

// Count returns the number of employees matching the filter, unbounded by any
// page window.
func (r *EmployeeRepository) Count(ctx context.Context, filter models.EmployeeFilter) (int, error) {
	where, args := buildEmployeeFilter(filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM employees WHERE %s", where)

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return total, nil
}

// FindByID fetches a single employee by ID.
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	query := fmt.Sprintf("SELECT %s FROM employees WHERE id = $1 LIMIT 1", employeeColumns)
	var employee models.Employee
	if err := r.db.GetContext(ctx, &employee, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find employee by id: %w", err)
	}
	return &employee, nil
}

// Create inserts a new employee record, assigning id and timestamps.
func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}
	if employee.Subjects == nil {
		employee.Subjects = pq.StringArray{}
	}
	now := time.Now().UTC()
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = now
	}
	employee.UpdatedAt = now

	const query = `INSERT INTO employees (id, name, age, class, subjects, attendance, email, phone, department, flagged, created_at, updated_at)
        VALUES (:id, :name, :age, :class, :subjects, :attendance, :email, :phone, :department, :flagged, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, employee); err != nil {
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

// UpdateByID applies a sparse patch to the record with the given id. It
// reports whether a row was updated; a false return with nil error means the
// id does not exist.
func (r *EmployeeRepository) UpdateByID(ctx context.Context, id string, patch models.EmployeePatch) (bool, error) {
	var sets []string
	var args []interface{}
	set := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Age != nil {
		set("age", *patch.Age)
	}
	if patch.Class != nil {
		set("class", *patch.Class)
	}
	if patch.Subjects != nil {
		set("subjects", pq.StringArray(patch.Subjects))
	}
	if patch.Attendance != nil {
		set("attendance", *patch.Attendance)
	}
	if patch.Email != nil {
		set("email", *patch.Email)
	}
	if patch.Phone != nil {
		set("phone", *patch.Phone)
	}
	if patch.Department != nil {
		set("department", *patch.Department)
	}
	if patch.Flagged != nil {
		set("flagged", *patch.Flagged)
	}
	set("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update employee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update employee rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeleteByID removes the record with the given id, reporting whether a row
// was actually deleted. A missing id is not an error.
func (r *EmployeeRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM employees WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete employee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete employee rows affected: %w", err)
	}
	return affected > 0, nil
}
