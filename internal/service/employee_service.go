package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/employee-graph-api/internal/models"
	appErrors "github.com/noah-isme/employee-graph-api/pkg/errors"
)

type employeeRepository interface {
	List(ctx context.Context, filter models.EmployeeFilter, sort models.EmployeeSort) ([]models.Employee, error)
	ListPage(ctx context.Context, filter models.EmployeeFilter, sort models.EmployeeSort, page, pageSize int) ([]models.Employee, error)
	Count(ctx context.Context, filter models.EmployeeFilter) (int, error)
	FindByID(ctx context.Context, id string) (*models.Employee, error)
	Create(ctx context.Context, employee *models.Employee) error
	UpdateByID(ctx context.Context, id string, patch models.EmployeePatch) (bool, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// CreateEmployeeRequest holds the payload for creating an employee record.
// Only the name is required.
type CreateEmployeeRequest struct {
	Name       string   `json:"name" validate:"required"`
	Age        *int     `json:"age" validate:"omitempty,gte=0"`
	Class      *string  `json:"class"`
	Subjects   []string `json:"subjects"`
	Attendance *float64 `json:"attendance" validate:"omitempty,gte=0,lte=100"`
	Email      *string  `json:"email" validate:"omitempty,email"`
	Phone      *string  `json:"phone"`
	Department *string  `json:"department"`
}

// UpdateEmployeeRequest is a sparse update: nil fields stay untouched.
type UpdateEmployeeRequest struct {
	ID    string `json:"id" validate:"required"`
	Patch models.EmployeePatch
}

// EmployeeService handles employee read and mutation use-cases.
type EmployeeService struct {
	repo      employeeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEmployeeService constructs the employee service.
func NewEmployeeService(repo employeeRepository, validate *validator.Validate, logger *zap.Logger) *EmployeeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{repo: repo, validator: validate, logger: logger}
}

// List returns every employee matching the filter, unpaginated.
func (s *EmployeeService) List(ctx context.Context, filter models.EmployeeFilter, sort models.EmployeeSort) ([]models.Employee, error) {
	employees, err := s.repo.List(ctx, filter, sort)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list employees")
	}
	return employees, nil
}

// Get returns a single employee by id, or nil when the id is unknown.
func (s *EmployeeService) Get(ctx context.Context, id string) (*models.Employee, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}
	return employee, nil
}

// ListPage returns one page of employees plus the filter-wide total count.
// The item fetch and the count are independent reads and run concurrently;
// the count ignores the page window, so totalCount stays correct even when
// the requested page lies beyond the data.
func (s *EmployeeService) ListPage(ctx context.Context, filter models.EmployeeFilter, sort models.EmployeeSort, page, pageSize int) (*models.EmployeePage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var (
		items []models.Employee
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.ListPage(gctx, filter, sort, page, pageSize)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to page employees")
	}

	return &models.EmployeePage{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// Create validates the payload and inserts a new record.
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*models.Employee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid employee payload")
	}

	employee := &models.Employee{
		Name:       req.Name,
		Age:        req.Age,
		Class:      req.Class,
		Subjects:   pq.StringArray(req.Subjects),
		Attendance: req.Attendance,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Flagged:    false,
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create employee")
	}

	s.logger.Info("employee created", zap.String("employee_id", employee.ID))
	return employee, nil
}

// Update applies a sparse patch to the record identified by req.ID and
// returns the fresh record. An unknown id fails with not found.
func (s *EmployeeService) Update(ctx context.Context, req UpdateEmployeeRequest) (*models.Employee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid employee payload")
	}
	if req.Patch.Attendance != nil && (*req.Patch.Attendance < 0 || *req.Patch.Attendance > 100) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "attendance must be between 0 and 100")
	}
	if req.Patch.Name != nil && *req.Patch.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name must not be empty")
	}

	applied, err := s.repo.UpdateByID(ctx, req.ID, req.Patch)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update employee")
	}
	if !applied {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
	}

	employee, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload employee")
	}
	return employee, nil
}

// Delete removes the record by id, reporting whether anything was deleted.
// A missing id yields false, not an error.
func (s *EmployeeService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete employee")
	}
	if deleted {
		s.logger.Info("employee deleted", zap.String("employee_id", id))
	}
	return deleted, nil
}
