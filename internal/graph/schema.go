package graph

import (
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/noah-isme/employee-graph-api/internal/models"
	"github.com/noah-isme/employee-graph-api/internal/service"
)

// Resolver bundles the collaborators every operation resolver composes: the
// auth service (token codec + accounts), the employee service, and metrics.
type Resolver struct {
	auth      *service.AuthService
	employees *service.EmployeeService
	metrics   *service.MetricsService
	logger    *zap.Logger
}

// NewResolver constructs the resolver root. metrics may be nil.
func NewResolver(auth *service.AuthService, employees *service.EmployeeService, metrics *service.MetricsService, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{auth: auth, employees: employees, metrics: metrics, logger: logger}
}

// instrument wraps a resolver so every dispatch lands in the operation
// counter, tagged ok or error.
func (r *Resolver) instrument(name string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		out, err := fn(p)
		if r.metrics != nil {
			r.metrics.ObserveOperation(name, err)
		}
		return out, err
	}
}

// NewSchema assembles the full operation registry: enums, object and input
// types, and the query/mutation roots. The schema is built once at startup
// and never mutated afterwards.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	roleEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "Role",
		Values: graphql.EnumValueConfigMap{
			"ADMIN":    &graphql.EnumValueConfig{Value: models.RoleAdmin},
			"EMPLOYEE": &graphql.EnumValueConfig{Value: models.RoleEmployee},
		},
	})

	sortOrderEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "SortOrder",
		Values: graphql.EnumValueConfigMap{
			"ASC":  &graphql.EnumValueConfig{Value: models.SortAsc},
			"DESC": &graphql.EnumValueConfig{Value: models.SortDesc},
		},
	})

	sortFieldEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "EmployeeSortField",
		Values: graphql.EnumValueConfigMap{
			"NAME":       &graphql.EnumValueConfig{Value: models.SortByName},
			"AGE":        &graphql.EnumValueConfig{Value: models.SortByAge},
			"ATTENDANCE": &graphql.EnumValueConfig{Value: models.SortByAttendance},
			"CREATED_AT": &graphql.EnumValueConfig{Value: models.SortByCreatedAt},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"role":  &graphql.Field{Type: graphql.NewNonNull(roleEnum)},
		},
	})

	employeeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Employee",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"age":        &graphql.Field{Type: graphql.Int},
			"class":      &graphql.Field{Type: graphql.String},
			"subjects":   &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
			"attendance": &graphql.Field{Type: graphql.Float},
			"email":      &graphql.Field{Type: graphql.String},
			"phone":      &graphql.Field{Type: graphql.String},
			"department": &graphql.Field{Type: graphql.String},
			"flagged":    &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"createdAt":  &graphql.Field{Type: graphql.DateTime},
			"updatedAt":  &graphql.Field{Type: graphql.DateTime},
		},
	})

	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":  &graphql.Field{Type: graphql.NewNonNull(userType)},
		},
	})

	employeePageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "EmployeePage",
		Fields: graphql.Fields{
			"items":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(employeeType)))},
			"totalCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"page":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"pageSize":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	filterInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EmployeeFilter",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"class":         &graphql.InputObjectFieldConfig{Type: graphql.String},
			"department":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"minAge":        &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"maxAge":        &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"minAttendance": &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"maxAttendance": &graphql.InputObjectFieldConfig{Type: graphql.Float},
		},
	})

	addEmployeeInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AddEmployeeInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"age":        &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"class":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"subjects":   &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
			"attendance": &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"email":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"phone":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"department": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	updateEmployeeInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateEmployeeInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"name":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"age":        &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"class":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"subjects":   &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
			"attendance": &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"email":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"phone":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"department": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"flagged":    &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type:    userType,
				Resolve: r.instrument("me", r.resolveMe),
			},
			"employees": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(employeeType))),
				Args: graphql.FieldConfigArgument{
					"filter":    &graphql.ArgumentConfig{Type: filterInput},
					"sortBy":    &graphql.ArgumentConfig{Type: sortFieldEnum},
					"sortOrder": &graphql.ArgumentConfig{Type: sortOrderEnum},
				},
				Resolve: r.instrument("employees", r.resolveEmployees),
			},
			"employee": &graphql.Field{
				Type: employeeType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.instrument("employee", r.resolveEmployee),
			},
			"employeesPaginated": &graphql.Field{
				Type: graphql.NewNonNull(employeePageType),
				Args: graphql.FieldConfigArgument{
					"filter":    &graphql.ArgumentConfig{Type: filterInput},
					"sortBy":    &graphql.ArgumentConfig{Type: sortFieldEnum},
					"sortOrder": &graphql.ArgumentConfig{Type: sortOrderEnum},
					"page":      &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"pageSize":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
				},
				Resolve: r.instrument("employeesPaginated", r.resolveEmployeesPaginated),
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"name":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"role":     &graphql.ArgumentConfig{Type: roleEnum},
				},
				Resolve: r.instrument("register", r.resolveRegister),
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.instrument("login", r.resolveLogin),
			},
			"addEmployee": &graphql.Field{
				Type: graphql.NewNonNull(employeeType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(addEmployeeInput)},
				},
				Resolve: r.instrument("addEmployee", r.resolveAddEmployee),
			},
			"updateEmployee": &graphql.Field{
				Type: graphql.NewNonNull(employeeType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateEmployeeInput)},
				},
				Resolve: r.instrument("updateEmployee", r.resolveUpdateEmployee),
			},
			"deleteEmployee": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.instrument("deleteEmployee", r.resolveDeleteEmployee),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
