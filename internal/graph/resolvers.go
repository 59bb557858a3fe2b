package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/noah-isme/employee-graph-api/internal/models"
	"github.com/noah-isme/employee-graph-api/internal/service"
)

// me returns the caller's account, or null when no credential was presented.
// This is the one read that never fails on a missing identity.
func (r *Resolver) resolveMe(p graphql.ResolveParams) (interface{}, error) {
	identity := IdentityFrom(p.Context)
	if identity == nil {
		return nil, nil
	}

	user, err := r.auth.Me(p.Context, identity.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return user, nil
}

func (r *Resolver) resolveEmployees(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireAuth(p.Context); err != nil {
		return nil, err
	}

	return r.employees.List(p.Context, filterFromArgs(p.Args), sortFromArgs(p.Args))
}

func (r *Resolver) resolveEmployee(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireAuth(p.Context); err != nil {
		return nil, err
	}

	id, _ := p.Args["id"].(string)
	employee, err := r.employees.Get(p.Context, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, nil
	}
	return employee, nil
}

func (r *Resolver) resolveEmployeesPaginated(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireAuth(p.Context); err != nil {
		return nil, err
	}

	return r.employees.ListPage(
		p.Context,
		filterFromArgs(p.Args),
		sortFromArgs(p.Args),
		intOr(p.Args, "page", 1),
		intOr(p.Args, "pageSize", 10),
	)
}

func (r *Resolver) resolveRegister(p graphql.ResolveParams) (interface{}, error) {
	req := service.RegisterRequest{
		Name:     stringOr(p.Args, "name", ""),
		Email:    stringOr(p.Args, "email", ""),
		Password: stringOr(p.Args, "password", ""),
	}
	if role, ok := p.Args["role"].(models.Role); ok {
		req.Role = role
	}

	return r.auth.Register(p.Context, req)
}

func (r *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	return r.auth.Login(p.Context, service.LoginRequest{
		Email:    stringOr(p.Args, "email", ""),
		Password: stringOr(p.Args, "password", ""),
	})
}

func (r *Resolver) resolveAddEmployee(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireRole(p.Context, models.RoleAdmin); err != nil {
		return nil, err
	}

	input, _ := p.Args["input"].(map[string]interface{})
	return r.employees.Create(p.Context, createRequestFromArgs(input))
}

func (r *Resolver) resolveUpdateEmployee(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireRole(p.Context, models.RoleAdmin); err != nil {
		return nil, err
	}

	input, _ := p.Args["input"].(map[string]interface{})
	return r.employees.Update(p.Context, updateRequestFromArgs(input))
}

func (r *Resolver) resolveDeleteEmployee(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireRole(p.Context, models.RoleAdmin); err != nil {
		return nil, err
	}

	id, _ := p.Args["id"].(string)
	return r.employees.Delete(p.Context, id)
}
