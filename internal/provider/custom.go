package provider

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/intradash/adminkit/internal/auth"
	"github.com/intradash/adminkit/internal/common/cnst"
	"github.com/intradash/adminkit/internal/common/dto"
	"github.com/intradash/adminkit/internal/common/errorx"
	"github.com/intradash/adminkit/internal/service"
)

// URL patterns the custom verb recognizes. Matching is anchored so a
// bulk-update URL never falls into the plain membership route.
var (
	userDepartmentsPattern     = regexp.MustCompile(`^/users/([^/]+)/departments$`)
	userDepartmentsBulkPattern = regexp.MustCompile(`^/users/([^/]+)/departments/bulk-update$`)
	departmentCardsPattern     = regexp.MustCompile(`^/departments/([^/]+)/cards$`)
)

// Custom serves the relationship-shaped resources that do not fit flat
// CRUD: department memberships, the assignable-departments listing and
// department card grants.
type Custom struct {
	userDepartments *service.UserDepartments
	departments     *service.Departments
	auth            *auth.Service
	apiURL          string
	logger          *zap.Logger
}

// NewCustom builds the custom provider.
func NewCustom(
	userDepartments *service.UserDepartments,
	departments *service.Departments,
	authSvc *auth.Service,
	apiURL string,
	logger *zap.Logger,
) *Custom {
	return &Custom{
		userDepartments: userDepartments,
		departments:     departments,
		auth:            authSvc,
		apiURL:          apiURL,
		logger:          logger.Named("provider.custom"),
	}
}

// APIURL returns the backend base URL the provider talks to.
func (p *Custom) APIURL() string {
	return p.apiURL
}

func (p *Custom) fail(err error) error {
	apiErr := errorx.Normalize(err)
	p.auth.HandleUnauthorized(apiErr)
	return apiErr
}

func (p *Custom) token() string {
	return p.auth.Token()
}

// List serves the relationship listings. user-departments and
// department-cards need the owning record's ID, taken from the filters
// or from meta.
func (p *Custom) List(ctx context.Context, params ListParams) (*ListResult, error) {
	switch params.Resource {
	case cnst.ResourceAvailableDepartments:
		items, err := p.userDepartments.AvailableDepartments(ctx, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		records := toRecords(items)
		return &ListResult{Data: records, Total: len(records)}, nil
	case cnst.ResourceUserDepartments:
		userID := filterValue(params.Filters, "userId")
		if userID == "" {
			userID = metaString(params.Meta, "userId")
		}
		if userID == "" {
			return nil, errorx.NewValidation(cnst.ErrMissingUserID.Error())
		}
		items, err := p.userDepartments.UserDepartments(ctx, userID, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		records := toRecords(items)
		return &ListResult{Data: records, Total: len(records)}, nil
	case cnst.ResourceDepartmentCards:
		departmentID := filterValue(params.Filters, "departmentId")
		if departmentID == "" {
			departmentID = metaString(params.Meta, "departmentId")
		}
		if departmentID == "" {
			return nil, errorx.NewValidation(cnst.ErrMissingDepartmentID.Error())
		}
		items, err := p.departments.Cards(ctx, departmentID, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		records := toRecords(items)
		return &ListResult{Data: records, Total: len(records)}, nil
	}
	return nil, errorx.NewUnsupportedResource(params.Resource)
}

// GetOne is not meaningful for relationship resources.
func (p *Custom) GetOne(_ context.Context, params GetOneParams) (*GetResult, error) {
	return nil, errorx.NewUnsupportedResource(params.Resource)
}

// GetMany is not meaningful for relationship resources.
func (p *Custom) GetMany(_ context.Context, params GetManyParams) (*ManyResult, error) {
	return nil, errorx.NewUnsupportedResource(params.Resource)
}

// Create assigns a user to a department. Variables carry departmentId,
// userId and the optional isHead flag and message.
func (p *Custom) Create(ctx context.Context, params CreateParams) (*GetResult, error) {
	if params.Resource != cnst.ResourceDepartmentAssigns {
		return nil, errorx.NewUnsupportedResource(params.Resource)
	}
	departmentID := stringVar(params.Variables, "departmentId")
	userID := stringVar(params.Variables, "userId")
	if departmentID == "" {
		return nil, errorx.NewValidation(cnst.ErrMissingDepartmentID.Error())
	}
	if userID == "" {
		return nil, errorx.NewValidation(cnst.ErrMissingUserID.Error())
	}
	req := dto.AssignUserToDepartmentRequest{}
	if isHead, ok := boolVar(params.Variables, "isHead"); ok {
		req.IsHead = isHead
	}
	if msg := stringVar(params.Variables, "message"); msg != "" {
		req.Message = &msg
	}
	assignment, err := p.userDepartments.Assign(ctx, departmentID, userID, req, p.token())
	if err != nil {
		return nil, p.fail(err)
	}
	return &GetResult{Data: assignment}, nil
}

// CreateMany is not meaningful for relationship resources.
func (p *Custom) CreateMany(_ context.Context, params CreateManyParams) (*ManyResult, error) {
	return nil, errorx.NewUnsupportedResource(params.Resource)
}

// Update replaces a user's department memberships with the selected
// set. ID is the user; Variables carry departmentIds (the target set)
// and optionally currentDepartmentIds to skip the initial read.
func (p *Custom) Update(ctx context.Context, params UpdateParams) (*GetResult, error) {
	if params.Resource != cnst.ResourceUserDepartments {
		return nil, errorx.NewUnsupportedResource(params.Resource)
	}
	if params.ID == "" {
		return nil, errorx.NewValidation(cnst.ErrMissingUserID.Error())
	}
	selected := stringSliceVar(params.Variables, "departmentIds")
	token := p.token()

	var current []dto.MyDepartment
	if _, known := params.Variables["currentDepartmentIds"]; known {
		for _, id := range stringSliceVar(params.Variables, "currentDepartmentIds") {
			current = append(current, dto.MyDepartment{Department: dto.MyDepartmentRef{ID: id}})
		}
	} else {
		memberships, err := p.userDepartments.UserDepartments(ctx, params.ID, token)
		if err != nil {
			return nil, p.fail(err)
		}
		current = memberships
	}
	assignments, err := p.userDepartments.BulkUpdate(ctx, params.ID, current, selected, token)
	if err != nil {
		return nil, p.fail(err)
	}
	return &GetResult{Data: assignments}, nil
}

// UpdateMany is not meaningful for relationship resources.
func (p *Custom) UpdateMany(_ context.Context, params UpdateManyParams) (*ManyResult, error) {
	return nil, errorx.NewUnsupportedResource(params.Resource)
}

// Delete removes a user from a department. The identifying pair lives
// in Variables, not in ID, because an assignment has no standalone ID
// at this seam.
func (p *Custom) Delete(ctx context.Context, params DeleteParams) (*GetResult, error) {
	if params.Resource != cnst.ResourceDepartmentAssigns {
		return nil, errorx.NewUnsupportedResource(params.Resource)
	}
	departmentID := stringVar(params.Variables, "departmentId")
	userID := stringVar(params.Variables, "userId")
	if departmentID == "" {
		return nil, errorx.NewValidation(cnst.ErrMissingDepartmentID.Error())
	}
	if userID == "" {
		return nil, errorx.NewValidation(cnst.ErrMissingUserID.Error())
	}
	if err := p.userDepartments.Remove(ctx, departmentID, userID, p.token()); err != nil {
		return nil, p.fail(err)
	}
	return &GetResult{Data: map[string]any{"departmentId": departmentID, "userId": userID}}, nil
}

// DeleteMany is not meaningful for relationship resources.
func (p *Custom) DeleteMany(_ context.Context, params DeleteManyParams) (*ManyResult, error) {
	return nil, errorx.NewUnsupportedResource(params.Resource)
}

// Custom routes a handful of known URL shapes onto the relationship
// services. Unknown URLs report the path as the unsupported resource.
func (p *Custom) Custom(ctx context.Context, params CustomParams) (*GetResult, error) {
	path := strings.TrimPrefix(params.URL, p.apiURL)
	method := strings.ToUpper(params.Method)

	if m := userDepartmentsBulkPattern.FindStringSubmatch(path); m != nil && method == "PUT" {
		selected := stringSliceVar(params.Payload, "departmentIds")
		token := p.token()
		current, err := p.userDepartments.UserDepartments(ctx, m[1], token)
		if err != nil {
			return nil, p.fail(err)
		}
		assignments, err := p.userDepartments.BulkUpdate(ctx, m[1], current, selected, token)
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: assignments}, nil
	}
	if m := userDepartmentsPattern.FindStringSubmatch(path); m != nil && method == "GET" {
		items, err := p.userDepartments.UserDepartments(ctx, m[1], p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: toRecords(items)}, nil
	}
	if path == "/departments/available" && method == "GET" {
		items, err := p.userDepartments.AvailableDepartments(ctx, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: toRecords(items)}, nil
	}
	if m := departmentCardsPattern.FindStringSubmatch(path); m != nil && method == "GET" {
		items, err := p.departments.Cards(ctx, m[1], p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: toRecords(items)}, nil
	}
	return nil, errorx.NewUnsupportedResource(path)
}
