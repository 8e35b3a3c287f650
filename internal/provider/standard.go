package provider

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/intradash/adminkit/internal/auth"
	"github.com/intradash/adminkit/internal/common/cnst"
	"github.com/intradash/adminkit/internal/common/dto"
	"github.com/intradash/adminkit/internal/common/errorx"
	"github.com/intradash/adminkit/internal/service"
)

// Standard serves the flat CRUD resources: users, departments, cards,
// wifi and quick links. Each verb switches on the resource name and
// delegates to the matching typed service.
type Standard struct {
	users       *service.Users
	departments *service.Departments
	cards       *service.Cards
	wifi        *service.Wifi
	quickLinks  *service.QuickLinks
	auth        *auth.Service
	apiURL      string
	logger      *zap.Logger
}

// NewStandard builds the standard provider over the typed services.
func NewStandard(
	users *service.Users,
	departments *service.Departments,
	cards *service.Cards,
	wifi *service.Wifi,
	quickLinks *service.QuickLinks,
	authSvc *auth.Service,
	apiURL string,
	logger *zap.Logger,
) *Standard {
	return &Standard{
		users:       users,
		departments: departments,
		cards:       cards,
		wifi:        wifi,
		quickLinks:  quickLinks,
		auth:        authSvc,
		apiURL:      apiURL,
		logger:      logger.Named("provider.standard"),
	}
}

// APIURL returns the backend base URL the provider talks to.
func (p *Standard) APIURL() string {
	return p.apiURL
}

// fail normalizes an error and clears the stored token when the
// backend answered 401.
func (p *Standard) fail(err error) error {
	apiErr := errorx.Normalize(err)
	p.auth.HandleUnauthorized(apiErr)
	return apiErr
}

func (p *Standard) token() string {
	return p.auth.Token()
}

// List returns one page of a resource. Resources whose backend listing
// has no pagination block report Total as the length of the returned
// page.
func (p *Standard) List(ctx context.Context, params ListParams) (*ListResult, error) {
	switch params.Resource {
	case cnst.ResourceUsers:
		items, page, err := p.users.List(ctx, usersQuery(params.Pagination, params.Filters), p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return listResult(toRecords(items), page), nil
	case cnst.ResourceDepartments:
		items, page, err := p.departments.List(ctx, departmentsQuery(params.Pagination, params.Filters), p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return listResult(toRecords(items), page), nil
	case cnst.ResourceCards:
		items, page, err := p.cards.List(ctx, cardsQuery(params.Pagination, params.Filters), p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return listResult(toRecords(items), page), nil
	case cnst.ResourceWifi:
		items, err := p.wifi.List(ctx, wifiQuery(params.Filters), p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return listResult(toRecords(items), nil), nil
	case cnst.ResourceQuickLinks:
		items, err := p.quickLinks.List(ctx, quickLinksQuery(params.Filters), p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return listResult(toRecords(items), nil), nil
	}
	return nil, errorx.NewUnsupportedResource(params.Resource)
}

// listResult wraps records in the uniform envelope, preferring the
// server-reported total when the backend sent one.
func listResult(records []any, page *dto.Pagination) *ListResult {
	total := len(records)
	if page != nil {
		total = page.Total
	}
	return &ListResult{Data: records, Total: total}
}

// GetOne fetches a single record by ID.
func (p *Standard) GetOne(ctx context.Context, params GetOneParams) (*GetResult, error) {
	switch params.Resource {
	case cnst.ResourceUsers:
		user, err := p.users.GetByID(ctx, params.ID, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: user}, nil
	case cnst.ResourceDepartments:
		dept, err := p.departments.GetByID(ctx, params.ID, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: dept}, nil
	case cnst.ResourceCards:
		card, err := p.cards.GetByID(ctx, params.ID, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: card}, nil
	case cnst.ResourceWifi:
		network, err := p.wifi.GetByID(ctx, params.ID, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: network}, nil
	case cnst.ResourceQuickLinks:
		link, err := p.quickLinks.GetByID(ctx, params.ID, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: link}, nil
	}
	return nil, errorx.NewUnsupportedResource(params.Resource)
}

// GetMany fetches users by ID with one concurrent GetOne per ID. The
// first failure aborts the whole call.
func (p *Standard) GetMany(ctx context.Context, params GetManyParams) (*ManyResult, error) {
	if params.Resource != cnst.ResourceUsers {
		return nil, errorx.NewUnsupportedResource(params.Resource)
	}
	token := p.token()
	records := make([]any, len(params.IDs))
	errs := make([]error, len(params.IDs))

	var wg sync.WaitGroup
	for i, id := range params.IDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			user, err := p.users.GetByID(ctx, id, token)
			if err != nil {
				errs[i] = err
				return
			}
			records[i] = user
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, p.fail(err)
		}
	}
	return &ManyResult{Data: records}, nil
}

// Create creates one record. Wifi networks get their QR code generated
// client-side inside the service before the request goes out.
func (p *Standard) Create(ctx context.Context, params CreateParams) (*GetResult, error) {
	switch params.Resource {
	case cnst.ResourceUsers:
		req, err := decodeVars[dto.CreateUserRequest](params.Variables)
		if err != nil {
			return nil, errorx.NewValidation(err.Error())
		}
		user, err := p.users.Create(ctx, req, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: user}, nil
	case cnst.ResourceDepartments:
		req, err := decodeVars[dto.CreateDepartmentRequest](params.Variables)
		if err != nil {
			return nil, errorx.NewValidation(err.Error())
		}
		dept, err := p.departments.Create(ctx, req, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: dept}, nil
	case cnst.ResourceCards:
		req, err := decodeVars[dto.CreateCardRequest](params.Variables)
		if err != nil {
			return nil, errorx.NewValidation(err.Error())
		}
		card, err := p.cards.Create(ctx, req, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: card}, nil
	case cnst.ResourceWifi:
		req, err := decodeVars[dto.CreateWifiNetworkRequest](params.Variables)
		if err != nil {
			return nil, errorx.NewValidation(err.Error())
		}
		network, err := p.wifi.Create(ctx, req, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: network}, nil
	case cnst.ResourceQuickLinks:
		req, err := decodeVars[dto.CreateQuickLinkRequest](params.Variables)
		if err != nil {
			return nil, errorx.NewValidation(err.Error())
		}
		link, err := p.quickLinks.Create(ctx, req, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: link}, nil
	}
	return nil, errorx.NewUnsupportedResource(params.Resource)
}

// CreateMany creates users concurrently, one create per entry.
func (p *Standard) CreateMany(ctx context.Context, params CreateManyParams) (*ManyResult, error) {
	if params.Resource != cnst.ResourceUsers {
		return nil, errorx.NewUnsupportedResource(params.Resource)
	}
	token := p.token()
	records := make([]any, len(params.Variables))
	errs := make([]error, len(params.Variables))

	var wg sync.WaitGroup
	for i, vars := range params.Variables {
		wg.Add(1)
		go func(i int, vars map[string]any) {
			defer wg.Done()
			req, err := decodeVars[dto.CreateUserRequest](vars)
			if err != nil {
				errs[i] = errorx.NewValidation(err.Error())
				return
			}
			user, err := p.users.Create(ctx, req, token)
			if err != nil {
				errs[i] = err
				return
			}
			records[i] = user
		}(i, vars)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, p.fail(err)
		}
	}
	return &ManyResult{Data: records}, nil
}

// Update updates one record. User updates fan out into separate
// basic-info and personal-info patches, run concurrently when both
// parts are present.
func (p *Standard) Update(ctx context.Context, params UpdateParams) (*GetResult, error) {
	switch params.Resource {
	case cnst.ResourceUsers:
		return p.updateUser(ctx, params)
	case cnst.ResourceDepartments:
		req, err := decodeVars[dto.UpdateDepartmentRequest](params.Variables)
		if err != nil {
			return nil, errorx.NewValidation(err.Error())
		}
		dept, err := p.departments.Update(ctx, params.ID, req, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: dept}, nil
	case cnst.ResourceCards:
		req, err := decodeVars[dto.UpdateCardRequest](params.Variables)
		if err != nil {
			return nil, errorx.NewValidation(err.Error())
		}
		card, err := p.cards.Update(ctx, params.ID, req, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: card}, nil
	case cnst.ResourceWifi:
		req, err := decodeVars[dto.UpdateWifiNetworkRequest](params.Variables)
		if err != nil {
			return nil, errorx.NewValidation(err.Error())
		}
		network, err := p.wifi.Update(ctx, params.ID, req, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: network}, nil
	case cnst.ResourceQuickLinks:
		req, err := decodeVars[dto.UpdateQuickLinkRequest](params.Variables)
		if err != nil {
			return nil, errorx.NewValidation(err.Error())
		}
		link, err := p.quickLinks.Update(ctx, params.ID, req, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: link}, nil
	}
	return nil, errorx.NewUnsupportedResource(params.Resource)
}

// updateUser splits the incoming variables into the two backend
// patches. When only personal info changed the personal-info endpoint
// answers with the sub-record alone, so a read-back fetches the full
// user for the caller.
func (p *Standard) updateUser(ctx context.Context, params UpdateParams) (*GetResult, error) {
	basic, err := decodeVars[dto.UpdateBasicInfoRequest](params.Variables)
	if err != nil {
		return nil, errorx.NewValidation(err.Error())
	}
	personal, err := decodeVars[dto.UpdatePersonalInfoRequest](params.Variables)
	if err != nil {
		return nil, errorx.NewValidation(err.Error())
	}
	token := p.token()

	switch {
	case basic.Empty() && personal.Empty():
		return nil, errorx.NewValidation("update carries no recognized fields")
	case personal.Empty():
		user, err := p.users.UpdateBasicInfo(ctx, params.ID, basic, token)
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: user}, nil
	case basic.Empty():
		if _, err := p.users.UpdatePersonalInfo(ctx, params.ID, personal, token); err != nil {
			return nil, p.fail(err)
		}
		user, err := p.users.GetByID(ctx, params.ID, token)
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: user}, nil
	}

	var (
		wg          sync.WaitGroup
		user        *dto.UserDetailed
		basicErr    error
		personalErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		user, basicErr = p.users.UpdateBasicInfo(ctx, params.ID, basic, token)
	}()
	go func() {
		defer wg.Done()
		_, personalErr = p.users.UpdatePersonalInfo(ctx, params.ID, personal, token)
	}()
	wg.Wait()

	if basicErr != nil {
		return nil, p.fail(basicErr)
	}
	if personalErr != nil {
		return nil, p.fail(personalErr)
	}
	return &GetResult{Data: user}, nil
}

// UpdateMany applies a role or activity change to many users through
// the admin bulk endpoint. isActive wins when both variables are
// present. Variables carrying neither are rejected locally.
func (p *Standard) UpdateMany(ctx context.Context, params UpdateManyParams) (*ManyResult, error) {
	if params.Resource != cnst.ResourceUsers {
		return nil, errorx.NewUnsupportedResource(params.Resource)
	}
	req := dto.AdminBulkUpdateRequest{
		UserIDs: params.IDs,
	}
	active, hasActive := boolVar(params.Variables, "isActive")
	role := stringVar(params.Variables, "role")
	switch {
	case hasActive:
		req.Action = dto.BulkActionDeactivate
		if active {
			req.Action = dto.BulkActionActivate
		}
	case role != "":
		req.Action = dto.BulkActionUpdateRole
		req.Data = &dto.BulkUpdateData{Role: dto.Role(role)}
	default:
		return nil, errorx.NewValidation("bulk user update needs a role or isActive variable")
	}
	if _, err := p.users.AdminBulkUpdate(ctx, req, p.token()); err != nil {
		return nil, p.fail(err)
	}
	return &ManyResult{Data: idRecords(params.IDs)}, nil
}

// Delete removes one record. Users are never physically deleted: the
// verb deactivates the account. Cards drop their assignments only; the
// cascading wipe lives behind the "full" delete mode.
func (p *Standard) Delete(ctx context.Context, params DeleteParams) (*GetResult, error) {
	switch params.Resource {
	case cnst.ResourceUsers:
		user, err := p.users.UpdateStatus(ctx, params.ID, false, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: user}, nil
	case cnst.ResourceDepartments:
		if err := p.departments.Delete(ctx, params.ID, p.token()); err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: map[string]any{"id": params.ID}}, nil
	case cnst.ResourceCards:
		if metaString(params.Meta, "deleteMode") == "full" {
			result, err := p.cards.Delete(ctx, params.ID, p.token())
			if err != nil {
				return nil, p.fail(err)
			}
			return &GetResult{Data: result}, nil
		}
		result, err := p.cards.SoftDelete(ctx, params.ID, p.token())
		if err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: result}, nil
	case cnst.ResourceWifi:
		if err := p.wifi.Delete(ctx, params.ID, p.token()); err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: map[string]any{"id": params.ID}}, nil
	case cnst.ResourceQuickLinks:
		if err := p.quickLinks.Delete(ctx, params.ID, p.token()); err != nil {
			return nil, p.fail(err)
		}
		return &GetResult{Data: map[string]any{"id": params.ID}}, nil
	}
	return nil, errorx.NewUnsupportedResource(params.Resource)
}

// DeleteMany deactivates many users through the admin bulk endpoint.
func (p *Standard) DeleteMany(ctx context.Context, params DeleteManyParams) (*ManyResult, error) {
	if params.Resource != cnst.ResourceUsers {
		return nil, errorx.NewUnsupportedResource(params.Resource)
	}
	req := dto.AdminBulkUpdateRequest{
		UserIDs: params.IDs,
		Action:  dto.BulkActionDeactivate,
	}
	if _, err := p.users.AdminBulkUpdate(ctx, req, p.token()); err != nil {
		return nil, p.fail(err)
	}
	return &ManyResult{Data: idRecords(params.IDs)}, nil
}

// Custom is not served by the standard provider.
func (p *Standard) Custom(_ context.Context, params CustomParams) (*GetResult, error) {
	return nil, errorx.NewUnsupportedResource(params.URL)
}

func idRecords(ids []string) []any {
	records := make([]any, len(ids))
	for i, id := range ids {
		records[i] = map[string]any{"id": id}
	}
	return records
}
