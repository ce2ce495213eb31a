package user

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/smartattendance/admin/core"
	"github.com/smartattendance/admin/core/table"
)

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrEmailExists    = errors.New("a user with this email already exists")
	ErrUsernameExists = errors.New("a user with this username already exists")
)

type (
	Repository interface {
		CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers ...User) error
		CreateUser(ctx context.Context, usr User) (User, error)
		// QueryUsers applies filter, then ordering, then the page window when page is not nil.
		QueryUsers(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, page *core.DBPage) ([]User, error)
		CountUsers(ctx context.Context, filter *QueryFilter) (int, error)
		GetUser(ctx context.Context, filter GetFilter) (User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}

	// Page is one page of a paginated query.
	Page struct {
		Users      []User
		Page       int
		TotalPages int
		Count      int
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) checkUniqueness(ctx context.Context, uname, email string, exclUsers ...User) error {
	if err := svc.repo.CheckUsernameUniqueness(ctx, uname, email, exclUsers...); err != nil {
		var field string
		switch errors.Cause(err) {
		case ErrUsernameExists:
			field = "username"
		case ErrEmailExists:
			field = "email"
		default:
			return errors.Wrap(err, "checking username uniqueness")
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(svc.validate); err != nil {
		return User{}, err
	}
	if err := svc.checkUniqueness(ctx, nu.Username, nu.Email); err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	usr := User{
		Name:      nu.Name,
		Username:  nu.Username,
		Email:     nu.Email,
		IsActive:  true,
		Roles:     nu.Roles,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "setting password")
	}
	usr, err := svc.repo.CreateUser(ctx, usr)
	return usr, errors.Wrap(err, "creating user")
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{ID: id})
}

func (svc *Service) GetByUsernameOrEmail(ctx context.Context, uname string) (User, error) {
	uname = core.CleanString(uname, true /* lower */)
	return svc.repo.GetUser(ctx, GetFilter{UsernameOrEmail: []string{uname, uname}})
}

func (svc *Service) SetLastLogin(ctx context.Context, usr User) (User, error) {
	now := time.Now().UTC()
	usr.LastLogin = &now
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *Service) SetPassword(ctx context.Context, usr User, pwd string) (User, error) {
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, errors.Wrap(err, "setting password")
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

// Query returns every user matching filter.
func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]User, error) {
	if filter != nil {
		filter.Clean()
	}
	users, err := svc.repo.QueryUsers(ctx, filter, CleanOrdering(ordering), nil)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return users, nil
}

// Count returns the number of users matching filter.
func (svc *Service) Count(ctx context.Context, filter *QueryFilter) (int, error) {
	if filter != nil {
		filter.Clean()
	}
	n, err := svc.repo.CountUsers(ctx, filter)
	if err != nil {
		return 0, errors.Wrap(err, "counting users")
	}
	return n, nil
}

// QueryPage returns the requested page of users matching filter.
// page is clamped to [1, TotalPages] before fetching.
func (svc *Service) QueryPage(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, page, pageSize int) (Page, error) {
	if filter != nil {
		filter.Clean()
	}
	if pageSize <= 0 {
		pageSize = table.DefaultPageSize
	}

	count, err := svc.repo.CountUsers(ctx, filter)
	if err != nil {
		return Page{}, errors.Wrap(err, "counting users")
	}
	total := table.TotalPages(count, pageSize)
	if page < 1 {
		page = 1
	} else if page > total {
		page = total
	}

	users, err := svc.repo.QueryUsers(ctx, filter, CleanOrdering(ordering), core.NewDBPage(page, pageSize))
	if err != nil {
		return Page{}, errors.Wrap(err, "querying users page")
	}
	return Page{Users: users, Page: page, TotalPages: total, Count: count}, nil
}
