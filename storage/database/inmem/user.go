package inmemdb

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartattendance/admin/core"
	"github.com/smartattendance/admin/core/user"
)

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) *userRepository {
	return &userRepository{db: db.user}
}

func (repo *userRepository) all() []user.User {
	users := make([]user.User, 0, len(repo.db.table))
	for _, u := range repo.db.table {
		users = append(users, copyUser(*u))
	}
	return users
}

func (repo *userRepository) CheckUsernameUniqueness(_ context.Context, username, email string, excludedUsers ...user.User) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	excluded := make(map[string]bool, len(excludedUsers))
	for _, u := range excludedUsers {
		excluded[u.ID] = true
	}
	for _, usr := range repo.db.table {
		if excluded[usr.ID] {
			continue
		}
		if username != "" && usr.Username == username {
			return user.ErrUsernameExists
		}
		if email != "" && usr.Email == email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr.ID = uuid.New().String()
	stored := copyUser(usr)
	repo.db.table[usr.ID] = &stored
	return usr, nil
}

func (repo *userRepository) QueryUsers(_ context.Context, filter *user.QueryFilter, ordering []core.DBOrdering, page *core.DBPage) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	users := filterUsers(repo.all(), filter)
	orderUsers(users, ordering)

	if page != nil {
		start := page.Offset
		if start > len(users) {
			start = len(users)
		}
		end := len(users)
		if page.Limit > 0 && start+page.Limit < end {
			end = start + page.Limit
		}
		users = users[start:end]
	}
	return users, nil
}

func (repo *userRepository) CountUsers(_ context.Context, filter *user.QueryFilter) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return len(filterUsers(repo.all(), filter)), nil
}

func (repo *userRepository) GetUser(_ context.Context, filter user.GetFilter) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if filter.ID != "" {
		if usr, ok := repo.db.table[filter.ID]; ok {
			return copyUser(*usr), nil
		}
		return user.User{}, user.ErrNotFound
	}

	var uname, email string
	switch {
	case filter.Username != "":
		uname = filter.Username
	case filter.Email != "":
		email = filter.Email
	case len(filter.UsernameOrEmail) > 0:
		uname = filter.UsernameOrEmail[0]
		if len(filter.UsernameOrEmail) > 1 {
			email = filter.UsernameOrEmail[1]
		}
	}
	if uname == "" && email == "" {
		return user.User{}, user.ErrNotFound
	}
	for _, usr := range repo.db.table {
		if (uname != "" && usr.Username == uname) || (email != "" && usr.Email == email) {
			return copyUser(*usr), nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[usr.ID]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	usr.CreatedAt = orig.CreatedAt
	stored := copyUser(usr)
	repo.db.table[usr.ID] = &stored
	return usr, nil
}

// copyUser keeps stored rows from sharing slices and pointers with callers.
func copyUser(usr user.User) user.User {
	if usr.Roles != nil {
		usr.Roles = append([]string(nil), usr.Roles...)
	}
	if usr.PasswordHash != nil {
		usr.PasswordHash = append([]byte(nil), usr.PasswordHash...)
	}
	if usr.LastLogin != nil {
		t := *usr.LastLogin
		usr.LastLogin = &t
	}
	return usr
}

func filterUsers(users []user.User, filter *user.QueryFilter) []user.User {
	if filter.IsEmpty() {
		return users
	}
	search := strings.ToLower(filter.Search)

	filtered := make([]user.User, 0, len(users))
	for _, usr := range users {
		if search != "" &&
			!strings.Contains(strings.ToLower(usr.Name), search) &&
			!strings.Contains(strings.ToLower(usr.Username), search) &&
			!strings.Contains(strings.ToLower(usr.Email), search) {
			continue
		}
		if len(filter.Roles) > 0 && !hasRolePrefix(usr.Roles, filter.Roles) {
			continue
		}
		if filter.IsActive != nil && usr.IsActive != *filter.IsActive {
			continue
		}
		filtered = append(filtered, usr)
	}
	return filtered
}

func hasRolePrefix(roles, prefixes []string) bool {
	for _, role := range roles {
		for _, prefix := range prefixes {
			if strings.HasPrefix(strings.ToLower(role), strings.ToLower(prefix)) {
				return true
			}
		}
	}
	return false
}

// orderUsers sorts by ordering, then by -created_at and id. Null last logins sort last.
func orderUsers(users []user.User, ordering []core.DBOrdering) {
	ordering = append(append([]core.DBOrdering(nil), ordering...),
		core.DBOrdering{Field: "created_at", Ascending: false},
		core.DBOrdering{Field: "id", Ascending: true},
	)
	sort.SliceStable(users, func(i, j int) bool {
		for _, ord := range ordering {
			cmp, nullOrder := compareField(users[i], users[j], ord.Field)
			if cmp == 0 {
				continue
			}
			if !ord.Ascending && !nullOrder {
				cmp = -cmp
			}
			return cmp < 0
		}
		return false
	})
}

// compareField compares a and b on field. nullOrder is set when the result orders a null
// against a value and must not be reversed.
func compareField(a, b user.User, field string) (cmp int, nullOrder bool) {
	switch field {
	case "id":
		return strings.Compare(a.ID, b.ID), false
	case "name":
		return compareOptional(a.Name, b.Name)
	case "username":
		return compareOptional(a.Username, b.Username)
	case "email":
		return compareOptional(a.Email, b.Email)
	case "is_active":
		switch {
		case a.IsActive == b.IsActive:
			return 0, false
		case !a.IsActive:
			return -1, false
		default:
			return 1, false
		}
	case "created_at":
		return compareTimes(a.CreatedAt, b.CreatedAt), false
	case "updated_at":
		return compareTimes(a.UpdatedAt, b.UpdatedAt), false
	case "last_login":
		switch {
		case a.LastLogin == nil && b.LastLogin == nil:
			return 0, false
		case a.LastLogin == nil:
			return 1, true
		case b.LastLogin == nil:
			return -1, true
		}
		return compareTimes(*a.LastLogin, *b.LastLogin), false
	}
	return 0, false
}

// compareOptional orders empty strings last, as postgres orders their NULL columns.
func compareOptional(a, b string) (cmp int, nullOrder bool) {
	switch {
	case a == b:
		return 0, false
	case a == "":
		return 1, true
	case b == "":
		return -1, true
	}
	return strings.Compare(a, b), false
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
