package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smartattendance/admin/core"
	"github.com/smartattendance/admin/core/table"
	"github.com/smartattendance/admin/core/user"
)

// TableResponse is a table view plus the params that reproduce it.
type TableResponse struct {
	table.View
	Ordering string `json:"ordering"`
	PageSize int    `json:"page_size"`
	Count    int    `json:"count"`
}

// restoreSort applies the request's sort then its toggle to eng.
func restoreSort(eng *table.Engine, query TableQuery) error {
	if state := query.SortState(); state.Active() && !eng.SetSort(state) {
		return core.NewFieldError(orderingParam, "cannot sort on %q", state.Key)
	}
	if query.Toggle != "" && !eng.ToggleSort(query.Toggle) {
		return core.NewFieldError("toggle", "cannot sort on %q", query.Toggle)
	}
	return nil
}

// usersTable serves the users table with every user loaded and paged in memory.
// role and is_active narrow the loaded users; search, sort and paging run in the table.
// A page out of range is ignored and the first page is served.
func (api *userApi) usersTable(ctx echo.Context) error {
	var query TableQuery
	if err := query.Bind(ctx, api.validate); err != nil {
		return err
	}
	pageSize := api.conf.Table.PageSize(query.PageSize)

	eng, err := table.New(user.TableColumns(), table.WithPageSize(pageSize))
	if err != nil {
		return errors.Wrap(err, "creating users table")
	}
	if err = restoreSort(eng, query); err != nil {
		return err
	}

	filter := query.QueryFilter
	filter.Search = ""
	users, err := api.svc.Query(ctx.Request().Context(), &filter, nil)
	if err != nil {
		return errors.Wrap(err, "querying users")
	}

	eng.SetRecords(user.Records(users))
	eng.Search(query.Search)
	if query.Page > 0 {
		eng.RequestPage(query.Page)
	}

	return ctx.JSON(http.StatusOK, TableResponse{
		View:     eng.View(table.Status{}),
		Ordering: formatOrdering(eng.SortState()),
		PageSize: pageSize,
		Count:    eng.RecordCount(),
	})
}

// pagedUsersTable serves one page of the users table fetched from the repository.
// Filters, search and sort are applied by the repository; the page is clamped to the result.
func (api *userApi) pagedUsersTable(ctx echo.Context) error {
	var query TableQuery
	if err := query.Bind(ctx, api.validate); err != nil {
		return err
	}
	pageSize := api.conf.Table.PageSize(query.PageSize)

	// every request fetches its own page, so page changes need no relay
	eng, err := table.New(user.TableColumns(), table.WithServerPagination(1, 1, func(int) {}))
	if err != nil {
		return errors.Wrap(err, "creating users table")
	}
	if err = restoreSort(eng, query); err != nil {
		return err
	}

	var ordering []core.DBOrdering
	if state := eng.SortState(); state.Active() {
		ordering = []core.DBOrdering{{Field: state.Key, Ascending: state.Direction == table.Ascending}}
	}
	filter := query.QueryFilter
	page, err := api.svc.QueryPage(ctx.Request().Context(), &filter, ordering, query.Page, pageSize)
	if err != nil {
		return errors.Wrap(err, "querying users page")
	}

	eng.SetServerPage(page.Page, page.TotalPages)
	eng.SetRecords(user.Records(page.Users))
	eng.Search(query.Search)

	view := eng.View(table.Status{})
	if view.ResultCount != nil {
		// the fetched rows are one page of the search result
		view.ResultCount = &page.Count
	}
	return ctx.JSON(http.StatusOK, TableResponse{
		View:     view,
		Ordering: formatOrdering(eng.SortState()),
		PageSize: pageSize,
		Count:    page.Count,
	})
}
