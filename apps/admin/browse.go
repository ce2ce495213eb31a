package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"

	"github.com/smartattendance/admin/core"
	"github.com/smartattendance/admin/core/table"
	"github.com/smartattendance/admin/core/user"
)

const browseHelp = `commands:
  search [text]   filter rows; no text clears the search
  sort <column>   cycle the sort of a column: ascending, descending, none
  page <n>        go to page n
  next, prev      go to the next / previous page
  refresh         reload the users
  help            show this help
  quit            leave
`

var browseCommands = []string{"search ", "sort ", "page ", "next", "prev", "refresh", "help", "quit"}

// browser is one interactive users table session.
type browser struct {
	ctx      context.Context
	svc      *user.Service
	eng      *table.Engine
	out      io.Writer
	pageSize int
	paged    bool // pages are fetched from the store
	status   table.Status

	// store counts with server paging: users matching the search, and all users
	matchCount, userCount int
}

func newBrowser(ctx context.Context, svc *user.Service, out io.Writer, pageSize int, serverPaging bool) (*browser, error) {
	b := &browser{ctx: ctx, svc: svc, out: out, pageSize: pageSize, paged: serverPaging}

	opts := []table.Option{table.WithPageSize(pageSize)}
	if serverPaging {
		opts = append(opts, table.WithServerPagination(1, 1, b.fetchPage))
	}
	eng, err := table.New(user.TableColumns(), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating users table")
	}
	b.eng = eng
	b.reload()
	return b, nil
}

// reload fetches the users again, keeping the current page when it still exists.
func (b *browser) reload() {
	if b.paged {
		b.fetchPage(b.eng.Page().CurrentPage)
		return
	}
	users, err := b.svc.Query(b.ctx, nil, nil)
	if err != nil {
		b.status.Error = errors.Wrap(err, "querying users").Error()
		return
	}
	b.status.Error = ""
	page := b.eng.Page().CurrentPage
	b.eng.SetRecords(user.Records(users))
	b.eng.RequestPage(page)
}

// fetchPage loads page from the store with the current search and sort.
// It is the engine's page change callback with server paging.
func (b *browser) fetchPage(page int) {
	var ordering []core.DBOrdering
	if state := b.eng.SortState(); state.Active() {
		ordering = []core.DBOrdering{{Field: state.Key, Ascending: state.Direction == table.Ascending}}
	}
	filter := &user.QueryFilter{Search: b.eng.Query()}

	res, err := b.svc.QueryPage(b.ctx, filter, ordering, page, b.pageSize)
	if err != nil {
		b.status.Error = errors.Wrap(err, "querying users page").Error()
		return
	}
	total := res.Count
	if !filter.IsEmpty() {
		if total, err = b.svc.Count(b.ctx, nil); err != nil {
			b.status.Error = errors.Wrap(err, "counting users").Error()
			return
		}
	}
	b.status.Error = ""
	b.matchCount, b.userCount = res.Count, total
	b.eng.SetServerPage(res.Page, res.TotalPages)
	b.eng.SetRecords(user.Records(res.Users))
}

// exec runs one command line, then renders the table. It reports whether the session is over.
func (b *browser) exec(line string) bool {
	cmd, arg := line, ""
	if i := strings.IndexByte(line, ' '); i >= 0 {
		cmd, arg = line[:i], line[i+1:]
	}

	switch strings.ToLower(cmd) {
	case "":
		return false
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprint(b.out, browseHelp)
		return false
	case "search", "/":
		b.eng.Search(arg)
		if b.paged {
			b.fetchPage(1)
		}
	case "sort":
		key := strings.TrimSpace(arg)
		if !b.eng.ToggleSort(key) {
			fmt.Fprintf(b.out, "cannot sort on %q\n", key)
			return false
		}
		if b.paged {
			b.fetchPage(b.eng.Page().CurrentPage)
		}
	case "page":
		p, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || !b.eng.RequestPage(p) {
			fmt.Fprintf(b.out, "no page %q\n", strings.TrimSpace(arg))
			return false
		}
	case "next", "n":
		if !b.eng.NextPage() {
			fmt.Fprintln(b.out, "already on the last page")
			return false
		}
	case "prev", "p":
		if !b.eng.PrevPage() {
			fmt.Fprintln(b.out, "already on the first page")
			return false
		}
	case "refresh", "r":
		b.reload()
	default:
		fmt.Fprintf(b.out, "unknown command %q; type help\n", cmd)
		return false
	}

	b.render()
	return false
}

func (b *browser) render() {
	v := b.eng.View(b.status)
	if !b.paged {
		renderView(b.out, v, b.eng.RecordCount())
		return
	}
	// the engine only holds the fetched page
	if v.ResultCount != nil {
		n := b.matchCount
		v.ResultCount = &n
	}
	renderView(b.out, v, b.userCount)
}

// complete suggests commands, and column keys after "sort ".
func (b *browser) complete(line string) []string {
	var out []string
	if strings.HasPrefix(line, "sort ") {
		prefix := strings.TrimPrefix(line, "sort ")
		for _, col := range b.eng.Columns() {
			if col.IsSortable() && strings.HasPrefix(col.Key, prefix) {
				out = append(out, "sort "+col.Key)
			}
		}
		return out
	}
	for _, c := range browseCommands {
		if strings.HasPrefix(c, strings.ToLower(line)) {
			out = append(out, c)
		}
	}
	return out
}

// runREPL reads commands until quit, EOF or ctrl-C.
func runREPL(b *browser) error {
	line := liner.NewLiner()
	defer func() { _ = line.Close() }()
	line.SetCtrlCAborts(true)
	line.SetCompleter(b.complete)

	b.render()
	for {
		input, err := line.Prompt("users> ")
		switch err {
		case nil:
		case liner.ErrPromptAborted, io.EOF:
			return nil
		default:
			return errors.Wrap(err, "reading command")
		}

		input = strings.TrimSpace(input)
		if input != "" {
			line.AppendHistory(input)
		}
		if b.exec(input) {
			return nil
		}
	}
}
