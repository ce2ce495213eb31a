// Package inmemdb is a process-local store used by tests and by ENV configurations
// with database.engine = memory.
package inmemdb

import (
	"sync"

	"github.com/smartattendance/admin/core/user"
)

type (
	DB struct {
		user *userTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}
)

func Open() *DB {
	return &DB{
		user: &userTable{table: make(map[string]*user.User)},
	}
}

// Reset drops every stored row.
func (db *DB) Reset() {
	db.user.Lock()
	defer db.user.Unlock()
	db.user.table = make(map[string]*user.User)
}
