package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDBOrdering_String(t *testing.T) {
	assert.Equal(t, "name ASC", DBOrdering{Field: "name", Ascending: true}.String())
	assert.Equal(t, "created_at DESC", DBOrdering{Field: "created_at"}.String())
}

func TestNewDBPage(t *testing.T) {
	tests := []struct {
		page, size int
		want       DBPage
	}{
		{1, 10, DBPage{Limit: 10, Offset: 0}},
		{3, 10, DBPage{Limit: 10, Offset: 20}},
		{0, 5, DBPage{Limit: 5, Offset: 0}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, *NewDBPage(tt.page, tt.size))
	}
}
