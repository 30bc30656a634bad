package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadingKeyword(t *testing.T) {
	testCases := []struct {
		query string
		want  string
	}{
		{"select 1", "SELECT"},
		{"  \n\tUPDATE users SET x = 1", "UPDATE"},
		{"-- bump\nDELETE FROM t", "DELETE"},
		{"/* hint */ insert into t values (1)", "INSERT"},
		{"CREATE TABLE t (id int)", "CREATE"},
		{"with x as (select 1) select * from x", "WITH"},
		{"-- only a comment", ""},
		{"/* unterminated", ""},
		{"", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, leadingKeyword(tc.query))
		})
	}
}

func TestCommandTag(t *testing.T) {
	testCases := []struct {
		name   string
		query  string
		rows   int64
		rowsOK bool
		want   string
	}{
		{"insert uses oid form", "INSERT INTO t VALUES ($1)", 1, true, "INSERT 0 1"},
		{"update", "update t set a = 1", 3, true, "UPDATE 3"},
		{"delete none", "DELETE FROM t WHERE false", 0, true, "DELETE 0"},
		{"ddl has no count", "CREATE TABLE t (id int)", 0, true, "CREATE"},
		{"driver without count", "UPDATE t SET a = 1", 0, false, "UPDATE"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, commandTag(tc.query, tc.rows, tc.rowsOK))
		})
	}
}
