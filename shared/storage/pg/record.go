package pg

import (
	"database/sql"
	"fmt"
)

// Record is one result row. Values keep the types lib/pq decodes them to:
// text as string, integers as int64, timestamps as time.Time, bytea as []byte.
type Record struct {
	columns []string
	values  []any
	index   map[string]int
}

// NewRecord pairs column names with values. On duplicate names the first column wins.
func NewRecord(columns []string, values []any) Record {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, seen := index[c]; !seen {
			index[c] = i
		}
	}
	return Record{columns: columns, values: values, index: index}
}

// Get returns the value of the named column.
func (r Record) Get(name string) (any, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Index returns the i-th value. It panics when i is out of range, like a slice.
func (r Record) Index(i int) any {
	return r.values[i]
}

func (r Record) Len() int {
	return len(r.values)
}

func (r Record) Keys() []string {
	return append([]string(nil), r.columns...)
}

func (r Record) Values() []any {
	return append([]any(nil), r.values...)
}

func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.columns))
	for i := len(r.columns) - 1; i >= 0; i-- {
		m[r.columns[i]] = r.values[i]
	}
	return m
}

func (r Record) String() string {
	s := "<Record"
	for i, c := range r.columns {
		s += fmt.Sprintf(" %s=%v", c, r.values[i])
	}
	return s + ">"
}

// scanRecords drains rows into records. limit <= 0 reads everything.
func scanRecords(rows *sql.Rows, limit int) ([]Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	records := make([]Record, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, NewRecord(columns, values))
		if limit > 0 && len(records) >= limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return records, nil
}
