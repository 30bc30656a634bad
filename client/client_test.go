package client

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/itchan-dev/chatkit/shared/config"
	"github.com/itchan-dev/chatkit/shared/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guildRow struct {
	Id     int64
	Prefix string
}

// MockDatabase mocks the storage.Database interface.
type MockDatabase struct {
	fetchFunc       func(query string, args ...any) ([]guildRow, error)
	fetchRowFunc    func(query string, args ...any) (*guildRow, error)
	fetchValFunc    func(query string, args ...any) (any, error)
	executeFunc     func(query string, args ...any) (string, error)
	executeManyFunc func(query string, argSets [][]any) (string, error)
}

var _ storage.Database[guildRow] = (*MockDatabase)(nil)

func (m *MockDatabase) Fetch(ctx context.Context, query string, args ...any) ([]guildRow, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(query, args...)
	}
	return nil, nil
}

func (m *MockDatabase) FetchRow(ctx context.Context, query string, args ...any) (*guildRow, error) {
	if m.fetchRowFunc != nil {
		return m.fetchRowFunc(query, args...)
	}
	return nil, nil
}

func (m *MockDatabase) FetchVal(ctx context.Context, query string, args ...any) (any, error) {
	if m.fetchValFunc != nil {
		return m.fetchValFunc(query, args...)
	}
	return nil, nil
}

func (m *MockDatabase) Execute(ctx context.Context, query string, args ...any) (string, error) {
	if m.executeFunc != nil {
		return m.executeFunc(query, args...)
	}
	return "", nil
}

func (m *MockDatabase) ExecuteMany(ctx context.Context, query string, argSets [][]any) (string, error) {
	if m.executeManyFunc != nil {
		return m.executeManyFunc(query, argSets)
	}
	return "", nil
}

func TestNewWithoutDatabase(t *testing.T) {
	c := NewWithoutDatabase(nil)

	db, ok := c.Database()
	assert.False(t, ok)
	assert.Nil(t, db)
	assert.NotNil(t, c.Config())
	assert.NotNil(t, c.Logger())
	assert.NoError(t, c.Close())

	assert.PanicsWithValue(t, ErrNoDatabase, func() { c.MustDatabase() })
}

func TestWithDatabase(t *testing.T) {
	mock := &MockDatabase{
		fetchRowFunc: func(query string, args ...any) (*guildRow, error) {
			if args[0] == int64(1) {
				return &guildRow{Id: 1, Prefix: "!"}, nil
			}
			return nil, nil
		},
		executeFunc: func(query string, args ...any) (string, error) {
			return "UPDATE 1", nil
		},
	}

	c := New(&config.Config{}, WithDatabase[guildRow](mock))
	db, ok := c.Database()
	require.True(t, ok)

	row, err := db.FetchRow(context.Background(), "SELECT id, prefix FROM guilds WHERE id = $1", int64(1))
	require.NoError(t, err)
	assert.Equal(t, "!", row.Prefix)

	row, err = c.MustDatabase().FetchRow(context.Background(), "SELECT id, prefix FROM guilds WHERE id = $1", int64(2))
	require.NoError(t, err)
	assert.Nil(t, row)

	status, err := db.Execute(context.Background(), "UPDATE guilds SET prefix = $1", "?")
	require.NoError(t, err)
	assert.Equal(t, "UPDATE 1", status)

	// injected databases are owned by the caller
	assert.NoError(t, c.Close())
}

func TestDatabaseErrorsPassThrough(t *testing.T) {
	boom := errors.New("connection reset")
	mock := &MockDatabase{
		fetchFunc: func(query string, args ...any) ([]guildRow, error) {
			return nil, boom
		},
	}
	c := New(nil, WithDatabase[guildRow](mock))

	_, err := c.MustDatabase().Fetch(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, boom)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))

	c := New(nil, WithLogger[NoDatabase](l))
	c.Logger().Info("ready")
	assert.Contains(t, buf.String(), "ready")
}

func TestOpenWithoutPgSection(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{})
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestCloseRunsOnce(t *testing.T) {
	calls := 0
	c := NewWithoutDatabase(nil)
	c.closer = func() error {
		calls++
		return nil
	}
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, calls)
}
