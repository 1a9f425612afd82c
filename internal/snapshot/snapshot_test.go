package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	cmd := redis.NewStringCmd(ctx, "get", key)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	val, ok := f.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(val)
	return cmd
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	cmd.SetVal("OK")
	return cmd
}

type doc struct {
	Items []string `json:"items"`
}

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	file, err := NewFile(filepath.Join(t.TempDir(), "snap"))
	require.NoError(t, err)
	lite, err := OpenSQLite(filepath.Join(t.TempDir(), "painel.db"))
	require.NoError(t, err)
	t.Cleanup(func() { lite.Close() })

	return map[string]Backend{
		"file":   file,
		"sqlite": lite,
		"memory": NewMemory(),
		"redis":  NewRedis(newFakeRedis(), ""),
	}
}

func TestBackends(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := b.Load(ctx, KeyAppointments)
			assert.ErrorIs(t, err, ErrNotFound)

			var missing doc
			found, err := LoadJSON(ctx, b, KeyAppointments, &missing)
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, SaveJSON(ctx, b, KeyAppointments, doc{Items: []string{"a", "b"}}))
			require.NoError(t, SaveJSON(ctx, b, KeyAppointments, doc{Items: []string{"c"}}))
			require.NoError(t, SaveJSON(ctx, b, KeyTickets, doc{Items: []string{"t"}}))

			var got doc
			found, err = LoadJSON(ctx, b, KeyAppointments, &got)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, []string{"c"}, got.Items)

			var tickets doc
			_, err = LoadJSON(ctx, b, KeyTickets, &tickets)
			require.NoError(t, err)
			assert.Equal(t, []string{"t"}, tickets.Items)

			require.NoError(t, b.Close())
		})
	}
}

func TestLoadJSONCorrupted(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Save(ctx, KeyTickets, []byte("{quebrado")))

	var got doc
	found, err := LoadJSON(ctx, m, KeyTickets, &got)
	assert.False(t, found)
	assert.ErrorContains(t, err, "detran_tickets")
}

func TestFileLayout(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, f.Save(context.Background(), KeyAppointments, []byte("[]")))

	data, err := os.ReadFile(filepath.Join(dir, "detran_appointments.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = NewFile(" ")
	assert.Error(t, err)
}

func TestSQLiteDirectoryPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dados")
	lite, err := OpenSQLite(dir)
	require.NoError(t, err)
	defer lite.Close()

	_, err = os.Stat(filepath.Join(dir, "painel.db"))
	assert.NoError(t, err)
}

func TestRedisPrefixAndErrors(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	r := NewRedis(client, "")

	require.NoError(t, r.Save(ctx, KeyTickets, []byte("[]")))
	assert.Contains(t, client.data, "painel:snapshot:detran_tickets")

	client.err = errors.New("conexão recusada")
	_, err := r.Load(ctx, KeyTickets)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestOpen(t *testing.T) {
	b, err := Open("memory", "", nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, b)

	b, err = Open("", t.TempDir(), nil)
	require.NoError(t, err)
	assert.IsType(t, &File{}, b)

	_, err = Open("redis", "", nil)
	assert.Error(t, err)

	b, err = Open("redis", "", newFakeRedis())
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, b)

	_, err = Open("etcd", "", nil)
	assert.Error(t, err)
}
