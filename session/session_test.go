package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rpupo63/blog-frontend/database"
	"github.com/rpupo63/blog-frontend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()

	dir := t.TempDir()
	db, err := database.Open("sqlite", filepath.Join(dir, "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	all := map[string]Backend{
		"memory": NewMemoryBackend(),
		"file":   NewFileBackend(filepath.Join(dir, "nested", "session.json"), "http://localhost:8080"),
		"sql":    NewSQLBackend(db.SessionRepo(), "http://localhost:8080"),
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cli := redis.NewClient(&redis.Options{Addr: addr})
		scope := "test-" + t.Name()
		t.Cleanup(func() {
			cli.Del(context.Background(), redisKeyPrefix+scope)
			cli.Close()
		})
		all["redis"] = NewRedisBackend(cli, scope)
	}
	return all
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := New(backend)

			t.Run("empty store", func(t *testing.T) {
				assert.False(t, store.IsAuthenticated(ctx))
				_, ok := store.CurrentUsername(ctx)
				assert.False(t, ok)
				require.NoError(t, store.ClearSession(ctx))
				require.NoError(t, store.ClearSession(ctx))
			})

			t.Run("set then clear", func(t *testing.T) {
				require.NoError(t, store.SetSession(ctx, "tok", "alice"))
				assert.True(t, store.IsAuthenticated(ctx))
				username, ok := store.CurrentUsername(ctx)
				assert.True(t, ok)
				assert.Equal(t, "alice", username)

				require.NoError(t, store.ClearSession(ctx))
				assert.False(t, store.IsAuthenticated(ctx))
				_, ok = store.CurrentUsername(ctx)
				assert.False(t, ok)
			})

			t.Run("no residue across sessions", func(t *testing.T) {
				require.NoError(t, store.SetSession(ctx, "abc", "bob"))
				require.NoError(t, store.ClearSession(ctx))
				require.NoError(t, store.SetSession(ctx, "xyz", "carol"))

				current, err := store.Current(ctx)
				require.NoError(t, err)
				assert.Equal(t, Session{Token: "xyz", Username: "carol"}, current)
			})

			t.Run("overwrite", func(t *testing.T) {
				require.NoError(t, store.SetSession(ctx, "one", "dave"))
				require.NoError(t, store.SetSession(ctx, "two", "erin"))

				token, ok := store.Token(ctx)
				assert.True(t, ok)
				assert.Equal(t, "two", token)
				username, _ := store.CurrentUsername(ctx)
				assert.Equal(t, "erin", username)
				require.NoError(t, store.ClearSession(ctx))
			})
		})
	}
}

func TestSetSessionRejectsHalfIdentity(t *testing.T) {
	ctx := context.Background()
	store := New(nil)

	assert.ErrorIs(t, store.SetSession(ctx, "", "alice"), errs.ErrEmptyToken)
	assert.ErrorIs(t, store.SetSession(ctx, "tok", ""), errs.ErrEmptyUsername)
	assert.False(t, store.IsAuthenticated(ctx))
}

func TestHalfWrittenRecordReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	doc := `{"sessions":{"http://localhost:8080":{"token":"orphan"}}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	store := New(NewFileBackend(path, "http://localhost:8080"))

	assert.False(t, store.IsAuthenticated(ctx))
	current, err := store.Current(ctx)
	require.NoError(t, err)
	assert.True(t, current.Empty())
}

type brokenBackend struct{}

func (brokenBackend) Load(context.Context) (Session, error) { return Session{}, errors.New("disk gone") }
func (brokenBackend) Save(context.Context, Session) error   { return errors.New("disk gone") }
func (brokenBackend) Delete(context.Context) error          { return errors.New("disk gone") }

func TestUnreadableBackendIsSignedOut(t *testing.T) {
	ctx := context.Background()
	store := New(brokenBackend{})

	assert.False(t, store.IsAuthenticated(ctx))
	_, err := store.Current(ctx)
	assert.Error(t, err)
	assert.Error(t, store.SetSession(ctx, "tok", "alice"))
	assert.Error(t, store.ClearSession(ctx))
}

func TestFileBackendPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := New(NewFileBackend(path, "http://localhost:8080"))
	require.NoError(t, store.SetSession(context.Background(), "tok", "alice"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileBackendIsScopedByOrigin(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	blog := New(NewFileBackend(path, ScopeKey("https://blog.example.com")))
	other := New(NewFileBackend(path, ScopeKey("https://other.example.net")))

	require.NoError(t, blog.SetSession(ctx, "secret-token", "admin"))

	_, ok := other.Token(ctx)
	assert.False(t, ok)
	assert.False(t, other.IsAuthenticated(ctx))

	require.NoError(t, other.SetSession(ctx, "other-token", "bob"))
	token, ok := blog.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, "secret-token", token)

	require.NoError(t, other.ClearSession(ctx))
	assert.True(t, blog.IsAuthenticated(ctx))
	_, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, blog.ClearSession(ctx))
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUnscopedFileReadsAsSignedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"tok","username":"alice"}`), 0o600))

	store := New(NewFileBackend(path, "http://localhost:8080"))
	assert.False(t, store.IsAuthenticated(context.Background()))
}

func TestScopeKey(t *testing.T) {
	assert.Equal(t, "http://localhost:8080", ScopeKey("HTTP://LocalHost:8080/api/"))
	assert.Equal(t, "https://blog.example.com", ScopeKey("https://blog.example.com"))
	assert.Equal(t, "blog", ScopeKey("blog/"))
}

func TestTokenClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	claims, err := TokenClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.True(t, exp.Equal(claims.ExpiresAt))

	_, err = TokenClaims("not-a-jwt")
	assert.Error(t, err)
}
