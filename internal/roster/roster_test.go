package roster

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"CasinoBlackjack/internal/game/table"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	rec, err := ParseLine("Alice,  1200 , normal")
	require.NoError(t, err)
	assert.Equal(t, Record{Name: "Alice", Bank: 1200, Skill: table.Normal}, rec)
	assert.Equal(t, "Alice, 1200, normal", rec.Line())

	bad := []string{
		"Alice, 1200",
		"Alice, 1200, normal, extra",
		"Alice, lots, normal",
		"Alice, -5, normal",
		"Alice, 1200, expert",
		", 1200, normal",
	}
	for _, line := range bad {
		_, err := ParseLine(line)
		assert.ErrorIs(t, err, ErrCorrupt, line)
	}
}

func TestDecode(t *testing.T) {
	recs, err := Decode(strings.NewReader("A, 1, starter\n\nB, 2, high\nC, 3, special\nD, 4, normal\n"))
	require.NoError(t, err)
	// 最多读取三名玩家
	require.Len(t, recs, 3)
	assert.Equal(t, "C", recs[2].Name)

	_, err = Decode(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoSavedGame)

	// 一行损坏则整个存档作废
	_, err = Decode(strings.NewReader("A, 1, starter\nB, x, high\n"))
	assert.ErrorIs(t, err, ErrCorrupt)
}

func testRepo(t *testing.T, repo Repo) {
	ctx := context.Background()

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSavedGame)

	want := []Record{
		{Name: "Alice", Bank: 50000, Skill: table.Starter},
		{Name: "Bob", Bank: 73000, Skill: table.Special},
	}
	require.NoError(t, repo.Save(ctx, want))
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// 覆盖而不是追加
	require.NoError(t, repo.Save(ctx, want[1:]))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want[1:], got)

	require.NoError(t, repo.Save(ctx, nil))
	_, err = repo.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSavedGame)
}

func Test_MemoryRepo(t *testing.T) {
	testRepo(t, NewMemoryRepo())
}

func Test_FileRepo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves", "blackjack.sav")
	testRepo(t, NewFileRepo(path))

	require.NoError(t, os.WriteFile(path, []byte("Alice, ten, starter\n"), 0o644))
	_, err := NewFileRepo(path).Load(context.Background())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func Test_RedisRepo(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	testRepo(t, NewRedisRepo(rdb, "test"))

	// 损坏的列表元素
	mr.Push(rosterKey("broken"), "Alice, 10, starter", "Bob")
	_, err := NewRedisRepo(rdb, "broken").Load(context.Background())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepo())

	assert.Empty(t, svc.Load(ctx))

	recs, err := svc.Create(ctx, []string{"Alice", " Bob "})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, Record{Name: "Bob", Bank: StartingBank, Skill: table.Starter}, recs[1])

	_, err = svc.Create(ctx, []string{"alice"})
	assert.ErrorIs(t, err, ErrDuplicateName)
	_, err = svc.Create(ctx, []string{"Carol, Jr"})
	assert.ErrorIs(t, err, ErrInvalidName)

	require.NoError(t, svc.Update(ctx, Record{Name: "Alice", Bank: 61000, Skill: table.Normal}))
	_, err = svc.Create(ctx, []string{"Carol", "Dave"})
	assert.ErrorIs(t, err, ErrRosterFull)

	require.NoError(t, svc.Remove(ctx, "Bob"))
	assert.ErrorIs(t, svc.Remove(ctx, "Bob"), ErrUnknownPlayer)

	recs = svc.Load(ctx)
	require.Len(t, recs, 1)
	assert.Equal(t, 61000, recs[0].Bank)
	assert.Equal(t, table.Normal, recs[0].Skill)
}

func TestServiceLoadDiscardsCorruptSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blackjack.sav")
	require.NoError(t, os.WriteFile(path, []byte("garbage\n"), 0o644))
	svc := NewService(NewFileRepo(path))
	assert.Empty(t, svc.Load(context.Background()))
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(NewService(NewMemoryRepo()))
	r.GET("/roster", h.List)
	r.POST("/roster", h.Create)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/roster", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"players":[]}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/roster", strings.NewReader(`{"names":["Alice"]}`)))
	require.Equal(t, http.StatusOK, w.Code)
	var resp ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Players, 1)
	assert.Equal(t, table.Starter, resp.Players[0].Skill)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/roster", strings.NewReader(`{"names":["alice"]}`)))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/roster", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	repo, err := Open(ctx, StoreConfig{Kind: "memory"})
	require.NoError(t, err)
	testRepo(t, repo)

	repo, err = Open(ctx, StoreConfig{SaveFile: filepath.Join(t.TempDir(), "bj.sav")})
	require.NoError(t, err)
	testRepo(t, repo)

	mr := miniredis.RunT(t)
	repo, err = Open(ctx, StoreConfig{Kind: "redis", RedisAddr: mr.Addr(), Name: "open"})
	require.NoError(t, err)
	testRepo(t, repo)

	_, err = Open(ctx, StoreConfig{Kind: "sqlite"})
	assert.Error(t, err)
}

// flakyRepo 读取失败指定次数后恢复
type flakyRepo struct {
	Repo
	fails int
}

func (f *flakyRepo) Load(ctx context.Context) ([]Record, error) {
	if f.fails > 0 {
		f.fails--
		return nil, errors.New("i/o timeout")
	}
	return f.Repo.Load(ctx)
}

// ✅ 读档失败时不能覆盖其他玩家的存档
func TestServiceKeepsSaveWhenLoadFails(t *testing.T) {
	ctx := context.Background()
	saved := []Record{
		{Name: "amy", Bank: 100, Skill: table.Starter},
		{Name: "bob", Bank: 200, Skill: table.Normal},
		{Name: "cat", Bank: 300, Skill: table.High},
	}
	repo := &flakyRepo{Repo: NewMemoryRepo()}
	require.NoError(t, repo.Save(ctx, saved))
	svc := NewService(repo)

	repo.fails = 1
	assert.Error(t, svc.Update(ctx, Record{Name: "amy", Bank: 150, Skill: table.Starter}))
	repo.fails = 1
	assert.Error(t, svc.Remove(ctx, "bob"))
	repo.fails = 1
	_, err := svc.Create(ctx, []string{"dan"})
	assert.Error(t, err)
	repo.fails = 1
	assert.Empty(t, svc.Load(ctx))

	assert.Equal(t, saved, svc.Load(ctx))

	require.NoError(t, svc.Update(ctx, Record{Name: "amy", Bank: 150, Skill: table.Starter}))
	recs := svc.Load(ctx)
	require.Len(t, recs, 3)
	assert.Equal(t, 150, recs[0].Bank)
	assert.Equal(t, "cat", recs[2].Name)
}
