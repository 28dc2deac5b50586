package roster

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	rdb *redis.Client
	key string
}

// key 约定：
//
//	list: bj:roster:{name} -> "name, bank, skill" per seat, left to right
func rosterKey(name string) string {
	return fmt.Sprintf("bj:roster:%s", name)
}

// NewRedisRepo stores the saved game under bj:roster:{name}; name separates
// saves sharing one Redis.
func NewRedisRepo(rdb *redis.Client, name string) Repo {
	if name == "" {
		name = "default"
	}
	return &redisRepo{rdb: rdb, key: rosterKey(name)}
}

func (r *redisRepo) Load(ctx context.Context) ([]Record, error) {
	lines, err := r.rdb.LRange(ctx, r.key, 0, MaxRecords-1).Result()
	if err == redis.Nil || (err == nil && len(lines) == 0) {
		return nil, ErrNoSavedGame
	}
	if err != nil {
		return nil, err
	}
	return decodeLines(lines)
}

func (r *redisRepo) Save(ctx context.Context, recs []Record) error {
	args := make([]any, 0, len(recs))
	for _, rec := range recs {
		args = append(args, rec.Line())
	}

	// Lua 脚本：整体替换存档
	// KEYS[1] = roster key, ARGV = lines
	script := `
        redis.call("DEL", KEYS[1])
        for i = 1, #ARGV do
            redis.call("RPUSH", KEYS[1], ARGV[i])
        end
        return #ARGV
    `
	if err := r.rdb.Eval(ctx, script, []string{r.key}, args...).Err(); err != nil {
		// fall back to a MULTI/EXEC pipeline
		p := r.rdb.TxPipeline()
		p.Del(ctx, r.key)
		if len(args) > 0 {
			p.RPush(ctx, r.key, args...)
		}
		if _, execErr := p.Exec(ctx); execErr != nil {
			return execErr
		}
	}
	return nil
}
