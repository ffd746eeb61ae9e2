package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 封裝 Redis 的最小操作集合，測試時以 FakeCache 替換
// ttl <= 0 表示不設過期
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
	Close() error
}

// Lookup 讀取 key；key 不存在時回傳 ok=false 且 err=nil
func Lookup(ctx context.Context, c Cache, key string) (string, bool, error) {
	val, err := c.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

type FakeCache struct {
	GetFn   func(ctx context.Context, key string) *redis.StringCmd
	SetFn   func(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
	CloseFn func() error
}

func (f *FakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.GetFn != nil {
		return f.GetFn(ctx, key)
	}
	panic("unexpected Get")
}

func (f *FakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	if f.SetFn != nil {
		return f.SetFn(ctx, key, value, ttl)
	}
	panic("unexpected Set")
}

func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}

// MemoryFake 回傳一個以 map 保存資料的 FakeCache，ttl 會被記錄但不會過期
func MemoryFake() (*FakeCache, map[string]time.Duration) {
	data := map[string]string{}
	ttls := map[string]time.Duration{}
	return &FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			v, ok := data[key]
			if !ok {
				return redis.NewStringResult("", redis.Nil)
			}
			return redis.NewStringResult(v, nil)
		},
		SetFn: func(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
			switch v := value.(type) {
			case string:
				data[key] = v
			case []byte:
				data[key] = string(v)
			default:
				return redis.NewStatusResult("", errors.New("unsupported value type"))
			}
			ttls[key] = ttl
			return redis.NewStatusResult("OK", nil)
		},
	}, ttls
}
