package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

const (
	keyPrefix        = "slots"
	versionKeyPrefix = "slotsver"
	scanCount        = 200

	// versionTTL заметно больше времени расчёта слотов и ttl самих слотов
	versionTTL = 24 * time.Hour
)

// setIfVersionScript пишет слоты, только если версии мастерской и даты не изменились.
// KEYS: версия мастерской, версия даты, ключ слотов. ARGV: версия, значение, ttl в мс.
var setIfVersionScript = redis.NewScript(`
local current = (redis.call('GET', KEYS[1]) or '0') .. '.' .. (redis.call('GET', KEYS[2]) or '0')
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[3], ARGV[2], 'PX', ARGV[3])
return 1
`)

// Metrics счётчики попаданий в кэш
type Metrics interface {
	IncCacheResult(result string)
}

// RedisCache кэш рассчитанных свободных слотов
type RedisCache struct {
	client  redis.UniversalClient
	ttl     time.Duration
	metrics Metrics
}

// NewRedisCache создаёт кэш поверх клиента go-redis
func NewRedisCache(client redis.UniversalClient, ttl time.Duration, metrics Metrics) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, metrics: metrics}
}

// Get возвращает слоты и признак попадания
func (c *RedisCache) Get(ctx context.Context, workshopID int64, date time.Time, serviceType domain.ServiceType) ([]types.TimeString, bool, error) {
	raw, err := c.client.Get(ctx, Key(workshopID, date, serviceType)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.record("miss")
		return nil, false, nil
	}
	if err != nil {
		c.record("error")
		return nil, false, fmt.Errorf("%w: Get: %v", ErrCacheRead, err)
	}

	var slots []types.TimeString
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.record("error")
		return nil, false, fmt.Errorf("%w: Get: %v", ErrCacheDecode, err)
	}

	c.record("hit")
	return slots, true, nil
}

// Version возвращает текущую версию слотов мастерской на дату
func (c *RedisCache) Version(ctx context.Context, workshopID int64, date time.Time) (string, error) {
	values, err := c.client.MGet(ctx, WorkshopVersionKey(workshopID), DateVersionKey(workshopID, date)).Result()
	if err != nil {
		return "", fmt.Errorf("%w: Version: %v", ErrCacheRead, err)
	}
	return versionToken(values), nil
}

// Set сохраняет слоты на время ttl, если версия не изменилась после чтения Version.
// Устаревшее значение молча отбрасывается.
func (c *RedisCache) Set(ctx context.Context, workshopID int64, date time.Time, serviceType domain.ServiceType, version string, slots []types.TimeString) error {
	payload, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %v", ErrCacheWrite, err)
	}

	keys := []string{
		WorkshopVersionKey(workshopID),
		DateVersionKey(workshopID, date),
		Key(workshopID, date, serviceType),
	}
	written, err := setIfVersionScript.Run(ctx, c.client, keys, version, payload, c.ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCacheWrite, err)
	}
	if written == 0 {
		c.record("stale")
	}
	return nil
}

// InvalidateDate повышает версию даты и удаляет слоты мастерской на дату для всех типов услуг
func (c *RedisCache) InvalidateDate(ctx context.Context, workshopID int64, date time.Time) error {
	if err := c.bumpVersion(ctx, DateVersionKey(workshopID, date)); err != nil {
		return err
	}
	return c.deleteByPattern(ctx, DatePattern(workshopID, date))
}

// InvalidateWorkshop повышает версию мастерской и удаляет все её слоты (после изменения расписания)
func (c *RedisCache) InvalidateWorkshop(ctx context.Context, workshopID int64) error {
	if err := c.bumpVersion(ctx, WorkshopVersionKey(workshopID)); err != nil {
		return err
	}
	return c.deleteByPattern(ctx, WorkshopPattern(workshopID))
}

func (c *RedisCache) bumpVersion(ctx context.Context, key string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, versionTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: bump version %s: %v", ErrInvalidate, key, err)
	}
	return nil
}

func (c *RedisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, scanCount).Iterator()

	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: scan %s: %v", ErrInvalidate, pattern, err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: del %d keys: %v", ErrInvalidate, len(keys), err)
	}
	return nil
}

func (c *RedisCache) record(result string) {
	if c.metrics != nil {
		c.metrics.IncCacheResult(result)
	}
}

// Key ключ слотов мастерской на дату для типа услуги
func Key(workshopID int64, date time.Time, serviceType domain.ServiceType) string {
	return fmt.Sprintf("%s:%d:%s:%s", keyPrefix, workshopID, date.Format(domain.DateFormat), serviceType)
}

// DatePattern шаблон ключей мастерской на дату
func DatePattern(workshopID int64, date time.Time) string {
	return fmt.Sprintf("%s:%d:%s:*", keyPrefix, workshopID, date.Format(domain.DateFormat))
}

// WorkshopPattern шаблон всех ключей мастерской
func WorkshopPattern(workshopID int64) string {
	return fmt.Sprintf("%s:%d:*", keyPrefix, workshopID)
}

// WorkshopVersionKey ключ версии всех слотов мастерской
func WorkshopVersionKey(workshopID int64) string {
	return fmt.Sprintf("%s:%d", versionKeyPrefix, workshopID)
}

// DateVersionKey ключ версии слотов мастерской на дату
func DateVersionKey(workshopID int64, date time.Time) string {
	return fmt.Sprintf("%s:%d:%s", versionKeyPrefix, workshopID, date.Format(domain.DateFormat))
}

// versionToken собирает версию из ответа MGET; отсутствующий ключ означает версию 0
func versionToken(values []interface{}) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = "0"
		if str, ok := v.(string); ok && str != "" {
			parts[i] = str
		}
	}
	return strings.Join(parts, ".")
}
