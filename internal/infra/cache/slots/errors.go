package slots

import "errors"

var (
	// ErrCacheRead возвращается при ошибке чтения из Redis
	ErrCacheRead = errors.New("slots.cache: failed to read")

	// ErrCacheWrite возвращается при ошибке записи в Redis
	ErrCacheWrite = errors.New("slots.cache: failed to write")

	// ErrCacheDecode возвращается, если закэшированное значение повреждено
	ErrCacheDecode = errors.New("slots.cache: failed to decode cached value")

	// ErrInvalidate возвращается при ошибке удаления ключей
	ErrInvalidate = errors.New("slots.cache: failed to invalidate")
)
