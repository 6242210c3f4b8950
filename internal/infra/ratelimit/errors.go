package ratelimit

import "errors"

var (
	// ErrUnexpectedResult возвращается, когда Lua-скрипт вернул значение неизвестного типа
	ErrUnexpectedResult = errors.New("ratelimit: unexpected redis script result")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("ratelimit: redis error")
)
