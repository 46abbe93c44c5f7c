package retry

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"
)

const (
	maxRetries        = 6
	retryMultiplier   = 2
	retryInitialDelay = time.Millisecond * 100
	// При maxRetries = 6, retryMultiplier = 2, retryInitialDelay = 100ms:
	// 0-ая попытка: 0ms
	// 1-ая попытка: 100ms
	// 2-ая попытка: 200ms
	// 3-я попытка: 400ms
	// 4-ая попытка: 800ms
	// 5-ая попытка: 1600ms
	// 6-ая попытка: 3200ms, потом завершение
)

// Policy задаёт количество повторов и задержки между ними
type Policy struct {
	MaxRetries   int
	Multiplier   int
	InitialDelay time.Duration
}

var DefaultPolicy = Policy{
	MaxRetries:   maxRetries,
	Multiplier:   retryMultiplier,
	InitialDelay: retryInitialDelay,
}

// Retry выполняет операцию с экспоненциальной задержкой между попытками.
// Возвращает nil, если операция успешна, или последнюю ошибку, если все попытки завершились неудачей.
// Используется только при старте сервиса, запросы пользователей не повторяются.
func Retry(ctx context.Context, operation func() error) error {
	return WithPolicy(ctx, DefaultPolicy, operation)
}

func WithPolicy(ctx context.Context, policy Policy, operation func() error) error {
	delay := policy.InitialDelay
	for retryCounter := 0; ; retryCounter++ {
		err := operation()
		if err == nil {
			return nil
		}
		if retryCounter >= policy.MaxRetries {
			return err
		}
		log.Errorf("error during retry %d: %v", retryCounter, err)
		select {
		case <-ctx.Done():
			return err
		case <-time.After(delay):
		}
		delay *= time.Duration(policy.Multiplier)
	}
}
