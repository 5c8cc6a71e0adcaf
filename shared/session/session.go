// Package session keeps small per-browser state (OAuth anti-forgery values and
// flash messages) in Redis, keyed by an opaque cookie id.
package session

//go:generate go run go.uber.org/mock/mockgen -source=./session.go -destination=./mocks/session_mock.go -package=mocks

import (
	"bookingpay/config"
	"bookingpay/shared"
	"bookingpay/shared/cache"
	"context"
	"errors"
	"fmt"
)

const (
	cacheKeySession = "session"
	keyFlashes      = "flashes"
)

const (
	CategorySuccess = "success"
	CategoryError   = "error"
	CategoryWarning = "warning"
)

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type Store interface {
	Set(ctx context.Context, sessionID, key, value string, ttlSeconds int) error
	// Pop returns the stored value and removes it. A missing key yields "".
	Pop(ctx context.Context, sessionID, key string) (string, error)
	AddFlash(ctx context.Context, sessionID string, flash Flash) error
	PopFlashes(ctx context.Context, sessionID string) ([]Flash, error)
}

type storeImpl struct {
	cache cache.RedisCache
	ttl   int
}

func New(redisCache cache.RedisCache, cfg *config.Config) Store {
	return &storeImpl{
		cache: redisCache,
		ttl:   cfg.App.Session.TTLSeconds,
	}
}

func key(sessionID, name string) string {
	return shared.BuildCacheKey(cacheKeySession, sessionID, name)
}

func (s *storeImpl) Set(ctx context.Context, sessionID, name, value string, ttlSeconds int) error {
	if ttlSeconds <= 0 {
		ttlSeconds = s.ttl
	}

	if err := s.cache.Save(ctx, key(sessionID, name), value, ttlSeconds); err != nil {
		return fmt.Errorf("failed to store session value: %w", err)
	}

	return nil
}

func (s *storeImpl) Pop(ctx context.Context, sessionID, name string) (string, error) {
	var value string

	err := s.cache.Get(ctx, key(sessionID, name), &value)
	if errors.Is(err, cache.Nil) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("failed to read session value: %w", err)
	}

	if err = s.cache.Delete(ctx, key(sessionID, name)); err != nil {
		return "", fmt.Errorf("failed to consume session value: %w", err)
	}

	return value, nil
}

func (s *storeImpl) AddFlash(ctx context.Context, sessionID string, flash Flash) error {
	var flashes []Flash

	err := s.cache.Get(ctx, key(sessionID, keyFlashes), &flashes)
	if err != nil && !errors.Is(err, cache.Nil) {
		return fmt.Errorf("failed to read flashes: %w", err)
	}

	flashes = append(flashes, flash)

	if err = s.cache.Save(ctx, key(sessionID, keyFlashes), flashes, s.ttl); err != nil {
		return fmt.Errorf("failed to store flash: %w", err)
	}

	return nil
}

func (s *storeImpl) PopFlashes(ctx context.Context, sessionID string) ([]Flash, error) {
	flashes := []Flash{}

	err := s.cache.Get(ctx, key(sessionID, keyFlashes), &flashes)
	if errors.Is(err, cache.Nil) {
		return []Flash{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read flashes: %w", err)
	}

	if err = s.cache.Delete(ctx, key(sessionID, keyFlashes)); err != nil {
		return nil, fmt.Errorf("failed to clear flashes: %w", err)
	}

	return flashes, nil
}
