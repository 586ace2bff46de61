package redisinfra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/swinglens/swinglens-api/internal/domain"
)

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// OTPStore keeps one-time codes in Redis under otp:<phone> with a per-key TTL.
// At most one live code exists per phone: Set overwrites and resets the TTL.
type OTPStore struct {
	client *redis.Client
}

func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

func otpKey(phone string) string {
	return "otp:" + phone
}

// Set stores the code for phone, replacing any existing code and its TTL.
func (s *OTPStore) Set(ctx context.Context, phone, code string, ttl time.Duration) error {
	return s.client.Set(ctx, otpKey(phone), code, ttl).Err()
}

// Get returns the live code for phone, or domain.ErrNotFound if none exists.
func (s *OTPStore) Get(ctx context.Context, phone string) (string, error) {
	code, err := s.client.Get(ctx, otpKey(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

// GetDel atomically reads and deletes the code for phone. Redis serializes
// GETDEL per key, so of any concurrent consumers exactly one observes the
// code; the rest get domain.ErrNotFound.
func (s *OTPStore) GetDel(ctx context.Context, phone string) (string, error) {
	code, err := s.client.GetDel(ctx, otpKey(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return code, nil
}
