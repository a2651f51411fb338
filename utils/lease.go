package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// EnrollmentLease claims enrollments for the duration of one processing
// attempt so overlapping sweep invocations cannot double-send. Backed by
// redis SETNX with a TTL; the TTL bounds how long a crashed sweep can
// hold a claim.
type EnrollmentLease struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEnrollmentLease(addr, password string, db int, ttl time.Duration) *EnrollmentLease {
	return &EnrollmentLease{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// Acquire claims the enrollment. ok=false means another invocation
// holds the claim. The release func only deletes the key when the claim
// token still matches, so an expired claim never releases a newer one.
func (l *EnrollmentLease) Acquire(ctx context.Context, enrollmentID uint) (func(), bool, error) {
	key := fmt.Sprintf("enrollment-lease:%d", enrollmentID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return func() {}, false, err
	}
	if !ok {
		return func() {}, false, nil
	}

	release := func() {
		current, err := l.client.Get(ctx, key).Result()
		if err == nil && current == token {
			l.client.Del(ctx, key)
		}
	}
	return release, true, nil
}

func (l *EnrollmentLease) Close() error {
	return l.client.Close()
}
