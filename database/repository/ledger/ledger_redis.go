package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const ledgerKeyPrefix = "ledger:"

// RedisBookingLedger implements BookingLedger on top of Redis. SETNX gives the
// atomic check-and-reserve that the in-process engine cannot provide on its own.
type RedisBookingLedger struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBookingLedger creates a ledger. Reservations expire after ttl; pass
// zero to keep them until released.
func NewRedisBookingLedger(client *redis.Client, ttl time.Duration) *RedisBookingLedger {
	return &RedisBookingLedger{client: client, ttl: ttl}
}

func slotKey(therapistID string, start, end time.Time) string {
	return fmt.Sprintf("%s%s:%d:%d", ledgerKeyPrefix, therapistID, start.UTC().Unix(), end.UTC().Unix())
}

func (l *RedisBookingLedger) IsBooked(ctx context.Context, therapistID string, start, end time.Time) (bool, error) {
	n, err := l.client.Exists(ctx, slotKey(therapistID, start, end)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (l *RedisBookingLedger) Reserve(ctx context.Context, therapistID string, start, end time.Time, bookingID string) error {
	ok, err := l.client.SetNX(ctx, slotKey(therapistID, start, end), bookingID, l.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrSlotTaken
	}
	return nil
}

func (l *RedisBookingLedger) Release(ctx context.Context, therapistID string, start, end time.Time) error {
	return l.client.Del(ctx, slotKey(therapistID, start, end)).Err()
}
