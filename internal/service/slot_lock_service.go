package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotLocked is returned when another request is booking the same slot
var ErrSlotLocked = errors.New("slot is being booked by another request")

const (
	RedisSlotLockKeyPrefix = "slot:lock:"

	// Timeout for the release call, which runs after the request context may be gone
	slotReleaseTimeout = 2 * time.Second
)

// releaseSlotScript deletes the lock only if it still holds our token, so an expired
// lock re-acquired by another request is never released by us.
var releaseSlotScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// SlotLocker serialises booking attempts for one (doctor, date, time) slot
type SlotLocker interface {
	// Acquire takes the slot lock. The returned release func must be called once the
	// booking attempt is over. ErrSlotLocked means the slot is held elsewhere; any other
	// error means the lock backend is unavailable.
	Acquire(ctx context.Context, doctorID uuid.UUID, date, slot string) (release func(), err error)
}

type redisSlotLocker struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewSlotLocker(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) SlotLocker {
	return &redisSlotLocker{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

func slotLockKey(doctorID uuid.UUID, date, slot string) string {
	return fmt.Sprintf("%s%s:%s:%s", RedisSlotLockKeyPrefix, doctorID.String(), date, slot)
}

func (l *redisSlotLocker) Acquire(ctx context.Context, doctorID uuid.UUID, date, slot string) (func(), error) {
	key := slotLockKey(doctorID, date, slot)
	token := uuid.New().String()

	ok, err := l.redisClient.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire slot lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrSlotLocked
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), slotReleaseTimeout)
		defer cancel()

		if err := releaseSlotScript.Run(releaseCtx, l.redisClient, []string{key}, token).Err(); err != nil {
			l.log.Warnf("Failed to release slot lock %s: %+v", key, err)
		}
	}

	return release, nil
}
