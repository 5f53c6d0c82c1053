package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/keiichiro05/LO-converter/internal/models"
	"github.com/redis/go-redis/v9"
)

var ErrConversionNotFound = errors.New("conversion session not found or expired")

const recentConversionsKey = "conversion:recent"

// ConversionRepository stores conversion session records and progress in
// Redis, plus a capped index of recent codes for listing.
type ConversionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewConversionRepository(rdb *redis.Client, ttl time.Duration) *ConversionRepository {
	return &ConversionRepository{rdb: rdb, ttl: ttl}
}

func conversionKey(code string) string {
	return fmt.Sprintf("conversion:session:%s", code)
}

func progressKey(code string) string {
	return fmt.Sprintf("conversion:progress:%s", code)
}

// Create saves a new record and pushes it onto the recent index.
func (r *ConversionRepository) Create(ctx context.Context, session *models.ConversionSession) error {
	if err := r.Update(ctx, session); err != nil {
		return err
	}
	if err := r.rdb.LPush(ctx, recentConversionsKey, session.Code).Err(); err != nil {
		return err
	}
	// Cap the index; expired records are skipped on read.
	return r.rdb.LTrim(ctx, recentConversionsKey, 0, 499).Err()
}

func (r *ConversionRepository) Update(ctx context.Context, session *models.ConversionSession) error {
	session.UpdatedAt = time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode conversion session: %w", err)
	}
	return r.rdb.Set(ctx, conversionKey(session.Code), data, r.ttl).Err()
}

func (r *ConversionRepository) Get(ctx context.Context, code string) (*models.ConversionSession, error) {
	data, err := r.rdb.Get(ctx, conversionKey(code)).Bytes()
	if err == redis.Nil {
		return nil, ErrConversionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session models.ConversionSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode conversion session: %w", err)
	}
	return &session, nil
}

// List returns a page of recent conversions, newest first. Codes whose
// records have expired are skipped.
func (r *ConversionRepository) List(ctx context.Context, limit, offset int) ([]models.ConversionSession, int64, error) {
	total, err := r.rdb.LLen(ctx, recentConversionsKey).Result()
	if err != nil {
		return nil, 0, err
	}

	codes, err := r.rdb.LRange(ctx, recentConversionsKey, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, 0, err
	}

	sessions := make([]models.ConversionSession, 0, len(codes))
	for _, code := range codes {
		session, err := r.Get(ctx, code)
		if err == ErrConversionNotFound {
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, *session)
	}

	return sessions, total, nil
}

// SetProgress records conversion progress as a percentage.
func (r *ConversionRepository) SetProgress(ctx context.Context, code string, pct float64) error {
	return r.rdb.Set(ctx, progressKey(code), fmt.Sprintf("%.2f", pct), r.ttl).Err()
}

// GetProgress reads conversion progress; 0 when unset.
func (r *ConversionRepository) GetProgress(ctx context.Context, code string) float64 {
	val, err := r.rdb.Get(ctx, progressKey(code)).Float64()
	if err != nil {
		return 0
	}
	return val
}
