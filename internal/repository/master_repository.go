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

var ErrMasterNotFound = errors.New("master session not found or expired")

// MasterRepository stores master working copies in Redis. Every save writes
// the whole table, so a conversion can never observe a partial edit, and the
// TTL discards the copy at session end.
type MasterRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewMasterRepository(rdb *redis.Client, ttl time.Duration) *MasterRepository {
	return &MasterRepository{rdb: rdb, ttl: ttl}
}

func masterKey(code string) string {
	return fmt.Sprintf("master:session:%s", code)
}

func (r *MasterRepository) Save(ctx context.Context, session *models.MasterSession) error {
	session.UpdatedAt = time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode master session: %w", err)
	}
	return r.rdb.Set(ctx, masterKey(session.Code), data, r.ttl).Err()
}

func (r *MasterRepository) Get(ctx context.Context, code string) (*models.MasterSession, error) {
	data, err := r.rdb.Get(ctx, masterKey(code)).Bytes()
	if err == redis.Nil {
		return nil, ErrMasterNotFound
	}
	if err != nil {
		return nil, err
	}

	var session models.MasterSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode master session: %w", err)
	}
	return &session, nil
}

func (r *MasterRepository) Delete(ctx context.Context, code string) error {
	return r.rdb.Del(ctx, masterKey(code)).Err()
}
