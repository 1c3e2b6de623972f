package redisrepo

import (
	"context"
	"encoding/json"

	"github.com/aps-extract/extract-service/internal/model"
	"github.com/redis/go-redis/v9"
)

type SessionRepo struct {
	rdb *redis.Client
}

func NewSessionRepo(rdb *redis.Client) *SessionRepo {
	return &SessionRepo{rdb: rdb}
}

func (r *SessionRepo) Put(ctx context.Context, session *model.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// no expiry: a session lives until its one consuming fetch
	return r.rdb.Set(ctx, SessionPrefix(session.ID), sessionJSON, 0).Err()
}

func (r *SessionRepo) Take(ctx context.Context, id string) (*model.Session, error) {
	sessionCache, err := r.rdb.GetDel(ctx, SessionPrefix(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal([]byte(sessionCache), &session); err != nil {
		return nil, err
	}

	return &session, nil
}
