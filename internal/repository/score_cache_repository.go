package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// ScoreCacheRepository 缓存问卷最大可能得分
type ScoreCacheRepository struct {
	Redis *redis.Client
	TTL   time.Duration
	ctx   context.Context
}

func NewScoreCacheRepository(rdb *redis.Client, ttl time.Duration) *ScoreCacheRepository {
	return &ScoreCacheRepository{
		Redis: rdb,
		TTL:   ttl,
		ctx:   context.Background(),
	}
}

func maxScoreKey(questionnaireID uint) string {
	return fmt.Sprintf("questionnaire:max_score:%d", questionnaireID)
}

// GetMaxScore 第二个返回值表示是否命中缓存
func (r *ScoreCacheRepository) GetMaxScore(questionnaireID uint) (int, bool, error) {
	val, err := r.Redis.Get(r.ctx, maxScoreKey(questionnaireID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	score, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}

func (r *ScoreCacheRepository) SetMaxScore(questionnaireID uint, score int) error {
	return r.Redis.Set(r.ctx, maxScoreKey(questionnaireID), score, r.TTL).Err()
}

func (r *ScoreCacheRepository) InvalidateMaxScore(questionnaireID uint) error {
	return r.Redis.Del(r.ctx, maxScoreKey(questionnaireID)).Err()
}
