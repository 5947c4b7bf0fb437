package service

import (
	"context"
	"encoding/json"
	"time"

	"autocenter/internal/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const produtoCacheTTL = 10 * time.Minute

func produtoCacheKey(id uuid.UUID) string { return "produto:" + id.String() }

// produtoCache is a read-through cache of product responses. A nil client
// turns every call into a no-op.
type produtoCache struct{ rdb *redis.Client }

func (c produtoCache) get(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, bool) {
	if c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, produtoCacheKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var resp dto.ProdutoResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (c produtoCache) set(ctx context.Context, id uuid.UUID, resp *dto.ProdutoResponse) {
	if c.rdb == nil || resp == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, produtoCacheKey(id), raw, produtoCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("produto_id", id.String()).Msg("cache: set failed")
	}
}

func (c produtoCache) invalidate(ctx context.Context, ids ...uuid.UUID) {
	if c.rdb == nil || len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = produtoCacheKey(id)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Int("keys", len(keys)).Msg("cache: invalidate failed")
	}
}
