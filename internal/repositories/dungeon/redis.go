package dungeon

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/crawlforge/dungeon-api/internal/entities"
	"github.com/crawlforge/dungeon-api/internal/errors"
	redisclient "github.com/crawlforge/dungeon-api/internal/redis"
)

const (
	dungeonKeyPrefix = "dungeon:"
	indexKey         = "dungeons"

	// Error messages
	errDungeonNil     = "dungeon cannot be nil"
	errDungeonIDEmpty = "dungeon ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a Redis-backed dungeon repository
func NewRedisRepository(client redisclient.Client) Repository {
	return &redisRepository{client: client}
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Dungeon == nil {
		return nil, errors.InvalidArgument(errDungeonNil)
	}
	if input.Dungeon.ID == "" {
		return nil, errors.InvalidArgument(errDungeonIDEmpty)
	}

	data, err := json.Marshal(input.Dungeon)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal dungeon")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, dungeonKeyPrefix+input.Dungeon.ID, data, 0)
	pipe.SAdd(ctx, indexKey, input.Dungeon.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store dungeon")
	}

	return &CreateOutput{Dungeon: input.Dungeon}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errDungeonIDEmpty)
	}

	data, err := r.client.Get(ctx, dungeonKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("dungeon %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get dungeon")
	}

	var d entities.Dungeon
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal dungeon")
	}

	return &GetOutput{Dungeon: &d}, nil
}

func (r *redisRepository) ListIDs(ctx context.Context) (*ListIDsOutput, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list dungeons")
	}
	return &ListIDsOutput{IDs: ids}, nil
}
