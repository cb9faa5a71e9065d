package game

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/crawlforge/dungeon-api/internal/entities"
	"github.com/crawlforge/dungeon-api/internal/errors"
	redisclient "github.com/crawlforge/dungeon-api/internal/redis"
)

const (
	gameKeyPrefix = "game:"
	currentKey    = "game:current"

	// Error messages
	errGameNil     = "game cannot be nil"
	errGameIDEmpty = "game ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a Redis-backed session repository
func NewRedisRepository(client redisclient.Client) Repository {
	return &redisRepository{client: client}
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Game == nil {
		return nil, errors.InvalidArgument(errGameNil)
	}
	if input.Game.ID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	input.Game.Version = 1

	data, err := json.Marshal(input.Game)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal game")
	}

	// Claiming the current pointer first keeps the one-active-session
	// invariant even when two creates race
	claimed, err := r.client.SetNX(ctx, currentKey, input.Game.ID, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to claim current session")
	}
	if !claimed {
		return nil, errors.Conflict("a current game already exists")
	}

	if err := r.client.Set(ctx, gameKeyPrefix+input.Game.ID, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store game")
	}

	return &CreateOutput{Game: input.Game}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	data, err := r.client.Get(ctx, gameKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("game %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get game")
	}

	var g entities.Game
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal game")
	}

	return &GetOutput{Game: &g}, nil
}

func (r *redisRepository) GetCurrent(ctx context.Context) (*GetOutput, error) {
	id, err := r.client.Get(ctx, currentKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("no current game")
		}
		return nil, errors.Wrapf(err, "failed to resolve current game")
	}

	output, err := r.Get(ctx, GetInput{ID: id})
	if err != nil {
		// Dangling pointer; clean it up so the next create can proceed
		if errors.IsNotFound(err) {
			r.client.Del(ctx, currentKey)
		}
		return nil, err
	}

	return output, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Game == nil {
		return nil, errors.InvalidArgument(errGameNil)
	}
	if input.Game.ID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	key := gameKeyPrefix + input.Game.ID
	expected := input.Game.Version

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return errors.NotFoundf("game %s not found", input.Game.ID)
			}
			return errors.Wrapf(err, "failed to read game for save")
		}

		var stored entities.Game
		if err := json.Unmarshal([]byte(data), &stored); err != nil {
			return errors.Wrapf(err, "failed to unmarshal stored game")
		}

		if stored.Version != expected {
			return errors.Conflictf("game %s was modified concurrently (version %d, expected %d)",
				input.Game.ID, stored.Version, expected)
		}

		input.Game.Version = expected + 1
		payload, err := json.Marshal(input.Game)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal game")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		return err
	}

	if err := r.client.Watch(ctx, txf, key); err != nil {
		if err == redis.TxFailedErr {
			// The key changed between read and write
			input.Game.Version = expected
			return nil, errors.Conflictf("game %s was modified concurrently", input.Game.ID)
		}
		var structured *errors.Error
		if errors.As(err, &structured) && structured.Code == errors.CodeConflict {
			input.Game.Version = expected
		}
		return nil, errors.Wrap(err, "failed to save game")
	}

	return &SaveOutput{Game: input.Game}, nil
}

func (r *redisRepository) DeleteCurrent(ctx context.Context) (*DeleteCurrentOutput, error) {
	id, err := r.client.Get(ctx, currentKey).Result()
	if err != nil {
		if err == redis.Nil {
			return &DeleteCurrentOutput{Deleted: false}, nil
		}
		return nil, errors.Wrapf(err, "failed to resolve current game")
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, currentKey)
	pipe.Del(ctx, gameKeyPrefix+id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete game")
	}

	return &DeleteCurrentOutput{Deleted: true}, nil
}
