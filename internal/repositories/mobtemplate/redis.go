package mobtemplate

import (
	"context"
	"encoding/json"

	"github.com/crawlforge/dungeon-api/internal/entities"
	"github.com/crawlforge/dungeon-api/internal/errors"
	redisclient "github.com/crawlforge/dungeon-api/internal/redis"
)

const (
	templateKeyPrefix = "mob_template:"
	indexKey          = "mob_templates"
)

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a Redis-backed mob template repository
func NewRedisRepository(client redisclient.Client) Repository {
	return &redisRepository{client: client}
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) List(ctx context.Context) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list mob templates")
	}

	templates := make([]entities.MobTemplate, 0, len(ids))
	for _, id := range ids {
		data, err := r.client.Get(ctx, templateKeyPrefix+id).Result()
		if err != nil {
			// Index entries without a record are skipped rather than
			// failing the whole listing
			continue
		}

		var t entities.MobTemplate
		if err := json.Unmarshal([]byte(data), &t); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal mob template %s", id)
		}
		templates = append(templates, t)
	}

	return &ListOutput{Templates: templates}, nil
}

func (r *redisRepository) Seed(ctx context.Context, input SeedInput) (*SeedOutput, error) {
	if len(input.Templates) == 0 {
		return &SeedOutput{}, nil
	}

	pipe := r.client.TxPipeline()
	for _, t := range input.Templates {
		if t.ID == "" {
			return nil, errors.InvalidArgument("mob template ID cannot be empty")
		}
		data, err := json.Marshal(t)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal mob template %s", t.ID)
		}
		pipe.Set(ctx, templateKeyPrefix+t.ID, data, 0)
		pipe.SAdd(ctx, indexKey, t.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to seed mob templates")
	}

	return &SeedOutput{Seeded: len(input.Templates)}, nil
}
