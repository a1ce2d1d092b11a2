package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/MiracleAriel/seminar12-gb-hw/internal/domain/shared"
)

const domain = "redis"

// ListClient is the subset of *redis.Client used by SubjectList.
type ListClient interface {
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
}

// SubjectList reads the reference subject list from a Redis list.
// It implements student.SubjectSource.
type SubjectList struct {
	client ListClient
	key    string
}

// NewSubjectList creates a list-backed subject source.
// An empty key falls back to DefaultSubjectsKey.
func NewSubjectList(client ListClient, key string) *SubjectList {
	if key == "" {
		key = DefaultSubjectsKey
	}
	return &SubjectList{client: client, key: key}
}

// LoadSubjects returns every element of the list in order.
func (l *SubjectList) LoadSubjects(ctx context.Context) ([]string, error) {
	subjects, err := l.client.LRange(ctx, l.key, 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, shared.WrapError(domain, "LoadSubjects", shared.ErrSourceUnavailable,
			fmt.Sprintf("cannot read list %s", l.key), err)
	}

	if len(subjects) == 0 {
		return nil, shared.NewDomainError(domain, "LoadSubjects", shared.ErrSourceFormat,
			fmt.Sprintf("list %s is empty or missing", l.key))
	}
	for i, s := range subjects {
		subjects[i] = strings.TrimSpace(s)
		if subjects[i] == "" {
			return nil, shared.NewDomainError(domain, "LoadSubjects", shared.ErrSourceFormat,
				fmt.Sprintf("empty subject name at index %d of %s", i, l.key))
		}
	}

	return subjects, nil
}

// Seed replaces the list with the given subjects atomically.
func (l *SubjectList) Seed(ctx context.Context, subjects []string) error {
	if len(subjects) == 0 {
		return shared.NewDomainError(domain, "Seed", shared.ErrSourceFormat, "nothing to seed")
	}

	values := make([]interface{}, len(subjects))
	for i, s := range subjects {
		values[i] = s
	}

	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, l.key)
		pipe.RPush(ctx, l.key, values...)
		return nil
	})
	if err != nil {
		return shared.WrapError(domain, "Seed", shared.ErrSourceUnavailable,
			fmt.Sprintf("cannot seed list %s", l.key), err)
	}

	return nil
}
