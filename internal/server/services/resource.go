package services

import (
	"context"
	"errors"
	"net/url"

	"github.com/dmitrijs2005/adminpanel/internal/common"
	"github.com/dmitrijs2005/adminpanel/internal/server/models"
	"github.com/dmitrijs2005/adminpanel/internal/server/query"
)

// Repository is the storage a ResourceService works on.
type Repository[T models.Record[T]] interface {
	All(ctx context.Context) []T
	FindByID(ctx context.Context, id int) (T, error)
	Append(ctx context.Context, rec T) T
	Replace(ctx context.Context, id int, merge func(T) (T, error)) (T, error)
	RemoveByID(ctx context.Context, id int) (T, error)
}

// ResourceService implements the CRUD operations of one collection.
type ResourceService[T models.Record[T]] struct {
	kind   string
	repo   Repository[T]
	schema query.Schema[T]
}

// NewResourceService wires a collection. kind is the singular noun used in
// error messages, e.g. "post".
func NewResourceService[T models.Record[T]](kind string, repo Repository[T], schema query.Schema[T]) *ResourceService[T] {
	return &ResourceService[T]{kind: kind, repo: repo, schema: schema}
}

// Parse validates list parameters against the collection schema.
func (s *ResourceService[T]) Parse(values url.Values) (query.Descriptor, error) {
	return query.Parse(values, s.schema)
}

func (s *ResourceService[T]) List(ctx context.Context, d query.Descriptor) query.Page[T] {
	return query.Apply(s.repo.All(ctx), d, s.schema)
}

func (s *ResourceService[T]) Get(ctx context.Context, id int) (T, error) {
	rec, err := s.repo.FindByID(ctx, id)
	return rec, s.wrap(err)
}

// Create merges body onto a zero record and stores it under a new id.
func (s *ResourceService[T]) Create(ctx context.Context, body []byte) (T, error) {
	var zero T
	rec, err := models.MergeJSON(zero, body)
	if err != nil {
		return zero, err
	}
	return s.repo.Append(ctx, rec), nil
}

// Update shallow-merges body onto the stored record.
func (s *ResourceService[T]) Update(ctx context.Context, id int, body []byte) (T, error) {
	rec, err := s.repo.Replace(ctx, id, func(current T) (T, error) {
		return models.MergeJSON(current, body)
	})
	return rec, s.wrap(err)
}

func (s *ResourceService[T]) Delete(ctx context.Context, id int) (T, error) {
	rec, err := s.repo.RemoveByID(ctx, id)
	return rec, s.wrap(err)
}

func (s *ResourceService[T]) wrap(err error) error {
	var apiErr *common.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &apiErr):
		return err
	case errors.Is(err, common.ErrorNotFound):
		return common.NewError(common.ErrorNotFound, s.kind+" not found")
	default:
		return err
	}
}
