package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Pagination describes the position of a page within a full result set.
type Pagination struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int64 `json:"total_pages"`
	CurrentPage int64 `json:"current_page"`
	PageSize    int64 `json:"page_size"`
}

// Page is one page of query results plus its pagination metadata.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPagination computes pagination metadata. Page and pageSize are
// clamped to at least 1; totalPages is ceil(totalItems/pageSize).
func NewPagination(totalItems, page, pageSize int64) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return Pagination{
		TotalItems:  totalItems,
		TotalPages:  (totalItems + pageSize - 1) / pageSize,
		CurrentPage: page,
		PageSize:    pageSize,
	}
}

// Skip returns the number of documents preceding the current page.
func (p Pagination) Skip() int64 {
	return (p.CurrentPage - 1) * p.PageSize
}

// paginate runs filter against coll and returns one page of decoded
// documents. The sort, when given, is applied before skip/limit. It
// performs no writes.
func paginate[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, page, pageSize int64, sort bson.D) (*Page[T], error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	meta := NewPagination(total, page, pageSize)

	opts := options.Find().SetSkip(meta.Skip()).SetLimit(meta.PageSize)
	if sort != nil {
		opts.SetSort(sort)
	}

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	data := []T{}
	if err := cur.All(ctx, &data); err != nil {
		return nil, err
	}

	return &Page[T]{Data: data, Pagination: meta}, nil
}
