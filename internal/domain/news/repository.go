package news

import "context"

type Repository interface {
	Create(ctx context.Context, n *Item) error
	Save(ctx context.Context, n *Item) error
	Delete(ctx context.Context, itemID string) error
	GetByItemID(ctx context.Context, itemID string) (*Item, error)
	List(ctx context.Context) ([]Item, error)
}
