package withdrawal

import "context"

type Repository interface {
	Create(ctx context.Context, r *Request) error
	Save(ctx context.Context, r *Request) error
	GetByRequestID(ctx context.Context, requestID string) (*Request, error)
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*Request, error)
	ListByGestor(ctx context.Context, gestorID string) ([]Request, error)
	ListByState(ctx context.Context, s State) ([]Request, error)
}
