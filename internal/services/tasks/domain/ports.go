package domain

import "context"

// ServicePort defines the service contract for tasks
type ServicePort interface {
	Create(ctx context.Context, in CreateInput) (Task, error)
	Get(ctx context.Context, in GetInput) (Task, error)
	Update(ctx context.Context, in UpdateInput) (Task, error)
	Delete(ctx context.Context, in DeleteInput) (DeleteResult, error)
	List(ctx context.Context, in ListInput) ([]Task, error)
	BulkStatus(ctx context.Context, in BulkStatusInput) (BulkStatusResult, error)
}
