package domain

import "context"

// Publisher is the write side handed to other modules
type Publisher interface {
	Publish(ctx context.Context, typ Type, message, taskID string) Notification
}

// ServicePort defines the full notify contract
type ServicePort interface {
	Publisher
	List(ctx context.Context, in ListInput) ([]Notification, error)
	MarkRead(ctx context.Context, in MarkReadInput) (MarkReadResult, error)
	Clear(ctx context.Context) (ClearResult, error)
}
