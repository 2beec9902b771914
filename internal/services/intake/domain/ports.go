package domain

import "context"

// ServicePort defines the service contract for intake
type ServicePort interface {
	Parse(ctx context.Context, in ParseInput) (ParseResult, error)
}
