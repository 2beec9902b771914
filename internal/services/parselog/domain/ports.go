package domain

import "context"

// Writer is the sink handed to intake
type Writer interface {
	Write(ctx context.Context, recs ...Record) error
}
