package domain

// ListInput filters the notification feed
type ListInput struct {
	UnreadOnly bool `json:"unread_only,omitempty"`
	Limit      int  `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

// MarkReadInput marks specific entries read, or everything when IDs is empty
type MarkReadInput struct {
	IDs []string `json:"ids,omitempty" validate:"omitempty,max=100,dive,uuid4"`
}

// MarkReadResult reports how many entries changed
type MarkReadResult struct {
	Marked int `json:"marked"`
}

// ClearResult reports how many entries were dropped
type ClearResult struct {
	Cleared int `json:"cleared"`
}
