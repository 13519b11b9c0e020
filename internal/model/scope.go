package model

// Scope carries per-request identity through the use case layer.
type Scope struct {
	UserID    string
	RequestID string
}
