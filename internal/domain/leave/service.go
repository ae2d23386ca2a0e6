package leave

import "context"

// RequestService defines business logic for leave requests.
type RequestService interface {
	// Submit files a leave request for the authenticated user.
	Submit(ctx context.Context, req SubmitRequest) (RequestResponse, error)

	// ListMine returns the authenticated user's requests.
	ListMine(ctx context.Context) ([]RequestResponse, error)

	// ListPending returns all pending requests (admin).
	ListPending(ctx context.Context) ([]RequestResponse, error)

	// Approve approves a pending request (admin).
	Approve(ctx context.Context, req ReviewRequest) (RequestResponse, error)

	// Reject rejects a pending request with a note (admin).
	Reject(ctx context.Context, req ReviewRequest) (RequestResponse, error)
}
