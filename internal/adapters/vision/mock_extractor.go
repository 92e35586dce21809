package vision

import (
	"context"
	"pictoroute/internal/domain"
	"pictoroute/internal/ports"
	"sync/atomic"
)

// MockExtractor returns a fixed address list (or error) for any input.
type MockExtractor struct {
	Addresses []domain.Address
	Err       error

	calls atomic.Int32
}

func (m *MockExtractor) ExtractAddresses(ctx context.Context, images []ports.Image) ([]domain.Address, error) {
	m.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]domain.Address(nil), m.Addresses...), nil
}

func (m *MockExtractor) Calls() int {
	return int(m.calls.Load())
}
