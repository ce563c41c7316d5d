package hostmock

import (
	"context"
	"fmt"

	"github.com/Torteous44/santaCruzService/internal/imagehost"
)

// Host is a function-backed mock that satisfies imagehost.Host. It counts
// calls so tests can assert "exactly once" behavior.
type Host struct {
	StoreFn  func(ctx context.Context, filePath string, meta imagehost.UploadMetadata) (string, error)
	DeleteFn func(ctx context.Context, hostID string) error

	StoreCalls  int
	DeleteCalls int
}

func (m *Host) Store(ctx context.Context, filePath string, meta imagehost.UploadMetadata) (string, error) {
	m.StoreCalls++
	if m.StoreFn != nil {
		return m.StoreFn(ctx, filePath, meta)
	}
	return "mock-host-id.jpg", nil
}

func (m *Host) Delete(ctx context.Context, hostID string) error {
	m.DeleteCalls++
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, hostID)
	}
	return nil
}

func (m *Host) DeliveryURL(hostID, variant string) string {
	return fmt.Sprintf("https://cdn.test/%s/%s", variant, hostID)
}
