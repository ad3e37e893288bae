package resolve

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/doctrail/contact-cli/internal/accounts"
	"github.com/doctrail/contact-cli/internal/model"
)

// --- Store Mock ---

type mockStore struct {
	mock.Mock
}

func (m *mockStore) FindSupplier(ctx context.Context, key accounts.LookupKey, value string) (*model.Supplier, error) {
	args := m.Called(ctx, key, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Supplier), args.Error(1)
}

func (m *mockStore) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *mockStore) CreateAddress(ctx context.Context, addr model.Address) (int64, error) {
	args := m.Called(ctx, addr)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) CreateSupplier(ctx context.Context, draft model.SupplierDraft) (int64, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) Migrate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStore) Close() error {
	return m.Called().Error(0)
}

// --- Extractor Mock ---

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(ctx context.Context, image []byte, mediaType string) (model.ExtractedFields, error) {
	args := m.Called(ctx, image, mediaType)
	return args.Get(0).(model.ExtractedFields), args.Error(1)
}

// strPtr is a test helper for nullable identity fields.
func strPtr(s string) *string {
	return &s
}
