package queries_test

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/settlement"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockEligibleItemRepository struct{ mock.Mock }

func (m *MockEligibleItemRepository) List(
	ctx context.Context,
	direction settlement.Direction,
	filter ports.EligibilityFilter,
	page ports.Page,
) ([]settlement.EligibleItem, error) {
	args := m.Called(ctx, direction, filter, page)
	items, _ := args.Get(0).([]settlement.EligibleItem)
	return items, args.Error(1)
}

func (m *MockEligibleItemRepository) Summarize(
	ctx context.Context,
	direction settlement.Direction,
	filter ports.EligibilityFilter,
) (ports.EligibleSummary, error) {
	args := m.Called(ctx, direction, filter)
	return args.Get(0).(ports.EligibleSummary), args.Error(1)
}

func (m *MockEligibleItemRepository) Find(
	ctx context.Context,
	direction settlement.Direction,
	ids []kernel.UUID,
	exceptBundle *kernel.UUID,
) ([]settlement.EligibleItem, error) {
	args := m.Called(ctx, direction, ids, exceptBundle)
	items, _ := args.Get(0).([]settlement.EligibleItem)
	return items, args.Error(1)
}

type MockEligibilityCache struct{ mock.Mock }

func (m *MockEligibilityCache) GetSummary(
	ctx context.Context,
	direction settlement.Direction,
	filter ports.EligibilityFilter,
) (ports.EligibleSummary, ports.SummaryKey, bool, error) {
	args := m.Called(ctx, direction, filter)
	return args.Get(0).(ports.EligibleSummary), args.Get(1).(ports.SummaryKey), args.Bool(2), args.Error(3)
}

func (m *MockEligibilityCache) PutSummary(ctx context.Context, key ports.SummaryKey, summary ports.EligibleSummary) error {
	args := m.Called(ctx, key, summary)
	return args.Error(0)
}

func (m *MockEligibilityCache) Invalidate(ctx context.Context, directions ...settlement.Direction) error {
	args := m.Called(ctx, directions)
	return args.Error(0)
}

type MockBundleReader struct{ mock.Mock }

func (m *MockBundleReader) Get(ctx context.Context, id kernel.UUID) (*settlement.Bundle, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*settlement.Bundle)
	return b, args.Error(1)
}
