package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/roadbook-microservice/internal/domain"
)

// MockEventRepository is a mock of EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) GetEvent(ctx context.Context, eventID uuid.UUID) (*domain.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepository) GetRaceDayInfo(ctx context.Context, eventID uuid.UUID) (*domain.RaceDayInfo, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RaceDayInfo), args.Error(1)
}

func (m *MockEventRepository) UpsertRaceDayInfo(ctx context.Context, info *domain.RaceDayInfo) error {
	args := m.Called(ctx, info)
	return args.Error(0)
}

func (m *MockEventRepository) GetAccommodations(ctx context.Context, eventID uuid.UUID) ([]*domain.Accommodation, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Accommodation), args.Error(1)
}

func (m *MockEventRepository) CountEvents(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockLegRepository is a mock of LegRepository
type MockLegRepository struct {
	mock.Mock
}

func (m *MockLegRepository) GetByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.TransportLeg, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TransportLeg), args.Error(1)
}

func (m *MockLegRepository) GetByID(ctx context.Context, legID uuid.UUID) (*domain.TransportLeg, error) {
	args := m.Called(ctx, legID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransportLeg), args.Error(1)
}

func (m *MockLegRepository) Create(ctx context.Context, leg *domain.TransportLeg) error {
	args := m.Called(ctx, leg)
	return args.Error(0)
}

func (m *MockLegRepository) Update(ctx context.Context, leg *domain.TransportLeg) error {
	args := m.Called(ctx, leg)
	return args.Error(0)
}

func (m *MockLegRepository) Delete(ctx context.Context, legID uuid.UUID) error {
	args := m.Called(ctx, legID)
	return args.Error(0)
}

func (m *MockLegRepository) UpdateDepartureTime(ctx context.Context, legID uuid.UUID, timeOfDay string) error {
	args := m.Called(ctx, legID, timeOfDay)
	return args.Error(0)
}

func (m *MockLegRepository) UpdateArrivalTime(ctx context.Context, legID uuid.UUID, timeOfDay string) error {
	args := m.Called(ctx, legID, timeOfDay)
	return args.Error(0)
}

func (m *MockLegRepository) UpdateStopTime(ctx context.Context, stopID uuid.UUID, timeOfDay string) error {
	args := m.Called(ctx, stopID, timeOfDay)
	return args.Error(0)
}

func (m *MockLegRepository) CountLegs(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockLogisticsRepository is a mock of LogisticsRepository
type MockLogisticsRepository struct {
	mock.Mock
}

func (m *MockLogisticsRepository) GetDays(ctx context.Context, eventID uuid.UUID) ([]domain.LogisticsDay, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LogisticsDay), args.Error(1)
}

func (m *MockLogisticsRepository) SaveDays(ctx context.Context, eventID uuid.UUID, days []domain.LogisticsDay) error {
	args := m.Called(ctx, eventID, days)
	return args.Error(0)
}

func (m *MockLogisticsRepository) CountEntries(ctx context.Context) (map[domain.EntryCategory]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.EntryCategory]int), args.Error(1)
}

// MockRosterRepository is a mock of RosterRepository
type MockRosterRepository struct {
	mock.Mock
}

func (m *MockRosterRepository) GetDirectory(ctx context.Context) (*domain.NameDirectory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NameDirectory), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetSchedule(ctx context.Context, eventID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) SetSchedule(ctx context.Context, eventID uuid.UUID, data []byte, ttl time.Duration) error {
	args := m.Called(ctx, eventID, data, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) InvalidateSchedule(ctx context.Context, eventID uuid.UUID) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockCacheRepository) AddExcludedEntry(ctx context.Context, sessionID string, entryID string, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, entryID, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) RemoveExcludedEntry(ctx context.Context, sessionID string, entryID string) error {
	args := m.Called(ctx, sessionID, entryID)
	return args.Error(0)
}

func (m *MockCacheRepository) GetExcludedEntries(ctx context.Context, sessionID string) (map[string]bool, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}
