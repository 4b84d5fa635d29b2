package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roadbook-microservice/internal/domain"
	"github.com/roadbook-microservice/internal/pkg/errors"
	"github.com/roadbook-microservice/internal/usecase"
	"github.com/roadbook-microservice/internal/usecase/dto"
)

type syncMocks struct {
	scheduleMocks
	streamRepo *MockStreamRepository
}

func newSyncUseCase() (*usecase.SyncUseCase, *syncMocks) {
	m := &syncMocks{
		scheduleMocks: scheduleMocks{
			eventRepo:     &MockEventRepository{},
			legRepo:       &MockLegRepository{},
			logisticsRepo: &MockLogisticsRepository{},
			rosterRepo:    &MockRosterRepository{},
			cacheRepo:     &MockCacheRepository{},
		},
		streamRepo: &MockStreamRepository{},
	}
	scheduleUC := usecase.NewScheduleUseCase(
		m.eventRepo, m.legRepo, m.logisticsRepo, m.rosterRepo, m.cacheRepo,
		zap.NewNop(), 5*time.Minute, 12*time.Hour,
	)
	uc := usecase.NewSyncUseCase(
		scheduleUC, m.legRepo, m.logisticsRepo, m.cacheRepo, m.streamRepo,
		zap.NewNop(), 12*time.Hour,
	)
	return uc, m
}

func strPtr(s string) *string { return &s }

func TestSyncUseCase_UpdateEntry_TimeEditWritesBackRounded(t *testing.T) {
	uc, m := newSyncUseCase()
	ctx := context.Background()
	eventID := uuid.New()
	legID := uuid.New()

	persisted := []domain.LogisticsDay{{
		Day: domain.WeekdayFriday,
		Entries: []domain.TimingEntry{{
			ID:              "leg:" + legID.String() + ":departure",
			Time:            "08h00",
			Description:     "Departure of vehicle Van A",
			Category:        domain.CategoryTransport,
			IsAutoGenerated: true,
			SourceLegID:     &legID,
			SourceField:     domain.LegFieldDeparture,
			VehicleName:     "Van A",
		}},
	}}

	m.logisticsRepo.On("GetDays", ctx, eventID).Return(persisted, nil)
	// "14h07" rounds to the nearest quarter hour for the source leg
	m.legRepo.On("UpdateDepartureTime", ctx, legID, "14h00").Return(nil)
	m.logisticsRepo.On("SaveDays", ctx, eventID, mock.Anything).Return(nil)
	m.cacheRepo.On("InvalidateSchedule", ctx, eventID).Return(nil)
	m.streamRepo.On("PublishToStream", ctx, domain.StreamScheduleRecompute, mock.Anything).Return(nil)

	resp, err := uc.UpdateEntry(ctx, eventID, "leg:"+legID.String()+":departure", dto.UpdateEntryRequest{
		Day:  "friday",
		Time: strPtr("14h07"),
	})
	require.NoError(t, err)

	// The schedule keeps the exact edited time; only the leg is rounded
	assert.Equal(t, "14h07", resp.Entry.Time)
	assert.True(t, resp.Entry.IsOverridden)

	m.legRepo.AssertCalled(t, "UpdateDepartureTime", ctx, legID, "14h00")
	m.streamRepo.AssertCalled(t, "PublishToStream", ctx, domain.StreamScheduleRecompute, mock.Anything)
}

func TestSyncUseCase_UpdateEntry_StopEditWritesBackToStop(t *testing.T) {
	uc, m := newSyncUseCase()
	ctx := context.Background()
	eventID := uuid.New()
	legID := uuid.New()
	stopID := uuid.New()

	persisted := []domain.LogisticsDay{{
		Day: domain.WeekdaySaturday,
		Entries: []domain.TimingEntry{{
			ID:              "stop:" + stopID.String(),
			Time:            "10h00",
			Description:     "Pickup of J. Anquetil at 10h00 at Gare de Lyon",
			Category:        domain.CategoryTransport,
			IsAutoGenerated: true,
			SourceLegID:     &legID,
			SourceStopID:    &stopID,
			SourceField:     domain.LegFieldStop,
		}},
	}}

	m.logisticsRepo.On("GetDays", ctx, eventID).Return(persisted, nil)
	// "10h38" rounds up to "10h45"
	m.legRepo.On("UpdateStopTime", ctx, stopID, "10h45").Return(nil)
	m.logisticsRepo.On("SaveDays", ctx, eventID, mock.Anything).Return(nil)
	m.cacheRepo.On("InvalidateSchedule", ctx, eventID).Return(nil)
	m.streamRepo.On("PublishToStream", ctx, domain.StreamScheduleRecompute, mock.Anything).Return(nil)

	_, err := uc.UpdateEntry(ctx, eventID, "stop:"+stopID.String(), dto.UpdateEntryRequest{
		Day:  "saturday",
		Time: strPtr("10h38"),
	})
	require.NoError(t, err)

	m.legRepo.AssertCalled(t, "UpdateStopTime", ctx, stopID, "10h45")
}

func TestSyncUseCase_UpdateEntry_DescriptionEditDoesNotWriteBack(t *testing.T) {
	uc, m := newSyncUseCase()
	ctx := context.Background()
	eventID := uuid.New()
	legID := uuid.New()

	persisted := []domain.LogisticsDay{{
		Day: domain.WeekdayFriday,
		Entries: []domain.TimingEntry{{
			ID:              "leg:" + legID.String() + ":arrival",
			Time:            "11h00",
			Description:     "Vehicles arriving at Hotel (Van A)",
			Category:        domain.CategoryTransport,
			IsAutoGenerated: true,
			SourceLegID:     &legID,
			SourceField:     domain.LegFieldArrival,
		}},
	}}

	m.logisticsRepo.On("GetDays", ctx, eventID).Return(persisted, nil)
	m.logisticsRepo.On("SaveDays", ctx, eventID, mock.Anything).Return(nil)
	m.cacheRepo.On("InvalidateSchedule", ctx, eventID).Return(nil)
	m.streamRepo.On("PublishToStream", ctx, domain.StreamScheduleRecompute, mock.Anything).Return(nil)

	resp, err := uc.UpdateEntry(ctx, eventID, "leg:"+legID.String()+":arrival", dto.UpdateEntryRequest{
		Day:         "friday",
		Description: strPtr("Vehicles arriving at the team hotel (Van A)"),
	})
	require.NoError(t, err)
	assert.Equal(t, "11h00", resp.Entry.Time)

	m.legRepo.AssertNotCalled(t, "UpdateArrivalTime", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncUseCase_UpdateEntry_MaterializesUnpersistedCandidate(t *testing.T) {
	uc, m := newSyncUseCase()
	ctx := context.Background()
	eventID := uuid.New()

	// No persisted days: the real-start entry exists only as a candidate
	m.logisticsRepo.On("GetDays", ctx, eventID).Return([]domain.LogisticsDay{}, nil)
	m.eventRepo.On("GetEvent", ctx, eventID).Return(&domain.Event{ID: eventID, StartDate: "2025-06-07"}, nil)
	m.legRepo.On("GetByEvent", ctx, eventID).Return([]*domain.TransportLeg{}, nil)
	m.eventRepo.On("GetRaceDayInfo", ctx, eventID).Return(&domain.RaceDayInfo{
		EventID:   eventID,
		RealStart: &domain.DateTimeRef{Time: "14h00"},
	}, nil)
	m.eventRepo.On("GetAccommodations", ctx, eventID).Return([]*domain.Accommodation{}, nil)
	m.rosterRepo.On("GetDirectory", ctx).Return(&domain.NameDirectory{
		Riders:   map[uuid.UUID]string{},
		Staff:    map[uuid.UUID]string{},
		Vehicles: map[string]string{},
	}, nil)
	m.logisticsRepo.On("SaveDays", ctx, eventID, mock.Anything).Return(nil)
	m.cacheRepo.On("InvalidateSchedule", ctx, eventID).Return(nil)
	m.streamRepo.On("PublishToStream", ctx, domain.StreamScheduleRecompute, mock.Anything).Return(nil)

	resp, err := uc.UpdateEntry(ctx, eventID, "race:real-start", dto.UpdateEntryRequest{
		Day:  "saturday",
		Time: strPtr("14h30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "14h30", resp.Entry.Time)
	assert.True(t, resp.Entry.IsOverridden)
	assert.Equal(t, domain.WeekdaySaturday, resp.Day)

	// Race entries have no leg provenance, nothing to write back
	m.legRepo.AssertNotCalled(t, "UpdateDepartureTime", mock.Anything, mock.Anything, mock.Anything)
	m.logisticsRepo.AssertCalled(t, "SaveDays", ctx, eventID, mock.Anything)
}

func TestSyncUseCase_UpdateEntry_UnknownEntry(t *testing.T) {
	uc, m := newSyncUseCase()
	ctx := context.Background()
	eventID := uuid.New()

	m.logisticsRepo.On("GetDays", ctx, eventID).Return([]domain.LogisticsDay{}, nil)
	m.eventRepo.On("GetEvent", ctx, eventID).Return(&domain.Event{ID: eventID}, nil)
	m.legRepo.On("GetByEvent", ctx, eventID).Return([]*domain.TransportLeg{}, nil)
	m.eventRepo.On("GetRaceDayInfo", ctx, eventID).Return(nil, nil)
	m.eventRepo.On("GetAccommodations", ctx, eventID).Return([]*domain.Accommodation{}, nil)
	m.rosterRepo.On("GetDirectory", ctx).Return(&domain.NameDirectory{
		Riders:   map[uuid.UUID]string{},
		Staff:    map[uuid.UUID]string{},
		Vehicles: map[string]string{},
	}, nil)

	_, err := uc.UpdateEntry(ctx, eventID, "no-such-entry", dto.UpdateEntryRequest{
		Day:  "friday",
		Time: strPtr("09h00"),
	})
	assert.ErrorIs(t, err, errors.ErrEntryNotFound)
}

func TestSyncUseCase_DeleteEntry_AutoEntrySuppressedForSession(t *testing.T) {
	uc, m := newSyncUseCase()
	ctx := context.Background()
	eventID := uuid.New()
	entryID := "race:meal"

	// Unmaterialized, so nothing to remove from storage
	m.logisticsRepo.On("GetDays", ctx, eventID).Return([]domain.LogisticsDay{}, nil)
	m.cacheRepo.On("AddExcludedEntry", ctx, "session-1", entryID, 12*time.Hour).Return(nil)
	m.cacheRepo.On("InvalidateSchedule", ctx, eventID).Return(nil)
	m.streamRepo.On("PublishToStream", ctx, domain.StreamScheduleRecompute, mock.Anything).Return(nil)

	err := uc.DeleteEntry(ctx, eventID, entryID, "session-1")
	require.NoError(t, err)

	m.cacheRepo.AssertCalled(t, "AddExcludedEntry", ctx, "session-1", entryID, 12*time.Hour)
	m.logisticsRepo.AssertNotCalled(t, "SaveDays", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncUseCase_DeleteEntry_AutoEntryRequiresSession(t *testing.T) {
	uc, m := newSyncUseCase()
	ctx := context.Background()
	eventID := uuid.New()

	m.logisticsRepo.On("GetDays", ctx, eventID).Return([]domain.LogisticsDay{}, nil)

	// Without a session the delete could not stick, so it is rejected
	err := uc.DeleteEntry(ctx, eventID, "race:meal", "")
	assert.ErrorIs(t, err, errors.ErrInvalidRequest)

	m.logisticsRepo.AssertNotCalled(t, "SaveDays", mock.Anything, mock.Anything, mock.Anything)
	m.cacheRepo.AssertNotCalled(t, "AddExcludedEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.streamRepo.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncUseCase_DeleteEntry_ManualEntryRemovedPermanently(t *testing.T) {
	uc, m := newSyncUseCase()
	ctx := context.Background()
	eventID := uuid.New()
	entryID := uuid.NewString()

	persisted := []domain.LogisticsDay{{
		Day: domain.WeekdayFriday,
		Entries: []domain.TimingEntry{{
			ID:          entryID,
			Time:        "18h00",
			Description: "Massage riders",
			Category:    domain.CategoryMassage,
		}},
	}}

	m.logisticsRepo.On("GetDays", ctx, eventID).Return(persisted, nil)
	m.logisticsRepo.On("SaveDays", ctx, eventID, mock.Anything).Return(nil)
	m.cacheRepo.On("InvalidateSchedule", ctx, eventID).Return(nil)
	m.streamRepo.On("PublishToStream", ctx, domain.StreamScheduleRecompute, mock.Anything).Return(nil)

	err := uc.DeleteEntry(ctx, eventID, entryID, "session-1")
	require.NoError(t, err)

	m.logisticsRepo.AssertCalled(t, "SaveDays", ctx, eventID, mock.Anything)
	// Manual entries are not auto-generated, no session suppression
	m.cacheRepo.AssertNotCalled(t, "AddExcludedEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncUseCase_RestoreEntry(t *testing.T) {
	uc, m := newSyncUseCase()
	ctx := context.Background()
	eventID := uuid.New()

	m.cacheRepo.On("RemoveExcludedEntry", ctx, "session-1", "race:meal").Return(nil)
	m.cacheRepo.On("InvalidateSchedule", ctx, eventID).Return(nil)
	m.streamRepo.On("PublishToStream", ctx, domain.StreamScheduleRecompute, mock.Anything).Return(nil)

	err := uc.RestoreEntry(ctx, eventID, "race:meal", "session-1")
	require.NoError(t, err)
	m.cacheRepo.AssertCalled(t, "RemoveExcludedEntry", ctx, "session-1", "race:meal")

	// A session id is mandatory: exclusions are session state
	err = uc.RestoreEntry(ctx, eventID, "race:meal", "")
	assert.ErrorIs(t, err, errors.ErrInvalidRequest)
}
