package usecase_test

import (
	"context"
	"encoding/json"
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

type scheduleMocks struct {
	eventRepo     *MockEventRepository
	legRepo       *MockLegRepository
	logisticsRepo *MockLogisticsRepository
	rosterRepo    *MockRosterRepository
	cacheRepo     *MockCacheRepository
}

func newScheduleUseCase() (*usecase.ScheduleUseCase, *scheduleMocks) {
	m := &scheduleMocks{
		eventRepo:     &MockEventRepository{},
		legRepo:       &MockLegRepository{},
		logisticsRepo: &MockLogisticsRepository{},
		rosterRepo:    &MockRosterRepository{},
		cacheRepo:     &MockCacheRepository{},
	}
	uc := usecase.NewScheduleUseCase(
		m.eventRepo, m.legRepo, m.logisticsRepo, m.rosterRepo, m.cacheRepo,
		zap.NewNop(), 5*time.Minute, 12*time.Hour,
	)
	return uc, m
}

func vanLeg(eventID uuid.UUID, vehicle, date, depTime, arrTime string) *domain.TransportLeg {
	v := vehicle
	return &domain.TransportLeg{
		ID:        uuid.New(),
		EventID:   eventID,
		Mode:      domain.ModeVan,
		Vehicle:   &v,
		Departure: domain.LegPoint{Date: date, Time: depTime, Location: "Service course"},
		Arrival:   domain.LegPoint{Date: date, Time: arrTime, Location: "Hotel du Parc"},
	}
}

func TestScheduleUseCase_GetSchedule_TeamViewGroupsDepartures(t *testing.T) {
	uc, m := newScheduleUseCase()
	ctx := context.Background()
	eventID := uuid.New()

	// 2025-06-06 is a Friday
	legA := vanLeg(eventID, "van-a", "2025-06-06", "08h00", "11h00")
	legB := vanLeg(eventID, "van-b", "2025-06-06", "08h00", "12h30")

	directory := &domain.NameDirectory{
		Riders: map[uuid.UUID]string{},
		Staff:  map[uuid.UUID]string{},
		Vehicles: map[string]string{
			"van-a": "Van A",
			"van-b": "Van B",
		},
	}

	m.cacheRepo.On("GetSchedule", ctx, eventID).Return(nil, nil)
	m.eventRepo.On("GetEvent", ctx, eventID).Return(&domain.Event{ID: eventID, StartDate: "2025-06-06"}, nil)
	m.legRepo.On("GetByEvent", ctx, eventID).Return([]*domain.TransportLeg{legA, legB}, nil)
	m.eventRepo.On("GetRaceDayInfo", ctx, eventID).Return(nil, nil)
	m.eventRepo.On("GetAccommodations", ctx, eventID).Return([]*domain.Accommodation{}, nil)
	m.rosterRepo.On("GetDirectory", ctx).Return(directory, nil)
	m.logisticsRepo.On("GetDays", ctx, eventID).Return([]domain.LogisticsDay{}, nil)
	m.cacheRepo.On("SetSchedule", ctx, eventID, mock.Anything, 5*time.Minute).Return(nil)

	resp, cached, err := uc.GetSchedule(ctx, eventID, usecase.ScheduleView{Mode: usecase.ViewTeam}, "")
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, domain.WeekdayFriday, resp.Days[0].Day)

	var descriptions []string
	for _, entry := range resp.Days[0].Entries {
		descriptions = append(descriptions, entry.Description)
	}
	assert.Contains(t, descriptions, "Departure of vehicles (Van A, Van B)")

	m.cacheRepo.AssertCalled(t, "SetSchedule", ctx, eventID, mock.Anything, 5*time.Minute)
}

func TestScheduleUseCase_GetSchedule_IndividualViewNeverGroups(t *testing.T) {
	uc, m := newScheduleUseCase()
	ctx := context.Background()
	eventID := uuid.New()
	riderID := uuid.New()

	// Same-time departures, but the rider only travels on Van A
	legA := vanLeg(eventID, "van-a", "2025-06-06", "08h00", "11h00")
	legA.Occupants = []domain.Occupant{{PersonID: riderID, Kind: domain.PersonRider}}
	legB := vanLeg(eventID, "van-b", "2025-06-06", "08h00", "12h30")

	directory := &domain.NameDirectory{
		Riders: map[uuid.UUID]string{riderID: "J. Anquetil"},
		Staff:  map[uuid.UUID]string{},
		Vehicles: map[string]string{
			"van-a": "Van A",
			"van-b": "Van B",
		},
	}

	m.eventRepo.On("GetEvent", ctx, eventID).Return(&domain.Event{ID: eventID, StartDate: "2025-06-06"}, nil)
	m.legRepo.On("GetByEvent", ctx, eventID).Return([]*domain.TransportLeg{legA, legB}, nil)
	m.eventRepo.On("GetRaceDayInfo", ctx, eventID).Return(nil, nil)
	m.eventRepo.On("GetAccommodations", ctx, eventID).Return([]*domain.Accommodation{}, nil)
	m.rosterRepo.On("GetDirectory", ctx).Return(directory, nil)
	m.logisticsRepo.On("GetDays", ctx, eventID).Return([]domain.LogisticsDay{}, nil)

	view := usecase.ScheduleView{Mode: usecase.ViewIndividual, PersonID: &riderID}
	resp, cached, err := uc.GetSchedule(ctx, eventID, view, "")
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, resp.Days, 1)

	var descriptions []string
	for _, entry := range resp.Days[0].Entries {
		descriptions = append(descriptions, entry.Description)
	}
	assert.Contains(t, descriptions, "Departure of vehicle Van A")
	assert.NotContains(t, descriptions, "Departure of vehicles (Van A, Van B)")
	for _, d := range descriptions {
		assert.NotContains(t, d, "Van B")
	}

	// Individual views are never cached
	m.cacheRepo.AssertNotCalled(t, "GetSchedule", mock.Anything, mock.Anything)
	m.cacheRepo.AssertNotCalled(t, "SetSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduleUseCase_GetSchedule_CacheHit(t *testing.T) {
	uc, m := newScheduleUseCase()
	ctx := context.Background()
	eventID := uuid.New()

	cachedResp := dto.ScheduleResponse{EventID: eventID, View: "team"}
	data, err := json.Marshal(cachedResp)
	require.NoError(t, err)

	m.cacheRepo.On("GetSchedule", ctx, eventID).Return(data, nil)

	resp, cached, err := uc.GetSchedule(ctx, eventID, usecase.ScheduleView{Mode: usecase.ViewTeam}, "")
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, eventID, resp.EventID)

	// A cache hit never touches storage
	m.eventRepo.AssertNotCalled(t, "GetEvent", mock.Anything, mock.Anything)
}

func TestScheduleUseCase_GetSchedule_SessionBypassesCacheAndApplesExclusions(t *testing.T) {
	uc, m := newScheduleUseCase()
	ctx := context.Background()
	eventID := uuid.New()

	leg := vanLeg(eventID, "van-a", "2025-06-06", "08h00", "11h00")
	arrivalID := "leg:" + leg.ID.String() + ":arrival"

	directory := &domain.NameDirectory{
		Riders:   map[uuid.UUID]string{},
		Staff:    map[uuid.UUID]string{},
		Vehicles: map[string]string{"van-a": "Van A"},
	}

	m.eventRepo.On("GetEvent", ctx, eventID).Return(&domain.Event{ID: eventID, StartDate: "2025-06-06"}, nil)
	m.legRepo.On("GetByEvent", ctx, eventID).Return([]*domain.TransportLeg{leg}, nil)
	m.eventRepo.On("GetRaceDayInfo", ctx, eventID).Return(nil, nil)
	m.eventRepo.On("GetAccommodations", ctx, eventID).Return([]*domain.Accommodation{}, nil)
	m.rosterRepo.On("GetDirectory", ctx).Return(directory, nil)
	m.logisticsRepo.On("GetDays", ctx, eventID).Return([]domain.LogisticsDay{}, nil)
	m.cacheRepo.On("GetExcludedEntries", ctx, "session-1").Return(map[string]bool{arrivalID: true}, nil)

	resp, cached, err := uc.GetSchedule(ctx, eventID, usecase.ScheduleView{Mode: usecase.ViewTeam}, "session-1")
	require.NoError(t, err)
	assert.False(t, cached)

	for _, day := range resp.Days {
		for _, entry := range day.Entries {
			assert.NotEqual(t, arrivalID, entry.ID)
		}
	}

	m.cacheRepo.AssertNotCalled(t, "GetSchedule", mock.Anything, mock.Anything)
	m.cacheRepo.AssertNotCalled(t, "SetSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduleUseCase_GetSchedule_IndividualRequiresPerson(t *testing.T) {
	uc, _ := newScheduleUseCase()

	_, _, err := uc.GetSchedule(context.Background(), uuid.New(), usecase.ScheduleView{Mode: usecase.ViewIndividual}, "")
	assert.ErrorIs(t, err, errors.ErrPersonRequired)

	_, _, err = uc.GetSchedule(context.Background(), uuid.New(), usecase.ScheduleView{Mode: "invalid"}, "")
	assert.ErrorIs(t, err, errors.ErrInvalidViewMode)
}

func TestScheduleUseCase_CreateManualEntry_InvalidDay(t *testing.T) {
	uc, _ := newScheduleUseCase()

	_, err := uc.CreateManualEntry(context.Background(), uuid.New(), dto.ManualEntryRequest{
		Day:         "someday",
		Time:        "18h00",
		Description: "Massage",
	})
	assert.ErrorIs(t, err, errors.ErrInvalidDay)
}

func TestScheduleUseCase_CreateManualEntry_PersistsAndInvalidates(t *testing.T) {
	uc, m := newScheduleUseCase()
	ctx := context.Background()
	eventID := uuid.New()

	m.eventRepo.On("GetEvent", ctx, eventID).Return(&domain.Event{ID: eventID}, nil)
	m.logisticsRepo.On("GetDays", ctx, eventID).Return([]domain.LogisticsDay{}, nil)
	m.logisticsRepo.On("SaveDays", ctx, eventID, mock.Anything).Return(nil)
	m.cacheRepo.On("InvalidateSchedule", ctx, eventID).Return(nil)

	resp, err := uc.CreateManualEntry(ctx, eventID, dto.ManualEntryRequest{
		Day:         "friday",
		Time:        "18h00",
		Description: "Massage riders",
		Category:    "massage",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.WeekdayFriday, resp.Day)
	assert.Equal(t, domain.CategoryMassage, resp.Entry.Category)
	assert.False(t, resp.Entry.IsAutoGenerated)
	assert.NotEmpty(t, resp.Entry.ID)

	m.logisticsRepo.AssertCalled(t, "SaveDays", ctx, eventID, mock.Anything)
	m.cacheRepo.AssertCalled(t, "InvalidateSchedule", ctx, eventID)
}

func TestScheduleUseCase_VehicleLogistics(t *testing.T) {
	uc, m := newScheduleUseCase()
	ctx := context.Background()
	eventID := uuid.New()
	riderID := uuid.New()

	leg := vanLeg(eventID, "van-a", "2025-06-06", "09h00", "12h00")
	leg.Occupants = []domain.Occupant{{PersonID: riderID, Kind: domain.PersonRider}}
	leg.Stops = []domain.IntermediateStop{{
		ID:        uuid.New(),
		Date:      "2025-06-06",
		Time:      "08h15",
		Location:  "Gare de Lyon",
		Kind:      domain.StopPickup,
		PersonIDs: []uuid.UUID{riderID},
	}}

	directory := &domain.NameDirectory{
		Riders:   map[uuid.UUID]string{riderID: "J. Anquetil"},
		Staff:    map[uuid.UUID]string{},
		Vehicles: map[string]string{"van-a": "Van A"},
	}

	m.eventRepo.On("GetEvent", ctx, eventID).Return(&domain.Event{ID: eventID}, nil)
	m.legRepo.On("GetByEvent", ctx, eventID).Return([]*domain.TransportLeg{leg}, nil)
	m.eventRepo.On("GetRaceDayInfo", ctx, eventID).Return(nil, nil)
	m.eventRepo.On("GetAccommodations", ctx, eventID).Return([]*domain.Accommodation{}, nil)
	m.rosterRepo.On("GetDirectory", ctx).Return(directory, nil)

	resp, err := uc.VehicleLogistics(ctx, eventID, domain.WeekdayFriday)
	require.NoError(t, err)
	require.Len(t, resp.Boardings, 2)

	// Chronological: pickup stop before departure
	assert.Equal(t, "08h15", resp.Boardings[0].Time)
	assert.Equal(t, "J. Anquetil", resp.Boardings[0].Persons)
	assert.Equal(t, "09h00", resp.Boardings[1].Time)
	assert.Equal(t, "Van A", resp.Boardings[1].VehicleName)

	_, err = uc.VehicleLogistics(ctx, eventID, "someday")
	assert.ErrorIs(t, err, errors.ErrInvalidDay)
}
