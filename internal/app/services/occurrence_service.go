package services

import (
	"context"
	"fmt"
	"time"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/app/repositories"
	"github.com/emre/studioclass/internal/domain"
	"github.com/emre/studioclass/internal/pkg/helpers"
)

// OccurrenceService resolves the day view: the weekly template merged
// with the date's reschedules, trials and credit drop-ins.
type OccurrenceService interface {
	GetDaySchedule(ctx context.Context, date time.Time, offeringID *int64) (*DaySchedule, error)
	GetOccurrence(ctx context.Context, slotID int64, date time.Time) (*domain.Occurrence, error)
}

// OccurrenceView pairs a resolved occurrence with its derived occupancy.
type OccurrenceView struct {
	Occurrence *domain.Occurrence `json:"occurrence"`
	Occupancy  domain.Occupancy   `json:"occupancy"`

	// Unavailable flags a template slot whose time no longer fits the
	// offering's configured windows. The slot still resolves; the flag is
	// for the desk to see stale templates.
	Unavailable bool `json:"unavailable,omitempty"`

	// Submitted is true when attendance for the occurrence is locked.
	Submitted bool `json:"submitted"`
}

// DaySchedule is the full resolved view of one calendar date.
type DaySchedule struct {
	Date        time.Time             `json:"date"`
	Occurrences []OccurrenceView      `json:"occurrences"`
	Blocks      []domain.BlockVacancy `json:"blocks"`
}

type occurrenceServiceImpl struct {
	slotRepo       *repositories.SlotRepository
	exceptionRepo  *repositories.ExceptionRepository
	trialRepo      *repositories.TrialRepository
	creditRepo     *repositories.CreditRepository
	attendanceRepo *repositories.AttendanceRepository
}

// NewOccurrenceService creates a new occurrence service instance
func NewOccurrenceService(
	slotRepo *repositories.SlotRepository,
	exceptionRepo *repositories.ExceptionRepository,
	trialRepo *repositories.TrialRepository,
	creditRepo *repositories.CreditRepository,
	attendanceRepo *repositories.AttendanceRepository,
) OccurrenceService {
	return &occurrenceServiceImpl{
		slotRepo:       slotRepo,
		exceptionRepo:  exceptionRepo,
		trialRepo:      trialRepo,
		creditRepo:     creditRepo,
		attendanceRepo: attendanceRepo,
	}
}

// GetDaySchedule resolves every active slot falling on the date, with
// occupancy per occurrence and vacancy aggregated per time block.
func (s *occurrenceServiceImpl) GetDaySchedule(ctx context.Context, date time.Time, offeringID *int64) (*DaySchedule, error) {
	date = helpers.DateOnly(date)

	slots, err := s.slotRepo.ListActiveByWeekday(ctx, models.Weekday(date.Weekday()), offeringID)
	if err != nil {
		return nil, fmt.Errorf("error loading slots for day: %w", err)
	}

	overlays, err := s.loadOverlays(ctx, date)
	if err != nil {
		return nil, err
	}

	occurrences := domain.ResolveDay(date, slots, overlays)

	submitted, err := s.attendanceRepo.ListSubmittedKeys(ctx, date, date)
	if err != nil {
		return nil, fmt.Errorf("error loading submitted records: %w", err)
	}

	day := &DaySchedule{
		Date:   date,
		Blocks: domain.AggregateVacancy(occurrences),
	}
	for _, occ := range occurrences {
		day.Occurrences = append(day.Occurrences, OccurrenceView{
			Occurrence:  occ,
			Occupancy:   domain.ComputeOccupancy(occ, occ.Slot.Offering.EffectiveCapacity()),
			Unavailable: !domain.IsAllowed(occ.Slot.Offering, occ.Slot.Weekday, occ.Slot.Start, occ.Slot.End),
			Submitted:   submitted[models.SubmissionKey(occ.Slot.ID, date)],
		})
	}
	return day, nil
}

// GetOccurrence resolves a single slot occurrence with its full roster
func (s *occurrenceServiceImpl) GetOccurrence(ctx context.Context, slotID int64, date time.Time) (*domain.Occurrence, error) {
	date = helpers.DateOnly(date)

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	overlays, err := s.loadOverlays(ctx, date)
	if err != nil {
		return nil, err
	}
	return domain.ResolveOccurrence(slot, date, overlays), nil
}

// loadOverlays gathers the date-specific inputs the resolver merges over
// the weekly template. Approved exceptions are fetched for both sides of
// the date so incoming moves land even when the origin slot meets on a
// different weekday.
func (s *occurrenceServiceImpl) loadOverlays(ctx context.Context, date time.Time) (domain.Overlays, error) {
	day := date.Format(helpers.DateFormat)

	exceptions, err := s.exceptionRepo.ListApprovedForDate(ctx, day)
	if err != nil {
		return domain.Overlays{}, fmt.Errorf("error loading reschedule exceptions: %w", err)
	}
	trials, err := s.trialRepo.ListForDate(ctx, day)
	if err != nil {
		return domain.Overlays{}, fmt.Errorf("error loading trial bookings: %w", err)
	}
	credits, err := s.creditRepo.ListForDate(ctx, day)
	if err != nil {
		return domain.Overlays{}, fmt.Errorf("error loading credit usages: %w", err)
	}

	return domain.Overlays{
		Exceptions: exceptions,
		Trials:     trials,
		Credits:    credits,
	}, nil
}
