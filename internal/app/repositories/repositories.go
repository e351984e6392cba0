package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	InstructorRepository  *InstructorRepository
	OfferingRepository    *OfferingRepository
	ParticipantRepository *ParticipantRepository
	SlotRepository        *SlotRepository
	ExceptionRepository   *ExceptionRepository
	TrialRepository       *TrialRepository
	CreditRepository      *CreditRepository
	AttendanceRepository  *AttendanceRepository
	DraftRepository       *DraftRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		InstructorRepository:  NewInstructorRepository(db),
		OfferingRepository:    NewOfferingRepository(db),
		ParticipantRepository: NewParticipantRepository(db),
		SlotRepository:        NewSlotRepository(db),
		ExceptionRepository:   NewExceptionRepository(db),
		TrialRepository:       NewTrialRepository(db),
		CreditRepository:      NewCreditRepository(db),
		AttendanceRepository:  NewAttendanceRepository(db),
		DraftRepository:       NewDraftRepository(db),
	}
}
