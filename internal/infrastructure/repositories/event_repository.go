package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// EventRepositoryImpl implements domain.EventRepository using GORM
type EventRepositoryImpl struct {
	db *gorm.DB
}

// DBEvent represents the database model for Event
type DBEvent struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	Location    string `gorm:"size:255"`
	Date        time.Time
	Capacity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (DBEvent) TableName() string { return "events" }

// DBEventRegistration represents the database model for EventRegistration
type DBEventRegistration struct {
	ID        uint `gorm:"primaryKey"`
	EventID   uint `gorm:"index;uniqueIndex:idx_event_user"`
	UserID    uint `gorm:"index;uniqueIndex:idx_event_user"`
	CreatedAt time.Time
}

func (DBEventRegistration) TableName() string { return "event_registrations" }

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) domain.EventRepository {
	return &EventRepositoryImpl{db: db}
}

// Create implements domain.EventRepository
func (r *EventRepositoryImpl) Create(ctx context.Context, e *domain.Event) error {
	dbEvent := r.domainToDB(e)
	if err := r.db.WithContext(ctx).Create(dbEvent).Error; err != nil {
		return err
	}
	e.ID = dbEvent.ID
	return nil
}

// FindByID implements domain.EventRepository
func (r *EventRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Event, error) {
	var dbEvent DBEvent
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbEvent).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbEvent), nil
}

// Update implements domain.EventRepository
func (r *EventRepositoryImpl) Update(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Save(r.domainToDB(e)).Error
}

// Delete implements domain.EventRepository
func (r *EventRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&DBEventRegistration{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&DBEvent{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrEventNotFound
		}
		return nil
	})
}

// List implements domain.EventRepository
func (r *EventRepositoryImpl) List(ctx context.Context) ([]domain.Event, error) {
	var dbEvents []DBEvent
	if err := r.db.WithContext(ctx).Order("date").Find(&dbEvents).Error; err != nil {
		return nil, err
	}
	events := make([]domain.Event, 0, len(dbEvents))
	for i := range dbEvents {
		events = append(events, *r.dbToDomain(&dbEvents[i]))
	}
	return events, nil
}

// Register implements domain.EventRepository. The composite unique index on
// (event_id, user_id) rejects duplicate registrations at the database.
func (r *EventRepositoryImpl) Register(ctx context.Context, eventID, userID uint) error {
	reg := &DBEventRegistration{EventID: eventID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(reg).Error; err != nil {
		var count int64
		r.db.WithContext(ctx).Model(&DBEventRegistration{}).
			Where("event_id = ? AND user_id = ?", eventID, userID).Count(&count)
		if count > 0 {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

// CountRegistrations implements domain.EventRepository
func (r *EventRepositoryImpl) CountRegistrations(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBEventRegistration{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

// ListRegistrations implements domain.EventRepository
func (r *EventRepositoryImpl) ListRegistrations(ctx context.Context, eventID uint) ([]domain.EventRegistration, error) {
	var dbRegs []DBEventRegistration
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("created_at").Find(&dbRegs).Error; err != nil {
		return nil, err
	}
	regs := make([]domain.EventRegistration, 0, len(dbRegs))
	for _, dbReg := range dbRegs {
		regs = append(regs, domain.EventRegistration{
			ID:        dbReg.ID,
			EventID:   dbReg.EventID,
			UserID:    dbReg.UserID,
			CreatedAt: dbReg.CreatedAt,
		})
	}
	return regs, nil
}

func (r *EventRepositoryImpl) domainToDB(e *domain.Event) *DBEvent {
	return &DBEvent{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Date:        e.Date,
		Capacity:    e.Capacity,
	}
}

func (r *EventRepositoryImpl) dbToDomain(e *DBEvent) *domain.Event {
	return &domain.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Date:        e.Date,
		Capacity:    e.Capacity,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
