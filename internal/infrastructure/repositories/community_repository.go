package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// SponsorshipRepositoryImpl implements domain.SponsorshipRepository using GORM
type SponsorshipRepositoryImpl struct {
	db *gorm.DB
}

// DBSponsorship represents the database model for Sponsorship
type DBSponsorship struct {
	ID              uint   `gorm:"primaryKey"`
	SponsorID       uint   `gorm:"index"`
	BeneficiaryName string `gorm:"size:128"`
	MonthlyAmount   int64
	Active          bool `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (DBSponsorship) TableName() string { return "sponsorships" }

// NewSponsorshipRepository creates a new sponsorship repository
func NewSponsorshipRepository(db *gorm.DB) domain.SponsorshipRepository {
	return &SponsorshipRepositoryImpl{db: db}
}

func (r *SponsorshipRepositoryImpl) Create(ctx context.Context, s *domain.Sponsorship) error {
	dbS := &DBSponsorship{
		SponsorID:       s.SponsorID,
		BeneficiaryName: s.BeneficiaryName,
		MonthlyAmount:   s.MonthlyAmount,
		Active:          s.Active,
	}
	if err := r.db.WithContext(ctx).Create(dbS).Error; err != nil {
		return err
	}
	s.ID = dbS.ID
	return nil
}

func (r *SponsorshipRepositoryImpl) ListBySponsor(ctx context.Context, sponsorID uint) ([]domain.Sponsorship, error) {
	var dbSs []DBSponsorship
	if err := r.db.WithContext(ctx).Where("sponsor_id = ?", sponsorID).Order("created_at DESC").Find(&dbSs).Error; err != nil {
		return nil, err
	}
	return sponsorshipsToDomain(dbSs), nil
}

func (r *SponsorshipRepositoryImpl) List(ctx context.Context) ([]domain.Sponsorship, error) {
	var dbSs []DBSponsorship
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dbSs).Error; err != nil {
		return nil, err
	}
	return sponsorshipsToDomain(dbSs), nil
}

func sponsorshipsToDomain(dbSs []DBSponsorship) []domain.Sponsorship {
	out := make([]domain.Sponsorship, 0, len(dbSs))
	for _, dbS := range dbSs {
		out = append(out, domain.Sponsorship{
			ID:              dbS.ID,
			SponsorID:       dbS.SponsorID,
			BeneficiaryName: dbS.BeneficiaryName,
			MonthlyAmount:   dbS.MonthlyAmount,
			Active:          dbS.Active,
			CreatedAt:       dbS.CreatedAt,
			UpdatedAt:       dbS.UpdatedAt,
		})
	}
	return out
}

// VolunteerRepositoryImpl implements domain.VolunteerRepository using GORM
type VolunteerRepositoryImpl struct {
	db *gorm.DB
}

// DBVolunteerProfile represents the database model for VolunteerProfile
type DBVolunteerProfile struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"uniqueIndex"`
	Skills       string `gorm:"size:512"`
	Availability string `gorm:"size:255"`
	Approved     bool   `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (DBVolunteerProfile) TableName() string { return "volunteer_profiles" }

// NewVolunteerRepository creates a new volunteer repository
func NewVolunteerRepository(db *gorm.DB) domain.VolunteerRepository {
	return &VolunteerRepositoryImpl{db: db}
}

func (r *VolunteerRepositoryImpl) Create(ctx context.Context, v *domain.VolunteerProfile) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&DBVolunteerProfile{}).Where("user_id = ?", v.UserID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrProfileExists
	}

	dbV := &DBVolunteerProfile{
		UserID:       v.UserID,
		Skills:       v.Skills,
		Availability: v.Availability,
		Approved:     v.Approved,
	}
	if err := r.db.WithContext(ctx).Create(dbV).Error; err != nil {
		return err
	}
	v.ID = dbV.ID
	return nil
}

func (r *VolunteerRepositoryImpl) FindByUser(ctx context.Context, userID uint) (*domain.VolunteerProfile, error) {
	var dbV DBVolunteerProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&dbV).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return volunteerToDomain(&dbV), nil
}

func (r *VolunteerRepositoryImpl) Approve(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&DBVolunteerProfile{}).Where("id = ?", id).Update("approved", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *VolunteerRepositoryImpl) List(ctx context.Context) ([]domain.VolunteerProfile, error) {
	var dbVs []DBVolunteerProfile
	if err := r.db.WithContext(ctx).Order("created_at").Find(&dbVs).Error; err != nil {
		return nil, err
	}
	out := make([]domain.VolunteerProfile, 0, len(dbVs))
	for i := range dbVs {
		out = append(out, *volunteerToDomain(&dbVs[i]))
	}
	return out, nil
}

func volunteerToDomain(v *DBVolunteerProfile) *domain.VolunteerProfile {
	return &domain.VolunteerProfile{
		ID:           v.ID,
		UserID:       v.UserID,
		Skills:       v.Skills,
		Availability: v.Availability,
		Approved:     v.Approved,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
