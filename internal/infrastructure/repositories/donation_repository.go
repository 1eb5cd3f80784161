package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// DonationRepositoryImpl implements domain.DonationRepository using GORM
type DonationRepositoryImpl struct {
	db *gorm.DB
}

// DBDonation represents the database model for Donation
type DBDonation struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        *uint  `gorm:"index"`
	DonorName     string `gorm:"size:128"`
	DonorEmail    string `gorm:"size:255"`
	Amount        int64
	Currency      string    `gorm:"size:8"`
	Status        string    `gorm:"index;size:16"`
	OrderID       string    `gorm:"uniqueIndex;size:64"`
	TransactionID string    `gorm:"size:64"`
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (DBDonation) TableName() string {
	return "donations"
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db *gorm.DB) domain.DonationRepository {
	return &DonationRepositoryImpl{db: db}
}

// Create implements domain.DonationRepository
func (r *DonationRepositoryImpl) Create(ctx context.Context, d *domain.Donation) error {
	dbDonation := r.domainToDB(d)
	if err := r.db.WithContext(ctx).Create(dbDonation).Error; err != nil {
		return err
	}
	d.ID = dbDonation.ID
	return nil
}

// FindByOrderID implements domain.DonationRepository
func (r *DonationRepositoryImpl) FindByOrderID(ctx context.Context, orderID string) (*domain.Donation, error) {
	var dbDonation DBDonation
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&dbDonation).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbDonation), nil
}

// Settle implements domain.DonationRepository. The status guard makes a
// terminal state sticky: once completed or failed, a later settle attempt
// from the racing path matches zero rows and the write is a no-op.
func (r *DonationRepositoryImpl) Settle(ctx context.Context, orderID string, status domain.DonationStatus, transactionID string) error {
	res := r.db.WithContext(ctx).Model(&DBDonation{}).
		Where("order_id = ? AND status = ?", orderID, string(domain.DonationPending)).
		Updates(map[string]interface{}{
			"status":         string(status),
			"transaction_id": transactionID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&DBDonation{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrDonationNotFound
		}
		// Already settled by the other reconciliation path.
	}
	return nil
}

// List implements domain.DonationRepository
func (r *DonationRepositoryImpl) List(ctx context.Context) ([]domain.Donation, error) {
	var dbDonations []DBDonation
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dbDonations).Error; err != nil {
		return nil, err
	}
	return r.dbToDomainSlice(dbDonations), nil
}

// ListByUser implements domain.DonationRepository
func (r *DonationRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]domain.Donation, error) {
	var dbDonations []DBDonation
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&dbDonations).Error; err != nil {
		return nil, err
	}
	return r.dbToDomainSlice(dbDonations), nil
}

func (r *DonationRepositoryImpl) domainToDB(d *domain.Donation) *DBDonation {
	return &DBDonation{
		ID:            d.ID,
		UserID:        d.UserID,
		DonorName:     d.DonorName,
		DonorEmail:    d.DonorEmail,
		Amount:        d.Amount,
		Currency:      d.Currency,
		Status:        string(d.Status),
		OrderID:       d.OrderID,
		TransactionID: d.TransactionID,
	}
}

func (r *DonationRepositoryImpl) dbToDomain(d *DBDonation) *domain.Donation {
	return &domain.Donation{
		ID:            d.ID,
		UserID:        d.UserID,
		DonorName:     d.DonorName,
		DonorEmail:    d.DonorEmail,
		Amount:        d.Amount,
		Currency:      d.Currency,
		Status:        domain.DonationStatus(d.Status),
		OrderID:       d.OrderID,
		TransactionID: d.TransactionID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (r *DonationRepositoryImpl) dbToDomainSlice(dbDonations []DBDonation) []domain.Donation {
	donations := make([]domain.Donation, 0, len(dbDonations))
	for i := range dbDonations {
		donations = append(donations, *r.dbToDomain(&dbDonations[i]))
	}
	return donations
}
