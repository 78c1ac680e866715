package repository

import (
	"context"
	"time"

	"parcel-delivery-api/internal/model"

	"gorm.io/gorm"
)

type ParcelRepository interface {
	Create(ctx context.Context, parcel *model.Parcel) error
	FindByID(ctx context.Context, parcelID string) (*model.Parcel, error)
	FindAll(ctx context.Context) ([]*model.Parcel, error)
	FindBySenderEmail(ctx context.Context, email string) ([]*model.Parcel, error)
	Update(ctx context.Context, parcelID string, fields map[string]interface{}) error
	MarkPaid(ctx context.Context, tx *gorm.DB, parcelID string, fields map[string]interface{}) error
	Delete(ctx context.Context, parcelID string) error
}

type parcelRepoImpl struct {
	db *gorm.DB
}

func NewParcelRepository(db *gorm.DB) ParcelRepository {
	return &parcelRepoImpl{
		db: db,
	}
}

func (r *parcelRepoImpl) Create(ctx context.Context, parcel *model.Parcel) error {
	return r.db.WithContext(ctx).Create(parcel).Error
}

func (r *parcelRepoImpl) FindByID(ctx context.Context, parcelID string) (*model.Parcel, error) {
	var parcel model.Parcel
	err := r.db.WithContext(ctx).
		Where("id = ?", parcelID).
		First(&parcel).Error

	if err != nil {
		return nil, err
	}

	return &parcel, nil
}

func (r *parcelRepoImpl) FindAll(ctx context.Context) ([]*model.Parcel, error) {
	var parcels []*model.Parcel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&parcels).Error

	if err != nil {
		return nil, err
	}

	return parcels, nil
}

func (r *parcelRepoImpl) FindBySenderEmail(ctx context.Context, email string) ([]*model.Parcel, error) {
	var parcels []*model.Parcel
	err := r.db.WithContext(ctx).
		Where("sender_email = ?", email).
		Order("created_at DESC").
		Find(&parcels).Error

	if err != nil {
		return nil, err
	}

	return parcels, nil
}

func (r *parcelRepoImpl) Update(ctx context.Context, parcelID string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).
		Model(&model.Parcel{}).
		Where("id = ?", parcelID).
		Updates(fields)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// MarkPaid flips an unpaid parcel to paid inside the caller's transaction.
// The status guard in the WHERE clause makes the transition one-way.
func (r *parcelRepoImpl) MarkPaid(ctx context.Context, tx *gorm.DB, parcelID string, fields map[string]interface{}) error {
	fields["status"] = model.ParcelStatusPaid
	fields["updated_at"] = time.Now()

	result := tx.WithContext(ctx).
		Model(&model.Parcel{}).
		Where("id = ? AND status = ?", parcelID, model.ParcelStatusUnpaid).
		Updates(fields)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *parcelRepoImpl) Delete(ctx context.Context, parcelID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", parcelID).
		Delete(&model.Parcel{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
