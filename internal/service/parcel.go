package service

import (
	"context"
	"errors"
	"fmt"

	"parcel-delivery-api/internal/dto"
	"parcel-delivery-api/internal/model"
	"parcel-delivery-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParcelService interface {
	CreateParcel(ctx context.Context, senderEmail string, req *dto.CreateParcelRequest) (*model.Parcel, error)
	GetParcel(ctx context.Context, parcelID string) (*model.Parcel, error)
	GetParcels(ctx context.Context, email string, all bool) ([]*model.Parcel, error)
	UpdateParcel(ctx context.Context, parcelID string, req *dto.UpdateParcelRequest) (*model.Parcel, error)
	DeleteParcel(ctx context.Context, parcelID string) error
}

type parcelServiceImpl struct {
	parcelRepo repository.ParcelRepository
}

func NewParcelService(parcelRepo repository.ParcelRepository) ParcelService {
	return &parcelServiceImpl{
		parcelRepo: parcelRepo,
	}
}

func (s *parcelServiceImpl) CreateParcel(ctx context.Context, senderEmail string, req *dto.CreateParcelRequest) (*model.Parcel, error) {
	parcel := &model.Parcel{
		ID:              uuid.NewString(),
		SenderName:      req.SenderName,
		SenderEmail:     senderEmail,
		SenderPhone:     req.SenderPhone,
		SenderAddress:   req.SenderAddress,
		ReceiverName:    req.ReceiverName,
		ReceiverPhone:   req.ReceiverPhone,
		ReceiverAddress: req.ReceiverAddress,
		ParcelType:      req.ParcelType,
		WeightKg:        req.WeightKg,
		Cost:            req.Cost,
		Status:          model.ParcelStatusUnpaid,
	}

	if err := s.parcelRepo.Create(ctx, parcel); err != nil {
		return nil, fmt.Errorf("store parcel in db: %w", err)
	}

	return parcel, nil
}

func (s *parcelServiceImpl) GetParcel(ctx context.Context, parcelID string) (*model.Parcel, error) {
	parcel, err := s.parcelRepo.FindByID(ctx, parcelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParcelNotFound
		}
		return nil, err
	}

	return parcel, nil
}

func (s *parcelServiceImpl) GetParcels(ctx context.Context, email string, all bool) ([]*model.Parcel, error) {
	if all {
		return s.parcelRepo.FindAll(ctx)
	}
	return s.parcelRepo.FindBySenderEmail(ctx, email)
}

// UpdateParcel patches contact, address and cost fields. Paid parcels are
// frozen.
func (s *parcelServiceImpl) UpdateParcel(ctx context.Context, parcelID string, req *dto.UpdateParcelRequest) (*model.Parcel, error) {
	parcel, err := s.parcelRepo.FindByID(ctx, parcelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParcelNotFound
		}
		return nil, err
	}

	if parcel.Status != model.ParcelStatusUnpaid {
		return nil, ErrParcelAlreadyPaid
	}

	fields := map[string]interface{}{}
	setIfPresent(fields, "sender_name", req.SenderName)
	setIfPresent(fields, "sender_phone", req.SenderPhone)
	setIfPresent(fields, "sender_address", req.SenderAddress)
	setIfPresent(fields, "receiver_name", req.ReceiverName)
	setIfPresent(fields, "receiver_phone", req.ReceiverPhone)
	setIfPresent(fields, "receiver_address", req.ReceiverAddress)
	setIfPresent(fields, "parcel_type", req.ParcelType)
	if req.WeightKg != nil {
		fields["weight_kg"] = *req.WeightKg
	}
	if req.Cost != nil {
		fields["cost"] = *req.Cost
	}

	if len(fields) > 0 {
		if err := s.parcelRepo.Update(ctx, parcelID, fields); err != nil {
			return nil, fmt.Errorf("update parcel: %w", err)
		}
	}

	return s.parcelRepo.FindByID(ctx, parcelID)
}

func (s *parcelServiceImpl) DeleteParcel(ctx context.Context, parcelID string) error {
	parcel, err := s.parcelRepo.FindByID(ctx, parcelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParcelNotFound
		}
		return err
	}

	if parcel.Status != model.ParcelStatusUnpaid {
		return ErrParcelAlreadyPaid
	}

	return s.parcelRepo.Delete(ctx, parcelID)
}

func setIfPresent(fields map[string]interface{}, column string, value *string) {
	if value != nil {
		fields[column] = *value
	}
}
