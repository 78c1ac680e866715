package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"parcel-delivery-api/internal/client"
	"parcel-delivery-api/internal/dto"
	"parcel-delivery-api/internal/model"
	"parcel-delivery-api/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, req *dto.CreateCheckoutSessionRequest) (*dto.CreateCheckoutSessionResponse, error)
	VerifyPayment(ctx context.Context, sessionID, parcelID string) (string, error)
	PayManually(ctx context.Context, parcelID, paymentMethod string, amount float64) (string, error)
	GetPayments(ctx context.Context, email string, all bool) ([]*model.Payment, error)
}

type paymentServiceImpl struct {
	db             *gorm.DB
	stripeClient   client.StripeClient
	serviceBaseUrl string
	exchangeRate   decimal.Decimal
	currency       string
	parcelRepo     repository.ParcelRepository
	paymentRepo    repository.PaymentRepository
	logger         zerolog.Logger
}

func NewPaymentService(
	db *gorm.DB,
	stripeClient client.StripeClient,
	serviceBaseUrl string,
	exchangeRate decimal.Decimal,
	currency string,
	parcelRepo repository.ParcelRepository,
	paymentRepo repository.PaymentRepository,
	logger zerolog.Logger,
) PaymentService {
	return &paymentServiceImpl{
		db:             db,
		stripeClient:   stripeClient,
		serviceBaseUrl: serviceBaseUrl,
		exchangeRate:   exchangeRate,
		currency:       currency,
		parcelRepo:     parcelRepo,
		paymentRepo:    paymentRepo,
		logger:         logger,
	}
}

// toSettlementCents converts a local-currency amount to the smallest unit of
// the settlement currency at the fixed configured rate, rounded to the
// nearest cent.
func (s *paymentServiceImpl) toSettlementCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).
		Div(s.exchangeRate).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

func (s *paymentServiceImpl) CreateCheckoutSession(ctx context.Context, req *dto.CreateCheckoutSessionRequest) (*dto.CreateCheckoutSessionResponse, error) {
	parcel, err := s.parcelRepo.FindByID(ctx, req.ParcelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParcelNotFound
		}
		return nil, fmt.Errorf("find parcel: %w", err)
	}

	if parcel.Status != model.ParcelStatusUnpaid {
		return nil, ErrParcelAlreadyPaid
	}

	session, err := s.stripeClient.CreateCheckoutSession(ctx, &client.CreateSessionParams{
		ProductName:   req.ParcelName,
		AmountCents:   s.toSettlementCents(req.Amount),
		Currency:      s.currency,
		CustomerEmail: req.CustomerEmail,
		SuccessURL:    fmt.Sprintf("%s/payment/success?parcelId=%s&session_id={CHECKOUT_SESSION_ID}", s.serviceBaseUrl, req.ParcelID),
		CancelURL:     fmt.Sprintf("%s/payment/cancel?parcelId=%s", s.serviceBaseUrl, req.ParcelID),
		Metadata: map[string]string{
			"parcelId":      req.ParcelID,
			"amount":        strconv.FormatFloat(req.Amount, 'f', -1, 64),
			"customerEmail": req.CustomerEmail,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("stripe create checkout session: %w", err)
	}

	return &dto.CreateCheckoutSessionResponse{
		Success:   true,
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

// VerifyPayment confirms a completed checkout session and settles the parcel.
// The transition is one-way and idempotent: re-verifying a processed session
// returns the original tracking number without touching the gateway again.
func (s *paymentServiceImpl) VerifyPayment(ctx context.Context, sessionID, parcelID string) (string, error) {
	existing, err := s.paymentRepo.FindBySessionID(ctx, sessionID)
	if err == nil {
		return existing.TrackingNo, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("check existing payment: %w", err)
	}

	session, err := s.stripeClient.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("stripe get checkout session: %w", err)
	}
	if session.PaymentStatus != "paid" {
		return "", ErrPaymentIncomplete
	}

	parcel, err := s.parcelRepo.FindByID(ctx, parcelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrParcelNotFound
		}
		return "", fmt.Errorf("find parcel: %w", err)
	}

	if parcel.Status != model.ParcelStatusUnpaid {
		if parcel.TrackingNo != nil {
			return *parcel.TrackingNo, nil
		}
		return "", nil
	}

	trackingNo := GenerateTrackingNumber()

	details := s.extractDetails(ctx, session.PaymentIntent)

	payerEmail := session.CustomerEmail
	if payerEmail == "" {
		payerEmail = session.Metadata["customerEmail"]
	}

	localAmount := parcel.Cost
	if raw, ok := session.Metadata["amount"]; ok {
		if parsed, perr := strconv.ParseFloat(raw, 64); perr == nil {
			localAmount = parsed
		}
	}

	paidAmount := decimal.NewFromInt(session.AmountTotal).
		Div(decimal.NewFromInt(100)).
		InexactFloat64()

	payment := &model.Payment{
		ParcelID:              parcelID,
		Email:                 payerEmail,
		Amount:                localAmount,
		AmountUSD:             paidAmount,
		StripeSessionID:       &session.ID,
		StripePaymentIntentID: strPtrOrNil(session.PaymentIntent),
		StripeTransactionID:   details.TransactionID,
		CardBrand:             details.Card.Brand,
		CardLast4:             details.Card.Last4,
		TrackingNo:            trackingNo,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return fmt.Errorf("insert payment record: %w", err)
		}

		err := s.parcelRepo.MarkPaid(ctx, tx, parcelID, map[string]interface{}{
			"tracking_no":              trackingNo,
			"payment_method":           "card",
			"paid_amount":              paidAmount,
			"stripe_session_id":        session.ID,
			"stripe_payment_intent_id": session.PaymentIntent,
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotProcessed
			}
			return fmt.Errorf("mark parcel paid: %w", err)
		}

		return nil
	})
	if err != nil {
		// A concurrent verification won the insert; its record is the truth.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, ferr := s.paymentRepo.FindBySessionID(ctx, sessionID)
			if ferr != nil {
				return "", fmt.Errorf("load winning payment record: %w", ferr)
			}
			return winner.TrackingNo, nil
		}
		return "", err
	}

	return trackingNo, nil
}

// extractDetails is the best-effort half of verification: whatever the
// gateway won't give up, we live without.
func (s *paymentServiceImpl) extractDetails(ctx context.Context, intentID string) PaymentDetails {
	if intentID == "" {
		return PaymentDetails{}
	}

	intent, err := s.stripeClient.GetPaymentIntent(ctx, intentID)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("payment_intent_id", intentID).
			Msg("retrieve payment intent failed, continuing without card details")
		return PaymentDetails{}
	}

	return ExtractPaymentDetails(ctx, s.stripeClient, s.logger, intent)
}

func (s *paymentServiceImpl) PayManually(ctx context.Context, parcelID, paymentMethod string, amount float64) (string, error) {
	parcel, err := s.parcelRepo.FindByID(ctx, parcelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrParcelNotFound
		}
		return "", fmt.Errorf("find parcel: %w", err)
	}

	if parcel.Status != model.ParcelStatusUnpaid {
		return "", ErrParcelAlreadyPaid
	}

	trackingNo := GenerateTrackingNumber()

	paidAmount := decimal.NewFromInt(s.toSettlementCents(amount)).
		Div(decimal.NewFromInt(100)).
		InexactFloat64()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.Create(ctx, tx, &model.Payment{
			ParcelID:   parcelID,
			Email:      parcel.SenderEmail,
			Amount:     amount,
			AmountUSD:  paidAmount,
			TrackingNo: trackingNo,
		}); err != nil {
			return fmt.Errorf("insert payment record: %w", err)
		}

		err := s.parcelRepo.MarkPaid(ctx, tx, parcelID, map[string]interface{}{
			"tracking_no":    trackingNo,
			"payment_method": paymentMethod,
			"paid_amount":    paidAmount,
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotProcessed
			}
			return fmt.Errorf("mark parcel paid: %w", err)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return trackingNo, nil
}

func (s *paymentServiceImpl) GetPayments(ctx context.Context, email string, all bool) ([]*model.Payment, error) {
	if all {
		return s.paymentRepo.FindAll(ctx)
	}
	return s.paymentRepo.FindByEmail(ctx, email)
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
