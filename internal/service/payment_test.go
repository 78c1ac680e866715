package service

import (
	"context"
	"fmt"
	"testing"

	"parcel-delivery-api/internal/dto"
	"parcel-delivery-api/internal/model"
	"parcel-delivery-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Parcel{}, &model.Payment{}))
	return db
}

func newPaymentService(t *testing.T, db *gorm.DB, fake *fakeStripeClient) (PaymentService, repository.ParcelRepository, repository.PaymentRepository) {
	t.Helper()

	parcelRepo := repository.NewParcelRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	svc := NewPaymentService(
		db,
		fake,
		"http://localhost:8080",
		decimal.NewFromInt(110),
		"usd",
		parcelRepo,
		paymentRepo,
		zerolog.Nop(),
	)
	return svc, parcelRepo, paymentRepo
}

func seedParcel(t *testing.T, db *gorm.DB, status string, cost float64) *model.Parcel {
	t.Helper()

	parcel := &model.Parcel{
		ID:              uuid.NewString(),
		SenderName:      "Alice",
		SenderEmail:     "alice@example.com",
		ReceiverName:    "Bob",
		ReceiverAddress: "12 Station Rd",
		WeightKg:        1.5,
		Cost:            cost,
		Status:          status,
	}
	require.NoError(t, db.Create(parcel).Error)
	return parcel
}

func TestCreateCheckoutSession_UnpaidParcel(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeStripeClient{
		session: &model.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.test/cs_1"},
	}
	svc, _, _ := newPaymentService(t, db, fake)
	parcel := seedParcel(t, db, model.ParcelStatusUnpaid, 1100)

	req := checkoutReq(parcel)
	resp, err := svc.CreateCheckoutSession(context.Background(), &req)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "cs_1", resp.SessionID)
	assert.NotEmpty(t, resp.URL)

	// 1100 local units at 110/unit -> 10.00 settlement -> 1000 cents
	require.NotNil(t, fake.lastCreateParams)
	assert.Equal(t, int64(1000), fake.lastCreateParams.AmountCents)
	assert.Equal(t, "usd", fake.lastCreateParams.Currency)
	assert.Equal(t, parcel.ID, fake.lastCreateParams.Metadata["parcelId"])
	assert.Equal(t, "1100", fake.lastCreateParams.Metadata["amount"])
	assert.Contains(t, fake.lastCreateParams.SuccessURL, "session_id={CHECKOUT_SESSION_ID}")
	assert.Contains(t, fake.lastCreateParams.SuccessURL, "parcelId="+parcel.ID)
}

func TestCreateCheckoutSession_AmountRounding(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeStripeClient{
		session: &model.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.test/cs_1"},
	}
	svc, _, _ := newPaymentService(t, db, fake)
	parcel := seedParcel(t, db, model.ParcelStatusUnpaid, 1000)

	req := checkoutReq(parcel)
	req.Amount = 1000 // 1000/110*100 = 909.09... -> 909
	_, err := svc.CreateCheckoutSession(context.Background(), &req)
	require.NoError(t, err)

	assert.Equal(t, int64(909), fake.lastCreateParams.AmountCents)
}

func TestCreateCheckoutSession_PaidParcelConflicts(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeStripeClient{}
	svc, _, _ := newPaymentService(t, db, fake)
	parcel := seedParcel(t, db, model.ParcelStatusPaid, 1100)

	req := checkoutReq(parcel)
	_, err := svc.CreateCheckoutSession(context.Background(), &req)

	assert.ErrorIs(t, err, ErrParcelAlreadyPaid)
	assert.Zero(t, fake.createCalls)
}

func TestCreateCheckoutSession_MissingParcel(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newPaymentService(t, db, &fakeStripeClient{})

	req := checkoutReq(&model.Parcel{ID: "nope"})
	_, err := svc.CreateCheckoutSession(context.Background(), &req)

	assert.ErrorIs(t, err, ErrParcelNotFound)
}

func TestVerifyPayment_HappyPath(t *testing.T) {
	db := newTestDB(t)
	parcel := seedParcelWithDB(t, db)
	fake := paidSessionFake(parcel.ID)
	svc, parcelRepo, _ := newPaymentService(t, db, fake)

	trackingNo, err := svc.VerifyPayment(context.Background(), "cs_S1", parcel.ID)
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Z]{2}\d{10}$`, trackingNo)

	updated, err := parcelRepo.FindByID(context.Background(), parcel.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ParcelStatusPaid, updated.Status)
	require.NotNil(t, updated.TrackingNo)
	assert.Equal(t, trackingNo, *updated.TrackingNo)
	require.NotNil(t, updated.StripeSessionID)
	assert.Equal(t, "cs_S1", *updated.StripeSessionID)
	require.NotNil(t, updated.PaidAmount)
	assert.InDelta(t, 10.0, *updated.PaidAmount, 1e-9)

	var payments []model.Payment
	require.NoError(t, db.Find(&payments).Error)
	require.Len(t, payments, 1)
	p := payments[0]
	require.NotNil(t, p.StripeSessionID)
	assert.Equal(t, "cs_S1", *p.StripeSessionID)
	assert.Equal(t, parcel.ID, p.ParcelID)
	assert.Equal(t, "alice@example.com", p.Email)
	assert.InDelta(t, 1100.0, p.Amount, 1e-9)
	assert.InDelta(t, 10.0, p.AmountUSD, 1e-9)
	require.NotNil(t, p.StripeTransactionID)
	assert.Equal(t, "ch_1", *p.StripeTransactionID)
	require.NotNil(t, p.CardBrand)
	assert.Equal(t, "visa", *p.CardBrand)
	assert.Equal(t, "4242", *p.CardLast4)
	assert.Equal(t, trackingNo, p.TrackingNo)
}

func TestVerifyPayment_IdempotentSecondCall(t *testing.T) {
	db := newTestDB(t)
	parcel := seedParcelWithDB(t, db)
	fake := paidSessionFake(parcel.ID)
	svc, _, _ := newPaymentService(t, db, fake)

	first, err := svc.VerifyPayment(context.Background(), "cs_S1", parcel.ID)
	require.NoError(t, err)

	gatewayCallsAfterFirst := fake.getSessionCalls

	second, err := svc.VerifyPayment(context.Background(), "cs_S1", parcel.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// the short-circuit returns before any gateway traffic
	assert.Equal(t, gatewayCallsAfterFirst, fake.getSessionCalls)

	var count int64
	require.NoError(t, db.Model(&model.Payment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestVerifyPayment_IncompleteSessionMutatesNothing(t *testing.T) {
	db := newTestDB(t)
	parcel := seedParcelWithDB(t, db)
	fake := paidSessionFake(parcel.ID)
	fake.session.PaymentStatus = "unpaid"
	svc, parcelRepo, _ := newPaymentService(t, db, fake)

	_, err := svc.VerifyPayment(context.Background(), "cs_S1", parcel.ID)
	assert.ErrorIs(t, err, ErrPaymentIncomplete)

	unchanged, err := parcelRepo.FindByID(context.Background(), parcel.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ParcelStatusUnpaid, unchanged.Status)
	assert.Nil(t, unchanged.TrackingNo)

	var count int64
	require.NoError(t, db.Model(&model.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestVerifyPayment_MissingParcel(t *testing.T) {
	db := newTestDB(t)
	fake := paidSessionFake("whatever")
	svc, _, _ := newPaymentService(t, db, fake)

	_, err := svc.VerifyPayment(context.Background(), "cs_S1", "missing-parcel")
	assert.ErrorIs(t, err, ErrParcelNotFound)
}

func TestVerifyPayment_ParcelAlreadyPaidReturnsStoredTracking(t *testing.T) {
	db := newTestDB(t)
	tracking := "PD1234567890"
	parcel := seedParcelWithDB(t, db)
	require.NoError(t, db.Model(&model.Parcel{}).
		Where("id = ?", parcel.ID).
		Updates(map[string]interface{}{"status": model.ParcelStatusPaid, "tracking_no": tracking}).Error)

	fake := paidSessionFake(parcel.ID)
	svc, _, _ := newPaymentService(t, db, fake)

	got, err := svc.VerifyPayment(context.Background(), "cs_other", parcel.ID)
	require.NoError(t, err)
	assert.Equal(t, tracking, got)

	var count int64
	require.NoError(t, db.Model(&model.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestVerifyPayment_ExtractionFailureStillSucceeds(t *testing.T) {
	db := newTestDB(t)
	parcel := seedParcelWithDB(t, db)
	fake := paidSessionFake(parcel.ID)
	fake.intent = nil // intent retrieval fails outright

	svc, _, _ := newPaymentService(t, db, fake)

	trackingNo, err := svc.VerifyPayment(context.Background(), "cs_S1", parcel.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, trackingNo)

	var payment model.Payment
	require.NoError(t, db.First(&payment).Error)
	assert.Nil(t, payment.CardBrand)
	assert.Nil(t, payment.CardLast4)
	assert.Nil(t, payment.StripeTransactionID)
}

func TestPayManually(t *testing.T) {
	db := newTestDB(t)
	parcel := seedParcelWithDB(t, db)
	svc, parcelRepo, _ := newPaymentService(t, db, &fakeStripeClient{})

	trackingNo, err := svc.PayManually(context.Background(), parcel.ID, "cash", 550)
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Z]{2}\d{10}$`, trackingNo)

	updated, err := parcelRepo.FindByID(context.Background(), parcel.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ParcelStatusPaid, updated.Status)
	assert.Equal(t, "cash", updated.PaymentMethod)
	require.NotNil(t, updated.PaidAmount)
	assert.InDelta(t, 5.0, *updated.PaidAmount, 1e-9)

	// settling twice is a conflict
	_, err = svc.PayManually(context.Background(), parcel.ID, "cash", 550)
	assert.ErrorIs(t, err, ErrParcelAlreadyPaid)
}

func seedParcelWithDB(t *testing.T, db *gorm.DB) *model.Parcel {
	return seedParcel(t, db, model.ParcelStatusUnpaid, 1100)
}

func checkoutReq(parcel *model.Parcel) dto.CreateCheckoutSessionRequest {
	return dto.CreateCheckoutSessionRequest{
		ParcelID:      parcel.ID,
		Amount:        parcel.Cost,
		ParcelName:    "Parcel delivery",
		CustomerEmail: "alice@example.com",
	}
}

func paidSessionFake(parcelID string) *fakeStripeClient {
	return &fakeStripeClient{
		session: &model.CheckoutSession{
			ID:            "cs_S1",
			PaymentStatus: "paid",
			PaymentIntent: "pi_1",
			AmountTotal:   1000,
			Currency:      "usd",
			CustomerEmail: "alice@example.com",
			Metadata: map[string]string{
				"parcelId":      parcelID,
				"amount":        "1100",
				"customerEmail": "alice@example.com",
			},
		},
		intent: &model.PaymentIntent{
			ID:           "pi_1",
			LatestCharge: "ch_1",
			Charges: model.ChargeList{Data: []model.Charge{{
				ID: "ch_1",
				PaymentMethodDetails: model.PaymentMethodDetails{
					Type: "card",
					Card: &model.Card{Brand: "visa", Last4: "4242"},
				},
			}}},
		},
	}
}
