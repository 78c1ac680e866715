package service

import (
	"context"
	"errors"
	"testing"

	"parcel-delivery-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPaymentDetails_ExpandedChargeWins(t *testing.T) {
	fake := &fakeStripeClient{
		paymentMethod: &model.PaymentMethod{
			ID:   "pm_1",
			Card: &model.Card{Brand: "mastercard", Last4: "9999"},
		},
	}
	intent := &model.PaymentIntent{
		ID:            "pi_1",
		LatestCharge:  "ch_latest",
		PaymentMethod: "pm_1",
		Charges: model.ChargeList{Data: []model.Charge{{
			ID: "ch_expanded",
			PaymentMethodDetails: model.PaymentMethodDetails{
				Type: "card",
				Card: &model.Card{Brand: "visa", Last4: "4242"},
			},
		}}},
	}

	details := ExtractPaymentDetails(context.Background(), fake, zerolog.Nop(), intent)

	require.NotNil(t, details.TransactionID)
	assert.Equal(t, "ch_expanded", *details.TransactionID)
	require.NotNil(t, details.Card.Brand)
	require.NotNil(t, details.Card.Last4)
	assert.Equal(t, "visa", *details.Card.Brand)
	assert.Equal(t, "4242", *details.Card.Last4)
	// the expanded charge satisfied the lookup, no extra gateway call
	assert.Zero(t, fake.getPayMethodCalls)
}

func TestExtractPaymentDetails_FallsBackToPaymentMethod(t *testing.T) {
	fake := &fakeStripeClient{
		paymentMethod: &model.PaymentMethod{
			ID:   "pm_1",
			Card: &model.Card{Brand: "amex", Last4: "0005"},
		},
	}
	intent := &model.PaymentIntent{
		ID:            "pi_1",
		LatestCharge:  "ch_latest",
		PaymentMethod: "pm_1",
	}

	details := ExtractPaymentDetails(context.Background(), fake, zerolog.Nop(), intent)

	require.NotNil(t, details.TransactionID)
	assert.Equal(t, "ch_latest", *details.TransactionID)
	require.NotNil(t, details.Card.Brand)
	assert.Equal(t, "amex", *details.Card.Brand)
	assert.Equal(t, "0005", *details.Card.Last4)
	assert.Equal(t, 1, fake.getPayMethodCalls)
}

func TestExtractPaymentDetails_NoSourcesYieldsNils(t *testing.T) {
	fake := &fakeStripeClient{}
	intent := &model.PaymentIntent{ID: "pi_1"}

	details := ExtractPaymentDetails(context.Background(), fake, zerolog.Nop(), intent)

	assert.Nil(t, details.TransactionID)
	assert.Nil(t, details.Card.Brand)
	assert.Nil(t, details.Card.Last4)
}

func TestExtractPaymentDetails_PaymentMethodFetchFailureDegrades(t *testing.T) {
	fake := &fakeStripeClient{
		getPayMethodErr: errors.New("gateway down"),
	}
	intent := &model.PaymentIntent{
		ID:            "pi_1",
		LatestCharge:  "ch_latest",
		PaymentMethod: "pm_1",
	}

	details := ExtractPaymentDetails(context.Background(), fake, zerolog.Nop(), intent)

	require.NotNil(t, details.TransactionID)
	assert.Equal(t, "ch_latest", *details.TransactionID)
	assert.Nil(t, details.Card.Brand)
	assert.Nil(t, details.Card.Last4)
}

func TestExtractPaymentDetails_ChargeWithoutCardFallsThrough(t *testing.T) {
	fake := &fakeStripeClient{
		paymentMethod: &model.PaymentMethod{
			ID:   "pm_1",
			Card: &model.Card{Brand: "visa", Last4: "1111"},
		},
	}
	intent := &model.PaymentIntent{
		ID:            "pi_1",
		PaymentMethod: "pm_1",
		Charges: model.ChargeList{Data: []model.Charge{{
			ID:                   "ch_wallet",
			PaymentMethodDetails: model.PaymentMethodDetails{Type: "link"},
		}}},
	}

	details := ExtractPaymentDetails(context.Background(), fake, zerolog.Nop(), intent)

	require.NotNil(t, details.TransactionID)
	assert.Equal(t, "ch_wallet", *details.TransactionID)
	require.NotNil(t, details.Card.Brand)
	assert.Equal(t, "visa", *details.Card.Brand)
	assert.Equal(t, 1, fake.getPayMethodCalls)
}
