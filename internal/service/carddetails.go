package service

import (
	"context"

	"parcel-delivery-api/internal/client"
	"parcel-delivery-api/internal/model"

	"github.com/rs/zerolog"
)

type CardDetails struct {
	Brand *string
	Last4 *string
}

type PaymentDetails struct {
	TransactionID *string
	Card          CardDetails
}

// cardExtractor is one candidate source of card metadata. It reports ok only
// when it actually produced a usable pair.
type cardExtractor func(ctx context.Context, intent *model.PaymentIntent) (CardDetails, bool)

// ExtractPaymentDetails resolves a transaction id and card metadata from an
// intent, trying sources in a fixed priority order. Everything here is
// best-effort: a missing or unreachable source degrades to nil fields, it
// never fails the caller.
func ExtractPaymentDetails(ctx context.Context, stripeClient client.StripeClient, logger zerolog.Logger, intent *model.PaymentIntent) PaymentDetails {
	details := PaymentDetails{}
	if intent == nil {
		return details
	}

	if intent.LatestCharge != "" {
		details.TransactionID = &intent.LatestCharge
	}
	if len(intent.Charges.Data) > 0 && intent.Charges.Data[0].ID != "" {
		details.TransactionID = &intent.Charges.Data[0].ID
	}

	extractors := []cardExtractor{
		extractFromExpandedCharge,
		extractFromPaymentMethod(stripeClient, logger),
	}

	for _, extract := range extractors {
		if card, ok := extract(ctx, intent); ok {
			details.Card = card
			break
		}
	}

	return details
}

func extractFromExpandedCharge(_ context.Context, intent *model.PaymentIntent) (CardDetails, bool) {
	if len(intent.Charges.Data) == 0 {
		return CardDetails{}, false
	}

	card := intent.Charges.Data[0].PaymentMethodDetails.Card
	if card == nil {
		return CardDetails{}, false
	}

	return CardDetails{Brand: &card.Brand, Last4: &card.Last4}, true
}

func extractFromPaymentMethod(stripeClient client.StripeClient, logger zerolog.Logger) cardExtractor {
	return func(ctx context.Context, intent *model.PaymentIntent) (CardDetails, bool) {
		if intent.PaymentMethod == "" {
			return CardDetails{}, false
		}

		pm, err := stripeClient.GetPaymentMethod(ctx, intent.PaymentMethod)
		if err != nil {
			logger.Warn().Err(err).
				Str("payment_method_id", intent.PaymentMethod).
				Msg("retrieve payment method failed, continuing without card details")
			return CardDetails{}, false
		}

		if pm.Card == nil {
			return CardDetails{}, false
		}

		return CardDetails{Brand: &pm.Card.Brand, Last4: &pm.Card.Last4}, true
	}
}
