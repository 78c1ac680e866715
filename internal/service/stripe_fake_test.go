package service

import (
	"context"
	"errors"

	"parcel-delivery-api/internal/client"
	"parcel-delivery-api/internal/model"
)

// fakeStripeClient satisfies client.StripeClient with canned responses and
// per-method call counters.
type fakeStripeClient struct {
	session       *model.CheckoutSession
	intent        *model.PaymentIntent
	paymentMethod *model.PaymentMethod

	createErr        error
	getSessionErr    error
	getIntentErr     error
	getPayMethodErr  error

	lastCreateParams *client.CreateSessionParams

	createCalls       int
	getSessionCalls   int
	getIntentCalls    int
	getPayMethodCalls int
}

func (f *fakeStripeClient) CreateCheckoutSession(_ context.Context, params *client.CreateSessionParams) (*model.CheckoutSession, error) {
	f.createCalls++
	f.lastCreateParams = params
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.session, nil
}

func (f *fakeStripeClient) GetCheckoutSession(_ context.Context, _ string) (*model.CheckoutSession, error) {
	f.getSessionCalls++
	if f.getSessionErr != nil {
		return nil, f.getSessionErr
	}
	if f.session == nil {
		return nil, errors.New("no such session")
	}
	return f.session, nil
}

func (f *fakeStripeClient) GetPaymentIntent(_ context.Context, _ string) (*model.PaymentIntent, error) {
	f.getIntentCalls++
	if f.getIntentErr != nil {
		return nil, f.getIntentErr
	}
	if f.intent == nil {
		return nil, errors.New("no such intent")
	}
	return f.intent, nil
}

func (f *fakeStripeClient) GetPaymentMethod(_ context.Context, _ string) (*model.PaymentMethod, error) {
	f.getPayMethodCalls++
	if f.getPayMethodErr != nil {
		return nil, f.getPayMethodErr
	}
	if f.paymentMethod == nil {
		return nil, errors.New("no such payment method")
	}
	return f.paymentMethod, nil
}
