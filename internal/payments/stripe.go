package payments

import (
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

// IntentCreator creates a payment intent with the external processor for an
// amount in minor units and returns the client secret the front-end uses to
// complete the charge.
type IntentCreator interface {
	CreateIntent(amountCents int64) (string, error)
}

type stripeGateway struct{}

// NewStripeGateway configures the Stripe client with the account secret key.
func NewStripeGateway(secretKey string) IntentCreator {
	stripe.Key = secretKey
	return &stripeGateway{}
}

func (g *stripeGateway) CreateIntent(amountCents int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
