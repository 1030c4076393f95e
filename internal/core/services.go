package core

import "github.com/edvin/alloy/internal/consumption"

// Services bundles the service layer for handler wiring.
type Services struct {
	Auth        *AuthService
	Billing     *BillingService
	Consumption consumption.Store
}

func NewServices(provider ProviderClient, store consumption.Store, jwtSecret, jwtIssuer string) *Services {
	return &Services{
		Auth:        NewAuthService(jwtSecret, jwtIssuer),
		Billing:     NewBillingService(provider),
		Consumption: store,
	}
}
