package domain

import "github.com/openlot/goapi/base/ctx"

// MoneyRail is the external payment service. Pay either completes or fails
// synchronously; there is no partial payment.
type MoneyRail interface {
	Pay(c ctx.Ctx, account Address, amount Amount) error
}
