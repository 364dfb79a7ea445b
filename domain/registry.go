package domain

import "github.com/openlot/goapi/base/ctx"

// Royalty is a share of a sale paid to a beneficiary account. The platform
// fee travels through payout code as a regular royalty entry.
type Royalty struct {
	Beneficiary Address    `json:"beneficiary" bson:"beneficiary"`
	Percentage  Percentage `json:"percentage" bson:"percentage"`
}

// AssetRegistry is the external registry holding asset ownership. Transfer
// and royalty reads are synchronous; any rejection or schema mismatch is
// surfaced as ErrIncompatibleContract.
type AssetRegistry interface {
	// Transfer moves ownership of token from one account to another.
	Transfer(c ctx.Ctx, token Token, from, to Address) error

	// GetRoyalties reads the royalty schedule attached to token.
	GetRoyalties(c ctx.Ctx, token Token) ([]Royalty, error)
}
