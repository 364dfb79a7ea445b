package listing

import (
	"github.com/openlot/goapi/base/ctx"
	"github.com/openlot/goapi/domain"
)

// Listing is a fixed price sale of one escrowed asset.
type Listing struct {
	domain.Token `bson:"inline"`
	Owner        domain.Address `json:"owner" bson:"owner"`
	Price        domain.Amount  `json:"price" bson:"price"`
	// Platform fee captured at listing time
	PlatformFee domain.Percentage `json:"platformFee" bson:"platformFee"`
	// Royalties captured from the registry at listing time
	Royalties []domain.Royalty `json:"royalties" bson:"royalties"`
}

type Repo interface {
	// FindOne returns the listing for token, or domain.ErrNotFound
	FindOne(c ctx.Ctx, token domain.Token) (*Listing, error)

	// Create inserts a listing, domain.ErrAlreadyListed on duplicate
	Create(c ctx.Ctx, l *Listing) error

	// Remove deletes the listing for token, or domain.ErrNotFound
	Remove(c ctx.Ctx, token domain.Token) error
}

type UseCase interface {
	// List escrows an asset and puts it up for a fixed price
	List(c ctx.Ctx, owner domain.Address, token domain.Token, price domain.Amount) error

	// Unlist returns the asset to its owner, owner only
	Unlist(c ctx.Ctx, token domain.Token, caller domain.Address) error

	// Buy settles the sale, refunding any overpayment
	Buy(c ctx.Ctx, token domain.Token, buyer domain.Address, paid domain.Amount) error

	Get(c ctx.Ctx, token domain.Token) (*Listing, error)
}
