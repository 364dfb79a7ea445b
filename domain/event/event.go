package event

import (
	"time"

	"github.com/openlot/goapi/base/ctx"
	"github.com/openlot/goapi/domain"
	"github.com/openlot/goapi/domain/auction"
)

// Tag is the one byte discriminator of a marketplace event. Values are part
// of the external format and must not be renumbered.
type Tag byte

const (
	TagUnlist   Tag = 249
	TagBuy      Tag = 248
	TagList     Tag = 247
	TagBid      Tag = 244
	TagFinalize Tag = 243
	TagCancel   Tag = 242
	TagAbort    Tag = 233
)

// Event is one entry of the append-only marketplace log.
type Event struct {
	Tag          Tag       `json:"tag" bson:"tag"`
	domain.Token `bson:"inline"`
	Time         time.Time   `json:"time" bson:"time"`
	Data         interface{} `json:"data" bson:"data"`
}

type Repo interface {
	Append(c ctx.Ctx, ev *Event) error
	FindByToken(c ctx.Ctx, token domain.Token, offset, limit int) ([]*Event, error)
}

// Payloads. One struct per tag, stored under Event.Data.

type List struct {
	Owner domain.Address `json:"owner" bson:"owner"`
	// Fixed price sale
	Price domain.Amount `json:"price,omitempty" bson:"price,omitempty"`
	// Auction terms
	Terms *auction.LotInfo `json:"terms,omitempty" bson:"terms,omitempty"`
}

type Bid struct {
	Bidder domain.Address `json:"bidder" bson:"bidder"`
	Amount domain.Amount  `json:"amount" bson:"amount"`
}

type Finalize struct {
	Seller domain.Address `json:"seller" bson:"seller"`
	Winner domain.Address `json:"winner" bson:"winner"`
	Price  domain.Amount  `json:"price" bson:"price"`
	// Royalty and fee entries that were actually paid out, skipped
	// entries excluded
	Royalties []domain.Royalty `json:"royalties" bson:"royalties"`
	// Seller proceeds after royalties and platform fee
	SellerShare domain.Amount `json:"sellerShare" bson:"sellerShare"`
}

type Cancel struct {
	Owner domain.Address `json:"owner" bson:"owner"`
}

type Abort struct {
	Owner domain.Address `json:"owner" bson:"owner"`
	// Refunded bid, when one was held
	Bidder *domain.Address `json:"bidder,omitempty" bson:"bidder,omitempty"`
	Amount domain.Amount   `json:"amount,omitempty" bson:"amount,omitempty"`
}

type Unlist struct {
	Owner domain.Address `json:"owner" bson:"owner"`
}

type Buy struct {
	Buyer  domain.Address `json:"buyer" bson:"buyer"`
	Seller domain.Address `json:"seller" bson:"seller"`
	Price  domain.Amount  `json:"price" bson:"price"`
}
