package auction

import (
	"time"

	"github.com/openlot/goapi/base/ctx"
	"github.com/openlot/goapi/domain"
)

// IncrementKind discriminates the bid increment policy. The set is closed:
// a bid either has to beat the highest bid by a flat amount or by a
// percentage of it.
type IncrementKind string

const (
	IncrementFlat       IncrementKind = "flat"
	IncrementPercentage IncrementKind = "percentage"
)

type Increment struct {
	Kind       IncrementKind     `json:"kind" bson:"kind"`
	Flat       domain.Amount     `json:"flat,omitempty" bson:"flat,omitempty"`
	Percentage domain.Percentage `json:"percentage,omitempty" bson:"percentage,omitempty"`
}

// FinalizationKind discriminates how an auction ends: a fixed duration from
// start, or a rolling timeout that resets on every accepted bid.
type FinalizationKind string

const (
	FinalizationDuration   FinalizationKind = "duration"
	FinalizationBidTimeout FinalizationKind = "bidTimeout"
)

type Finalization struct {
	Kind FinalizationKind `json:"kind" bson:"kind"`
	// Duration of the auction or the bid timeout, depending on Kind
	Duration time.Duration `json:"duration" bson:"duration"`
}

// Bid is the current highest bid. Only the highest bid is retained.
type Bid struct {
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
	Account   domain.Address `json:"account" bson:"account"`
	Amount    domain.Amount  `json:"amount" bson:"amount"`
}

// LotInfo is the set of escrow terms supplied by the seller.
type LotInfo struct {
	// Start time. Immediate when nil.
	Start        *time.Time   `json:"start,omitempty" bson:"start,omitempty"`
	Finalization Finalization `json:"finalization" bson:"finalization"`
	// Smallest allowed bid
	Reserve   domain.Amount `json:"reserve" bson:"reserve"`
	Increment Increment     `json:"increment" bson:"increment"`
	// Buyout price. Buyout is not allowed when nil.
	Buyout *domain.Amount `json:"buyout,omitempty" bson:"buyout,omitempty"`
}

// Lot is the escrow record of one asset under auction.
type Lot struct {
	// Seller account
	Owner domain.Address `json:"owner" bson:"owner"`
	// Platform fee captured at escrow time, immune to later fee changes
	PlatformFee domain.Percentage `json:"platformFee" bson:"platformFee"`
	Reserve     domain.Amount     `json:"reserve" bson:"reserve"`
	Increment   Increment         `json:"increment" bson:"increment"`
	Buyout      *domain.Amount    `json:"buyout,omitempty" bson:"buyout,omitempty"`
	Start       time.Time         `json:"start" bson:"start"`
	Finalization Finalization     `json:"finalization" bson:"finalization"`
	HighestBid  *Bid              `json:"highestBid,omitempty" bson:"highestBid,omitempty"`
	// Royalties captured from the registry at escrow time
	Royalties []domain.Royalty `json:"royalties" bson:"royalties"`
}

// NewLot builds a Lot from escrow terms. The start time defaults to now.
func NewLot(owner domain.Address, platformFee domain.Percentage, info LotInfo, now time.Time, royalties []domain.Royalty) *Lot {
	start := now
	if info.Start != nil {
		start = *info.Start
	}
	return &Lot{
		Owner:        owner,
		PlatformFee:  platformFee,
		Reserve:      info.Reserve,
		Increment:    info.Increment,
		Buyout:       info.Buyout,
		Start:        start,
		Finalization: info.Finalization,
		Royalties:    royalties,
	}
}

// AllowsBid reports whether amount satisfies the reserve or the increment
// policy against the current highest bid. Ties are rejected for percentage
// increments; the comparison uses truncating fixed point division, so see
// domain.OfAmount for the rounding caveat.
func (l *Lot) AllowsBid(amount domain.Amount) bool {
	if l.HighestBid == nil {
		return amount >= l.Reserve
	}
	switch l.Increment.Kind {
	case IncrementFlat:
		return amount >= l.HighestBid.Amount+l.Increment.Flat
	case IncrementPercentage:
		return domain.PercentageMax.Add(l.Increment.Percentage) <= domain.OfAmount(amount, l.HighestBid.Amount)
	}
	return false
}

// StateKind discriminates what the store holds for a token: a live Lot or a
// Grave left behind when the asset could not be returned.
type StateKind string

const (
	StateKindLot   StateKind = "lot"
	StateKindGrave StateKind = "grave"
)

// TokenState is one document of the lot store. For a given token at most
// one of Lot or GraveOwner is set, matching Kind.
type TokenState struct {
	domain.Token `bson:"inline"`
	Kind         StateKind       `json:"kind" bson:"kind"`
	Lot          *Lot            `json:"lot,omitempty" bson:"lot,omitempty"`
	GraveOwner   *domain.Address `json:"graveOwner,omitempty" bson:"graveOwner,omitempty"`
}

// Repo is the lot store. One document per token, keyed by (contract,
// tokenId). The platform serializes invocations per token, so reads
// followed by writes inside one operation do not race.
type Repo interface {
	// FindOne returns the state for token, or domain.ErrNotFound
	FindOne(c ctx.Ctx, token domain.Token) (*TokenState, error)

	// Upsert replaces the state for token
	Upsert(c ctx.Ctx, state *TokenState) error

	// Remove deletes the state for token, or domain.ErrNotFound
	Remove(c ctx.Ctx, token domain.Token) error
}

// UseCase is the auction engine: the five operations plus a read.
type UseCase interface {
	// List escrows an asset and opens an auction on it
	List(c ctx.Ctx, owner domain.Address, token domain.Token, info LotInfo) error

	// PlaceBid replaces the highest bid and refunds the displaced one
	PlaceBid(c ctx.Ctx, token domain.Token, bidder domain.Address, amount domain.Amount) error

	// Finalize settles a completed auction
	Finalize(c ctx.Ctx, token domain.Token) error

	// Cancel aborts an auction that has not completed, seller only
	Cancel(c ctx.Ctx, token domain.Token, caller domain.Address) error

	// Recover retries the asset return recorded by a grave
	Recover(c ctx.Ctx, token domain.Token) error

	Get(c ctx.Ctx, token domain.Token) (*TokenState, error)
}
