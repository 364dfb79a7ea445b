package usecase

import (
	"time"

	bCtx "github.com/openlot/goapi/base/ctx"
	"github.com/openlot/goapi/base/log"
	"github.com/openlot/goapi/base/metrics"
	"github.com/openlot/goapi/domain"
	"github.com/openlot/goapi/domain/event"
	"github.com/openlot/goapi/domain/listing"
)

// for testing
var timeNow = time.Now

var met metrics.Service

const maxRoyalties = 10

type ListingUseCaseCfg struct {
	ListingRepo    listing.Repo
	EventRepo      event.Repo
	Registry       domain.AssetRegistry
	Rail           domain.MoneyRail
	PlatformFee    domain.Percentage
	FeeBeneficiary domain.Address
	EscrowAccount  domain.Address
}

type impl struct {
	listingRepo    listing.Repo
	eventRepo      event.Repo
	registry       domain.AssetRegistry
	rail           domain.MoneyRail
	platformFee    domain.Percentage
	feeBeneficiary domain.Address
	escrowAccount  domain.Address
}

func New(cfg *ListingUseCaseCfg) listing.UseCase {
	met = metrics.New("listing")
	return &impl{
		listingRepo:    cfg.ListingRepo,
		eventRepo:      cfg.EventRepo,
		registry:       cfg.Registry,
		rail:           cfg.Rail,
		platformFee:    cfg.PlatformFee,
		feeBeneficiary: cfg.FeeBeneficiary,
		escrowAccount:  cfg.EscrowAccount,
	}
}

// List puts an escrowed asset up for a fixed price.
func (im *impl) List(ctx bCtx.Ctx, owner domain.Address, token domain.Token, price domain.Amount) error {
	token = token.ToLower()

	royalties, err := im.registry.GetRoyalties(ctx, token)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"token": token,
		}).Error("registry.GetRoyalties failed")
		return err
	}
	if len(royalties) >= maxRoyalties {
		return domain.ErrInvalidRoyalty
	}
	total := im.platformFee
	for _, r := range royalties {
		total = total.Add(r.Percentage)
	}
	if total > domain.PercentageMax {
		return domain.ErrInvalidRoyalty
	}

	if err := im.listingRepo.Create(ctx, &listing.Listing{
		Token:       token,
		Owner:       owner,
		Price:       price,
		PlatformFee: im.platformFee,
		Royalties:   royalties,
	}); err != nil {
		return err
	}
	met.BumpSum("list.count", 1)
	im.appendEvent(ctx, event.TagList, token, event.List{Owner: owner, Price: price})
	return nil
}

// Unlist removes the listing and returns the asset. The sale has no money
// side yet, so a rejected transfer simply propagates: the listing is gone
// either way and the owner can retry via a fresh escrow.
func (im *impl) Unlist(ctx bCtx.Ctx, token domain.Token, caller domain.Address) error {
	token = token.ToLower()
	l, err := im.findListing(ctx, token)
	if err != nil {
		return err
	}
	if !caller.Equals(l.Owner) {
		return domain.ErrUnauthorized
	}
	if err := im.listingRepo.Remove(ctx, token); err != nil {
		return err
	}
	if err := im.registry.Transfer(ctx, token, im.escrowAccount, l.Owner); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"token": token,
			"owner": l.Owner,
		}).Error("asset return failed")
		return err
	}
	met.BumpSum("unlist.count", 1)
	im.appendEvent(ctx, event.TagUnlist, token, event.Unlist{Owner: l.Owner})
	return nil
}

// Buy settles a fixed price sale. Unlike auction settlement the payout is
// strict: any rejected payment fails the purchase outright. The money moves
// before the asset, and the asset last, so a failed payout never leaves the
// buyer holding an asset nobody was paid for. Anything the buyer paid over
// the asking price comes back to them.
func (im *impl) Buy(ctx bCtx.Ctx, token domain.Token, buyer domain.Address, paid domain.Amount) error {
	token = token.ToLower()
	l, err := im.findListing(ctx, token)
	if err != nil {
		return err
	}
	if paid < l.Price {
		return domain.ErrPriceNotCovered
	}

	if err := im.listingRepo.Remove(ctx, token); err != nil {
		return err
	}

	remainder := l.Price
	entries := make([]domain.Royalty, 0, len(l.Royalties)+1)
	entries = append(entries, l.Royalties...)
	entries = append(entries, domain.Royalty{Beneficiary: im.feeBeneficiary, Percentage: l.PlatformFee})
	for _, r := range entries {
		share := r.Percentage.Mul(l.Price)
		if share == 0 {
			continue
		}
		if err := im.rail.Pay(ctx, r.Beneficiary, share); err != nil {
			ctx.WithFields(log.Fields{
				"err":         err,
				"token":       token,
				"beneficiary": r.Beneficiary,
				"amount":      share,
			}).Error("royalty payout failed")
			return err
		}
		remainder -= share
	}
	if err := im.rail.Pay(ctx, l.Owner, remainder); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"token":   token,
			"account": l.Owner,
			"amount":  remainder,
		}).Error("failed to pay seller")
		return err
	}
	if overpaid := paid - l.Price; overpaid > 0 {
		if err := im.rail.Pay(ctx, buyer, overpaid); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"token":   token,
				"account": buyer,
				"amount":  overpaid,
			}).Error("failed to refund overpayment")
			return err
		}
	}

	if err := im.registry.Transfer(ctx, token, im.escrowAccount, buyer); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"token": token,
			"buyer": buyer,
		}).Error("asset transfer to buyer failed")
		return err
	}
	met.BumpSum("buy.count", 1)
	im.appendEvent(ctx, event.TagBuy, token, event.Buy{Buyer: buyer, Seller: l.Owner, Price: l.Price})
	return nil
}

func (im *impl) Get(ctx bCtx.Ctx, token domain.Token) (*listing.Listing, error) {
	return im.findListing(ctx, token.ToLower())
}

func (im *impl) findListing(ctx bCtx.Ctx, token domain.Token) (*listing.Listing, error) {
	l, err := im.listingRepo.FindOne(ctx, token)
	if err == domain.ErrNotFound {
		return nil, domain.ErrUnknownToken
	} else if err != nil {
		return nil, err
	}
	return l, nil
}

func (im *impl) appendEvent(ctx bCtx.Ctx, tag event.Tag, token domain.Token, data interface{}) {
	if err := im.eventRepo.Append(ctx, &event.Event{
		Tag:   tag,
		Token: token,
		Time:  timeNow().UTC(),
		Data:  data,
	}); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"tag": tag,
		}).Error("eventRepo.Append failed")
	}
}
