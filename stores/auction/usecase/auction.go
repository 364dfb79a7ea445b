package usecase

import (
	"time"

	bCtx "github.com/openlot/goapi/base/ctx"
	"github.com/openlot/goapi/base/log"
	"github.com/openlot/goapi/base/metrics"
	"github.com/openlot/goapi/domain"
	"github.com/openlot/goapi/domain/auction"
	"github.com/openlot/goapi/domain/event"
)

// for testing
var timeNow = time.Now

var met metrics.Service

// maxRoyalties bounds the fan out loop of Finalize
const maxRoyalties = 10

type AuctionUseCaseCfg struct {
	TokenStateRepo auction.Repo
	EventRepo      event.Repo
	Registry       domain.AssetRegistry
	Rail           domain.MoneyRail
	// PlatformFee is captured into each lot at escrow time
	PlatformFee    domain.Percentage
	FeeBeneficiary domain.Address
	// EscrowAccount holds assets while they are under auction
	EscrowAccount domain.Address
}

type impl struct {
	tokenStateRepo auction.Repo
	eventRepo      event.Repo
	registry       domain.AssetRegistry
	rail           domain.MoneyRail
	platformFee    domain.Percentage
	feeBeneficiary domain.Address
	escrowAccount  domain.Address
}

func New(cfg *AuctionUseCaseCfg) auction.UseCase {
	met = metrics.New("auction")
	return &impl{
		tokenStateRepo: cfg.TokenStateRepo,
		eventRepo:      cfg.EventRepo,
		registry:       cfg.Registry,
		rail:           cfg.Rail,
		platformFee:    cfg.PlatformFee,
		feeBeneficiary: cfg.FeeBeneficiary,
		escrowAccount:  cfg.EscrowAccount,
	}
}

// List opens an auction on an asset the caller has already moved into
// escrow. A grave left over from an earlier auction is overwritten, it
// carries no claim on the new one. A live lot is not.
func (im *impl) List(ctx bCtx.Ctx, owner domain.Address, token domain.Token, info auction.LotInfo) error {
	token = token.ToLower()
	state, err := im.tokenStateRepo.FindOne(ctx, token)
	if err != nil && err != domain.ErrNotFound {
		return err
	}
	if state != nil && state.Kind == auction.StateKindLot {
		return domain.ErrAlreadyListed
	}

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

	now := timeNow().UTC()
	lot := auction.NewLot(owner, im.platformFee, info, now, royalties)
	if err := im.tokenStateRepo.Upsert(ctx, &auction.TokenState{
		Token: token,
		Kind:  auction.StateKindLot,
		Lot:   lot,
	}); err != nil {
		return err
	}
	met.BumpSum("list.count", 1)
	im.appendEvent(ctx, event.TagList, token, event.List{Owner: owner, Terms: &info})
	return nil
}

// PlaceBid installs amount as the new highest bid and refunds the displaced
// one. The bid amount has already been debited by the calling context, so a
// rejected bid costs the bidder nothing.
func (im *impl) PlaceBid(ctx bCtx.Ctx, token domain.Token, bidder domain.Address, amount domain.Amount) error {
	token = token.ToLower()
	lot, err := im.findLot(ctx, token)
	if err != nil {
		return err
	}

	now := timeNow().UTC()
	switch lot.PhaseAt(now) {
	case auction.PhaseNotStarted:
		return domain.ErrAuctionNotStarted
	case auction.PhaseCompleted:
		return domain.ErrAuctionFinished
	}
	if bidder.Equals(lot.Owner) {
		return domain.ErrOwnerForbidden
	}
	if !lot.AllowsBid(amount) {
		return domain.ErrBidTooLow
	}

	displaced := lot.HighestBid
	lot.HighestBid = &auction.Bid{Timestamp: now, Account: bidder, Amount: amount}
	if err := im.tokenStateRepo.Upsert(ctx, &auction.TokenState{
		Token: token,
		Kind:  auction.StateKindLot,
		Lot:   lot,
	}); err != nil {
		return err
	}
	if displaced != nil {
		if err := im.rail.Pay(ctx, displaced.Account, displaced.Amount); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"token":   token,
				"account": displaced.Account,
				"amount":  displaced.Amount,
			}).Error("failed to refund displaced bid")
			return err
		}
	}
	met.BumpSum("bid.count", 1)
	im.appendEvent(ctx, event.TagBid, token, event.Bid{Bidder: bidder, Amount: amount})
	return nil
}

// Finalize settles a completed auction. Once the phase guard has passed the
// operation is total: the lot is removed no matter what the registry says,
// and a failed asset transfer leaves a grave instead of an error.
func (im *impl) Finalize(ctx bCtx.Ctx, token domain.Token) error {
	token = token.ToLower()
	lot, err := im.findLot(ctx, token)
	if err != nil {
		return err
	}
	if lot.PhaseAt(timeNow().UTC()) != auction.PhaseCompleted {
		return domain.ErrAuctionStillActive
	}

	if err := im.tokenStateRepo.Remove(ctx, token); err != nil {
		return err
	}

	if lot.HighestBid == nil {
		im.returnAsset(ctx, token, lot.Owner, nil)
		return nil
	}

	win := lot.HighestBid
	if err := im.registry.Transfer(ctx, token, im.escrowAccount, win.Account); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"token":  token,
			"winner": win.Account,
		}).Warn("asset transfer to winner failed, burying grave")
		im.bury(ctx, token, lot.Owner, win)
		if err := im.rail.Pay(ctx, win.Account, win.Amount); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"token":   token,
				"account": win.Account,
				"amount":  win.Amount,
			}).Error("failed to refund winning bid")
			return err
		}
		return nil
	}

	sellerShare, realized := im.payRoyalties(ctx, token, lot, win.Amount)
	if err := im.rail.Pay(ctx, lot.Owner, sellerShare); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"token":   token,
			"account": lot.Owner,
			"amount":  sellerShare,
		}).Error("failed to pay seller")
	}
	met.BumpSum("finalize.count", 1)
	im.appendEvent(ctx, event.TagFinalize, token, event.Finalize{
		Seller:      lot.Owner,
		Winner:      win.Account,
		Price:       win.Amount,
		Royalties:   realized,
		SellerShare: sellerShare,
	})
	return nil
}

// payRoyalties fans the sale price out to the royalty beneficiaries and the
// platform, returning what is left for the seller along with the entries
// that actually got paid. A payout the rail rejects is skipped without
// deducting it, as is one the remainder can no longer cover, so those
// shares stay with the seller.
func (im *impl) payRoyalties(ctx bCtx.Ctx, token domain.Token, lot *auction.Lot, price domain.Amount) (domain.Amount, []domain.Royalty) {
	entries := make([]domain.Royalty, 0, len(lot.Royalties)+1)
	entries = append(entries, lot.Royalties...)
	entries = append(entries, domain.Royalty{Beneficiary: im.feeBeneficiary, Percentage: lot.PlatformFee})

	remainder := price
	realized := make([]domain.Royalty, 0, len(entries))
	for _, r := range entries {
		share := r.Percentage.Mul(price)
		if share == 0 || share > remainder {
			continue
		}
		if err := im.rail.Pay(ctx, r.Beneficiary, share); err != nil {
			ctx.WithFields(log.Fields{
				"err":         err,
				"token":       token,
				"beneficiary": r.Beneficiary,
				"amount":      share,
			}).Warn("royalty payout rejected, share stays with seller")
			continue
		}
		remainder -= share
		realized = append(realized, r)
	}
	return remainder, realized
}

// Cancel aborts an auction that has not completed. Seller only. The highest
// bid, if any, is refunded and the asset return follows the same fail-safe
// path as Finalize.
func (im *impl) Cancel(ctx bCtx.Ctx, token domain.Token, caller domain.Address) error {
	token = token.ToLower()
	lot, err := im.findLot(ctx, token)
	if err != nil {
		return err
	}
	if !caller.Equals(lot.Owner) {
		return domain.ErrUnauthorized
	}
	if lot.PhaseAt(timeNow().UTC()) == auction.PhaseCompleted {
		return domain.ErrAuctionFinished
	}

	if err := im.tokenStateRepo.Remove(ctx, token); err != nil {
		return err
	}
	if lot.HighestBid != nil {
		if err := im.rail.Pay(ctx, lot.HighestBid.Account, lot.HighestBid.Amount); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"token":   token,
				"account": lot.HighestBid.Account,
				"amount":  lot.HighestBid.Amount,
			}).Error("failed to refund highest bid")
			return err
		}
	}
	met.BumpSum("cancel.count", 1)
	im.returnAsset(ctx, token, lot.Owner, lot.HighestBid)
	return nil
}

// Recover retries the asset return a grave records. Unlike Finalize and
// Cancel it propagates the registry failure, re-invocation is the remedy.
func (im *impl) Recover(ctx bCtx.Ctx, token domain.Token) error {
	token = token.ToLower()
	state, err := im.tokenStateRepo.FindOne(ctx, token)
	if err == domain.ErrNotFound {
		return domain.ErrUnknownToken
	} else if err != nil {
		return err
	}
	if state.Kind != auction.StateKindGrave {
		return domain.ErrUnauthorized
	}

	owner := *state.GraveOwner
	if err := im.registry.Transfer(ctx, token, im.escrowAccount, owner); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"token": token,
			"owner": owner,
		}).Error("asset recovery transfer failed")
		return err
	}
	met.BumpSum("recover.count", 1)
	return im.tokenStateRepo.Remove(ctx, token)
}

func (im *impl) Get(ctx bCtx.Ctx, token domain.Token) (*auction.TokenState, error) {
	return im.tokenStateRepo.FindOne(ctx, token.ToLower())
}

func (im *impl) findLot(ctx bCtx.Ctx, token domain.Token) (*auction.Lot, error) {
	state, err := im.tokenStateRepo.FindOne(ctx, token)
	if err == domain.ErrNotFound {
		return nil, domain.ErrUnknownToken
	} else if err != nil {
		return nil, err
	}
	// a buried token has no live auction
	if state.Kind != auction.StateKindLot {
		return nil, domain.ErrUnknownToken
	}
	return state.Lot, nil
}

// returnAsset hands the asset back to owner, burying a grave when the
// registry rejects the transfer. refunded is the bid already paid back on
// this path, recorded in the abort event for auditability.
func (im *impl) returnAsset(ctx bCtx.Ctx, token domain.Token, owner domain.Address, refunded *auction.Bid) {
	if err := im.registry.Transfer(ctx, token, im.escrowAccount, owner); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"token": token,
			"owner": owner,
		}).Warn("asset return failed, burying grave")
		im.bury(ctx, token, owner, refunded)
		return
	}
	im.appendEvent(ctx, event.TagCancel, token, event.Cancel{Owner: owner})
}

func (im *impl) bury(ctx bCtx.Ctx, token domain.Token, owner domain.Address, refunded *auction.Bid) {
	met.BumpSum("grave.count", 1)
	o := owner
	if err := im.tokenStateRepo.Upsert(ctx, &auction.TokenState{
		Token:      token,
		Kind:       auction.StateKindGrave,
		GraveOwner: &o,
	}); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"token": token,
		}).Error("failed to bury grave")
	}
	ev := event.Abort{Owner: owner}
	if refunded != nil {
		acc := refunded.Account
		ev.Bidder = &acc
		ev.Amount = refunded.Amount
	}
	im.appendEvent(ctx, event.TagAbort, token, ev)
}

// event log failures are logged and swallowed, the log is advisory
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
