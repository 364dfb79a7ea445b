package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openlot/goapi/base/ctx"
	"github.com/openlot/goapi/domain"
	"github.com/openlot/goapi/domain/auction"
	mAuction "github.com/openlot/goapi/domain/auction/mocks"
	"github.com/openlot/goapi/domain/event"
	mEvent "github.com/openlot/goapi/domain/event/mocks"
	mDomain "github.com/openlot/goapi/domain/mocks"
)

var (
	frozen = time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC)

	escrow   = domain.Address("escrowvault")
	platform = domain.Address("platformfees")
	seller   = domain.Address("seller")
	alice    = domain.Address("alice")
	bob      = domain.Address("bob")

	testToken = domain.Token{Contract: "contractone", TokenId: "7"}
)

type auctionSuite struct {
	suite.Suite

	tokenStateRepo *mAuction.Repo
	eventRepo      *mEvent.Repo
	registry       *mDomain.AssetRegistry
	rail           *mDomain.MoneyRail

	im *impl
}

func TestAuctionSuite(t *testing.T) {
	suite.Run(t, new(auctionSuite))
}

func (s *auctionSuite) SetupTest() {
	s.tokenStateRepo = &mAuction.Repo{}
	s.eventRepo = &mEvent.Repo{}
	s.registry = &mDomain.AssetRegistry{}
	s.rail = &mDomain.MoneyRail{}

	s.im = New(&AuctionUseCaseCfg{
		TokenStateRepo: s.tokenStateRepo,
		EventRepo:      s.eventRepo,
		Registry:       s.registry,
		Rail:           s.rail,
		PlatformFee:    domain.FromPercent(2),
		FeeBeneficiary: platform,
		EscrowAccount:  escrow,
	}).(*impl)

	timeNow = func() time.Time { return frozen }
}

func (s *auctionSuite) TearDownTest() {
	timeNow = time.Now
	s.tokenStateRepo.AssertExpectations(s.T())
	s.eventRepo.AssertExpectations(s.T())
	s.registry.AssertExpectations(s.T())
	s.rail.AssertExpectations(s.T())
}

func (s *auctionSuite) expectEvent(tag event.Tag) {
	s.eventRepo.On("Append", mock.Anything, mock.MatchedBy(func(ev *event.Event) bool {
		return ev.Tag == tag && ev.Token == testToken
	})).Return(nil).Once()
}

func activeLot() *auction.Lot {
	return &auction.Lot{
		Owner:        seller,
		PlatformFee:  domain.FromPercent(2),
		Reserve:      100,
		Increment:    auction.Increment{Kind: auction.IncrementFlat, Flat: 5},
		Start:        frozen.Add(-time.Minute),
		Finalization: auction.Finalization{Kind: auction.FinalizationDuration, Duration: time.Hour},
	}
}

func completedLot(highest *auction.Bid) *auction.Lot {
	lot := activeLot()
	lot.Start = frozen.Add(-2 * time.Hour)
	lot.HighestBid = highest
	return lot
}

func lotState(lot *auction.Lot) *auction.TokenState {
	return &auction.TokenState{Token: testToken, Kind: auction.StateKindLot, Lot: lot}
}

func graveState(owner domain.Address) *auction.TokenState {
	return &auction.TokenState{Token: testToken, Kind: auction.StateKindGrave, GraveOwner: &owner}
}

func (s *auctionSuite) TestListRejectsLiveLot() {
	c := ctx.Background()
	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(lotState(activeLot()), nil).Once()

	err := s.im.List(c, seller, testToken, auction.LotInfo{Reserve: 100})
	s.Equal(domain.ErrAlreadyListed, err)
}

func (s *auctionSuite) TestListOverwritesGrave() {
	c := ctx.Background()
	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(graveState(bob), nil).Once()
	s.registry.On("GetRoyalties", mock.Anything, testToken).Return([]domain.Royalty{
		{Beneficiary: "artist", Percentage: domain.FromPercent(5)},
	}, nil).Once()
	s.tokenStateRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(st *auction.TokenState) bool {
		return st.Kind == auction.StateKindLot &&
			st.Lot.Owner == seller &&
			st.Lot.Start.Equal(frozen) &&
			st.Lot.PlatformFee == domain.FromPercent(2) &&
			len(st.Lot.Royalties) == 1
	})).Return(nil).Once()
	// the event carries the escrow terms
	s.eventRepo.On("Append", mock.Anything, mock.MatchedBy(func(ev *event.Event) bool {
		l, ok := ev.Data.(event.List)
		return ok && ev.Tag == event.TagList && l.Owner == seller &&
			l.Terms != nil && l.Terms.Reserve == 100 &&
			l.Terms.Increment.Kind == auction.IncrementFlat &&
			l.Terms.Finalization.Duration == time.Hour
	})).Return(nil).Once()

	err := s.im.List(c, seller, testToken, auction.LotInfo{
		Reserve:      100,
		Increment:    auction.Increment{Kind: auction.IncrementFlat, Flat: 5},
		Finalization: auction.Finalization{Kind: auction.FinalizationDuration, Duration: time.Hour},
	})
	s.NoError(err)
}

func (s *auctionSuite) TestListRejectsExcessiveRoyalty() {
	c := ctx.Background()
	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(nil, domain.ErrNotFound).Once()
	// 99% royalty plus the 2% platform fee crosses 100%
	s.registry.On("GetRoyalties", mock.Anything, testToken).Return([]domain.Royalty{
		{Beneficiary: "artist", Percentage: domain.FromPercent(99)},
	}, nil).Once()

	err := s.im.List(c, seller, testToken, auction.LotInfo{Reserve: 100})
	s.Equal(domain.ErrInvalidRoyalty, err)
}

func (s *auctionSuite) TestListRejectsTooManyRoyalties() {
	c := ctx.Background()
	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(nil, domain.ErrNotFound).Once()
	royalties := make([]domain.Royalty, maxRoyalties)
	s.registry.On("GetRoyalties", mock.Anything, testToken).Return(royalties, nil).Once()

	err := s.im.List(c, seller, testToken, auction.LotInfo{Reserve: 100})
	s.Equal(domain.ErrInvalidRoyalty, err)
}

func (s *auctionSuite) TestPlaceBidGuards() {
	c := ctx.Background()

	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(nil, domain.ErrNotFound).Once()
	s.Equal(domain.ErrUnknownToken, s.im.PlaceBid(c, testToken, alice, 100))

	notStarted := activeLot()
	notStarted.Start = frozen.Add(time.Minute)
	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(lotState(notStarted), nil).Once()
	s.Equal(domain.ErrAuctionNotStarted, s.im.PlaceBid(c, testToken, alice, 100))

	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(lotState(completedLot(nil)), nil).Once()
	s.Equal(domain.ErrAuctionFinished, s.im.PlaceBid(c, testToken, alice, 100))

	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(lotState(activeLot()), nil).Once()
	s.Equal(domain.ErrOwnerForbidden, s.im.PlaceBid(c, testToken, seller, 100))

	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(lotState(activeLot()), nil).Once()
	s.Equal(domain.ErrBidTooLow, s.im.PlaceBid(c, testToken, alice, 99))
}

func (s *auctionSuite) TestPlaceBidRefundsDisplaced() {
	c := ctx.Background()

	// first bid, reserve is enough, nobody to refund
	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(lotState(activeLot()), nil).Once()
	s.tokenStateRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(st *auction.TokenState) bool {
		return st.Lot.HighestBid != nil && st.Lot.HighestBid.Account == alice && st.Lot.HighestBid.Amount == 100
	})).Return(nil).Once()
	s.expectEvent(event.TagBid)
	s.NoError(s.im.PlaceBid(c, testToken, alice, 100))

	// bob outbids by the flat increment, alice gets her 100 back
	withBid := activeLot()
	withBid.HighestBid = &auction.Bid{Timestamp: frozen, Account: alice, Amount: 100}
	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(lotState(withBid), nil).Once()
	s.tokenStateRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(st *auction.TokenState) bool {
		return st.Lot.HighestBid.Account == bob && st.Lot.HighestBid.Amount == 105
	})).Return(nil).Once()
	s.rail.On("Pay", mock.Anything, alice, domain.Amount(100)).Return(nil).Once()
	s.expectEvent(event.TagBid)
	s.NoError(s.im.PlaceBid(c, testToken, bob, 105))
}

func (s *auctionSuite) TestFinalizeStillActive() {
	c := ctx.Background()
	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(lotState(activeLot()), nil).Once()

	s.Equal(domain.ErrAuctionStillActive, s.im.Finalize(c, testToken))
}

func (s *auctionSuite) TestFinalizeNoBidReturnsAsset() {
	c := ctx.Background()
	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(lotState(completedLot(nil)), nil).Once()
	s.tokenStateRepo.On("Remove", mock.Anything, testToken).Return(nil).Once()
	s.registry.On("Transfer", mock.Anything, testToken, escrow, seller).Return(nil).Once()
	s.expectEvent(event.TagCancel)

	s.NoError(s.im.Finalize(c, testToken))
}

func (s *auctionSuite) TestFinalizeSettlement() {
	c := ctx.Background()
	lot := completedLot(&auction.Bid{Timestamp: frozen.Add(-time.Hour), Account: alice, Amount: 1000})
	lot.Royalties = []domain.Royalty{
		{Beneficiary: "artist", Percentage: domain.FromPercent(5)},
		{Beneficiary: "gallery", Percentage: domain.FromPercent(3)},
	}

	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(lotState(lot), nil).Once()
	s.tokenStateRepo.On("Remove", mock.Anything, testToken).Return(nil).Once()
	s.registry.On("Transfer", mock.Anything, testToken, escrow, alice).Return(nil).Once()

	s.rail.On("Pay", mock.Anything, domain.Address("artist"), domain.Amount(50)).Return(nil).Once()
	s.rail.On("Pay", mock.Anything, domain.Address("gallery"), domain.Amount(30)).Return(nil).Once()
	s.rail.On("Pay", mock.Anything, platform, domain.Amount(20)).Return(nil).Once()
	s.rail.On("Pay", mock.Anything, seller, domain.Amount(900)).Return(nil).Once()

	s.eventRepo.On("Append", mock.Anything, mock.MatchedBy(func(ev *event.Event) bool {
		fin, ok := ev.Data.(event.Finalize)
		return ok && ev.Tag == event.TagFinalize &&
			fin.Winner == alice && fin.Price == 1000 && fin.SellerShare == 900 &&
			len(fin.Royalties) == 3 && fin.Royalties[2].Beneficiary == platform
	})).Return(nil).Once()

	s.NoError(s.im.Finalize(c, testToken))
}

func (s *auctionSuite) TestFinalizeSkipsRejectedRoyalty() {
	c := ctx.Background()
	lot := completedLot(&auction.Bid{Timestamp: frozen.Add(-time.Hour), Account: alice, Amount: 1000})
	lot.Royalties = []domain.Royalty{
		{Beneficiary: "artist", Percentage: domain.FromPercent(5)},
	}

	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(lotState(lot), nil).Once()
	s.tokenStateRepo.On("Remove", mock.Anything, testToken).Return(nil).Once()
	s.registry.On("Transfer", mock.Anything, testToken, escrow, alice).Return(nil).Once()

	// artist's rail account rejects, their 50 stays with the seller
	s.rail.On("Pay", mock.Anything, domain.Address("artist"), domain.Amount(50)).Return(errors.New("account closed")).Once()
	s.rail.On("Pay", mock.Anything, platform, domain.Amount(20)).Return(nil).Once()
	s.rail.On("Pay", mock.Anything, seller, domain.Amount(980)).Return(nil).Once()
	// the rejected entry must not show up in the realized list
	s.eventRepo.On("Append", mock.Anything, mock.MatchedBy(func(ev *event.Event) bool {
		fin, ok := ev.Data.(event.Finalize)
		return ok && ev.Tag == event.TagFinalize && fin.SellerShare == 980 &&
			len(fin.Royalties) == 1 && fin.Royalties[0].Beneficiary == platform
	})).Return(nil).Once()

	s.NoError(s.im.Finalize(c, testToken))
}

func (s *auctionSuite) TestFinalizeTransferFailureBuriesAndRefunds() {
	c := ctx.Background()
	lot := completedLot(&auction.Bid{Timestamp: frozen.Add(-time.Hour), Account: alice, Amount: 1000})

	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(lotState(lot), nil).Once()
	s.tokenStateRepo.On("Remove", mock.Anything, testToken).Return(nil).Once()
	s.registry.On("Transfer", mock.Anything, testToken, escrow, alice).Return(errors.New("rejected")).Once()
	s.tokenStateRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(st *auction.TokenState) bool {
		return st.Kind == auction.StateKindGrave && *st.GraveOwner == seller
	})).Return(nil).Once()
	s.expectEvent(event.TagAbort)
	// the winning bid comes back exactly once
	s.rail.On("Pay", mock.Anything, alice, domain.Amount(1000)).Return(nil).Once()

	s.NoError(s.im.Finalize(c, testToken))
}

func (s *auctionSuite) TestCancel() {
	c := ctx.Background()

	// only the owner may cancel
	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(lotState(activeLot()), nil).Once()
	s.Equal(domain.ErrUnauthorized, s.im.Cancel(c, testToken, alice))

	// a completed auction can only be finalized
	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(lotState(completedLot(nil)), nil).Once()
	s.Equal(domain.ErrAuctionFinished, s.im.Cancel(c, testToken, seller))

	// happy path refunds the held bid and returns the asset
	lot := activeLot()
	lot.HighestBid = &auction.Bid{Timestamp: frozen, Account: alice, Amount: 200}
	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(lotState(lot), nil).Once()
	s.tokenStateRepo.On("Remove", mock.Anything, testToken).Return(nil).Once()
	s.rail.On("Pay", mock.Anything, alice, domain.Amount(200)).Return(nil).Once()
	s.registry.On("Transfer", mock.Anything, testToken, escrow, seller).Return(nil).Once()
	s.expectEvent(event.TagCancel)
	s.NoError(s.im.Cancel(c, testToken, seller))
}

func (s *auctionSuite) TestRecover() {
	c := ctx.Background()

	// no grave, nothing to recover
	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(nil, domain.ErrNotFound).Once()
	s.Equal(domain.ErrUnknownToken, s.im.Recover(c, testToken))

	// a live auction cannot be recovered
	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(lotState(activeLot()), nil).Once()
	s.Equal(domain.ErrUnauthorized, s.im.Recover(c, testToken))

	// registry still rejecting, the failure propagates and the grave stays
	transferErr := errors.New("still rejected")
	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(graveState(seller), nil).Once()
	s.registry.On("Transfer", mock.Anything, testToken, escrow, seller).Return(transferErr).Once()
	s.Equal(transferErr, s.im.Recover(c, testToken))

	// registry accepts, the grave is deleted
	s.tokenStateRepo.On("FindOne", mock.Anything, testToken).Return(graveState(seller), nil).Once()
	s.registry.On("Transfer", mock.Anything, testToken, escrow, seller).Return(nil).Once()
	s.tokenStateRepo.On("Remove", mock.Anything, testToken).Return(nil).Once()
	s.NoError(s.im.Recover(c, testToken))
}
