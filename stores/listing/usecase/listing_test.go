package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openlot/goapi/base/ctx"
	"github.com/openlot/goapi/domain"
	"github.com/openlot/goapi/domain/event"
	mEvent "github.com/openlot/goapi/domain/event/mocks"
	"github.com/openlot/goapi/domain/listing"
	mListing "github.com/openlot/goapi/domain/listing/mocks"
	mDomain "github.com/openlot/goapi/domain/mocks"
)

var (
	escrow   = domain.Address("escrowvault")
	platform = domain.Address("platformfees")
	seller   = domain.Address("seller")
	buyer    = domain.Address("buyer")

	testToken = domain.Token{Contract: "contractone", TokenId: "7"}
)

type listingSuite struct {
	suite.Suite

	listingRepo *mListing.Repo
	eventRepo   *mEvent.Repo
	registry    *mDomain.AssetRegistry
	rail        *mDomain.MoneyRail

	im *impl
}

func TestListingSuite(t *testing.T) {
	suite.Run(t, new(listingSuite))
}

func (s *listingSuite) SetupTest() {
	s.listingRepo = &mListing.Repo{}
	s.eventRepo = &mEvent.Repo{}
	s.registry = &mDomain.AssetRegistry{}
	s.rail = &mDomain.MoneyRail{}

	s.im = New(&ListingUseCaseCfg{
		ListingRepo:    s.listingRepo,
		EventRepo:      s.eventRepo,
		Registry:       s.registry,
		Rail:           s.rail,
		PlatformFee:    domain.FromPercent(2),
		FeeBeneficiary: platform,
		EscrowAccount:  escrow,
	}).(*impl)
}

func (s *listingSuite) TearDownTest() {
	s.listingRepo.AssertExpectations(s.T())
	s.eventRepo.AssertExpectations(s.T())
	s.registry.AssertExpectations(s.T())
	s.rail.AssertExpectations(s.T())
}

func (s *listingSuite) expectEvent(tag event.Tag) {
	s.eventRepo.On("Append", mock.Anything, mock.MatchedBy(func(ev *event.Event) bool {
		return ev.Tag == tag && ev.Token == testToken
	})).Return(nil).Once()
}

func testListing() *listing.Listing {
	return &listing.Listing{
		Token:       testToken,
		Owner:       seller,
		Price:       1000,
		PlatformFee: domain.FromPercent(2),
		Royalties: []domain.Royalty{
			{Beneficiary: "artist", Percentage: domain.FromPercent(5)},
		},
	}
}

func (s *listingSuite) TestList() {
	c := ctx.Background()
	s.registry.On("GetRoyalties", mock.Anything, testToken).Return([]domain.Royalty{
		{Beneficiary: "artist", Percentage: domain.FromPercent(5)},
	}, nil).Once()
	s.listingRepo.On("Create", mock.Anything, mock.MatchedBy(func(l *listing.Listing) bool {
		return l.Owner == seller && l.Price == 1000 && l.PlatformFee == domain.FromPercent(2)
	})).Return(nil).Once()
	s.expectEvent(event.TagList)

	s.NoError(s.im.List(c, seller, testToken, 1000))
}

func (s *listingSuite) TestListRejectsDuplicate() {
	c := ctx.Background()
	s.registry.On("GetRoyalties", mock.Anything, testToken).Return(nil, nil).Once()
	s.listingRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrAlreadyListed).Once()

	s.Equal(domain.ErrAlreadyListed, s.im.List(c, seller, testToken, 1000))
}

func (s *listingSuite) TestUnlist() {
	c := ctx.Background()

	s.listingRepo.On("FindOne", mock.Anything, testToken).Return(testListing(), nil).Once()
	s.Equal(domain.ErrUnauthorized, s.im.Unlist(c, testToken, buyer))

	s.listingRepo.On("FindOne", mock.Anything, testToken).Return(testListing(), nil).Once()
	s.listingRepo.On("Remove", mock.Anything, testToken).Return(nil).Once()
	s.registry.On("Transfer", mock.Anything, testToken, escrow, seller).Return(nil).Once()
	s.expectEvent(event.TagUnlist)
	s.NoError(s.im.Unlist(c, testToken, seller))
}

func (s *listingSuite) TestBuy() {
	c := ctx.Background()

	s.listingRepo.On("FindOne", mock.Anything, testToken).Return(testListing(), nil).Once()
	s.Equal(domain.ErrPriceNotCovered, s.im.Buy(c, testToken, buyer, 999))

	// exact payment, strict fan out, no refund
	s.listingRepo.On("FindOne", mock.Anything, testToken).Return(testListing(), nil).Once()
	s.registry.On("Transfer", mock.Anything, testToken, escrow, buyer).Return(nil).Once()
	s.listingRepo.On("Remove", mock.Anything, testToken).Return(nil).Once()
	s.rail.On("Pay", mock.Anything, domain.Address("artist"), domain.Amount(50)).Return(nil).Once()
	s.rail.On("Pay", mock.Anything, platform, domain.Amount(20)).Return(nil).Once()
	s.rail.On("Pay", mock.Anything, seller, domain.Amount(930)).Return(nil).Once()
	s.expectEvent(event.TagBuy)
	s.NoError(s.im.Buy(c, testToken, buyer, 1000))
}

func (s *listingSuite) TestBuyRefundsOverpayment() {
	c := ctx.Background()

	s.listingRepo.On("FindOne", mock.Anything, testToken).Return(testListing(), nil).Once()
	s.registry.On("Transfer", mock.Anything, testToken, escrow, buyer).Return(nil).Once()
	s.listingRepo.On("Remove", mock.Anything, testToken).Return(nil).Once()
	s.rail.On("Pay", mock.Anything, domain.Address("artist"), domain.Amount(50)).Return(nil).Once()
	s.rail.On("Pay", mock.Anything, platform, domain.Amount(20)).Return(nil).Once()
	s.rail.On("Pay", mock.Anything, seller, domain.Amount(930)).Return(nil).Once()
	s.rail.On("Pay", mock.Anything, buyer, domain.Amount(200)).Return(nil).Once()
	s.expectEvent(event.TagBuy)

	s.NoError(s.im.Buy(c, testToken, buyer, 1200))
}

func (s *listingSuite) TestBuyStrictPayout() {
	c := ctx.Background()

	// a rejected royalty fails the whole purchase before the asset moves
	s.listingRepo.On("FindOne", mock.Anything, testToken).Return(testListing(), nil).Once()
	s.listingRepo.On("Remove", mock.Anything, testToken).Return(nil).Once()
	payErr := errors.New("account closed")
	s.rail.On("Pay", mock.Anything, domain.Address("artist"), domain.Amount(50)).Return(payErr).Once()

	s.Equal(payErr, s.im.Buy(c, testToken, buyer, 1000))

	// the buyer must not end up holding the asset and the seller is not paid
	s.registry.AssertNotCalled(s.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.rail.AssertNotCalled(s.T(), "Pay", mock.Anything, seller, mock.Anything)
}
