package domain

import "strings"

// Address is an account or contract id on the asset registry
type Address string

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

// Token is the global key of an escrowed asset: the registry contract that
// minted it plus the token id inside that contract.
type Token struct {
	Contract Address `json:"contract" bson:"contract"`
	TokenId  TokenId `json:"tokenId" bson:"tokenId"`
}

func (t Token) ToLower() Token {
	return Token{Contract: t.Contract.ToLower(), TokenId: t.TokenId}
}

// Amount is a native currency value in micro units
type Amount uint64

type Table string

const (
	TableAuctionStates     Table = "auction_states"
	TableListings          Table = "listings"
	TableMarketplaceEvents Table = "marketplace_events"
)
