package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/openlot/goapi/base/ctx"
	"github.com/openlot/goapi/base/log"
	"github.com/openlot/goapi/domain"
	"github.com/openlot/goapi/domain/listing"
	"github.com/openlot/goapi/service/query"
)

type listingRepo struct {
	q query.Mongo
}

func NewListingRepo(q query.Mongo) listing.Repo {
	return &listingRepo{
		q: q,
	}
}

func selector(token domain.Token) bson.M {
	return bson.M{"contract": token.Contract.ToLower(), "tokenId": token.TokenId}
}

func (r *listingRepo) FindOne(ctx bCtx.Ctx, token domain.Token) (*listing.Listing, error) {
	l := &listing.Listing{}
	if err := r.q.FindOne(ctx, domain.TableListings, selector(token), l); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"token": token,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return l, nil
}

func (r *listingRepo) Create(ctx bCtx.Ctx, l *listing.Listing) error {
	l.Token = l.Token.ToLower()
	if err := r.q.Insert(ctx, domain.TableListings, l); err == query.ErrDuplicateKey {
		return domain.ErrAlreadyListed
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"token": l.Token,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *listingRepo) Remove(ctx bCtx.Ctx, token domain.Token) error {
	if err := r.q.Remove(ctx, domain.TableListings, selector(token)); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"token": token,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}
