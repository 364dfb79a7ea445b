package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/openlot/goapi/base/ctx"
	"github.com/openlot/goapi/base/log"
	"github.com/openlot/goapi/domain"
	"github.com/openlot/goapi/domain/auction"
	"github.com/openlot/goapi/service/query"
)

type tokenStateRepo struct {
	q query.Mongo
}

func NewTokenStateRepo(q query.Mongo) auction.Repo {
	return &tokenStateRepo{
		q: q,
	}
}

func selector(token domain.Token) bson.M {
	return bson.M{"contract": token.Contract.ToLower(), "tokenId": token.TokenId}
}

func (r *tokenStateRepo) FindOne(ctx bCtx.Ctx, token domain.Token) (*auction.TokenState, error) {
	state := &auction.TokenState{}
	if err := r.q.FindOne(ctx, domain.TableAuctionStates, selector(token), state); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"token": token,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return state, nil
}

func (r *tokenStateRepo) Upsert(ctx bCtx.Ctx, state *auction.TokenState) error {
	state.Token = state.Token.ToLower()
	if err := r.q.Upsert(ctx, domain.TableAuctionStates, selector(state.Token), state); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"token": state.Token,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (r *tokenStateRepo) Remove(ctx bCtx.Ctx, token domain.Token) error {
	if err := r.q.Remove(ctx, domain.TableAuctionStates, selector(token)); err == query.ErrNotFound {
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
