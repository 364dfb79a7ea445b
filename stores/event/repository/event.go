package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/openlot/goapi/base/ctx"
	"github.com/openlot/goapi/base/log"
	"github.com/openlot/goapi/domain"
	"github.com/openlot/goapi/domain/event"
	"github.com/openlot/goapi/service/query"
)

type eventRepo struct {
	q query.Mongo
}

func NewEventRepo(q query.Mongo) event.Repo {
	return &eventRepo{
		q: q,
	}
}

func (r *eventRepo) Append(ctx bCtx.Ctx, ev *event.Event) error {
	ev.Token = ev.Token.ToLower()
	if err := r.q.Insert(ctx, domain.TableMarketplaceEvents, ev); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"tag":   ev.Tag,
			"token": ev.Token,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *eventRepo) FindByToken(ctx bCtx.Ctx, token domain.Token, offset, limit int) ([]*event.Event, error) {
	events := []*event.Event{}
	qry := bson.M{"contract": token.Contract.ToLower(), "tokenId": token.TokenId}
	if err := r.q.Search(ctx, domain.TableMarketplaceEvents, offset, limit, "-time", qry, &events); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"token": token,
		}).Error("q.Search failed")
		return nil, err
	}
	return events, nil
}
