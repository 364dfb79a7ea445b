package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openlot/goapi/base/ctx"
	"github.com/openlot/goapi/base/delivery"
	"github.com/openlot/goapi/domain"
	"github.com/openlot/goapi/domain/event"
)

type handler struct {
	events event.Repo
}

func New(e *echo.Echo, events event.Repo) {
	h := &handler{
		events: events,
	}

	e.GET("/events/:contract/:tokenId", h.list)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Contract string `param:"contract" validate:"required"`
		TokenId  string `param:"tokenId" validate:"required"`
		Offset   int    `query:"offset"`
		Limit    int    `query:"limit"`
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 30
	}

	token := domain.Token{Contract: domain.Address(p.Contract), TokenId: domain.TokenId(p.TokenId)}
	evs, err := h.events.FindByToken(ctx, token, p.Offset, p.Limit)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, evs)
}
