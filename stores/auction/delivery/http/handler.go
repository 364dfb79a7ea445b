package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openlot/goapi/base/ctx"
	"github.com/openlot/goapi/base/delivery"
	"github.com/openlot/goapi/base/ptr"
	"github.com/openlot/goapi/base/validator"
	"github.com/openlot/goapi/domain"
	"github.com/openlot/goapi/domain/auction"
)

type handler struct {
	au auction.UseCase
}

func New(e *echo.Echo, au auction.UseCase) {
	h := &handler{
		au: au,
	}

	g := e.Group("/auctions")
	g.POST("", h.create)
	g.POST("/bid", h.bid)
	g.POST("/finalize", h.finalize)
	g.POST("/cancel", h.cancel)
	g.POST("/recover", h.recover)
	g.GET("/:contract/:tokenId", h.get)
}

type createPayload struct {
	Owner    string `json:"owner" validate:"required"`
	Contract string `json:"contract" validate:"required"`
	TokenId  string `json:"tokenId" validate:"required"`
	// Reserve, Flat and Buyout are decimal strings of whole currency units
	Reserve          string `json:"reserve" validate:"required"`
	Buyout           string `json:"buyout"`
	IncrementKind    string `json:"incrementKind" validate:"required,oneof=flat percentage"`
	IncrementFlat    string `json:"incrementFlat"`
	IncrementPct     uint64 `json:"incrementPct"`
	FinalizationKind string `json:"finalizationKind" validate:"required,oneof=duration bidTimeout"`
	DurationSecs     int64  `json:"durationSecs" validate:"required,gt=0"`
	Start            *int64 `json:"start"`
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &createPayload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if !validator.IsValidAccount(p.Owner) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	reserve, err := domain.ParseAmount(p.Reserve)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	info := auction.LotInfo{
		Reserve: reserve,
		Finalization: auction.Finalization{
			Kind:     auction.FinalizationKind(p.FinalizationKind),
			Duration: time.Duration(p.DurationSecs) * time.Second,
		},
	}
	switch auction.IncrementKind(p.IncrementKind) {
	case auction.IncrementFlat:
		flat, err := domain.ParseAmount(p.IncrementFlat)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}
		info.Increment = auction.Increment{Kind: auction.IncrementFlat, Flat: flat}
	case auction.IncrementPercentage:
		info.Increment = auction.Increment{
			Kind:       auction.IncrementPercentage,
			Percentage: domain.FromMicroPercent(p.IncrementPct),
		}
	}
	if p.Buyout != "" {
		buyout, err := domain.ParseAmount(p.Buyout)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}
		info.Buyout = &buyout
	}
	if p.Start != nil {
		info.Start = ptr.Time(time.Unix(*p.Start, 0).UTC())
	}

	token := domain.Token{Contract: domain.Address(p.Contract), TokenId: domain.TokenId(p.TokenId)}
	if err := h.au.List(ctx, domain.Address(p.Owner), token, info); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

type bidPayload struct {
	Bidder   string `json:"bidder" validate:"required"`
	Contract string `json:"contract" validate:"required"`
	TokenId  string `json:"tokenId" validate:"required"`
	Amount   string `json:"amount" validate:"required"`
}

func (h *handler) bid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &bidPayload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if !validator.IsValidAccount(p.Bidder) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	amount, err := domain.ParseAmount(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	token := domain.Token{Contract: domain.Address(p.Contract), TokenId: domain.TokenId(p.TokenId)}
	if err := h.au.PlaceBid(ctx, token, domain.Address(p.Bidder), amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

type tokenPayload struct {
	Contract string `json:"contract" validate:"required"`
	TokenId  string `json:"tokenId" validate:"required"`
}

func (h *handler) finalize(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &tokenPayload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	token := domain.Token{Contract: domain.Address(p.Contract), TokenId: domain.TokenId(p.TokenId)}
	if err := h.au.Finalize(ctx, token); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

type cancelPayload struct {
	Caller   string `json:"caller" validate:"required"`
	Contract string `json:"contract" validate:"required"`
	TokenId  string `json:"tokenId" validate:"required"`
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &cancelPayload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if !validator.IsValidAccount(p.Caller) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	token := domain.Token{Contract: domain.Address(p.Contract), TokenId: domain.TokenId(p.TokenId)}
	if err := h.au.Cancel(ctx, token, domain.Address(p.Caller)); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) recover(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &tokenPayload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	token := domain.Token{Contract: domain.Address(p.Contract), TokenId: domain.TokenId(p.TokenId)}
	if err := h.au.Recover(ctx, token); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Contract string `param:"contract" validate:"required"`
		TokenId  string `param:"tokenId" validate:"required"`
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	token := domain.Token{Contract: domain.Address(p.Contract), TokenId: domain.TokenId(p.TokenId)}
	state, err := h.au.Get(ctx, token)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, state)
}
