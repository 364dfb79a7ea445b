package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openlot/goapi/base/ctx"
	"github.com/openlot/goapi/base/delivery"
	"github.com/openlot/goapi/base/validator"
	"github.com/openlot/goapi/domain"
	"github.com/openlot/goapi/domain/listing"
)

type handler struct {
	lu listing.UseCase
}

func New(e *echo.Echo, lu listing.UseCase) {
	h := &handler{
		lu: lu,
	}

	g := e.Group("/listings")
	g.POST("", h.create)
	g.POST("/unlist", h.unlist)
	g.POST("/buy", h.buy)
	g.GET("/:contract/:tokenId", h.get)
}

type createPayload struct {
	Owner    string `json:"owner" validate:"required"`
	Contract string `json:"contract" validate:"required"`
	TokenId  string `json:"tokenId" validate:"required"`
	// Price is a decimal string of whole currency units
	Price string `json:"price" validate:"required"`
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
	price, err := domain.ParseAmount(p.Price)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	token := domain.Token{Contract: domain.Address(p.Contract), TokenId: domain.TokenId(p.TokenId)}
	if err := h.lu.List(ctx, domain.Address(p.Owner), token, price); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

type unlistPayload struct {
	Caller   string `json:"caller" validate:"required"`
	Contract string `json:"contract" validate:"required"`
	TokenId  string `json:"tokenId" validate:"required"`
}

func (h *handler) unlist(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &unlistPayload{}
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
	if err := h.lu.Unlist(ctx, token, domain.Address(p.Caller)); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

type buyPayload struct {
	Buyer    string `json:"buyer" validate:"required"`
	Contract string `json:"contract" validate:"required"`
	TokenId  string `json:"tokenId" validate:"required"`
	// Paid is a decimal string, anything above the price is refunded
	Paid string `json:"paid" validate:"required"`
}

func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &buyPayload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if !validator.IsValidAccount(p.Buyer) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	paid, err := domain.ParseAmount(p.Paid)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	token := domain.Token{Contract: domain.Address(p.Contract), TokenId: domain.TokenId(p.TokenId)}
	if err := h.lu.Buy(ctx, token, domain.Address(p.Buyer), paid); err != nil {
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
	l, err := h.lu.Get(ctx, token)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}
