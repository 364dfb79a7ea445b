package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	bCtx "github.com/openlot/goapi/base/ctx"
	"github.com/openlot/goapi/base/log"
	"github.com/openlot/goapi/domain"
)

const apikeyHeader = "x-api-key"

// client talks to the ledger service that moves marketplace balances.
// Payouts are fire and forget from the engine's point of view: a non nil
// error means the credit did not happen.
type client struct {
	client   http.Client
	timeout  time.Duration
	endpoint string
	apikey   string
}

func NewClient(cfg *ClientCfg) domain.MoneyRail {
	return &client{
		client:   cfg.HttpClient,
		timeout:  cfg.Timeout,
		endpoint: cfg.Endpoint,
		apikey:   cfg.Apikey,
	}
}

type payPayload struct {
	Account domain.Address `json:"account"`
	Amount  domain.Amount  `json:"amount"`
}

func (c *client) Pay(ctx bCtx.Ctx, account domain.Address, amount domain.Amount) error {
	url := fmt.Sprintf("%s/payments", c.endpoint)
	payload, err := json.Marshal(payPayload{Account: account, Amount: amount})
	if err != nil {
		return err
	}
	reqCtx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apikeyHeader, c.apikey)
	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusPaymentRequired:
		return domain.ErrInsufficientFunds
	default:
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return ErrStatusCodeNotOk
	}
}
