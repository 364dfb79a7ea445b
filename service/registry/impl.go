package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	bCtx "github.com/openlot/goapi/base/ctx"
	"github.com/openlot/goapi/base/log"
	"github.com/openlot/goapi/domain"
	"github.com/openlot/goapi/domain/keys"
	"github.com/openlot/goapi/service/cache"
	"github.com/openlot/goapi/service/cache/provider/primitive"
	"golang.org/x/xerrors"
)

const apikeyHeader = "x-api-key"

// client talks to the asset registry service, the system of record for
// token ownership and royalty settings. Royalty lookups are cached,
// royalty settings change rarely and every escrow hits them.
type client struct {
	client   http.Client
	timeout  time.Duration
	endpoint string
	apikey   string
	cache    cache.Service
}

func NewClient(cfg *ClientCfg) domain.AssetRegistry {
	return &client{
		client:   cfg.HttpClient,
		timeout:  cfg.Timeout,
		endpoint: cfg.Endpoint,
		apikey:   cfg.Apikey,
		cache: cache.New(cache.ServiceConfig{
			Ttl:   10 * time.Minute,
			Pfx:   keys.PfxRoyalties,
			Cache: primitive.NewPrimitive(keys.PfxRoyalties, 128),
		}),
	}
}

type transferPayload struct {
	Contract domain.Address `json:"contract"`
	TokenId  domain.TokenId `json:"tokenId"`
	From     domain.Address `json:"from"`
	To       domain.Address `json:"to"`
}

func (c *client) Transfer(ctx bCtx.Ctx, token domain.Token, from, to domain.Address) error {
	url := fmt.Sprintf("%s/transfers", c.endpoint)
	payload, err := json.Marshal(transferPayload{
		Contract: token.Contract,
		TokenId:  token.TokenId,
		From:     from,
		To:       to,
	})
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, "POST", url, payload)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("transfer request failed")
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return domain.ErrUnknownToken
	case http.StatusUnprocessableEntity:
		return domain.ErrIncompatibleContract
	default:
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return ErrStatusCodeNotOk
	}
}

type royaltiesResp struct {
	Royalties []domain.Royalty `json:"royalties"`
}

func (c *client) GetRoyalties(ctx bCtx.Ctx, token domain.Token) ([]domain.Royalty, error) {
	var royalties []domain.Royalty
	key := keys.CacheKey(string(token.Contract), string(token.TokenId))
	if err := c.cache.GetByFunc(ctx, key, &royalties, func() (interface{}, error) {
		fetched, err := c.fetchRoyalties(ctx, token)
		if err != nil {
			return nil, err
		}
		return &fetched, nil
	}); err != nil {
		return nil, err
	}
	return royalties, nil
}

func (c *client) fetchRoyalties(ctx bCtx.Ctx, token domain.Token) ([]domain.Royalty, error) {
	url := fmt.Sprintf("%s/tokens/%s/%s/royalties", c.endpoint, token.Contract, token.TokenId)
	resp, err := c.do(ctx, "GET", url, nil)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("royalties request failed")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrUnknownToken
	}
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}
	var body royaltiesResp
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("failed to decode body")
		return nil, xerrors.Errorf("failed to decode royalties: %w", err)
	}
	return body.Royalties, nil
}

func (c *client) do(ctx bCtx.Ctx, method, url string, payload []byte) (*http.Response, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	var body *bytes.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apikeyHeader, c.apikey)
	return c.client.Do(req)
}
