package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/openlot/goapi/domain"
	"github.com/openlot/goapi/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// statusForErr maps domain guard errors to http statuses so handlers can
// pass usecase errors through unchanged.
func statusForErr(err error, fallback int) int {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUnknownToken),
		errors.Is(err, query.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrOwnerForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyListed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBidTooLow),
		errors.Is(err, domain.ErrAuctionNotStarted),
		errors.Is(err, domain.ErrAuctionFinished),
		errors.Is(err, domain.ErrAuctionStillActive),
		errors.Is(err, domain.ErrInvalidRoyalty),
		errors.Is(err, domain.ErrPriceNotCovered),
		errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	}
	return fallback
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = statusForErr(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
