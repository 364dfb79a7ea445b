package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/openlot/goapi/base/ctx"
	bValidator "github.com/openlot/goapi/base/validator"
	"github.com/openlot/goapi/domain"
	mAuction "github.com/openlot/goapi/domain/auction/mocks"
)

const validAccount = "3rsc7HHLVcVkc5VGotQnQtscz2zAfTX6V2Dda8B7BVmmjuXAMz"

type handlerSuite struct {
	suite.Suite

	au *mAuction.UseCase
	e  *echo.Echo
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	s.au = &mAuction.UseCase{}
	s.e = echo.New()
	s.e.Validator = bValidator.NewCustomValidator(goValidator.New())
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", bCtx.Background())
			return next(c)
		}
	})
	New(s.e, s.au)
}

func (s *handlerSuite) TearDownTest() {
	s.au.AssertExpectations(s.T())
}

func (s *handlerSuite) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *handlerSuite) TestCancelRejectsMalformedCaller() {
	rec := s.post("/auctions/cancel", `{"caller":"not-an-account!","contract":"contractone","tokenId":"7"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.au.AssertNotCalled(s.T(), "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

func (s *handlerSuite) TestCancel() {
	token := domain.Token{Contract: "contractone", TokenId: "7"}
	s.au.On("Cancel", mock.Anything, token, domain.Address(validAccount)).Return(nil).Once()

	rec := s.post("/auctions/cancel", `{"caller":"`+validAccount+`","contract":"contractone","tokenId":"7"}`)
	s.Equal(http.StatusOK, rec.Code)
}
