package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// registry account ids are base58 strings, 40 to 60 characters
const (
	accountMinLen = 40
	accountMaxLen = 60
)

var base58Set = func() [256]bool {
	var set [256]bool
	for _, c := range []byte("123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz") {
		set[c] = true
	}
	return set
}()

// IsValidAccount returns is an account id valid or not
func IsValidAccount(account string) bool {
	if len(account) < accountMinLen || len(account) > accountMaxLen {
		return false
	}
	for i := 0; i < len(account); i++ {
		if !base58Set[account[i]] {
			return false
		}
	}
	return true
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
