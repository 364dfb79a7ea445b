package validator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) TestIsValidAccount() {
	tests := []struct {
		desc       string
		account    string
		expIsValid bool
	}{
		{
			desc:       "too short",
			account:    "3rsc7HHLV",
			expIsValid: false,
		},
		{
			desc:       "valid account - real account",
			account:    "3rsc7HHLVcVkc5VGotQnQtscz2zAfTX6V2Dda8B7BVmmjuXAMz",
			expIsValid: true,
		},
		{
			desc:       "forbidden characters",
			account:    "0rsc7HHLVcVkc5VGotQnQtscz2zAfTX6V2Dda8B7BVmmjuXAMz",
			expIsValid: false,
		},
		{
			desc:       "empty",
			account:    "",
			expIsValid: false,
		},
	}
	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidAccount(t.account), t.desc)
	}
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
