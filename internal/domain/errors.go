package domain

import "errors"

var ErrInvalidLoanParameters = errors.New("invalid loan parameters")
var ErrOfferMismatch = errors.New("offer payment does not match its terms")
