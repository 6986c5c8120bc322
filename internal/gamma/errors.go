package gamma

import "errors"

var (
	errMissingID  = errors.New("missing market id")
	errNoPrices   = errors.New("no outcome prices")
	errPriceRange = errors.New("yes price outside [0,1]")
)
