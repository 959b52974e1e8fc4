package economy

import (
	"errors"
	"fmt"
)

// Purchase rejections. A rejected purchase leaves the session untouched.
var (
	ErrInsufficientFunds = errors.New("insufficient lines")
	ErrSoldOut           = errors.New("sold out")
	ErrLocked            = errors.New("upgrade is locked")
)

// PurchaseError carries the context of a rejected purchase.
type PurchaseError struct {
	Kind  Kind
	Cost  float64
	Lines float64
	Err   error
}

func (e *PurchaseError) Error() string {
	if errors.Is(e.Err, ErrInsufficientFunds) {
		return fmt.Sprintf("purchase %s: %v (cost %.0f, have %.0f)", e.Kind, e.Err, e.Cost, e.Lines)
	}
	return fmt.Sprintf("purchase %s: %v", e.Kind, e.Err)
}

func (e *PurchaseError) Unwrap() error {
	return e.Err
}
