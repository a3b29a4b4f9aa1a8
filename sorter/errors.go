package sorter

import "errors"

var (
	ErrUnknownKind        = errors.New("unknown shape kind")
	ErrDuplicateKind      = errors.New("shape kind listed twice")
	ErrDuplicateBasket    = errors.New("two baskets accept the same kind")
	ErrMissingBasket      = errors.New("shape kind has no basket")
	ErrUnknownBasketKind  = errors.New("basket accepts a kind that is never spawned")
	ErrOverlappingBaskets = errors.New("baskets closer than twice the capture radius")
	ErrNoLevels           = errors.New("no levels configured")
	ErrInvalidLevel       = errors.New("level speed, spacing and quota must be positive")
	ErrInvalidTrack       = errors.New("retire threshold must lie left of the spawn point")
	ErrInvalidParameter   = errors.New("invalid parameter")
)
