package sorter

// Basket is a fixed drop target that accepts one shape kind.
type Basket struct {
	Kind     ShapeKind `yaml:"kind"`
	Position Vec2      `yaml:"position"`
}

// BasketRegistry holds the session's baskets in configuration order.
type BasketRegistry struct {
	baskets []Basket
}

func NewBasketRegistry(baskets []Basket) *BasketRegistry {
	return &BasketRegistry{baskets: append([]Basket(nil), baskets...)}
}

// Hit returns the first basket, in configuration order, whose centre lies
// within radius of p.
func (r *BasketRegistry) Hit(p Vec2, radius float64) (Basket, bool) {
	for _, b := range r.baskets {
		if b.Position.Dist(p) <= radius {
			return b, true
		}
	}
	return Basket{}, false
}

// For returns the basket accepting kind.
func (r *BasketRegistry) For(kind ShapeKind) (Basket, bool) {
	for _, b := range r.baskets {
		if b.Kind == kind {
			return b, true
		}
	}
	return Basket{}, false
}

// All returns a copy of the baskets.
func (r *BasketRegistry) All() []Basket {
	return append([]Basket(nil), r.baskets...)
}

func (r *BasketRegistry) Len() int { return len(r.baskets) }
