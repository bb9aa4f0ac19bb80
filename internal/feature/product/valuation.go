package product

import "context"

const expensiveThreshold = 100

// Bucket tracks count and summed value for one price class.
type Bucket struct {
	Count int64
	Value float64
}

// Valuation aggregates the full inventory. CategoryStats carries a key
// only when at least one qualifying product fell into that bucket; a
// missing key means "no data", which callers must not conflate with a
// present zero-count bucket.
type Valuation struct {
	TotalValue    float64
	TotalProducts int
	CategoryStats map[string]Bucket
	AverageValue  float64
}

// Valuate computes inventory metrics over the given products. Every
// product contributes price*stock to the total; only products with
// strictly positive price and stock are classified as "expensive"
// (price > 100) or "affordable" (price <= 100).
func Valuate(products []Product) Valuation {
	v := Valuation{CategoryStats: make(map[string]Bucket)}
	for _, p := range products {
		value := p.Price * float64(p.Stock)
		v.TotalValue += value

		if p.Price <= 0 || p.Stock <= 0 {
			continue
		}
		key := "affordable"
		if p.Price > expensiveThreshold {
			key = "expensive"
		}
		b := v.CategoryStats[key]
		b.Count++
		b.Value += value
		v.CategoryStats[key] = b
	}
	v.TotalProducts = len(products)
	if v.TotalProducts > 0 {
		v.AverageValue = v.TotalValue / float64(v.TotalProducts)
	}
	return v
}

// InventoryValue is one bulk read followed by in-memory aggregation; no
// lock spans the two.
func (m *Module) InventoryValue(ctx context.Context) (Valuation, error) {
	products, err := m.FindAll(ctx)
	if err != nil {
		return Valuation{}, err
	}
	return Valuate(products), nil
}
