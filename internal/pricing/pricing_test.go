package pricing

import (
	"testing"

	"gestion_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func components(pairs ...[2]int64) []models.ProductComponent {
	out := make([]models.ProductComponent, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, models.ProductComponent{PurchasePrice: p[0], Quantity: int(p[1])})
	}
	return out
}

func TestTotalComponentCost(t *testing.T) {
	assert.Equal(t, int64(0), TotalComponentCost(nil))
	assert.Equal(t, int64(0), TotalComponentCost([]models.ProductComponent{}))
	assert.Equal(t, int64(7500), TotalComponentCost(components([2]int64{2500, 3})))
	assert.Equal(t, int64(5300), TotalComponentCost(components([2]int64{1200, 4}, [2]int64{500, 1})))
}

func TestNetSalePriceFromMargin(t *testing.T) {
	calc := NewCalculator(0.19)

	// cost=7500, margin=35 => round(7500/0.65)=11538
	assert.Equal(t, int64(11538), calc.NetSalePrice(7500, 35))
	assert.Equal(t, int64(7500), calc.NetSalePrice(7500, 0))

	// Out-of-range margins fall back to the raw cost.
	assert.Equal(t, int64(7500), calc.NetSalePrice(7500, 100))
	assert.Equal(t, int64(7500), calc.NetSalePrice(7500, 150))
	assert.Equal(t, int64(7500), calc.NetSalePrice(7500, -5))
}

func TestTaxSplit(t *testing.T) {
	calc := NewCalculator(0.19)

	iva, final := calc.TaxSplit(11538)
	assert.Equal(t, int64(2192), iva)
	assert.Equal(t, int64(13730), final)
}

func TestProductPricing(t *testing.T) {
	calc := NewCalculator(0.19)

	p := calc.ProductPricing(components([2]int64{2500, 3}), 35)
	assert.Equal(t, int64(7500), p.TotalComponentCost)
	assert.Equal(t, int64(11538), p.NetSalePrice)
	assert.Equal(t, int64(2192), p.IvaAmount)
	assert.Equal(t, int64(13730), p.FinalSalePrice)
}

func TestProductPricingEmptyComponents(t *testing.T) {
	calc := NewCalculator(0.19)

	p := calc.ProductPricing(nil, 35)
	assert.Equal(t, int64(0), p.TotalComponentCost)
	assert.Equal(t, int64(0), p.NetSalePrice)
	assert.Equal(t, int64(0), p.IvaAmount)
	assert.Equal(t, int64(0), p.FinalSalePrice)
}

func TestSplitGross(t *testing.T) {
	calc := NewCalculator(0.19)

	net, iva := calc.SplitGross(1000000)
	assert.Equal(t, int64(840336), net)
	assert.Equal(t, int64(159664), iva)
	assert.Equal(t, int64(1000000), net+iva)

	net, iva = calc.SplitGross(0)
	assert.Equal(t, int64(0), net)
	assert.Equal(t, int64(0), iva)
}

func TestCalculatorIsPure(t *testing.T) {
	calc := NewCalculator(0.19)
	comps := components([2]int64{2500, 3}, [2]int64{990, 2})

	first := calc.ProductPricing(comps, 42)
	second := calc.ProductPricing(comps, 42)
	assert.Equal(t, first, second)
}

func TestNewCalculatorFallback(t *testing.T) {
	assert.Equal(t, DefaultVATRate, NewCalculator(0).VATRate)
	assert.Equal(t, DefaultVATRate, NewCalculator(1.5).VATRate)
	assert.Equal(t, 0.1, NewCalculator(0.1).VATRate)
}
