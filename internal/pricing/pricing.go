// Package pricing derives sale prices for sellable products and net/IVA
// splits for order items and ledger income records. All amounts are integers
// in the local currency; every derived amount is rounded to the nearest
// integer after each arithmetic step.
package pricing

import (
	"math"

	"gestion_backend/internal/models"
)

// DefaultVATRate is the VAT rate used when none is configured.
const DefaultVATRate = 0.19

// Calculator performs all pricing arithmetic for a fixed VAT rate.
// Its methods are pure functions of their inputs.
type Calculator struct {
	VATRate float64
}

// NewCalculator returns a Calculator for the given VAT rate. Rates outside
// (0, 1) fall back to the default.
func NewCalculator(vatRate float64) Calculator {
	if vatRate <= 0 || vatRate >= 1 {
		vatRate = DefaultVATRate
	}
	return Calculator{VATRate: vatRate}
}

// ProductPricing holds the four derived monetary fields of a sellable product.
type ProductPricing struct {
	TotalComponentCost int64
	NetSalePrice       int64
	IvaAmount          int64
	FinalSalePrice     int64
}

func round(x float64) int64 {
	return int64(math.Round(x))
}

// TotalComponentCost aggregates the frozen purchase prices of the components.
func TotalComponentCost(components []models.ProductComponent) int64 {
	var sum float64
	for _, c := range components {
		sum += float64(c.PurchasePrice) * float64(c.Quantity)
	}
	return round(sum)
}

// NetSalePrice derives the net sale price from the component cost and the
// desired profit margin. Margins outside [0, 100) are ignored and the cost is
// returned unchanged.
func (c Calculator) NetSalePrice(totalComponentCost int64, marginPercent float64) int64 {
	if marginPercent < 0 || marginPercent >= 100 {
		return totalComponentCost
	}
	return round(float64(totalComponentCost) / (1 - marginPercent/100))
}

// TaxSplit derives the IVA amount and the final VAT-inclusive price from a
// net price.
func (c Calculator) TaxSplit(netPrice int64) (ivaAmount, finalPrice int64) {
	ivaAmount = round(float64(netPrice) * c.VATRate)
	finalPrice = round(float64(netPrice) + float64(ivaAmount))
	return ivaAmount, finalPrice
}

// ProductPricing computes all four derived fields for a component list and
// margin.
func (c Calculator) ProductPricing(components []models.ProductComponent, marginPercent float64) ProductPricing {
	cost := TotalComponentCost(components)
	net := c.NetSalePrice(cost, marginPercent)
	iva, final := c.TaxSplit(net)
	return ProductPricing{
		TotalComponentCost: cost,
		NetSalePrice:       net,
		IvaAmount:          iva,
		FinalSalePrice:     final,
	}
}

// SplitGross derives the net and IVA portions of a VAT-inclusive total, as
// entered by users for order items and income records. This is not the
// algebraic inverse of TaxSplit: rounding is applied at different points, so
// round-trips are not guaranteed.
func (c Calculator) SplitGross(totalWithVat int64) (netAmount, ivaAmount int64) {
	netAmount = round(float64(totalWithVat) / (1 + c.VATRate))
	ivaAmount = totalWithVat - netAmount
	return netAmount, ivaAmount
}
