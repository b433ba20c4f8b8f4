package domain

import "github.com/shopspring/decimal"

// GSTRate is the tax applied on top of an order's subtotal.
var GSTRate = decimal.RequireFromString("0.05")

// Bill is the itemized invoice for one order.
type Bill struct {
	OrderID  int             `json:"order_id"`
	TableNo  int             `json:"table_no"`
	Status   Status          `json:"status"`
	Items    Items           `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	GST      decimal.Decimal `json:"gst"`
	Total    decimal.Decimal `json:"total"`
}

// NewBill prices every line as unit price times quantity and rounds the tax to cents.
func NewBill(o Order) Bill {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(LineTotal(item))
	}
	gst := subtotal.Mul(GSTRate).Round(2)
	return Bill{
		OrderID:  o.ID,
		TableNo:  o.TableNo,
		Status:   o.Status,
		Items:    o.Items,
		Subtotal: subtotal,
		GST:      gst,
		Total:    subtotal.Add(gst).Round(2),
	}
}

// LineTotal is the price of one bill line.
func LineTotal(item OrderItem) decimal.Decimal {
	return item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}
