package models

import (
	"encoding/json"
	"strconv"
)

// Quantity is a free-form cart quantity. The storefront accepts both
// numbers and strings ("2", 2, "1kg", "1 dozen"), so the JSON codec has
// to take either form and preserve numbers as numbers on the way out.
type Quantity string

func (q *Quantity) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*q = Quantity(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*q = Quantity(s)
	return nil
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(q), 64); err == nil && q != "" {
		return []byte(q), nil
	}
	return json.Marshal(string(q))
}

// Number reports the numeric value of the quantity, if it has one.
func (q Quantity) Number() (float64, bool) {
	n, err := strconv.ParseFloat(string(q), 64)
	return n, err == nil
}

func NumericQuantity(n float64) Quantity {
	return Quantity(strconv.FormatFloat(n, 'f', -1, 64))
}

// CartMap maps product IDs to requested quantities. It is stored on the
// user row as a single JSONB document: reads and writes always cover the
// whole map, last writer wins.
type CartMap map[string]Quantity

// Merge adds qty for productID into the map. When both the existing and
// the incoming quantity are numeric they are summed (a non-numeric
// incoming value counts as 1); otherwise the incoming value replaces the
// old one.
func (m CartMap) Merge(productID string, qty Quantity) {
	prev, ok := m[productID]
	if !ok {
		m[productID] = qty
		return
	}
	prevN, prevNumeric := prev.Number()
	if !prevNumeric {
		m[productID] = qty
		return
	}
	addN, addNumeric := qty.Number()
	if !addNumeric {
		addN = 1
	}
	m[productID] = NumericQuantity(prevN + addN)
}
