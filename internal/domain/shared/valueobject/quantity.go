package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Quantity is a value object for stock and line-item quantities.
// Unlike Money it keeps a flexible scale so fractional units (meters of
// vinyl, square meters of board) round-trip exactly.
type Quantity struct {
	value decimal.Decimal
}

// NewQuantity creates a Quantity from a decimal
func NewQuantity(value decimal.Decimal) Quantity {
	return Quantity{value: value}
}

// NewQuantityFromFloat creates a Quantity from a float64
func NewQuantityFromFloat(value float64) Quantity {
	return Quantity{value: decimal.NewFromFloat(value)}
}

// NewQuantityFromString creates a Quantity from a string representation
func NewQuantityFromString(value string) (Quantity, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity string: %w", err)
	}
	return Quantity{value: d}, nil
}

// ZeroQuantity returns a zero-value Quantity
func ZeroQuantity() Quantity {
	return Quantity{value: decimal.Zero}
}

// Value returns the decimal value
func (q Quantity) Decimal() decimal.Decimal {
	return q.value
}

// IsZero returns true if the quantity is zero
func (q Quantity) IsZero() bool {
	return q.value.IsZero()
}

// IsPositive returns true if the quantity is positive
func (q Quantity) IsPositive() bool {
	return q.value.IsPositive()
}

// IsNegative returns true if the quantity is negative
func (q Quantity) IsNegative() bool {
	return q.value.IsNegative()
}

// Add returns a new Quantity with the sum
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{value: q.value.Add(other.value)}
}

// Subtract returns a new Quantity with the difference.
// Returns an error if the result would be negative.
func (q Quantity) Subtract(other Quantity) (Quantity, error) {
	result := q.value.Sub(other.value)
	if result.IsNegative() {
		return Quantity{}, errors.New("quantity cannot go negative")
	}
	return Quantity{value: result}, nil
}

// LessThan returns true if this quantity is less than the other
func (q Quantity) LessThan(other Quantity) bool {
	return q.value.LessThan(other.value)
}

// GreaterThan returns true if this quantity is greater than the other
func (q Quantity) GreaterThan(other Quantity) bool {
	return q.value.GreaterThan(other.value)
}

// GreaterThanOrEqual returns true if this quantity is at least the other
func (q Quantity) GreaterThanOrEqual(other Quantity) bool {
	return q.value.GreaterThanOrEqual(other.value)
}

// Equals returns true if both quantities are equal
func (q Quantity) Equals(other Quantity) bool {
	return q.value.Equal(other.value)
}

// String returns the string representation
func (q Quantity) String() string {
	return q.value.String()
}

// WeightedAverageCost blends an existing quantity/cost with an incoming
// quantity/cost: (oldQty*oldCost + addQty*addCost) / (oldQty+addQty).
// The result is rounded to the money scale. Returns an error when the
// combined quantity is zero.
func WeightedAverageCost(oldQty Quantity, oldCost Money, addQty Quantity, addCost Money) (Money, error) {
	totalQty := oldQty.value.Add(addQty.value)
	if totalQty.IsZero() {
		return Money{}, errors.New("cannot average cost over zero quantity")
	}
	blended := oldQty.value.Mul(oldCost.Amount()).
		Add(addQty.value.Mul(addCost.Amount())).
		Div(totalQty)
	return NewMoney(blended), nil
}

// MarshalJSON implements json.Marshaler, serializing as a decimal string
func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.value.String())
}

// UnmarshalJSON implements json.Unmarshaler, accepting numbers and strings
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return fmt.Errorf("invalid quantity: %w", err)
		}
		q.value = d
	case float64:
		q.value = decimal.NewFromFloat(val)
	default:
		return fmt.Errorf("cannot unmarshal %T into Quantity", v)
	}
	return nil
}

// Value implements driver.Valuer for database storage
func (q Quantity) Value() (driver.Value, error) {
	return q.value.String(), nil
}

// Scan implements sql.Scanner for database retrieval
func (q *Quantity) Scan(value any) error {
	if value == nil {
		q.value = decimal.Zero
		return nil
	}

	var strVal string
	switch v := value.(type) {
	case string:
		strVal = v
	case []byte:
		strVal = string(v)
	case float64:
		q.value = decimal.NewFromFloat(v)
		return nil
	case int64:
		q.value = decimal.NewFromInt(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Quantity", value)
	}

	d, err := decimal.NewFromString(strVal)
	if err != nil {
		return fmt.Errorf("invalid decimal value: %w", err)
	}
	q.value = d
	return nil
}
