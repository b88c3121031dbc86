package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney_RoundsToScale(t *testing.T) {
	m := NewMoney(decimal.RequireFromString("10.005"))
	assert.Equal(t, "10.01", m.String())

	m = NewMoney(decimal.RequireFromString("10.004"))
	assert.Equal(t, "10.00", m.String())
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("99.90")
	require.NoError(t, err)
	assert.Equal(t, "99.90", m.String())

	_, err = NewMoneyFromString("not-a-number")
	assert.Error(t, err)
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyFromFloat(100.50)
	b := NewMoneyFromFloat(30.25)

	assert.Equal(t, "130.75", a.Add(b).String())
	assert.Equal(t, "70.25", a.Subtract(b).String())
	assert.Equal(t, "-100.50", a.Negate().String())
	assert.Equal(t, "100.50", a.Negate().Abs().String())
}

func TestMoney_RepeatedAdditionHasNoDrift(t *testing.T) {
	sum := ZeroMoney()
	cent := NewMoneyFromString
	for i := 0; i < 1000; i++ {
		c, err := cent("0.01")
		require.NoError(t, err)
		sum = sum.Add(c)
	}
	assert.Equal(t, "10.00", sum.String())
}

func TestMoney_Multiply(t *testing.T) {
	m := NewMoneyFromFloat(50)
	assert.Equal(t, "100.00", m.Multiply(decimal.NewFromInt(2)).String())

	m = NewMoneyFromFloat(0.10)
	assert.Equal(t, "0.35", m.Multiply(decimal.RequireFromString("3.5")).String())
}

func TestMoney_Comparisons(t *testing.T) {
	a := NewMoneyFromFloat(10)
	b := NewMoneyFromFloat(20)

	assert.True(t, a.LessThan(b))
	assert.True(t, b.GreaterThan(a))
	assert.True(t, a.LessThanOrEqual(a))
	assert.True(t, a.GreaterThanOrEqual(a))
	assert.True(t, a.Equals(NewMoneyFromFloat(10)))
	assert.False(t, a.Equals(b))
}

func TestMoney_SignChecks(t *testing.T) {
	assert.True(t, ZeroMoney().IsZero())
	assert.True(t, NewMoneyFromFloat(1).IsPositive())
	assert.True(t, NewMoneyFromFloat(-1).IsNegative())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyFromFloat(1234.56)
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"1234.56"`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_UnmarshalAcceptsNumbers(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`12.5`), &m))
	assert.Equal(t, "12.50", m.String())

	require.NoError(t, json.Unmarshal([]byte(`"12.5"`), &m))
	assert.Equal(t, "12.50", m.String())

	assert.Error(t, json.Unmarshal([]byte(`true`), &m))
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &m))
}

func TestMoney_SQLValueScan(t *testing.T) {
	m := NewMoneyFromFloat(77.70)
	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "77.70", v)

	var scanned Money
	require.NoError(t, scanned.Scan("77.70"))
	assert.True(t, m.Equals(scanned))

	require.NoError(t, scanned.Scan([]byte("5.25")))
	assert.Equal(t, "5.25", scanned.String())

	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())

	assert.Error(t, scanned.Scan(struct{}{}))
}
