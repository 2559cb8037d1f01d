package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMajor(t *testing.T) {
	c, err := FromMajor("15.00")
	require.NoError(t, err)
	assert.Equal(t, Cents(1500), c)

	c, err = FromMajor("7")
	require.NoError(t, err)
	assert.Equal(t, Cents(700), c)

	c, err = FromMajor("-2.5")
	require.NoError(t, err)
	assert.Equal(t, Cents(-250), c)
}

func TestFromMajor_RejectsFractionalCents(t *testing.T) {
	_, err := FromMajor("10.005")
	assert.Error(t, err)

	_, err = FromMajor("ten")
	assert.Error(t, err)
}

func TestCents_Arithmetic(t *testing.T) {
	a := Cents(2500)
	b := Cents(1000)

	assert.Equal(t, Cents(3500), a.Add(b))
	assert.Equal(t, Cents(1500), a.Sub(b))
	assert.Equal(t, Cents(-2500), a.Neg())
	assert.Equal(t, Cents(2500), a.Neg().Abs())
	assert.Equal(t, Cents(3500), Sum(a, b))
	assert.True(t, Zero.IsZero())
	assert.True(t, b.IsPositive())
	assert.True(t, b.Neg().IsNegative())
}

func TestCents_Clamp(t *testing.T) {
	assert.Equal(t, Cents(0), Cents(-5).Clamp(0, 100))
	assert.Equal(t, Cents(100), Cents(500).Clamp(0, 100))
	assert.Equal(t, Cents(42), Cents(42).Clamp(0, 100))
}

func TestCents_String(t *testing.T) {
	assert.Equal(t, "15.00", Cents(1500).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "-10.00", Cents(-1000).String())
}

func TestCents_UnmarshalJSON(t *testing.T) {
	var body struct {
		Amount Cents `json:"amount"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"amount": 1000}`), &body))
	assert.Equal(t, Cents(1000), body.Amount)

	assert.Error(t, json.Unmarshal([]byte(`{"amount": 10.5}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"amount": "1000"}`), &body))
}
