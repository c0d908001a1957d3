package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_MarshalsAsBareNumber(t *testing.T) {
	account := Account{ID: "x", Name: "Alice", Balance: NewMoney(1000)}

	data, err := json.Marshal(account)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"balance":1000`)
}

func TestMoney_UnmarshalAcceptsNumbers(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`250`), &m))
	assert.True(t, m.Equal(NewMoney(250)))
}

func TestMoney_ArithmeticIsExact(t *testing.T) {
	// 0.1 + 0.2 style cases are why balances are not floats.
	var a, b Money
	require.NoError(t, json.Unmarshal([]byte(`0.1`), &a))
	require.NoError(t, json.Unmarshal([]byte(`0.2`), &b))

	sum := a.Add(b)
	data, err := json.Marshal(sum)
	require.NoError(t, err)
	assert.Equal(t, "0.3", string(data))
}

func TestMoney_Comparisons(t *testing.T) {
	assert.True(t, NewMoney(1).IsPositive())
	assert.False(t, NewMoney(0).IsPositive())
	assert.False(t, NewMoney(-1).IsPositive())

	assert.True(t, NewMoney(5).LessThan(NewMoney(10)))
	assert.False(t, NewMoney(10).LessThan(NewMoney(10)))

	assert.True(t, NewMoney(100).Sub(NewMoney(40)).Equal(NewMoney(60)))
}
