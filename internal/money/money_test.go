package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "integer", input: "1050", want: "1050.00"},
		{name: "two decimals", input: "1050.25", want: "1050.25"},
		{name: "negative", input: "-12.5", want: "-12.50"},
		{name: "zero", input: "0", want: "0.00"},
		{name: "garbage", input: "12,50", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestArithmeticIsExact(t *testing.T) {
	// 0.1 + 0.2 is the classic float trap; decimal math must stay exact.
	sum := MustNew("0.1").Add(MustNew("0.2"))
	assert.True(t, sum.Equal(MustNew("0.3")))

	// Summing 1100 six times plus 1150 must hit 7750 exactly.
	total := Zero()
	for i := 0; i < 6; i++ {
		total = total.Add(MustNew("1100"))
	}
	total = total.Add(MustNew("1150"))
	assert.True(t, total.Equal(MustNew("7750")))
}

func TestMulPercentage(t *testing.T) {
	// 500 * 60% = 300
	pct := decimal.NewFromInt(60).Div(decimal.NewFromInt(100))
	share := MustNew("500").Mul(pct)
	assert.True(t, share.Equal(MustNew("300")))
}

func TestDivRound(t *testing.T) {
	assert.Equal(t, "100.00", MustNew("1200").DivRound(12).String())
	assert.Equal(t, "83.33", MustNew("1000").DivRound(12).String())
}

func TestJSONRoundTrip(t *testing.T) {
	out, err := json.Marshal(MustNew("1050.5"))
	require.NoError(t, err)
	assert.Equal(t, "1050.50", string(out))

	var m Money
	require.NoError(t, json.Unmarshal([]byte("99.90"), &m))
	assert.True(t, m.Equal(MustNew("99.9")))

	require.NoError(t, json.Unmarshal([]byte(`"42.00"`), &m))
	assert.True(t, m.Equal(MustNew("42")))

	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &m))
}

func TestScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("123.45"))
	assert.Equal(t, "123.45", m.String())

	require.NoError(t, m.Scan([]byte("67.80")))
	assert.Equal(t, "67.80", m.String())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(12.5))
}
