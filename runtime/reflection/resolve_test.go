package reflection

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterializeDefault(t *testing.T) {
	tests := []struct {
		name    string
		literal LiteralDefault
		want    any
		ok      bool
	}{
		{"string", LiteralDefault{Kind: LiteralString, Value: "test"}, "test", true},
		{"empty string", LiteralDefault{Kind: LiteralString, Value: ""}, "", true},
		{"bool false", LiteralDefault{Kind: LiteralBoolean, Value: false}, false, true},
		{"number float", LiteralDefault{Kind: LiteralNumber, Value: 1.5}, 1.5, true},
		{"number int", LiteralDefault{Kind: LiteralNumber, Value: 1}, float64(1), true},
		{"number json", LiteralDefault{Kind: LiteralNumber, Value: json.Number("12")}, float64(12), true},
		{"null", LiteralDefault{Kind: LiteralNull}, nil, true},
		{"regex", LiteralDefault{Kind: LiteralRegExp, Pattern: "a+", Flags: "gi"}, Pattern{Source: "a+", Flags: "gi"}, true},
		{"unknown kind", LiteralDefault{Kind: "template"}, nil, false},
		{"mistyped string", LiteralDefault{Kind: LiteralString, Value: 3}, "", false},
		{"mistyped number", LiteralDefault{Kind: LiteralNumber, Value: "3"}, nil, false},
		{"bad bigint", LiteralDefault{Kind: LiteralBigInt, Value: "forty"}, nil, false},
		{"bigint wrong type", LiteralDefault{Kind: LiteralBigInt, Value: true}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := materializeDefault(&tt.literal)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaterializeDefault_BigInt(t *testing.T) {
	huge := "123456789012345678901234567890"
	want, _ := new(big.Int).SetString(huge, 10)

	for _, text := range []string{huge, huge + "n"} {
		got, ok := materializeDefault(&LiteralDefault{Kind: LiteralBigInt, Value: text})
		require.True(t, ok)
		assert.Zero(t, want.Cmp(got.(*big.Int)))
	}

	got, ok := materializeDefault(&LiteralDefault{Kind: LiteralBigInt, Value: "0x2a"})
	require.True(t, ok)
	assert.Zero(t, big.NewInt(42).Cmp(got.(*big.Int)))
}

func TestRecord_MarshalJSON(t *testing.T) {
	provider := newTableProvider()
	id := NewClassID()
	provider.put(id, sampleClassData())

	reg := NewRegistry(provider)
	class := defineSample(reg, id)
	record, _ := reg.Lookup(class)

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded struct {
		ID       string `json:"id"`
		FQCN     string `json:"fqcn"`
		Docblock string `json:"docblock"`
		Members  []struct {
			Name        *string          `json:"name"`
			Kind        string           `json:"kind"`
			MemberIndex int              `json:"memberIndex"`
			Docblock    *string          `json:"docblock"`
			Parameters  []map[string]any `json:"parameters"`
		} `json:"members"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, id.String(), decoded.ID)
	assert.Equal(t, "App.x", decoded.FQCN)
	assert.Equal(t, "/** class docblock */", decoded.Docblock)
	require.Len(t, decoded.Members, 6)

	field := decoded.Members[0]
	assert.Equal(t, "field", field.Kind)
	assert.Nil(t, field.Parameters)
	assert.Nil(t, field.Docblock)

	defaults := decoded.Members[3]
	require.Len(t, defaults.Parameters, 7)
	_, hasDefault := defaults.Parameters[0]["default"]
	assert.False(t, hasDefault)
	assert.Equal(t, float64(1), defaults.Parameters[1]["default"])
	assert.Equal(t, map[string]any{"source": "test", "flags": "g"}, defaults.Parameters[3]["default"])
	assert.Equal(t, float64(42), defaults.Parameters[4]["default"])

	nullDefault, hasDefault := defaults.Parameters[6]["default"]
	assert.True(t, hasDefault)
	assert.Nil(t, nullDefault)
}
