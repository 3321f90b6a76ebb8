package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Garantias-api/internal/application/dto"
)

func TestUpdateAmountRequest_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		body string
		want *string
	}{
		{"numero", `{"valor_cobrado": 150000}`, ptr("150000")},
		{"decimal", `{"valor_cobrado": 1234.5}`, ptr("1234.5")},
		{"cadena", `{"valor_cobrado": "150000"}`, ptr("150000")},
		{"cadena vacia", `{"valor_cobrado": ""}`, ptr("")},
		{"nulo", `{"valor_cobrado": null}`, nil},
		{"ausente", `{}`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var in dto.UpdateAmountRequest
			require.NoError(t, json.Unmarshal([]byte(tc.body), &in))
			assert.Equal(t, tc.want, in.Amount)
		})
	}
}

func TestUpdateAmountRequest_UnmarshalJSONRechazaOtrosTipos(t *testing.T) {
	var in dto.UpdateAmountRequest
	assert.Error(t, json.Unmarshal([]byte(`{"valor_cobrado": true}`), &in))
	assert.Error(t, json.Unmarshal([]byte(`{"valor_cobrado": {"v": 1}}`), &in))
}

func ptr(s string) *string { return &s }
