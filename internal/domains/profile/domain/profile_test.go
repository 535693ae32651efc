package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingRequired(t *testing.T) {
	assert.Equal(t, []string{FieldName, FieldPhone, FieldAddress}, CustomerProfile{}.MissingRequired())
	assert.Equal(t, []string{FieldPhone}, CustomerProfile{Name: "Ana", Phone: "  ", Address: "Rua A"}.MissingRequired())
	assert.True(t, CustomerProfile{Name: "Ana", Phone: "31 9999", Address: "Rua A"}.Complete())
}

func TestProfile_JSONRoundTrip(t *testing.T) {
	p := CustomerProfile{Name: "Ana", Phone: "31999990000", Address: "Rua A", Number: "10", District: "Centro", City: "Belo Horizonte", UF: "MG", CEP: "30000-000", WhatsApp: "31999990000", Email: "ana@example.com"}
	payload, err := json.Marshal(p)
	require.NoError(t, err)
	var decoded CustomerProfile
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, p, decoded)
}

func TestProfile_JSONOmitsBlankOptionalFields(t *testing.T) {
	payload, err := json.Marshal(CustomerProfile{Name: "Ana", Phone: "31999990000", Address: "Rua A"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ana","phone":"31999990000","address":"Rua A"}`, string(payload))
}
