package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_FingerprintIgnoresInsertionOrder(t *testing.T) {
	a := Options{}
	a[OptionSize] = Text("Grande")
	a[OptionExtraCheese] = Flag(true)

	b := Options{}
	b[OptionExtraCheese] = Flag(true)
	b[OptionSize] = Text("Grande")

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.True(t, a.Equal(b))
}

func TestOptions_FingerprintDistinguishesKinds(t *testing.T) {
	asText := Options{"gift": Text("true")}
	asFlag := Options{"gift": Flag(true)}
	assert.NotEqual(t, asText.Fingerprint(), asFlag.Fingerprint())
	assert.False(t, asText.Equal(asFlag))
}

func TestOptions_NilAndEmptyAreEqual(t *testing.T) {
	assert.Equal(t, Options(nil).Fingerprint(), Options{}.Fingerprint())
	assert.True(t, Options(nil).Equal(Options{}))
}

func TestOptions_JSON(t *testing.T) {
	var opts Options
	require.NoError(t, json.Unmarshal([]byte(`{"size":"Grande","extraCheese":true}`), &opts))
	assert.Equal(t, "Grande", opts.Size())
	assert.True(t, opts.ExtraCheese())

	payload, err := json.Marshal(opts)
	require.NoError(t, err)
	assert.JSONEq(t, `{"size":"Grande","extraCheese":true}`, string(payload))

	require.ErrorIs(t, json.Unmarshal([]byte(`{"size":3}`), &opts), ErrInvalidOptionValue)
}

func TestFilter_Matches(t *testing.T) {
	calabresa := Item{ID: "pz-calabresa", Name: "Calabresa", Description: "Molho de tomate, mussarela, calabresa fatiada e orégano.", Category: CategoryPizza}

	assert.True(t, Filter{}.Matches(calabresa))
	assert.True(t, Filter{Category: CategoryPizza, Query: "FATIADA"}.Matches(calabresa))
	assert.False(t, Filter{Category: CategoryDrink}.Matches(calabresa))
	assert.False(t, Filter{Query: "bacon"}.Matches(calabresa))
}

func TestMenu_IsValid(t *testing.T) {
	seen := map[string]bool{}
	for _, item := range Menu() {
		require.NoError(t, item.Validate(), item.ID)
		require.False(t, seen[item.ID], "duplicate id %s", item.ID)
		seen[item.ID] = true
	}
	assert.Len(t, seen, 26)
}
