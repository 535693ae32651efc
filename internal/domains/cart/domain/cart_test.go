package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
)

func TestAdd_MergesIdenticalConfiguration(t *testing.T) {
	var c Cart
	first := catalogdomain.Options{catalogdomain.OptionSize: catalogdomain.Text("Média"), catalogdomain.OptionExtraCheese: catalogdomain.Flag(false)}
	second := catalogdomain.Options{catalogdomain.OptionExtraCheese: catalogdomain.Flag(false), catalogdomain.OptionSize: catalogdomain.Text("Média")}

	idx, err := c.Add("pz-calabresa", 1, first, "")
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	idx, err = c.Add("pz-calabresa", 2, second, "")
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
}

func TestAdd_DistinctConfigurationsAppend(t *testing.T) {
	var c Cart
	_, _ = c.Add("pz-calabresa", 1, nil, "")
	_, _ = c.Add("pz-calabresa", 1, catalogdomain.Options{catalogdomain.OptionSize: catalogdomain.Text("Grande")}, "")
	_, _ = c.Add("pz-calabresa", 1, nil, "sem cebola")
	_, _ = c.Add("pz-mussarela", 1, nil, "")
	assert.Len(t, c.Items, 4)
}

func TestAdd_DoesNotAliasCallerOptions(t *testing.T) {
	var c Cart
	opts := catalogdomain.Options{catalogdomain.OptionSize: catalogdomain.Text("Grande")}
	_, err := c.Add("pz-calabresa", 1, opts, "")
	require.NoError(t, err)
	opts[catalogdomain.OptionSize] = catalogdomain.Text("Pequena")
	assert.Equal(t, "Grande", c.Items[0].Options.Size())
}

func TestAdd_Validation(t *testing.T) {
	var c Cart
	_, err := c.Add("", 1, nil, "")
	require.ErrorIs(t, err, ErrInvalidItemID)
	_, err = c.Add("pz-calabresa", 0, nil, "")
	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, c.Items)
}

func TestChangeQuantity_ClampsAtOne(t *testing.T) {
	var c Cart
	_, _ = c.Add("pz-calabresa", 3, nil, "")

	require.NoError(t, c.ChangeQuantity(0, -100))
	assert.Equal(t, 1, c.Items[0].Quantity)
	require.NoError(t, c.ChangeQuantity(0, 4))
	assert.Equal(t, 5, c.Items[0].Quantity)
	require.ErrorIs(t, c.ChangeQuantity(1, 1), ErrInvalidIndex)
	require.ErrorIs(t, c.ChangeQuantity(-1, 1), ErrInvalidIndex)
}

func TestAdd_RejectsQuantityAboveMaximum(t *testing.T) {
	var c Cart
	_, err := c.Add("pz-calabresa", math.MaxInt, nil, "")
	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, c.Items)

	_, err = c.Add("pz-calabresa", MaxQuantity-1, nil, "")
	require.NoError(t, err)
	idx, err := c.Add("pz-calabresa", 1, nil, "")
	require.NoError(t, err)
	assert.Equal(t, MaxQuantity, c.Items[idx].Quantity)

	_, err = c.Add("pz-calabresa", 1, nil, "")
	require.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = c.Add("pz-calabresa", MaxQuantity, nil, "")
	require.ErrorIs(t, err, ErrInvalidQuantity)
	require.Len(t, c.Items, 1)
	assert.Equal(t, MaxQuantity, c.Items[0].Quantity)
}

func TestChangeQuantity_ClampsToMaximumWithoutOverflow(t *testing.T) {
	var c Cart
	_, _ = c.Add("pz-calabresa", 2, nil, "")

	require.NoError(t, c.ChangeQuantity(0, math.MaxInt))
	assert.Equal(t, MaxQuantity, c.Items[0].Quantity)
	require.NoError(t, c.ChangeQuantity(0, math.MaxInt))
	assert.Equal(t, MaxQuantity, c.Items[0].Quantity)
	require.NoError(t, c.ChangeQuantity(0, math.MinInt))
	assert.Equal(t, 1, c.Items[0].Quantity)
	require.NoError(t, c.ChangeQuantity(0, MaxQuantity-1))
	assert.Equal(t, MaxQuantity, c.Items[0].Quantity)
}

func TestRemove(t *testing.T) {
	var c Cart
	_, _ = c.Add("a", 1, nil, "")
	_, _ = c.Add("b", 1, nil, "")
	_, _ = c.Add("c", 1, nil, "")
	snapshot := c.Clone()

	require.NoError(t, c.Remove(1))
	require.Len(t, c.Items, 2)
	assert.Equal(t, "a", c.Items[0].CatalogItemID)
	assert.Equal(t, "c", c.Items[1].CatalogItemID)
	assert.Equal(t, "b", snapshot.Items[1].CatalogItemID)

	require.ErrorIs(t, c.Remove(2), ErrInvalidIndex)
	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestLineItem_JSONRoundTrip(t *testing.T) {
	items := []LineItem{
		{CatalogItemID: "pz-calabresa", Quantity: 2, Options: catalogdomain.Options{catalogdomain.OptionSize: catalogdomain.Text("Média"), catalogdomain.OptionExtraCheese: catalogdomain.Flag(true)}, Notes: "bem assada"},
		{CatalogItemID: "dr-coca-2l", Quantity: 1},
	}
	payload, err := json.Marshal(items)
	require.NoError(t, err)

	var decoded []LineItem
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, items, decoded)
	assert.Equal(t, items[0].MergeKey(), decoded[0].MergeKey())
}
