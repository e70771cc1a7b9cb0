package cart

import (
	"testing"

	"foodie-storefront/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func food(id, price string) models.FoodItem {
	return models.FoodItem{ID: id, Name: "item " + id, Price: decimal.RequireFromString(price)}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

func sampleCart() models.Cart {
	c := models.Cart{}
	c = AddItem(c, food("1", "18.99"))
	c = AddItem(c, food("2", "15.99"))
	c = AddItem(c, food("1", "18.99"))
	c = AddItem(c, food("3", "4.99"))
	return c
}

func TestAddItem_NewAndExisting(t *testing.T) {
	c := AddItem(models.Cart{}, food("1", "18.99"))
	require.Len(t, c, 1)
	assert.Equal(t, 1, c[0].Quantity)
	assertDecimal(t, "18.99", Subtotal(c))
	assert.Equal(t, 1, TotalItemCount(c))

	c = AddItem(c, food("1", "18.99"))
	require.Len(t, c, 1)
	assert.Equal(t, 2, c[0].Quantity)
	assertDecimal(t, "37.98", Subtotal(c))
}

func TestAddItem_IncrementsCountByOne(t *testing.T) {
	carts := []models.Cart{{}, sampleCart(), AddItem(models.Cart{}, food("9", "1.00"))}
	items := []models.FoodItem{food("1", "18.99"), food("42", "3.50")}
	for _, c := range carts {
		for _, item := range items {
			assert.Equal(t, TotalItemCount(c)+1, TotalItemCount(AddItem(c, item)))
		}
	}
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	c := sampleCart()
	ids := []string{}
	for _, line := range c {
		ids = append(ids, line.ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestEngine_DoesNotMutateInput(t *testing.T) {
	c := sampleCart()
	before := make(models.Cart, len(c))
	copy(before, c)

	AddItem(c, food("1", "18.99"))
	SetQuantity(c, "2", 7)
	RemoveItem(c, "3")

	assert.Equal(t, before, c)
}

func TestRemoveItem(t *testing.T) {
	c := sampleCart()

	removed := RemoveItem(c, "2")
	assert.Len(t, removed, 2)
	assert.Equal(t, removed, RemoveItem(removed, "2"))

	assert.Equal(t, c, RemoveItem(c, "missing"))
	assert.Empty(t, RemoveItem(models.Cart{}, "1"))
}

func TestSetQuantity(t *testing.T) {
	c := sampleCart()

	updated := SetQuantity(c, "3", 5)
	assert.Equal(t, 5, updated[2].Quantity)
	assert.Equal(t, 8, TotalItemCount(updated))

	assert.Equal(t, c, SetQuantity(c, "missing", 4))

	for _, id := range []string{"1", "2", "3", "missing"} {
		assert.Equal(t, RemoveItem(c, id), SetQuantity(c, id, 0))
		assert.Equal(t, RemoveItem(c, id), SetQuantity(c, id, -3))
	}
}

func TestSubtotal_AdditiveOverDisjointCarts(t *testing.T) {
	a := AddItem(AddItem(models.Cart{}, food("1", "18.99")), food("1", "18.99"))
	b := AddItem(AddItem(models.Cart{}, food("7", "17.99")), food("13", "4.99"))

	joined := append(append(models.Cart{}, a...), b...)
	assert.True(t, Subtotal(joined).Equal(Subtotal(a).Add(Subtotal(b))))
	assertDecimal(t, "0", Subtotal(models.Cart{}))
}

func TestTotal_KeepsFullPrecision(t *testing.T) {
	p := DefaultPricing()
	subtotal := decimal.RequireFromString("18.99")
	tax := p.Tax(subtotal)
	assertDecimal(t, "1.5192", tax)
	assertDecimal(t, "23.4992", Total(subtotal, p.DeliveryFee(subtotal), tax))
}
