package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProductIDs_DistinctInFirstSeenOrder(t *testing.T) {
	order := &Order{LineItems: []LineItem{
		{ID: "li1", ProductID: "p2"},
		{ID: "li2", ProductID: "p1"},
		{ID: "li3", ProductID: "p2"},
	}}
	require.Equal(t, []string{"p2", "p1"}, order.ProductIDs())
}

func TestValidate_RejectsLineItemWithoutProduct(t *testing.T) {
	order := &Order{LineItems: []LineItem{{ID: "li1"}}}
	require.ErrorIs(t, order.Validate(), ErrEmptyProductRef)
}

func TestNewID_IsTimeOrdered(t *testing.T) {
	first, err := NewID()
	require.NoError(t, err)
	second, err := NewID()
	require.NoError(t, err)
	require.Less(t, first, second)
}

func TestClone_DoesNotShareLineItems(t *testing.T) {
	order := &Order{ID: "o1", LineItems: []LineItem{{ID: "li1", ProductID: "p1"}}}
	clone := order.Clone()
	clone.LineItems[0].Title = "changed"
	require.Empty(t, order.LineItems[0].Title)
}
