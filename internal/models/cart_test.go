package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeCart(t *testing.T) {
	t.Run("panier nil devient []", func(t *testing.T) {
		data, err := EncodeCart(nil)
		assert.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("panier rempli", func(t *testing.T) {
		data, err := EncodeCart([]CartItem{
			{ItemID: "plov", Name: "Plov", Price: 30000, Quantity: 2},
		})
		assert.NoError(t, err)
		assert.JSONEq(t,
			`[{"item_id":"plov","name":"Plov","price":30000,"quantity":2}]`,
			string(data))
	})
}

func TestDecodeCart(t *testing.T) {
	cases := map[string]struct {
		data     string
		expected []CartItem
		wantErr  bool
	}{
		"blob vide": {
			data:     "",
			expected: []CartItem{},
		},
		"liste vide": {
			data:     "[]",
			expected: []CartItem{},
		},
		"null devient vide": {
			data:     "null",
			expected: []CartItem{},
		},
		"panier rempli": {
			data: `[{"item_id":"plov","name":"Plov","price":30000,"quantity":2}]`,
			expected: []CartItem{
				{ItemID: "plov", Name: "Plov", Price: 30000, Quantity: 2},
			},
		},
		"blob corrompu": {
			data:    "{pas du json",
			wantErr: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := DecodeCart([]byte(tc.data))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCartTotal(t *testing.T) {
	items := []CartItem{
		{ItemID: "plov", Price: 30000, Quantity: 2},
		{ItemID: "choy", Price: 5000, Quantity: 3},
	}
	assert.Equal(t, int64(75000), CartTotal(items))
	assert.Equal(t, int64(0), CartTotal(nil))
}
