package models

import "encoding/json"

type Cart struct {
	DeviceID string     `json:"device_id"`
	Items    []CartItem `json:"items"`
}

type CartItem struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// EncodeCart sérialise le panier pour Redis. Un panier vide devient "[]",
// jamais null : l'absence de clé signifie déjà "panier vide".
func EncodeCart(items []CartItem) ([]byte, error) {
	if items == nil {
		items = []CartItem{}
	}
	return json.Marshal(items)
}

// DecodeCart relit le blob Redis. Blob vide ⇒ panier vide, pas une erreur.
func DecodeCart(data []byte) ([]CartItem, error) {
	if len(data) == 0 {
		return []CartItem{}, nil
	}
	var items []CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []CartItem{}
	}
	return items, nil
}

// CartTotal calcule le montant total d'un panier
func CartTotal(items []CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}
