package models

import "errors"

var ErrMenuItemNotFound = errors.New("plat introuvable")

type MenuItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"` // so'm
	Category    string `json:"category"`
	Image       string `json:"image,omitempty"`
	Available   bool   `json:"available"`
}
