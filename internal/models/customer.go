package models

import "time"

// Customer n'est jamais persisté : c'est une projection recalculée à
// chaque snapshot de la collection des commandes, indexée par téléphone.
type Customer struct {
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Orders     int       `json:"orders"`
	TotalSpent int64     `json:"totalSpent"`
	LastOrder  time.Time `json:"lastOrder"`
}

// VIP : au moins 5 commandes.
func (c Customer) VIP() bool {
	return c.Orders >= 5
}
