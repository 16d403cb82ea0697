package models

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Statut d'une commande. Enum fermé : toute autre valeur lue depuis la
// base est rejetée à la frontière (ParseStatus), jamais propagée.
type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusPending        Status = "pending"
	StatusAccepted       Status = "accepted"
	StatusRejected       Status = "rejected"
)

var (
	ErrUnknownStatus     = errors.New("statut de commande inconnu")
	ErrInvalidTransition = errors.New("transition de statut invalide")
	ErrOrderNotFound     = errors.New("commande introuvable")
)

// ParseStatus valide une valeur brute venue du store.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPendingPayment, StatusPending, StatusAccepted, StatusRejected:
		return Status(raw), nil
	}
	return "", ErrUnknownStatus
}

// Terminal : accepted et rejected ne bougent plus jamais.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransitionTo encode le graphe :
//
//	pending_payment → pending (paiement confirmé)
//	pending         → accepted | rejected (décision admin)
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPendingPayment:
		return next == StatusPending
	case StatusPending:
		return next == StatusAccepted || next == StatusRejected
	}
	return false
}

type OrderItem struct {
	Name  string `json:"name"`
	Price int64  `json:"price"` // so'm, unités entières
	Qty   int    `json:"qty"`
}

type Order struct {
	Key             string      `json:"key"` // attribué par le store à la création, immuable
	ExternalOrderID string      `json:"orderId,omitempty"`
	Name            string      `json:"name"`
	Phone           string      `json:"phone"`
	Items           []OrderItem `json:"items"`
	Total           int64       `json:"total"`
	Status          Status      `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	AcceptedAt      *time.Time  `json:"acceptedAt,omitempty"`
	RejectedAt      *time.Time  `json:"rejectedAt,omitempty"`
	Location        string      `json:"location,omitempty"`
	PaymentMethod   string      `json:"paymentMethod,omitempty"`
	PaymentStatus   string      `json:"paymentStatus,omitempty"`
	TelegramID      int64       `json:"tg_id,omitempty"`
}

// ComputeTotal fait la somme exacte prix × quantité, en so'm entiers.
// Jamais recalculé en lecture : le total est dénormalisé à la création.
func ComputeTotal(items []OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Price * int64(it.Qty)
	}
	return total
}

var phoneRe = regexp.MustCompile(`^\d{9}$`)

// ValidatePhone : format national, 9 chiffres exactement (ex: 901234567).
func ValidatePhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// ValidateName : au moins 2 caractères utiles.
func ValidateName(name string) bool {
	return len(strings.TrimSpace(name)) >= 2
}

// ValidateItems vérifie un panier soumis : non vide, quantités ≥ 1,
// prix non négatifs.
func ValidateItems(items []OrderItem) bool {
	if len(items) == 0 {
		return false
	}
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" || it.Qty < 1 || it.Price < 0 {
			return false
		}
	}
	return true
}

// NormalizeLocation accepte "latitude,longitude" en best-effort. Toute
// valeur inexploitable devient la chaîne vide : la géolocalisation n'est
// jamais requise pour une commande valide.
func NormalizeLocation(raw string) string {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	if len(parts) != 2 {
		return ""
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return ""
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ""
	}
	return strings.TrimSpace(parts[0]) + "," + strings.TrimSpace(parts[1])
}
