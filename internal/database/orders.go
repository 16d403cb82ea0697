package database

import (
	"encoding/json"
	"log"
	"sort"
	"time"

	"bodrum_back_end/internal/models"

	"github.com/gocql/gocql"
)

// Le store des commandes : création avec clé générée, mise à jour
// partielle conditionnelle (LWT), lecture du snapshot complet. Tout le
// filtrage se fait côté client après lecture complète.

// InsertOrder écrit une nouvelle commande avec une clé timeuuid générée
// par le store et un created_at posé par l'écrivain. La clé est renvoyée.
func InsertOrder(o *models.Order) error {
	session, err := GetOrdersSession()
	if err != nil {
		return err
	}

	key := gocql.TimeUUID()
	o.Key = key.String()
	o.CreatedAt = time.Now()

	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}

	return session.Query(`INSERT INTO orders
		(order_id, external_order_id, name, phone, items, total, status,
		 created_at, location, payment_method, payment_status, tg_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		key, o.ExternalOrderID, o.Name, o.Phone, string(itemsJSON), o.Total,
		string(o.Status), o.CreatedAt, o.Location, o.PaymentMethod,
		o.PaymentStatus, o.TelegramID).Exec()
}

// ListOrders relit la collection ENTIÈRE, triée created_at décroissant.
// Les lignes au statut inconnu sont écartées ici, à la frontière du
// store, et ne remontent jamais vers les vues.
func ListOrders() ([]models.Order, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT order_id, external_order_id, name, phone,
		items, total, status, created_at, accepted_at, rejected_at,
		location, payment_method, payment_status, tg_id FROM orders`).Iter()

	var orders []models.Order
	var (
		orderID                gocql.UUID
		itemsJSON, rawStatus   string
		createdAt              time.Time
		acceptedAt, rejectedAt time.Time
		o                      models.Order
	)

	for iter.Scan(&orderID, &o.ExternalOrderID, &o.Name, &o.Phone,
		&itemsJSON, &o.Total, &rawStatus, &createdAt, &acceptedAt,
		&rejectedAt, &o.Location, &o.PaymentMethod, &o.PaymentStatus,
		&o.TelegramID) {

		status, err := models.ParseStatus(rawStatus)
		if err != nil {
			log.Printf("⚠️ Commande %s ignorée: statut inconnu %q", orderID, rawStatus)
			o = models.Order{}
			continue
		}

		var items []models.OrderItem
		if itemsJSON != "" {
			if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
				log.Printf("⚠️ Commande %s: items illisibles: %v", orderID, err)
			}
		}

		o.Key = orderID.String()
		o.Status = status
		o.CreatedAt = createdAt
		o.Items = items
		o.AcceptedAt = nilIfZero(acceptedAt)
		o.RejectedAt = nilIfZero(rejectedAt)

		orders = append(orders, o)
		o = models.Order{}
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}

	// created_at strictement décroissant : la seule clé d'ordre de toutes
	// les vues "plus récent d'abord". Tri stable pour les égalités.
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}

// GetOrderKeyByExternalID retrouve la clé store d'une commande routée
// paiement à partir de son identifiant externe (ORD_...).
func GetOrderKeyByExternalID(externalID string) (string, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return "", err
	}

	var orderID gocql.UUID
	err = session.Query(`SELECT order_id FROM orders WHERE external_order_id = ? ALLOW FILTERING`,
		externalID).Scan(&orderID)
	if err == gocql.ErrNotFound {
		return "", models.ErrOrderNotFound
	}
	if err != nil {
		return "", err
	}
	return orderID.String(), nil
}

// TransitionOrder applique UNE transition de statut en écriture
// conditionnelle (compare-and-swap sur le statut courant). Deux admins en
// course ne peuvent pas "réussir" tous les deux : le second reçoit
// ErrInvalidTransition et la ligne reste intacte.
func TransitionOrder(key string, from, to models.Status, at time.Time) error {
	if !from.CanTransitionTo(to) {
		return models.ErrInvalidTransition
	}

	session, err := GetOrdersSession()
	if err != nil {
		return err
	}

	orderID, err := gocql.ParseUUID(key)
	if err != nil {
		return models.ErrOrderNotFound
	}

	var cql string
	switch to {
	case models.StatusAccepted:
		cql = `UPDATE orders SET status = ?, accepted_at = ? WHERE order_id = ? IF status = ?`
	case models.StatusRejected:
		cql = `UPDATE orders SET status = ?, rejected_at = ? WHERE order_id = ? IF status = ?`
	default:
		cql = `UPDATE orders SET status = ?, payment_status = ? WHERE order_id = ? IF status = ?`
	}

	var applied bool
	var prevStatus string

	if to == models.StatusPending {
		// Confirmation de paiement : on marque aussi payment_status.
		applied, err = session.Query(cql, string(to), "paid", orderID, string(from)).ScanCAS(&prevStatus)
	} else {
		applied, err = session.Query(cql, string(to), at, orderID, string(from)).ScanCAS(&prevStatus)
	}
	if err != nil {
		return err
	}

	if !applied {
		if prevStatus == "" {
			return models.ErrOrderNotFound
		}
		log.Printf("⚠️ Transition refusée pour %s: statut courant %q, attendu %q", key, prevStatus, from)
		return models.ErrInvalidTransition
	}

	return nil
}

func nilIfZero(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
