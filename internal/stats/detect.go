package stats

import "bodrum_back_end/internal/models"

// Détection des nouvelles commandes pour la notification admin : on
// compare les clés du snapshot courant au dernier snapshot vu par
// l'appareil. Une clé présente maintenant, absente avant, au statut
// pending, est "nouvelle".

// NewOrderEvent décrit la notification d'un cycle de rafraîchissement :
// une seule par cycle, portant la commande nouvelle la plus récente ;
// les autres sont comptées silencieusement dans Count.
type NewOrderEvent struct {
	Order models.Order `json:"order"`
	Count int          `json:"count"`
}

// DiffNewPending renvoie les commandes pending du snapshot dont la clé
// était absente du dernier snapshot vu, dans l'ordre du snapshot
// (created_at décroissant, donc la plus récente d'abord).
func DiffNewPending(seenKeys []string, snapshot []models.Order) []models.Order {
	seen := make(map[string]struct{}, len(seenKeys))
	for _, k := range seenKeys {
		seen[k] = struct{}{}
	}

	var fresh []models.Order
	for _, o := range snapshot {
		if o.Status != models.StatusPending {
			continue
		}
		if _, ok := seen[o.Key]; ok {
			continue
		}
		fresh = append(fresh, o)
	}
	return fresh
}

// Mirror persiste la liste des clés du dernier snapshot vu par un
// appareil. Clé absente ⇒ liste vide, jamais une erreur.
type Mirror interface {
	LoadKeys() ([]string, error)
	StoreKeys(keys []string) error
}

// Detector exécute un cycle de détection : diff contre le miroir, puis
// réécriture du miroir avec le snapshot courant. Rejouer le même
// snapshot ne produit donc aucun événement (re-check idempotent).
type Detector struct {
	Mirror Mirror
}

// Check renvoie au plus un événement par cycle, ou nil.
func (d *Detector) Check(snapshot []models.Order) (*NewOrderEvent, error) {
	seenKeys, err := d.Mirror.LoadKeys()
	if err != nil {
		return nil, err
	}

	fresh := DiffNewPending(seenKeys, snapshot)

	keys := make([]string, 0, len(snapshot))
	for _, o := range snapshot {
		keys = append(keys, o.Key)
	}
	if err := d.Mirror.StoreKeys(keys); err != nil {
		return nil, err
	}

	if len(fresh) == 0 {
		return nil, nil
	}
	return &NewOrderEvent{Order: fresh[0], Count: len(fresh)}, nil
}
