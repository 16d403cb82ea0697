package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// SnapshotMirror persiste, par appareil admin, les clés du dernier
// snapshot de commandes vu. Copie locale pour la détection de nouveautés
// uniquement — jamais une source de vérité.
type SnapshotMirror struct {
	DeviceID string
}

const mirrorTTL = 30 * 24 * time.Hour

func (m SnapshotMirror) key() string {
	return "orders:seen:" + m.DeviceID
}

// LoadKeys : clé absente ⇒ liste vide, jamais une erreur.
func (m SnapshotMirror) LoadKeys() ([]string, error) {
	data, err := Redis.Get(context.Background(), m.key()).Result()
	if err == redis.Nil || data == "" {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var keys []string
	if err := json.Unmarshal([]byte(data), &keys); err != nil {
		// Miroir corrompu : on repart de zéro plutôt que d'échouer.
		return []string{}, nil
	}
	return keys, nil
}

func (m SnapshotMirror) StoreKeys(keys []string) error {
	if keys == nil {
		keys = []string{}
	}
	data, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	return Redis.Set(context.Background(), m.key(), data, mirrorTTL).Err()
}
