package stats

import (
	"testing"
	"time"

	"bodrum_back_end/internal/models"

	"github.com/stretchr/testify/assert"
)

// miroir en mémoire pour les tests
type memMirror struct {
	keys []string
}

func (m *memMirror) LoadKeys() ([]string, error)   { return m.keys, nil }
func (m *memMirror) StoreKeys(keys []string) error { m.keys = keys; return nil }

func pendingOrder(key string, age time.Duration) models.Order {
	return models.Order{
		Key:       key,
		Status:    models.StatusPending,
		CreatedAt: now.Add(-age),
	}
}

func TestDiffNewPending(t *testing.T) {
	snapshot := []models.Order{
		pendingOrder("C", 1*time.Minute),
		pendingOrder("B", 2*time.Minute),
		pendingOrder("A", 3*time.Minute),
		{Key: "D", Status: models.StatusAccepted, CreatedAt: now},
	}

	fresh := DiffNewPending([]string{"A", "B"}, snapshot)

	// Seule C est nouvelle ; D est nouvelle mais pas pending
	assert.Len(t, fresh, 1)
	assert.Equal(t, "C", fresh[0].Key)
}

func TestDetectorCheck(t *testing.T) {
	mirror := &memMirror{keys: []string{"A", "B"}}
	detector := &Detector{Mirror: mirror}

	snapshot := []models.Order{
		pendingOrder("D", 1*time.Minute),
		pendingOrder("C", 2*time.Minute),
		pendingOrder("B", 3*time.Minute),
		pendingOrder("A", 4*time.Minute),
	}

	event, err := detector.Check(snapshot)
	assert.NoError(t, err)

	// Un seul événement par cycle : la plus récente, les autres comptées
	assert.NotNil(t, event)
	assert.Equal(t, "D", event.Order.Key)
	assert.Equal(t, 2, event.Count)

	// Le miroir a été réécrit avec tout le snapshot
	assert.Equal(t, []string{"D", "C", "B", "A"}, mirror.keys)

	// Rejouer le même snapshot ne produit rien (idempotent)
	event, err = detector.Check(snapshot)
	assert.NoError(t, err)
	assert.Nil(t, event)
}

func TestDetectorCheckEmptyMirror(t *testing.T) {
	// Premier passage d'un appareil : tout le snapshot pending est
	// "nouveau", un seul événement quand même
	detector := &Detector{Mirror: &memMirror{}}

	snapshot := []models.Order{
		pendingOrder("B", 1*time.Minute),
		pendingOrder("A", 2*time.Minute),
	}

	event, err := detector.Check(snapshot)
	assert.NoError(t, err)
	assert.NotNil(t, event)
	assert.Equal(t, "B", event.Order.Key)
	assert.Equal(t, 2, event.Count)
}
