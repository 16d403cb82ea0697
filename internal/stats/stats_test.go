package stats

import (
	"testing"
	"time"

	"bodrum_back_end/internal/models"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 8, 29, 18, 0, 0, 0, time.Local)

func order(phone, name string, total int64, status models.Status, age time.Duration, items ...models.OrderItem) models.Order {
	return models.Order{
		Key:       phone + "-" + age.String(),
		Name:      name,
		Phone:     phone,
		Total:     total,
		Status:    status,
		CreatedAt: now.Add(-age),
		Items:     items,
	}
}

func TestBuildCustomers(t *testing.T) {
	// Snapshot trié created_at décroissant, comme le store le rend
	orders := []models.Order{
		order("901111111", "Aziza", 50000, models.StatusAccepted, 1*time.Hour),
		order("902222222", "Bek", 20000, models.StatusPending, 2*time.Hour),
		order("901111111", "Aziza Karimova", 30000, models.StatusAccepted, 3*time.Hour),
		order("903333333", "Olim", 90000, models.StatusRejected, 4*time.Hour),
	}

	customers := BuildCustomers(orders)
	assert.Len(t, customers, 3)

	// Tri par total dépensé décroissant
	assert.Equal(t, "903333333", customers[0].Phone)
	assert.Equal(t, int64(90000), customers[0].TotalSpent)

	// Regroupement par téléphone : nom de la commande la plus récente
	assert.Equal(t, "901111111", customers[1].Phone)
	assert.Equal(t, "Aziza", customers[1].Name)
	assert.Equal(t, 2, customers[1].Orders)
	assert.Equal(t, int64(80000), customers[1].TotalSpent)
	assert.Equal(t, now.Add(-1*time.Hour), customers[1].LastOrder)

	assert.Equal(t, "902222222", customers[2].Phone)
}

func TestSearchCustomers(t *testing.T) {
	customers := []models.Customer{
		{Name: "Aziza", Phone: "901111111"},
		{Name: "Bek", Phone: "902222222"},
	}

	assert.Len(t, SearchCustomers(customers, ""), 2)
	assert.Len(t, SearchCustomers(customers, "azi"), 1)
	assert.Len(t, SearchCustomers(customers, "AZIZA"), 1)
	assert.Len(t, SearchCustomers(customers, "90222"), 1)
	assert.Empty(t, SearchCustomers(customers, "introuvable"))
}

func TestPeriodStart(t *testing.T) {
	cases := map[string]struct {
		period   string
		expected time.Time
	}{
		"day = minuit local": {
			period:   "day",
			expected: time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local),
		},
		"week = maintenant - 7 jours": {
			period:   "week",
			expected: now.AddDate(0, 0, -7),
		},
		"month = maintenant - 1 mois": {
			period:   "month",
			expected: now.AddDate(0, -1, 0),
		},
		"inconnu retombe sur day": {
			period:   "year",
			expected: time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local),
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PeriodStart(tc.period, now))
		})
	}
}

func TestFilterAcceptedAndRevenue(t *testing.T) {
	orders := []models.Order{
		order("901111111", "Aziza", 45000, models.StatusAccepted, 2*time.Hour),
		order("902222222", "Bek", 20000, models.StatusPending, 1*time.Hour),
		order("903333333", "Olim", 100000, models.StatusRejected, 1*time.Hour),
		order("904444444", "Dono", 60000, models.StatusPendingPayment, 30*time.Minute),
		// acceptée mais hors période
		order("905555555", "Erkin", 70000, models.StatusAccepted, 48*time.Hour),
	}

	start := now.Add(-24 * time.Hour)
	filtered := FilterAccepted(orders, start, now)

	// Seules les acceptées dans la fenêtre comptent, quel que soit le
	// montant des autres
	assert.Len(t, filtered, 1)
	assert.Equal(t, int64(45000), Revenue(filtered))
}

func TestTopProducts(t *testing.T) {
	orders := []models.Order{
		order("901111111", "A", 0, models.StatusAccepted, time.Hour,
			models.OrderItem{Name: "Plov", Qty: 3},
			models.OrderItem{Name: "Choy", Qty: 1}),
		order("902222222", "B", 0, models.StatusAccepted, time.Hour,
			models.OrderItem{Name: "Lagman", Qty: 2},
			models.OrderItem{Name: "Plov", Qty: 1}),
		order("903333333", "C", 0, models.StatusAccepted, time.Hour,
			models.OrderItem{Name: "Shashlik", Qty: 2},
			models.OrderItem{Name: "Somsa", Qty: 2},
			models.OrderItem{Name: "Norin", Qty: 1}),
	}

	top := TopProducts(orders, 5)
	assert.Len(t, top, 5) // 6 produits, tronqué à 5

	assert.Equal(t, ProductCount{Name: "Plov", Qty: 4}, top[0])
	// Égalité à 2 : ordre de première rencontre conservé
	assert.Equal(t, "Lagman", top[1].Name)
	assert.Equal(t, "Shashlik", top[2].Name)
	assert.Equal(t, "Somsa", top[3].Name)
}

func TestBuildOverview(t *testing.T) {
	orders := []models.Order{
		order("901111111", "Aziza", 45000, models.StatusAccepted, 2*time.Hour,
			models.OrderItem{Name: "Plov", Qty: 1}),
		order("902222222", "Bek", 20000, models.StatusPending, 1*time.Hour,
			models.OrderItem{Name: "Choy", Qty: 5}),
	}

	overview := BuildOverview(orders, "day", now)

	assert.Equal(t, int64(45000), overview.Revenue)
	assert.Equal(t, 1, overview.Orders)
	// Les items des commandes non acceptées n'entrent pas dans le top
	assert.Equal(t, []ProductCount{{Name: "Plov", Qty: 1}}, overview.TopProducts)
	assert.Equal(t, []TrendPoint{{Label: now.Add(-2 * time.Hour).Format("Mon"), Revenue: 45000}}, overview.Trend)
}
