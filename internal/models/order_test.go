package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotal(t *testing.T) {
	cases := map[string]struct {
		items    []OrderItem
		expected int64
	}{
		"panier vide": {
			items:    nil,
			expected: 0,
		},
		"un seul plat": {
			items:    []OrderItem{{Name: "Lagman", Price: 25000, Qty: 2}},
			expected: 50000,
		},
		"plusieurs plats, somme exacte": {
			items: []OrderItem{
				{Name: "Plov", Price: 30000, Qty: 1},
				{Name: "Shashlik", Price: 15000, Qty: 3},
				{Name: "Choy", Price: 5000, Qty: 2},
			},
			expected: 85000,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ComputeTotal(tc.items))
		})
	}
}

func TestParseStatus(t *testing.T) {
	cases := map[string]struct {
		raw      string
		expected Status
		wantErr  bool
	}{
		"pending_payment": {raw: "pending_payment", expected: StatusPendingPayment},
		"pending":         {raw: "pending", expected: StatusPending},
		"accepted":        {raw: "accepted", expected: StatusAccepted},
		"rejected":        {raw: "rejected", expected: StatusRejected},
		"inconnu rejeté":  {raw: "shipped", wantErr: true},
		"vide rejeté":     {raw: "", wantErr: true},
		"casse stricte":   {raw: "Pending", wantErr: true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseStatus(tc.raw)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnknownStatus)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCanTransitionTo(t *testing.T) {
	all := []Status{StatusPendingPayment, StatusPending, StatusAccepted, StatusRejected}

	allowed := map[Status]map[Status]bool{
		StatusPendingPayment: {StatusPending: true},
		StatusPending:        {StatusAccepted: true, StatusRejected: true},
	}

	for _, from := range all {
		for _, to := range all {
			expected := allowed[from][to]
			assert.Equal(t, expected, from.CanTransitionTo(to),
				"%s → %s", from, to)
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.False(t, StatusPendingPayment.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusAccepted.Terminal())
	assert.True(t, StatusRejected.Terminal())
}

func TestValidatePhone(t *testing.T) {
	cases := map[string]struct {
		phone    string
		expected bool
	}{
		"9 chiffres":          {phone: "901234567", expected: true},
		"trop court":          {phone: "90123456", expected: false},
		"trop long":           {phone: "9012345678", expected: false},
		"avec indicatif":      {phone: "+998901234567", expected: false},
		"lettres":             {phone: "90123456a", expected: false},
		"vide":                {phone: "", expected: false},
		"espaces intercalées": {phone: "90 123 45 67", expected: false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ValidatePhone(tc.phone))
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.True(t, ValidateName("Ali"))
	assert.True(t, ValidateName("Bo"))
	assert.False(t, ValidateName("A"))
	assert.False(t, ValidateName("  A  "))
	assert.False(t, ValidateName(""))
}

func TestValidateItems(t *testing.T) {
	cases := map[string]struct {
		items    []OrderItem
		expected bool
	}{
		"valide": {
			items:    []OrderItem{{Name: "Plov", Price: 30000, Qty: 1}},
			expected: true,
		},
		"vide": {
			items:    nil,
			expected: false,
		},
		"quantité nulle": {
			items:    []OrderItem{{Name: "Plov", Price: 30000, Qty: 0}},
			expected: false,
		},
		"prix négatif": {
			items:    []OrderItem{{Name: "Plov", Price: -1, Qty: 1}},
			expected: false,
		},
		"nom vide": {
			items:    []OrderItem{{Name: "  ", Price: 30000, Qty: 1}},
			expected: false,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ValidateItems(tc.items))
		})
	}
}

func TestNormalizeLocation(t *testing.T) {
	cases := map[string]struct {
		raw      string
		expected string
	}{
		"valide":            {raw: "41.2995,69.2401", expected: "41.2995,69.2401"},
		"avec espaces":      {raw: " 41.2995 , 69.2401 ", expected: "41.2995,69.2401"},
		"vide":              {raw: "", expected: ""},
		"une seule valeur":  {raw: "41.2995", expected: ""},
		"latitude hors plage": {raw: "95.0,69.2401", expected: ""},
		"illisible":         {raw: "ici,là", expected: ""},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeLocation(tc.raw))
		})
	}
}
