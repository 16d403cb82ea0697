package payement

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"bodrum_back_end/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildPaymeURL(t *testing.T) {
	order := &models.Order{
		ExternalOrderID: "ORD_1756400000000_000000042",
		Total:           85000, // so'm
		Items: []models.OrderItem{
			{Name: "Plov", Price: 30000, Qty: 1},
			{Name: "Shashlik", Price: 15000, Qty: 3},
		},
	}

	raw := BuildPaymeURL("merchant-123", order, "https://bodrum.uz/api/pay/callback?order_id=ORD_1756400000000_000000042")

	parsed, err := url.Parse(raw)
	assert.NoError(t, err)
	assert.Equal(t, "checkout.paycom.uz", parsed.Host)
	assert.Equal(t, "/merchant-123", parsed.Path)

	params := parsed.Query()
	assert.Equal(t, "merchant-123", params.Get("merchant"))
	// 1 so'm = 100 tiyin
	assert.Equal(t, "8500000", params.Get("amount"))
	assert.Equal(t, "ORD_1756400000000_000000042", params.Get("order_id"))
	assert.Equal(t, "uz", params.Get("lang"))
	assert.Contains(t, params.Get("callback_url"), "order_id=ORD_1756400000000_000000042")
}

func TestNewExternalOrderID(t *testing.T) {
	now := time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)

	id := NewExternalOrderID(now)
	assert.Regexp(t, regexp.MustCompile(`^ORD_\d+_\d{9}$`), id)
	assert.True(t, strings.HasPrefix(id, fmt.Sprintf("ORD_%d_", now.UnixMilli())))

	// Deux appels successifs ne doivent (quasiment) jamais se heurter
	assert.NotEqual(t, id, NewExternalOrderID(now))
}
