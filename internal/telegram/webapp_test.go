package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationMethod(t *testing.T) {
	cases := map[string]struct {
		version  string
		expected NotifyMethod
	}{
		"6.2 = popup":         {version: "6.2", expected: NotifyPopup},
		"7.0 = popup":         {version: "7.0", expected: NotifyPopup},
		"6.1 = alert":         {version: "6.1", expected: NotifyAlert},
		"6.0 = alert":         {version: "6.0", expected: NotifyAlert},
		"5.9 = toast":         {version: "5.9", expected: NotifyToast},
		"vide = toast":        {version: "", expected: NotifyToast},
		"illisible = toast":   {version: "abc", expected: NotifyToast},
		"espaces tolérés":     {version: " 6.2 ", expected: NotifyPopup},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NotificationMethod(tc.version))
		})
	}
}

func TestSupportsHeaderColor(t *testing.T) {
	assert.True(t, SupportsHeaderColor("6.1"))
	assert.True(t, SupportsHeaderColor("7.0"))
	assert.False(t, SupportsHeaderColor("6.0"))
	assert.False(t, SupportsHeaderColor(""))
}

// signInitData recalcule la signature attendue côté hôte Telegram.
func signInitData(values url.Values, botToken string) string {
	var pairs []string
	for key := range values {
		if key == "hash" {
			continue
		}
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	secret := secretMac.Sum(nil)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strings.Join(pairs, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestValidateInitData(t *testing.T) {
	const botToken = "12345:test-token"

	values := url.Values{}
	values.Set("auth_date", "1756400000")
	values.Set("query_id", "AAE")
	values.Set("user", `{"id":777000,"first_name":"Aziza","username":"aziza"}`)
	values.Set("hash", signInitData(values, botToken))
	initData := values.Encode()

	t.Run("signature valide", func(t *testing.T) {
		user, err := ValidateInitData(initData, botToken)
		assert.NoError(t, err)
		assert.Equal(t, int64(777000), user.ID)
		assert.Equal(t, "Aziza", user.FirstName)
	})

	t.Run("mauvais token", func(t *testing.T) {
		_, err := ValidateInitData(initData, "autre-token")
		assert.ErrorIs(t, err, ErrInvalidInitData)
	})

	t.Run("données altérées", func(t *testing.T) {
		tampered := url.Values{}
		tampered.Set("auth_date", "1756400000")
		tampered.Set("query_id", "AAE")
		tampered.Set("user", `{"id":999,"first_name":"X"}`)
		tampered.Set("hash", values.Get("hash"))
		_, err := ValidateInitData(tampered.Encode(), botToken)
		assert.ErrorIs(t, err, ErrInvalidInitData)
	})

	t.Run("hash manquant", func(t *testing.T) {
		_, err := ValidateInitData("auth_date=1756400000", botToken)
		assert.ErrorIs(t, err, ErrInvalidInitData)
	})
}

func TestUserIDFromInitData(t *testing.T) {
	const botToken = "12345:test-token"

	values := url.Values{}
	values.Set("auth_date", "1756400000")
	values.Set("user", `{"id":777000,"first_name":"Aziza"}`)
	values.Set("hash", signInitData(values, botToken))

	// Best-effort : jamais d'erreur, 0 en cas de doute
	assert.Equal(t, int64(777000), UserIDFromInitData(values.Encode(), botToken))
	assert.Equal(t, int64(0), UserIDFromInitData("", botToken))
	assert.Equal(t, int64(0), UserIDFromInitData(values.Encode(), ""))
	assert.Equal(t, int64(0), UserIDFromInitData("n'importe quoi", botToken))
}
