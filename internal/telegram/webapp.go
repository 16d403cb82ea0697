// Package telegram couvre la frontière avec la WebApp Telegram côté
// serveur : négociation de capacités à partir du numéro de version
// rapporté par le client, et vérification du initData. Chaque capacité
// absente dégrade vers un équivalent in-page — jamais d'échec dur.
package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Méthode de notification à utiliser dans la webview admin.
type NotifyMethod string

const (
	NotifyPopup NotifyMethod = "popup" // tg.showPopup
	NotifyAlert NotifyMethod = "alert" // tg.showAlert
	NotifyToast NotifyMethod = "toast" // élément in-page, toujours disponible
)

// ParseVersion lit le numéro de version WebApp ("6.2", "7.0", ...).
// Illisible ou absent ⇒ 0, donc dégradation maximale.
func ParseVersion(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// NotificationMethod choisit le canal le plus riche que la version
// supporte : showPopup ≥ 6.2, showAlert ≥ 6.0, sinon toast in-page.
func NotificationMethod(version string) NotifyMethod {
	v := ParseVersion(version)
	switch {
	case v >= 6.2:
		return NotifyPopup
	case v >= 6.0:
		return NotifyAlert
	default:
		return NotifyToast
	}
}

// SupportsHeaderColor : setHeaderColor existe depuis la 6.1.
func SupportsHeaderColor(version string) bool {
	return ParseVersion(version) >= 6.1
}

var ErrInvalidInitData = errors.New("initData invalide")

// WebAppUser est l'identité fournie par l'hôte.
type WebAppUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// ValidateInitData vérifie la signature HMAC du initData WebApp avec le
// token du bot et renvoie l'utilisateur. La chaîne de contrôle est la
// liste key=value triée (hash exclu), jointe par \n ; la clé secrète est
// HMAC-SHA256(token, "WebAppData").
func ValidateInitData(initData, botToken string) (*WebAppUser, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, ErrInvalidInitData
	}

	gotHash := values.Get("hash")
	if gotHash == "" {
		return nil, ErrInvalidInitData
	}

	var pairs []string
	for key := range values {
		if key == "hash" {
			continue
		}
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)
	checkString := strings.Join(pairs, "\n")

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	secret := secretMac.Sum(nil)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(checkString))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(gotHash)) {
		return nil, ErrInvalidInitData
	}

	var user WebAppUser
	if raw := values.Get("user"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, ErrInvalidInitData
		}
	}
	return &user, nil
}

// UserIDFromInitData extrait l'identifiant Telegram en best-effort :
// initData absent ou invalide ⇒ 0 (anonyme), jamais une erreur. La
// commande reste valide sans identité hôte.
func UserIDFromInitData(initData, botToken string) int64 {
	if initData == "" || botToken == "" {
		return 0
	}
	user, err := ValidateInitData(initData, botToken)
	if err != nil {
		return 0
	}
	return user.ID
}
