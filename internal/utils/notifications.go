package utils

import (
	"fmt"
	"log"
	"os"
	"strings"

	"bodrum_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// SendNewOrderEmail prévient le restaurant par e-mail quand la webview
// admin n'est pas ouverte. Best-effort : une erreur SMTP n'impacte
// jamais la commande.
func SendNewOrderEmail(order models.Order) error {
	to := os.Getenv("RESTAURANT_EMAIL")
	if to == "" {
		// Pas d'adresse configurée : on dégrade silencieusement.
		return nil
	}

	msg := mail.NewMsg()

	if err := msg.From("noreply@bodrum.uz"); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("🛎️ Nouvelle commande #%s — %s so'm", shortKey(order.Key), formatAmount(order.Total)))
	msg.SetBodyString(mail.TypeTextHTML, generateNewOrderHTML(order))

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail nouvelle commande à", to)
	return client.DialAndSend(msg)
}

func generateNewOrderHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px 0; color: #333333; font-size: 14px;">%s</td>
				<td style="padding: 8px 0; color: #666666; font-size: 14px; text-align: center;">x%d</td>
				<td style="padding: 8px 0; color: #333333; font-size: 14px; text-align: right;">%s so'm</td>
			</tr>`, item.Name, item.Qty, formatAmount(item.Price*int64(item.Qty)))
	}

	location := ""
	if order.Location != "" {
		location = fmt.Sprintf(`<p style="margin: 10px 0 0 0; color: #666666; font-size: 14px;">
			📍 <a href="https://maps.google.com/?q=%s">Voir la position</a></p>`, order.Location)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
    <meta charset="UTF-8">
    <title>Nouvelle commande</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f5f5f5;">
    <table role="presentation" style="width: 100%%; border-collapse: collapse; background-color: #f5f5f5;">
        <tr>
            <td style="padding: 40px 20px;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px;">
                    <tr>
                        <td style="background: linear-gradient(135deg, #FFD700 0%%, #D4AF37 100%%); padding: 30px; text-align: center; border-radius: 12px 12px 0 0;">
                            <h1 style="margin: 0; color: #000000; font-size: 24px;">🛎️ Nouvelle commande BODRUM</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px;">
                            <p style="margin: 0 0 5px 0; color: #333333; font-size: 16px;"><strong>%s</strong></p>
                            <p style="margin: 0 0 15px 0; color: #666666; font-size: 14px;">+998 %s</p>
                            %s
                            <table role="presentation" style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
                                %s
                            </table>
                            <p style="margin: 0; color: #333333; font-size: 18px; text-align: right;">
                                <strong>Total : %s so'm</strong>
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`, order.Name, order.Phone, location, itemsHTML, formatAmount(order.Total))
}

func shortKey(key string) string {
	if len(key) <= 6 {
		return key
	}
	return key[len(key)-6:]
}

// formatAmount groupe les milliers (12 345 678) pour l'affichage.
func formatAmount(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, " ")
}
