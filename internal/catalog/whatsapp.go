package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"storefront-service/internal/models"
)

const whatsappBaseURL = "https://wa.me"

// BuildWhatsAppLink renders a pre-filled wa.me deep link for a product and
// size. The phone number is normalized by stripping every non-digit
// character. No I/O happens here; the caller opens the URL client-side.
func BuildWhatsAppLink(product *models.Product, size, phoneNumber, storeBaseURL string) string {
	message := fmt.Sprintf(
		"Hi! I'm interested in this sneaker:\n\n*%s*\nSize: %s\nPrice: %s\n\n%s/products/%s\n\nIs it still available?",
		product.Name,
		size,
		FormatPrice(product.FinalPrice),
		strings.TrimRight(storeBaseURL, "/"),
		product.Slug,
	)

	return fmt.Sprintf("%s/%s?text=%s",
		whatsappBaseURL,
		NormalizePhone(phoneNumber),
		url.QueryEscape(message))
}

// NormalizePhone strips all non-digit characters
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPrice renders a price the way the storefront displays it
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}
