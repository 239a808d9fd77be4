package catalog

import (
	"net/url"
	"strings"
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5215512345678", NormalizePhone("+52 1 (551) 234-5678"))
	assert.Equal(t, "1234567890", NormalizePhone("1234567890"))
	assert.Equal(t, "", NormalizePhone("no digits"))
}

func TestBuildWhatsAppLink(t *testing.T) {
	product := &models.Product{
		Name:       "Air Jordan 1 Retro",
		Slug:       "air-jordan-1-retro",
		FinalPrice: 180,
	}

	link := BuildWhatsAppLink(product, "9.5", "+1 (555) 123-4567", "https://sneakerstore.example.com/")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/15551234567?text="))

	u, err := url.Parse(link)
	require.NoError(t, err)

	message := u.Query().Get("text")
	assert.Contains(t, message, "Air Jordan 1 Retro")
	assert.Contains(t, message, "Size: 9.5")
	assert.Contains(t, message, "$180.00")
	assert.Contains(t, message, "https://sneakerstore.example.com/products/air-jordan-1-retro")
}

func TestBuildWhatsAppLinkDeterministic(t *testing.T) {
	product := &models.Product{Name: "Samba OG", Slug: "samba-og", FinalPrice: 99.99}

	a := BuildWhatsAppLink(product, "8", "5551112222", "https://store.test")
	b := BuildWhatsAppLink(product, "8", "5551112222", "https://store.test")
	assert.Equal(t, a, b)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$80.00", FormatPrice(80))
	assert.Equal(t, "$99.99", FormatPrice(99.99))
}
