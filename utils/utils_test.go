package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"SaaS Pricing Page":    "saas-pricing-page",
		"Héllo Wörld!":         "hello-world",
		"  --Dark   Mode--  ":  "dark-mode",
		"Dashboard 2.0 (beta)": "dashboard-2-0-beta",
		"":                     "",
		"日本語":                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestDesignSlug(t *testing.T) {
	assert.Equal(t, "kept-slug", DesignSlug("kept-slug", "Ignored", 3))
	assert.Equal(t, "pricing-table-42", DesignSlug("", "Pricing Table", 42))
	assert.Equal(t, "7", DesignSlug("", "???", 7))
}

func TestNewShareHash(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		h, err := NewShareHash(ShareHashLength)
		require.NoError(t, err)
		assert.Len(t, h, ShareHashLength)
		assert.True(t, IsShareHash(h), "hash %q", h)
		seen[h] = true
	}
	assert.Greater(t, len(seen), 45)

	_, err := NewShareHash(0)
	assert.Error(t, err)
}

func TestIsShareHash(t *testing.T) {
	assert.True(t, IsShareHash("aZ09aZ09aZ"))
	assert.False(t, IsShareHash("short"))
	assert.False(t, IsShareHash("aZ09aZ09a-"))
}

func TestMapCategory(t *testing.T) {
	assert.Equal(t, "landing", MapCategory("Landing Page"))
	assert.Equal(t, "auth", MapCategory(" LOGIN "))
	assert.Equal(t, DefaultCategory, MapCategory(""))
	assert.Equal(t, "travel-booking", MapCategory("Travel Booking"))
	assert.True(t, IsKnownCategory("dashboard"))
	assert.False(t, IsKnownCategory("travel-booking"))
}

func TestParseFileName(t *testing.T) {
	title, category := ParseFileName("pricing--saas-plans-dark-v2.png")
	assert.Equal(t, "Saas Plans Dark", title)
	assert.Equal(t, "pricing", category)

	title, category = ParseFileName("Crypto_wallet_home.JPG")
	assert.Equal(t, "Crypto Wallet Home", title)
	assert.Equal(t, DefaultCategory, category)

	title, category = ParseFileName("unknownprefix__hero-banner.webp")
	assert.Equal(t, "Unknownprefix Hero Banner", title)
	assert.Equal(t, DefaultCategory, category)

	title, _ = ParseFileName(".png")
	assert.Equal(t, "Untitled design", title)
}
