package services

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/mizanhq/mizan-api/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZatcaService_GenerateQR_ByteLayout(t *testing.T) {
	svc := NewZatcaService()

	timestamp := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	payload, err := svc.GenerateQR("Acme Co", "310122393500003", timestamp, dec("1150.00"), dec("150.00"))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)

	want := []byte{}
	want = append(want, 0x01, 0x07)
	want = append(want, []byte("Acme Co")...)
	want = append(want, 0x02, 0x0F)
	want = append(want, []byte("310122393500003")...)
	want = append(want, 0x03, 0x14)
	want = append(want, []byte("2024-01-15T10:30:00Z")...)
	want = append(want, 0x04, 0x07)
	want = append(want, []byte("1150.00")...)
	want = append(want, 0x05, 0x06)
	want = append(want, []byte("150.00")...)

	assert.Equal(t, want, raw)
}

func TestZatcaService_GenerateQR_ArabicSellerName(t *testing.T) {
	svc := NewZatcaService()

	// length byte counts UTF-8 bytes, not runes
	name := "شركة أكمي"
	payload, err := svc.GenerateQR(name, "310122393500003", frozenTime, dec("100.00"), dec("13.04"))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	require.Equal(t, byte(1), raw[0])
	assert.Equal(t, byte(len(name)), raw[1])
	assert.Equal(t, name, string(raw[2:2+len(name)]))
}

func TestZatcaService_GenerateQR_InvalidVATNumber(t *testing.T) {
	svc := NewZatcaService()

	tests := []struct {
		name string
		vat  string
	}{
		{"too short", "12345678901234"},
		{"too long", "1234567890123456"},
		{"non digits", "31012239350000A"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GenerateQR("Acme Co", tt.vat, frozenTime, dec("100"), dec("15"))
			assert.ErrorIs(t, err, business.ErrInvalidVATNumber)
		})
	}
}

func TestZatcaService_ValidateQR_RoundTrip(t *testing.T) {
	svc := NewZatcaService()

	timestamp := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	payload, err := svc.GenerateQR("Acme Co", "310122393500003", timestamp, dec("1150.00"), dec("150.00"))
	require.NoError(t, err)

	fields, err := svc.ValidateQR(payload)
	require.NoError(t, err)

	assert.Equal(t, "Acme Co", fields.SellerName)
	assert.Equal(t, "310122393500003", fields.VATNumber)
	assert.True(t, fields.Timestamp.Equal(timestamp))
	assert.True(t, fields.TotalWithVAT.Equal(dec("1150.00")))
	assert.True(t, fields.VATAmount.Equal(dec("150.00")))
}

func TestZatcaService_ValidateQR_Rejections(t *testing.T) {
	svc := NewZatcaService()

	// a payload missing tag 5 entirely
	missingTag := []byte{0x01, 0x01, 'A', 0x02, 0x0F}
	missingTag = append(missingTag, []byte("310122393500003")...)
	missingTag = append(missingTag, 0x03, 0x14)
	missingTag = append(missingTag, []byte("2024-01-15T10:30:00Z")...)
	missingTag = append(missingTag, 0x04, 0x04)
	missingTag = append(missingTag, []byte("1.00")...)

	// structurally valid TLV whose VAT field breaks the 15-digit rule
	badVAT := []byte{0x01, 0x01, 'A', 0x02, 0x03}
	badVAT = append(badVAT, []byte("123")...)
	badVAT = append(badVAT, 0x03, 0x14)
	badVAT = append(badVAT, []byte("2024-01-15T10:30:00Z")...)
	badVAT = append(badVAT, 0x04, 0x04)
	badVAT = append(badVAT, []byte("1.00")...)
	badVAT = append(badVAT, 0x05, 0x04)
	badVAT = append(badVAT, []byte("0.13")...)

	tests := []struct {
		name    string
		payload string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"truncated tlv", base64.StdEncoding.EncodeToString([]byte{0x01, 0x05, 'A'})},
		{"missing tag", base64.StdEncoding.EncodeToString(missingTag)},
		{"invalid vat number", base64.StdEncoding.EncodeToString(badVAT)},
		{"empty payload", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateQR(tt.payload)
			assert.Error(t, err)
		})
	}
}

func TestZatcaService_RenderPNG(t *testing.T) {
	svc := NewZatcaService()

	payload, err := svc.GenerateQR("Acme Co", "310122393500003", frozenTime, dec("207.00"), dec("27.00"))
	require.NoError(t, err)

	png, err := svc.RenderPNG(payload, 256)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
