package services

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"time"

	"github.com/mizanhq/mizan-api/constants"
	"github.com/mizanhq/mizan-api/logger"
	"github.com/mizanhq/mizan-api/tlv"
	"github.com/mizanhq/mizan-api/types/business"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// zatcaTimestampFormat is ISO-8601 UTC with seconds precision and no
// fractional component.
const zatcaTimestampFormat = "2006-01-02T15:04:05Z"

var vatNumberPattern = regexp.MustCompile(`^[0-9]{15}$`)

// ZatcaService builds and validates ZATCA tax receipt QR payloads: five
// TLV fields in fixed tag order 1..5, Base64-wrapped. Consumers treat the
// payload as an opaque blob.
type ZatcaService struct {
	logger *zap.Logger
}

// NewZatcaService creates a new ZATCA QR service
func NewZatcaService() *ZatcaService {
	return &ZatcaService{
		logger: logger.Log,
	}
}

// GenerateQR encodes the five tax receipt fields and returns the Base64
// payload. The VAT number must be exactly 15 digits; the check runs before
// any encoding is attempted.
func (s *ZatcaService) GenerateQR(sellerName, vatNumber string, timestamp time.Time, totalWithVAT, vatAmount decimal.Decimal) (string, error) {
	if !vatNumberPattern.MatchString(vatNumber) {
		return "", business.ErrInvalidVATNumber
	}

	fields := []struct {
		tag   byte
		value string
	}{
		{constants.ZatcaTagSellerName, sellerName},
		{constants.ZatcaTagVATNumber, vatNumber},
		{constants.ZatcaTagTimestamp, timestamp.UTC().Format(zatcaTimestampFormat)},
		{constants.ZatcaTagTotalWithVAT, totalWithVAT.StringFixed(2)},
		{constants.ZatcaTagVATAmount, vatAmount.StringFixed(2)},
	}

	var payload []byte
	for _, f := range fields {
		encoded, err := tlv.EncodeField(f.tag, f.value)
		if err != nil {
			return "", fmt.Errorf("failed to encode tag %d: %w", f.tag, err)
		}
		payload = append(payload, encoded...)
	}

	return base64.StdEncoding.EncodeToString(payload), nil
}

// ValidateQR reverses the encoding and re-checks that all five fields are
// present and the VAT number still matches the 15-digit rule. A
// structurally valid but semantically incomplete payload is rejected.
func (s *ZatcaService) ValidateQR(payload string) (*business.ZatcaQRFields, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	fields, err := tlv.DecodeAll(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode TLV payload: %w", err)
	}

	for tag := constants.ZatcaTagSellerName; tag <= constants.ZatcaTagVATAmount; tag++ {
		if _, ok := fields[tag]; !ok {
			return nil, business.NewValidationError("qr_code", fmt.Sprintf("missing TLV tag %d", tag))
		}
	}

	if !vatNumberPattern.MatchString(fields[constants.ZatcaTagVATNumber]) {
		return nil, business.ErrInvalidVATNumber
	}

	timestamp, err := time.Parse(zatcaTimestampFormat, fields[constants.ZatcaTagTimestamp])
	if err != nil {
		return nil, business.NewValidationError("qr_code", "malformed timestamp")
	}

	total, err := decimal.NewFromString(fields[constants.ZatcaTagTotalWithVAT])
	if err != nil {
		return nil, business.NewValidationError("qr_code", "malformed total amount")
	}

	vat, err := decimal.NewFromString(fields[constants.ZatcaTagVATAmount])
	if err != nil {
		return nil, business.NewValidationError("qr_code", "malformed VAT amount")
	}

	return &business.ZatcaQRFields{
		SellerName:   fields[constants.ZatcaTagSellerName],
		VATNumber:    fields[constants.ZatcaTagVATNumber],
		Timestamp:    timestamp,
		TotalWithVAT: total,
		VATAmount:    vat,
	}, nil
}

// RenderPNG renders an existing payload as a QR code PNG for document
// templates.
func (s *ZatcaService) RenderPNG(payload string, size int) ([]byte, error) {
	qr, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR PNG: %w", err)
	}

	s.logger.Debug("Rendered ZATCA QR PNG", zap.Int("size", size), zap.Int("bytes", len(png)))
	return png, nil
}
