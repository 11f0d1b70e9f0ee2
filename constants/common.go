package constants

// Common string constants used throughout the codebase
const (
	// Log levels
	ErrorLevel = "error"

	// Environments
	ProdEnvironment = "prod"
	TestEnvironment = "test"

	// Default currency for all documents
	SARCurrency = "SAR"

	// Document number prefixes
	InvoiceNumberPrefix    = "INV"
	QuotationNumberPrefix  = "QUO"
	CreditNoteNumberPrefix = "CRN"

	// ZATCA QR TLV tags, fixed order 1..5
	ZatcaTagSellerName   = byte(1)
	ZatcaTagVATNumber    = byte(2)
	ZatcaTagTimestamp    = byte(3)
	ZatcaTagTotalWithVAT = byte(4)
	ZatcaTagVATAmount    = byte(5)
)
