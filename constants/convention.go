package constants

// Convention identifies a recognized canonical filename layout.
type Convention string

const (
	// ConventionA is the date-led, space-separated layout:
	// "DD.MM.YY TIPO DNI NOMBRE-EMPRESA.pdf"
	ConventionA Convention = "hudbay"
	// ConventionB is the identity-led, hyphen-separated layout with the
	// fixed center-code token:
	// "DNI-NOMBRE-EMPRESA-TIPO-CMESPINAR-DD.MM.YY.pdf"
	ConventionB Convention = "standard"
	// ConventionUnknown marks filenames matching neither layout.
	ConventionUnknown Convention = ""
)

// CenterCode is the fixed token always present in ConventionB filenames.
const CenterCode = "CMESPINAR"
