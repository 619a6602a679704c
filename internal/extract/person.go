package extract

import (
	"regexp"
	"strings"
)

var (
	// Tier 1: labeled fields, value captured up to the next line break.
	rePersonLabeled = regexp.MustCompile(`(?i)(?:APELLIDOS?\s+Y\s+NOMBRES?|NOMBRES?\s+Y\s+APELLIDOS?|APELLIDOS\s+Y\s+NOMBRE|NOMBRE\s+COMPLETO)[.\s]*[:\-]?\s*([A-ZÁÉÍÓÚÑa-záéíóúñ\s]{5,80})`)

	// Tier 2: 3-5 consecutive all-uppercase tokens, typical of report headers.
	rePersonRun = regexp.MustCompile(`\b([A-ZÁÉÍÓÚÑ]{2,25}(?:\s+[A-ZÁÉÍÓÚÑ]{2,25}){2,4})\b`)

	reDigits = regexp.MustCompile(`^\d+$`)
)

// organizationMarkers disqualify an uppercase run from being a person name.
var organizationMarkers = []string{
	"CONSORCIO", "EMPRESA", "CONTRATISTA", "SAC", "S.A", "S.A.C", "S.R.L",
	"CENTRO", "MEDICO",
}

// nameNoiseWords are labels and OCR noise that end a person name.
var nameNoiseWords = map[string]struct{}{
	"AREA": {}, "DNI": {}, "CARGO": {}, "PUESTO": {}, "FECHA": {}, "EMPRESA": {},
	"RUC": {}, "TELEFONO": {}, "CELULAR": {}, "CORREO": {}, "EMAIL": {},
	"DIRECCION": {}, "DISTRITO": {}, "PROVINCIA": {}, "DEPARTAMENTO": {},
	"PERU": {}, "LIMA": {}, "CARNET": {}, "EXTRANJERIA": {}, "DOCUMENTO": {},
	"IDENTIDAD": {}, "TRABAJADOR": {}, "PACIENTE": {}, "EVALUADO": {},
	"EXAMINADO": {}, "CONTRATA": {}, "CONTRATISTA": {}, "SAC": {}, "SRL": {},
	"EIRL": {}, "OCUPACIONAL": {}, "MEDICO": {}, "EXAMEN": {}, "RESULTADO": {},
	"INGRESO": {}, "EGRESO": {}, "PERIODICO": {}, "PREOCUPACIONAL": {},
	"POSTOCUPACIONAL": {}, "RETIRO": {}, "TIPO": {}, "EVALUACION": {},
	"FORMATOS": {}, "PARA": {}, "CONSENTIMIENTO": {}, "INFORMADO": {},
	"NUMERO": {}, "PASAPORTE": {}, "SERVICIOS": {}, "LOGISTICA": {},
	"INFORME": {}, "LLENADO": {},
}

// cleanPersonName truncates at the first noise word or numeric token,
// drops single-character tokens, and caps the result at 5 tokens.
func cleanPersonName(raw string) string {
	words := strings.Fields(CleanSpaces(raw))
	clean := make([]string, 0, 5)
	for _, w := range words {
		upper := strings.Trim(strings.ToUpper(w), ".,;:()")
		if _, noise := nameNoiseWords[upper]; noise {
			break
		}
		if len([]rune(upper)) < 2 {
			continue
		}
		if reDigits.MatchString(upper) {
			break
		}
		clean = append(clean, upper)
		if len(clean) >= 5 {
			break
		}
	}
	return strings.Join(clean, " ")
}

// PersonNameCandidates returns possible person names found in text.
func PersonNameCandidates(text string) []string {
	if text == "" {
		return nil
	}
	var candidates []string

	for _, m := range rePersonLabeled.FindAllStringSubmatch(text, -1) {
		raw := strings.TrimSpace(strings.SplitN(m[1], "\n", 2)[0])
		cleaned := cleanPersonName(raw)
		if len(strings.Fields(cleaned)) >= 2 {
			candidates = append(candidates, cleaned)
		}
	}

	for _, m := range rePersonRun.FindAllStringSubmatch(text, -1) {
		raw := CleanSpaces(m[1])
		if containsAnyMarker(strings.ToUpper(raw), organizationMarkers) {
			continue
		}
		cleaned := cleanPersonName(raw)
		if len(strings.Fields(cleaned)) >= 2 {
			candidates = append(candidates, cleaned)
		}
	}

	return DedupeKeepOrder(candidates)
}

func containsAnyMarker(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
