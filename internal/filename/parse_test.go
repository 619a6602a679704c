package filename

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConventionB(t *testing.T) {
	got := Parse("45205399-INFANTE CHUQUIRUNA JULIO CESAR-KOMATSU MITSUI MAQUINARIAS PERU S.A.-EMPO-CMESPINAR-02.02.26.pdf")
	assert.Equal(t, Fields{
		IdentityNumber: "45205399",
		PersonName:     "INFANTE CHUQUIRUNA JULIO CESAR",
		Organization:   "KOMATSU MITSUI MAQUINARIAS PERU S.A.",
		ExamType:       "PREOCUPACIONAL",
		Date:           "02.02.26",
	}, got)
}

func TestParseConventionBSingleMiddleSegment(t *testing.T) {
	// Two or more words starting with a letter reads as a person name.
	got := Parse("45205399-INFANTE CHUQUIRUNA-EMPO-CMESPINAR-02.02.26.pdf")
	assert.Equal(t, "INFANTE CHUQUIRUNA", got.PersonName)
	assert.Empty(t, got.Organization)

	// A single token reads as an organization.
	got = Parse("45205399-KOMATSU-EMPO-CMESPINAR-02.02.26.pdf")
	assert.Empty(t, got.PersonName)
	assert.Equal(t, "KOMATSU", got.Organization)
}

func TestParseConventionA(t *testing.T) {
	got := Parse("31.01.26 EMPO 76248882 HUAMAN POCCO JESUS YOVANI-G4S PERU SAC.pdf")
	assert.Equal(t, Fields{
		IdentityNumber: "76248882",
		PersonName:     "HUAMAN POCCO JESUS YOVANI",
		Organization:   "G4S PERU SAC",
		ExamType:       "PREOCUPACIONAL",
		Date:           "31.01.26",
	}, got)
}

func TestParseConventionAFullExamWord(t *testing.T) {
	got := Parse("31.01.26 PERIODICO 76248882 HUAMAN POCCO.pdf")
	assert.Equal(t, "PERIODICO", got.ExamType)
	assert.Equal(t, "HUAMAN POCCO", got.PersonName)
	assert.Empty(t, got.Organization)
}

func TestParseConventionASkipsMissingTokens(t *testing.T) {
	// No exam type token: the walk continues at the identity number.
	got := Parse("31.01.26 76248882 HUAMAN POCCO JESUS.pdf")
	assert.Equal(t, "31.01.26", got.Date)
	assert.Equal(t, "76248882", got.IdentityNumber)
	assert.Equal(t, "HUAMAN POCCO JESUS", got.PersonName)
	assert.Empty(t, got.ExamType)
}

func TestParseGeneric(t *testing.T) {
	got := Parse("EXAMEN 45205399 INFANTE CHUQUIRUNA JULIO-KOMATSU MITSUI 02.02.26.pdf")
	assert.Equal(t, "45205399", got.IdentityNumber)
	assert.Equal(t, "02.02.26", got.Date)
	assert.Equal(t, "INFANTE CHUQUIRUNA JULIO", got.PersonName)
}

func TestParseGenericLowercaseName(t *testing.T) {
	got := Parse("45205399 infante chuquiruna julio-ACME SAC.pdf")
	assert.Equal(t, "45205399", got.IdentityNumber)
	assert.Equal(t, "infante chuquiruna julio", got.PersonName)
}

func TestParseGenericExamToken(t *testing.T) {
	got := Parse("informe RETIRO 45205399.pdf")
	assert.Equal(t, "RETIRO", got.ExamType)
	assert.Equal(t, "45205399", got.IdentityNumber)
}

func TestParseEmpty(t *testing.T) {
	assert.True(t, Parse("").Empty())
	assert.True(t, Parse(".pdf").Empty())
}

func TestFieldsEmpty(t *testing.T) {
	assert.True(t, Fields{}.Empty())
	assert.False(t, Fields{Date: "02.02.26"}.Empty())
}
