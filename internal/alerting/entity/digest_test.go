package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildDigest(t *testing.T) {
	tpl, ok := DefaultTemplate(TemplateUserExpiry)
	assert.True(t, ok)

	mario := Recipient{WorkerID: 1, FirstName: "Mario", LastName: "Rossi", Email: "mario@example.com"}
	luca := Recipient{WorkerID: 2, FirstName: "Luca", LastName: "Bianchi", Email: "luca@example.com"}
	noEmail := Recipient{WorkerID: 3, FirstName: "Anna", LastName: "Verdi"}

	t.Run("two certificates collapse into one message", func(t *testing.T) {
		matches := []Match{
			{Recipient: mario, CertificateName: "cert A", ExpiryDate: date(2025, time.February, 1), DaysUntilExpiry: 7},
			{Recipient: mario, CertificateName: "cert B", ExpiryDate: date(2025, time.February, 3), DaysUntilExpiry: 9},
		}

		got := BuildDigest(matches, tpl)

		assert.Len(t, got.Messages, 1)
		assert.Equal(t, "mario@example.com", got.Messages[0].To)
		assert.Contains(t, got.Messages[0].Body, "- cert A (scade il 01/02/2025)")
		assert.Contains(t, got.Messages[0].Body, "- cert B (scade il 03/02/2025)")
		assert.Len(t, got.DigestLines, 2)
		assert.Equal(t, "L'utente Mario Rossi è stato avvisato che cert A scade il 01/02/2025", got.DigestLines[0])
	})

	t.Run("single certificate fills the single fields", func(t *testing.T) {
		matches := []Match{
			{Recipient: luca, CertificateName: "Antincendio", ExpiryDate: date(2025, time.March, 15), DaysUntilExpiry: 14},
		}

		got := BuildDigest(matches, tpl)

		assert.Len(t, got.Messages, 1)
		assert.Contains(t, got.Messages[0].Body, "Antincendio")
		assert.Contains(t, got.Messages[0].Body, "15/03/2025")
		assert.Contains(t, got.Messages[0].Body, "tra 14 giorni")
		assert.NotContains(t, got.Messages[0].Body, "- ")
	})

	t.Run("recipient without email is dropped silently", func(t *testing.T) {
		matches := []Match{
			{Recipient: noEmail, CertificateName: "cert A", ExpiryDate: date(2025, time.February, 1), DaysUntilExpiry: 7},
			{Recipient: mario, CertificateName: "cert B", ExpiryDate: date(2025, time.February, 3), DaysUntilExpiry: 9},
		}

		got := BuildDigest(matches, tpl)

		assert.Len(t, got.Messages, 1)
		assert.Equal(t, "mario@example.com", got.Messages[0].To)
		assert.Len(t, got.DigestLines, 1)
	})

	t.Run("no matches yields an empty digest", func(t *testing.T) {
		got := BuildDigest(nil, tpl)

		assert.Empty(t, got.Messages)
		assert.Empty(t, got.DigestLines)
	})
}

func TestOperatorSummary(t *testing.T) {
	tpl, ok := DefaultTemplate(TemplateOperatorDigest)
	assert.True(t, ok)

	lines := []string{
		"L'utente Mario Rossi è stato avvisato che cert A scade il 01/02/2025",
		"L'utente Luca Bianchi è stato avvisato che cert B scade il 03/02/2025",
	}

	t.Run("joins lines into one message", func(t *testing.T) {
		got, ok := OperatorSummary(lines, tpl, "operatore@example.com")

		assert.True(t, ok)
		assert.Equal(t, "operatore@example.com", got.To)
		assert.Contains(t, got.Body, lines[0]+"\n"+lines[1])
	})

	t.Run("no recipient configured", func(t *testing.T) {
		_, ok := OperatorSummary(lines, tpl, "")

		assert.False(t, ok)
	})

	t.Run("nothing sent", func(t *testing.T) {
		_, ok := OperatorSummary(nil, tpl, "operatore@example.com")

		assert.False(t, ok)
	})
}

func TestTemplateRender(t *testing.T) {
	tpl := Template{
		Key:     TemplateUserExpiry,
		Subject: "Scadenza {{certificateName}}",
		Body:    "Gentile {{firstName}} {{lastName}}, scade il {{expiryDate}} ({{unknown}})",
	}

	subject, body := tpl.Render(TemplateData{
		FirstName:       "Mario",
		LastName:        "Rossi",
		CertificateName: "Antincendio",
		ExpiryDate:      "01/02/2025",
	})

	assert.Equal(t, "Scadenza Antincendio", subject)
	assert.Equal(t, "Gentile Mario Rossi, scade il 01/02/2025 ({{unknown}})", body)
}

func TestParseTemplateKey(t *testing.T) {
	key, ok := ParseTemplateKey("user_expiry")
	assert.True(t, ok)
	assert.Equal(t, TemplateUserExpiry, key)

	key, ok = ParseTemplateKey("operator_digest")
	assert.True(t, ok)
	assert.Equal(t, TemplateOperatorDigest, key)

	_, ok = ParseTemplateKey("unknown")
	assert.False(t, ok)
}
