package entity

import "strings"

type TemplateKey string

const (
	TemplateUserExpiry     TemplateKey = "user_expiry"
	TemplateOperatorDigest TemplateKey = "operator_digest"
)

func (k TemplateKey) String() string {
	return string(k)
}

func ParseTemplateKey(s string) (TemplateKey, bool) {
	switch TemplateKey(s) {
	case TemplateUserExpiry:
		return TemplateUserExpiry, true
	case TemplateOperatorDigest:
		return TemplateOperatorDigest, true
	default:
		return "", false
	}
}

// Template holds the subject and body for one notification purpose. Bodies
// carry {{placeholder}} tokens substituted from a fixed whitelist at render
// time; there is no general template engine behind this.
type Template struct {
	Key     TemplateKey
	Subject string
	Body    string
}

// TemplateData carries the values for every known placeholder. Fields that do
// not apply to a rendering stay empty and their tokens render as blanks.
type TemplateData struct {
	FirstName       string
	LastName        string
	CertificateName string
	ExpiryDate      string
	DaysUntilExpiry string
	CertList        string
	DigestList      string
}

// Render substitutes the known placeholders into the subject and body.
// Unknown tokens are left untouched.
func (t Template) Render(data TemplateData) (subject, body string) {
	rep := strings.NewReplacer(
		"{{firstName}}", data.FirstName,
		"{{lastName}}", data.LastName,
		"{{certificateName}}", data.CertificateName,
		"{{expiryDate}}", data.ExpiryDate,
		"{{daysUntilExpiry}}", data.DaysUntilExpiry,
		"{{certList}}", data.CertList,
		"{{digestList}}", data.DigestList,
	)
	return rep.Replace(t.Subject), rep.Replace(t.Body)
}

// DefaultTemplate returns the built-in rendering for a key, used when no row
// has been saved for it. The single-certificate fields and the certList block
// share one body; whichever path is not taken renders blank.
func DefaultTemplate(key TemplateKey) (Template, bool) {
	switch key {
	case TemplateUserExpiry:
		return Template{
			Key:     TemplateUserExpiry,
			Subject: "Avviso di scadenza certificato",
			Body: "Gentile {{firstName}} {{lastName}},\n\n" +
				"la informiamo che il certificato {{certificateName}} scade il {{expiryDate}} " +
				"(tra {{daysUntilExpiry}} giorni).\n" +
				"{{certList}}\n\n" +
				"La preghiamo di provvedere al rinnovo.\n\nCassa Edile",
		}, true
	case TemplateOperatorDigest:
		return Template{
			Key:     TemplateOperatorDigest,
			Subject: "Riepilogo avvisi di scadenza",
			Body: "Riepilogo degli avvisi inviati:\n\n" +
				"{{digestList}}\n",
		}, true
	default:
		return Template{}, false
	}
}
