package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Message is one rendered outbound email. WorkerID is zero for the operator
// summary.
type Message struct {
	WorkerID int64
	To       string
	Subject  string
	Body     string
}

// Digest is the outcome of grouping today's matches: one message per emailable
// worker plus one free-text line per notified certificate for the operator
// summary.
type Digest struct {
	Messages    []Message
	DigestLines []string
}

// FormatDateIT renders a calendar date the way the outbound messages expect
// it, DD/MM/YYYY.
func FormatDateIT(t time.Time) string {
	return t.Format("02/01/2006")
}

// BuildDigest groups matches by worker id and renders one message per worker.
// A worker with a single matching certificate gets the single-certificate
// fields populated and certList blank; a worker with two or more gets one
// message whose certList holds one line per certificate and whose
// single-certificate fields stay blank. Workers without an email are dropped
// silently: no message, no digest line. Grouping preserves first-seen order.
func BuildDigest(matches []Match, tpl Template) Digest {
	order := make([]int64, 0, len(matches))
	grouped := make(map[int64][]Match, len(matches))
	for _, m := range matches {
		if _, ok := grouped[m.Recipient.WorkerID]; !ok {
			order = append(order, m.Recipient.WorkerID)
		}
		grouped[m.Recipient.WorkerID] = append(grouped[m.Recipient.WorkerID], m)
	}

	var out Digest
	for _, id := range order {
		ms := grouped[id]
		r := ms[0].Recipient
		if r.Email == "" {
			continue
		}

		data := TemplateData{FirstName: r.FirstName, LastName: r.LastName}
		if len(ms) == 1 {
			data.CertificateName = ms[0].CertificateName
			data.ExpiryDate = FormatDateIT(ms[0].ExpiryDate)
			data.DaysUntilExpiry = strconv.Itoa(ms[0].DaysUntilExpiry)
		} else {
			lines := make([]string, 0, len(ms))
			for _, m := range ms {
				lines = append(lines, fmt.Sprintf("- %s (scade il %s)", m.CertificateName, FormatDateIT(m.ExpiryDate)))
			}
			data.CertList = strings.Join(lines, "\n")
		}

		subject, body := tpl.Render(data)
		out.Messages = append(out.Messages, Message{
			WorkerID: id,
			To:       r.Email,
			Subject:  subject,
			Body:     body,
		})

		for _, m := range ms {
			out.DigestLines = append(out.DigestLines, fmt.Sprintf(
				"L'utente %s %s è stato avvisato che %s scade il %s",
				r.FirstName, r.LastName, m.CertificateName, FormatDateIT(m.ExpiryDate)))
		}
	}

	return out
}

// OperatorSummary renders the single operator message from the accumulated
// digest lines. It reports false when no recipient is configured or nothing
// was sent.
func OperatorSummary(lines []string, tpl Template, operatorEmail string) (Message, bool) {
	if operatorEmail == "" || len(lines) == 0 {
		return Message{}, false
	}

	subject, body := tpl.Render(TemplateData{DigestList: strings.Join(lines, "\n")})
	return Message{To: operatorEmail, Subject: subject, Body: body}, true
}
