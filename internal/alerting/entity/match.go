package entity

import (
	"slices"
	"time"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/expiry"
)

// Recipient is the worker-side view the notification run needs: identity for
// grouping plus the contact address. A recipient without an email is loaded
// anyway and silently skipped at digest time.
type Recipient struct {
	WorkerID  int64
	FirstName string
	LastName  string
	Email     string
}

// Candidate is one worker with the certificates considered for today's run.
type Candidate struct {
	Recipient    Recipient
	Certificates []CandidateCertificate
}

type CandidateCertificate struct {
	Name       string
	ExpiryDate time.Time
}

// Match is a certificate selected for notification together with its owner.
type Match struct {
	Recipient       Recipient
	CertificateName string
	ExpiryDate      time.Time
	DaysUntilExpiry int
}

// MatchesThreshold decides whether a certificate is part of today's run.
// Matching is exact against the configured thresholds, never cumulative: with
// thresholds {30,14,7,1} a certificate due in 10 days does not match.
// Past-due certificates never match. An empty threshold set collapses the
// candidate window to zero days, so only certificates due today match.
func MatchesThreshold(expiryDate time.Time, thresholds []int, now time.Time) (bool, int) {
	d := expiry.DaysUntil(expiryDate, now)

	maxDays := 0
	if len(thresholds) > 0 {
		maxDays = slices.Max(thresholds)
	}
	if d < 0 || d > maxDays {
		return false, d
	}
	if len(thresholds) == 0 {
		return true, d
	}

	return slices.Contains(thresholds, d), d
}

// MatchCandidates applies MatchesThreshold to every certificate of every
// candidate, preserving input order.
func MatchCandidates(candidates []Candidate, thresholds []int, now time.Time) []Match {
	var matches []Match
	for _, c := range candidates {
		for _, cert := range c.Certificates {
			ok, d := MatchesThreshold(cert.ExpiryDate, thresholds, now)
			if !ok {
				continue
			}
			matches = append(matches, Match{
				Recipient:       c.Recipient,
				CertificateName: cert.Name,
				ExpiryDate:      cert.ExpiryDate,
				DaysUntilExpiry: d,
			})
		}
	}
	return matches
}
