// Package application submits scheme applications on the user's behalf
// and tracks their status, against either a real government API or an
// in-memory mock registry.
package application

import (
	"context"
	"errors"
	"time"

	"github.com/sahayak-ai/sahayak/internal/domain"
)

// Status of a submitted application.
type Status string

const (
	StatusSubmitted            Status = "submitted"
	StatusUnderReview          Status = "under_review"
	StatusDocumentVerification Status = "document_verification"
	StatusApproved             Status = "approved"
	StatusRejected             Status = "rejected"
)

var ErrApplicationNotFound = errors.New("application not found")

// Submission is the payload sent when applying for a scheme.
type Submission struct {
	SchemeID   string             `json:"scheme_id"`
	SchemeName string             `json:"scheme_name"`
	Profile    domain.UserProfile `json:"profile"`
	Documents  []string           `json:"documents,omitempty"`
}

// Receipt acknowledges a successful submission.
type Receipt struct {
	ReferenceNumber string    `json:"reference_number"`
	Status          Status    `json:"status"`
	SubmittedAt     time.Time `json:"submitted_at"`
	NextSteps       []string  `json:"next_steps,omitempty"`
}

// StatusUpdate is one entry in an application's history.
type StatusUpdate struct {
	Status  Status    `json:"status"`
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
}

// StatusReport describes where an application currently stands.
type StatusReport struct {
	ReferenceNumber string         `json:"reference_number"`
	Status          Status         `json:"status"`
	Updates         []StatusUpdate `json:"updates,omitempty"`
	NextSteps       []string       `json:"next_steps,omitempty"`
}

// Client is the application submission port. Two implementations exist:
// MockClient for offline use and HTTPClient for a real endpoint.
type Client interface {
	Submit(ctx context.Context, sub Submission) (*Receipt, error)
	Status(ctx context.Context, referenceNumber string) (*StatusReport, error)
}

// RequiredDocuments lists the documents a scheme asks for at submission
// time. Unknown schemes fall back to the standard identity set.
func RequiredDocuments(schemeID string) []string {
	docs := map[string][]string{
		"pm_kisan": {
			"Aadhaar card",
			"Bank account details",
			"Land ownership records",
			"Panchayat certificate",
		},
		"mgnrega": {
			"Aadhaar card",
			"Ration card",
			"Voter ID",
			"Panchayat certificate",
		},
		"pmay_g": {
			"Aadhaar card",
			"PAN card",
			"Income certificate",
			"Property documents",
			"Bank account details",
		},
	}
	if d, ok := docs[schemeID]; ok {
		return d
	}
	return []string{"Aadhaar card", "Income certificate", "Bank account details"}
}

func nextSteps(status Status) []string {
	steps := map[Status][]string{
		StatusSubmitted: {
			"Your application has been accepted.",
			"It will be reviewed within the next 2-3 days.",
		},
		StatusUnderReview: {
			"Your application is under review.",
			"No action is needed from you right now.",
		},
		StatusDocumentVerification: {
			"Your documents are being verified.",
			"You may be asked for additional information.",
		},
		StatusApproved: {
			"Congratulations! Your application has been approved.",
			"Benefits will be disbursed within 7-10 days.",
		},
		StatusRejected: {
			"Unfortunately your application was rejected.",
			"Contact your local office for details.",
		},
	}
	return steps[status]
}
