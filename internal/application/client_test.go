package application

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahayak-ai/sahayak/internal/domain"
)

func TestMockClient_SubmitAssignsSequentialReferences(t *testing.T) {
	c := NewMockClient()
	ctx := context.Background()

	first, err := c.Submit(ctx, Submission{SchemeID: "pm_kisan", SchemeName: "PM-KISAN"})
	require.NoError(t, err)
	second, err := c.Submit(ctx, Submission{SchemeID: "mgnrega", SchemeName: "MGNREGA"})
	require.NoError(t, err)

	assert.Equal(t, "APP-1001", first.ReferenceNumber)
	assert.Equal(t, "APP-1002", second.ReferenceNumber)
	assert.Equal(t, StatusSubmitted, first.Status)
	assert.NotEmpty(t, first.NextSteps)
}

func TestMockClient_StatusProgressesWithTime(t *testing.T) {
	c := NewMockClient()
	base := time.Now()
	c.now = func() time.Time { return base }

	receipt, err := c.Submit(context.Background(), Submission{SchemeID: "pm_kisan"})
	require.NoError(t, err)

	tests := []struct {
		elapsed time.Duration
		want    Status
	}{
		{0, StatusSubmitted},
		{time.Hour, StatusUnderReview},
		{2 * time.Hour, StatusDocumentVerification},
		{3 * time.Hour, StatusApproved},
		{48 * time.Hour, StatusApproved}, // terminal
	}

	for _, tt := range tests {
		c.now = func() time.Time { return base.Add(tt.elapsed) }
		report, err := c.Status(context.Background(), receipt.ReferenceNumber)
		require.NoError(t, err)
		assert.Equal(t, tt.want, report.Status, "after %s", tt.elapsed)
	}
}

func TestMockClient_StatusIncludesHistory(t *testing.T) {
	c := NewMockClient()
	base := time.Now()
	c.now = func() time.Time { return base }

	receipt, err := c.Submit(context.Background(), Submission{SchemeID: "pm_kisan"})
	require.NoError(t, err)

	c.now = func() time.Time { return base.Add(2 * time.Hour) }
	report, err := c.Status(context.Background(), receipt.ReferenceNumber)
	require.NoError(t, err)

	require.Len(t, report.Updates, 3)
	assert.Equal(t, StatusSubmitted, report.Updates[0].Status)
	assert.Equal(t, StatusDocumentVerification, report.Updates[2].Status)
}

func TestMockClient_UnknownReference(t *testing.T) {
	c := NewMockClient()
	_, err := c.Status(context.Background(), "APP-9999")
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestRequiredDocuments(t *testing.T) {
	assert.Contains(t, RequiredDocuments("pm_kisan"), "Land ownership records")
	assert.Contains(t, RequiredDocuments("mgnrega"), "Ration card")

	// Unknown schemes get the standard identity set.
	fallback := RequiredDocuments("no_such_scheme")
	assert.Contains(t, fallback, "Aadhaar card")
}

func TestHTTPClient_Submit(t *testing.T) {
	var gotPath string
	var gotSub Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotSub))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Receipt{
			ReferenceNumber: "GOV-42",
			Status:          StatusSubmitted,
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	age := 35
	receipt, err := c.Submit(context.Background(), Submission{
		SchemeID: "pm_kisan",
		Profile:  domain.UserProfile{Age: &age},
	})
	require.NoError(t, err)

	assert.Equal(t, "/schemes/apply", gotPath)
	assert.Equal(t, "pm_kisan", gotSub.SchemeID)
	assert.Equal(t, "GOV-42", receipt.ReferenceNumber)
}

func TestHTTPClient_StatusNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.Status(context.Background(), "GOV-404")
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestHTTPClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.Submit(context.Background(), Submission{SchemeID: "pm_kisan"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
