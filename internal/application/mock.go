package application

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// statusLadder is the progression a mock application walks through, one
// step per hour since submission.
var statusLadder = []Status{
	StatusSubmitted,
	StatusUnderReview,
	StatusDocumentVerification,
	StatusApproved,
}

type mockRecord struct {
	sub         Submission
	submittedAt time.Time
}

// MockClient keeps applications in memory and advances their status with
// the passage of time. Reference numbers are sequential APP-<n> strings.
type MockClient struct {
	mu      sync.Mutex
	records map[string]mockRecord
	counter int
	now     func() time.Time
}

func NewMockClient() *MockClient {
	return &MockClient{
		records: make(map[string]mockRecord),
		counter: 1000,
		now:     time.Now,
	}
}

func (c *MockClient) Submit(ctx context.Context, sub Submission) (*Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counter++
	ref := fmt.Sprintf("APP-%d", c.counter)
	submitted := c.now()
	c.records[ref] = mockRecord{sub: sub, submittedAt: submitted}

	return &Receipt{
		ReferenceNumber: ref,
		Status:          StatusSubmitted,
		SubmittedAt:     submitted,
		NextSteps:       nextSteps(StatusSubmitted),
	}, nil
}

func (c *MockClient) Status(ctx context.Context, referenceNumber string) (*StatusReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[referenceNumber]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrApplicationNotFound, referenceNumber)
	}

	// One rung per elapsed hour, capped at the top of the ladder.
	rung := int(c.now().Sub(rec.submittedAt) / time.Hour)
	if rung >= len(statusLadder) {
		rung = len(statusLadder) - 1
	}
	status := statusLadder[rung]

	updates := make([]StatusUpdate, 0, rung+1)
	for i := 0; i <= rung; i++ {
		updates = append(updates, StatusUpdate{
			Status:  statusLadder[i],
			Date:    rec.submittedAt.Add(time.Duration(i) * time.Hour),
			Message: fmt.Sprintf("application %s", statusLadder[i]),
		})
	}

	return &StatusReport{
		ReferenceNumber: referenceNumber,
		Status:          status,
		Updates:         updates,
		NextSteps:       nextSteps(status),
	}, nil
}

var _ Client = (*MockClient)(nil)
