package requests

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestToRequestResponses_SnakeCaseKeys(t *testing.T) {
	b, err := json.Marshal(ToRequestResponses([]Request{{
		ID:                "r-1",
		AdoptionListingID: "l-1",
		Status:            StatusPending,
		SubmittedBy:       "user-1",
		SubmittedAt:       time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(b)
	for _, want := range []string{`"adoption_listing_id":"l-1"`, `"submitted_by":"user-1"`, `"status":"pending"`} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %s in %s", want, got)
		}
	}
}
