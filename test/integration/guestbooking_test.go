package integrationtests

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"skybook/test/integration/testutil"
)

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02T00:00:00Z")
}

func uniqueSuffix() string {
	return fmt.Sprintf("%d", time.Now().UnixNano()%100000)
}

func createFlight(t *testing.T, client *testutil.Client, number string) string {
	t.Helper()

	resp := client.POST(t, "/api/v1/flights", map[string]any{
		"number":      number,
		"departure":   "NCL",
		"destination": "LHR",
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("failed to decode flight: %v", err)
	}
	return created.Data.ID
}

func TestGuestBookingEndToEnd(t *testing.T) {
	client := testutil.NewClient(testutil.ServerURL(t))
	client.WaitForHealthy(t, testutil.DefaultHealthCheckTimeout)

	suffix := uniqueSuffix()
	flightID := createFlight(t, client, "GB"+suffix[:3])

	email := fmt.Sprintf("guest%s@example.com", suffix)
	resp := client.POST(t, "/api/v1/guest-bookings", map[string]any{
		"customer": map[string]any{
			"name":  "Guest Traveller",
			"email": email,
			"phone": "07871545186",
		},
		"booking": map[string]any{
			"flight_id":    flightID,
			"booking_date": futureDate(14),
		},
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var result struct {
		Data struct {
			Customer struct {
				ID string `json:"id"`
			} `json:"customer"`
			Booking struct {
				ID         string `json:"id"`
				CustomerID string `json:"customer_id"`
			} `json:"booking"`
		} `json:"data"`
	}
	if err := resp.DecodeJSON(&result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if result.Data.Booking.CustomerID != result.Data.Customer.ID {
		t.Errorf("booking not linked to created customer: %q vs %q",
			result.Data.Booking.CustomerID, result.Data.Customer.ID)
	}
}

func TestGuestBookingRollbackLeavesNoCustomer(t *testing.T) {
	client := testutil.NewClient(testutil.ServerURL(t))
	client.WaitForHealthy(t, testutil.DefaultHealthCheckTimeout)

	suffix := uniqueSuffix()
	email := fmt.Sprintf("rollback%s@example.com", suffix)

	// Unknown flight makes the booking step fail after the customer insert.
	resp := client.POST(t, "/api/v1/guest-bookings", map[string]any{
		"customer": map[string]any{
			"name":  "Rolled Back",
			"email": email,
			"phone": "07871545186",
		},
		"booking": map[string]any{
			"flight_id":    "64f000000000000000000000",
			"booking_date": futureDate(14),
		},
	})
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)

	// The same email must remain available: the customer write rolled back.
	resp = client.POST(t, "/api/v1/customers", map[string]any{
		"name":  "Rolled Back",
		"email": email,
		"phone": "07871545186",
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
}

func TestGuestBookingDuplicateEmailConflict(t *testing.T) {
	client := testutil.NewClient(testutil.ServerURL(t))
	client.WaitForHealthy(t, testutil.DefaultHealthCheckTimeout)

	suffix := uniqueSuffix()
	email := fmt.Sprintf("taken%s@example.com", suffix)

	resp := client.POST(t, "/api/v1/customers", map[string]any{
		"name":  "Existing Customer",
		"email": email,
		"phone": "07871545186",
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	flightID := createFlight(t, client, "GC"+suffix[:3])

	resp = client.POST(t, "/api/v1/guest-bookings", map[string]any{
		"customer": map[string]any{
			"name":  "Guest Traveller",
			"email": email,
			"phone": "07871545186",
		},
		"booking": map[string]any{
			"flight_id":    flightID,
			"booking_date": futureDate(14),
		},
	})
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
}
