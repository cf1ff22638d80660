package kafka

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewDelayMessage(t *testing.T) {
	msg := newDelayMessage(7, "Dongle")

	if msg.Type != NotificationDelay {
		t.Fatalf("expected DELAY, got %s", msg.Type)
	}
	if msg.ProductName != "Dongle" {
		t.Fatalf("expected product name Dongle, got %s", msg.ProductName)
	}
	if msg.LeadTimeDays == nil || *msg.LeadTimeDays != 7 {
		t.Fatalf("expected lead time 7, got %+v", msg.LeadTimeDays)
	}
	if msg.ExpiryDate != nil {
		t.Fatalf("expected no expiry date, got %s", *msg.ExpiryDate)
	}
	if _, err := uuid.Parse(msg.EventID); err != nil {
		t.Fatalf("expected uuid event id, got %q: %v", msg.EventID, err)
	}
	if msg.OccurredAt == 0 {
		t.Fatalf("expected occurred_at to be set")
	}
}

func TestNewOutOfStockMessage(t *testing.T) {
	msg := newOutOfStockMessage("Watermelon")

	if msg.Type != NotificationOutOfStock {
		t.Fatalf("expected OUT_OF_STOCK, got %s", msg.Type)
	}
	if msg.LeadTimeDays != nil || msg.ExpiryDate != nil {
		t.Fatalf("expected no optional fields, got %+v", msg)
	}

	value, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(value), "lead_time_days") || strings.Contains(string(value), "expiry_date") {
		t.Fatalf("optional fields must be omitted: %s", value)
	}
}

func TestNewExpirationMessage(t *testing.T) {
	t.Run("with expiry date", func(t *testing.T) {
		expiry := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
		msg := newExpirationMessage("Milk", &expiry)

		if msg.Type != NotificationExpiration {
			t.Fatalf("expected EXPIRATION, got %s", msg.Type)
		}
		if msg.ExpiryDate == nil || *msg.ExpiryDate != "2026-03-02" {
			t.Fatalf("expected expiry 2026-03-02, got %+v", msg.ExpiryDate)
		}
	})

	t.Run("without expiry date", func(t *testing.T) {
		msg := newExpirationMessage("Mystery", nil)

		if msg.ExpiryDate != nil {
			t.Fatalf("expected no expiry date, got %s", *msg.ExpiryDate)
		}

		value, err := json.Marshal(msg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(string(value), "expiry_date") {
			t.Fatalf("expiry_date must be omitted: %s", value)
		}
	})
}

func TestEventIDsUnique(t *testing.T) {
	first := newOutOfStockMessage("Watermelon")
	second := newOutOfStockMessage("Watermelon")

	if first.EventID == second.EventID {
		t.Fatalf("expected unique event ids, got %s twice", first.EventID)
	}
}
