package entity

import (
	"strings"
	"testing"
	"time"
)

func TestCanTransition_LegalPaths(t *testing.T) {
	legal := []struct{ from, to OrderStatus }{
		{OrderStatusPending, OrderStatusConfirmed},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusConfirmed, OrderStatusProcessing},
		{OrderStatusConfirmed, OrderStatusCancelled},
		{OrderStatusProcessing, OrderStatusShipped},
		{OrderStatusProcessing, OrderStatusCancelled},
		{OrderStatusShipped, OrderStatusDelivered},
		{OrderStatusShipped, OrderStatusReturned},
		{OrderStatusDelivered, OrderStatusReturned},
	}
	for _, tc := range legal {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = false, want true", tc.from, tc.to)
		}
	}
}

func TestCanTransition_IllegalPaths(t *testing.T) {
	illegal := []struct{ from, to OrderStatus }{
		{OrderStatusPending, OrderStatusShipped},
		{OrderStatusPending, OrderStatusDelivered},
		{OrderStatusConfirmed, OrderStatusDelivered},
		{OrderStatusShipped, OrderStatusCancelled},
		{OrderStatusDelivered, OrderStatusProcessing},
		{OrderStatusCancelled, OrderStatusPending},
		{OrderStatusCancelled, OrderStatusConfirmed},
		{OrderStatusReturned, OrderStatusDelivered},
	}
	for _, tc := range illegal {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = true, want false", tc.from, tc.to)
		}
	}
}

func TestCanTransition_TerminalStatesHaveNoExits(t *testing.T) {
	all := []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned,
	}
	for _, to := range all {
		if CanTransition(OrderStatusCancelled, to) {
			t.Errorf("cancelled should be terminal, allowed → %s", to)
		}
		if CanTransition(OrderStatusReturned, to) {
			t.Errorf("returned should be terminal, allowed → %s", to)
		}
	}
}

func TestAppendTimeline(t *testing.T) {
	o := &Order{Status: OrderStatusPending}
	o.AppendTimeline(OrderStatusPending, "order placed", nil)
	o.AppendTimeline(OrderStatusConfirmed, "payment received", nil)

	if len(o.Timeline) != 2 {
		t.Fatalf("timeline length = %d, want 2", len(o.Timeline))
	}
	if o.Timeline[1].Status != OrderStatusConfirmed {
		t.Errorf("timeline[1].Status = %s, want confirmed", o.Timeline[1].Status)
	}
	if o.Timeline[1].Timestamp.IsZero() {
		t.Error("timeline entry timestamp not set")
	}
}

func TestIsCancellableByCustomer(t *testing.T) {
	cases := map[OrderStatus]bool{
		OrderStatusPending:    true,
		OrderStatusConfirmed:  true,
		OrderStatusProcessing: false,
		OrderStatusShipped:    false,
		OrderStatusDelivered:  false,
		OrderStatusCancelled:  false,
	}
	for status, want := range cases {
		o := &Order{Status: status}
		if got := o.IsCancellableByCustomer(); got != want {
			t.Errorf("IsCancellableByCustomer(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	num := NewOrderNumber(now)

	if !strings.HasPrefix(num, "ORD-20240315-") {
		t.Errorf("order number %q missing date prefix", num)
	}
	if len(num) != len("ORD-20240315-00000") {
		t.Errorf("order number %q has unexpected length", num)
	}
}
