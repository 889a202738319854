package order

import "testing"

func TestCanTransitionTo(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusCreated, StatusPaymentProcessing},
		{StatusCreated, StatusPaymentSuccess},
		{StatusCreated, StatusPaymentFailed},
		{StatusPaymentProcessing, StatusPaymentSuccess},
		{StatusPaymentProcessing, StatusPaymentFailed},
		{StatusPaymentSuccess, StatusCompleted},
		{StatusCompleted, StatusCancelled},
		{StatusPaymentFailed, StatusCancelled},
	}
	for _, tc := range allowed {
		if !CanTransitionTo(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusPaymentFailed, StatusPaymentSuccess},
		{StatusCompleted, StatusCreated},
		{StatusCreated, StatusCompleted},
		{StatusCancelled, StatusPaymentSuccess},
	}
	for _, tc := range denied {
		if CanTransitionTo(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be denied", tc.from, tc.to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []Status{StatusPaymentSuccess, StatusPaymentFailed, StatusCompleted, StatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	for _, s := range []Status{StatusCreated, StatusPaymentProcessing} {
		if s.IsTerminal() {
			t.Errorf("expected %s to be non-terminal", s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if s, err := ParseStatus("PAYMENT_SUCCESS"); err != nil || s != StatusPaymentSuccess {
		t.Fatalf("ParseStatus(PAYMENT_SUCCESS) = %v, %v", s, err)
	}
	if _, err := ParseStatus("SHIPPED"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}
