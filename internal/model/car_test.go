package model

import "testing"

func TestValidStatusAndCanRent(t *testing.T) {
	if !ValidStatus(StatusAvailable) || !ValidStatus(StatusUnavailable) {
		t.Fatalf("expected both statuses valid")
	}
	if ValidStatus("Rented") || ValidStatus("") {
		t.Fatalf("expected unknown statuses rejected")
	}
	if !CanRent(StatusAvailable) {
		t.Fatalf("expected available car rentable")
	}
	if CanRent(StatusUnavailable) {
		t.Fatalf("expected unavailable car not rentable")
	}
}

func TestValidYear(t *testing.T) {
	for _, y := range []int{MinYear, 2020, MaxYear} {
		if !ValidYear(y) {
			t.Fatalf("expected year %d valid", y)
		}
	}
	for _, y := range []int{0, MinYear - 1, MaxYear + 1} {
		if ValidYear(y) {
			t.Fatalf("expected year %d invalid", y)
		}
	}
}

func TestValidRole(t *testing.T) {
	if !ValidRole(RoleAdmin) || !ValidRole(RoleCustomer) {
		t.Fatalf("expected both roles valid")
	}
	if ValidRole("admin") || ValidRole("OWNER") || ValidRole("") {
		t.Fatalf("expected unnormalized or unknown roles rejected")
	}
}

func TestValidDuration(t *testing.T) {
	if ValidDuration(0) {
		t.Fatalf("expected duration 0 rejected")
	}
	if !ValidDuration(MinDurationDays) || !ValidDuration(MaxDurationDays) {
		t.Fatalf("expected duration bounds accepted")
	}
	if ValidDuration(MaxDurationDays + 1) {
		t.Fatalf("expected duration 366 rejected")
	}
}
