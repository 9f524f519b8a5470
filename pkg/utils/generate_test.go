package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestGenerateBookingReference(t *testing.T) {
	pattern := regexp.MustCompile(`^TRBK\d{8}[A-Z0-9]{4}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := GenerateBookingReference()
		if !pattern.MatchString(ref) {
			t.Fatalf("GenerateBookingReference() = %q, want match for %s", ref, pattern)
		}
		seen[ref] = true
	}

	// Best-effort uniqueness: kombinasi nano timestamp + random suffix.
	if len(seen) < 95 {
		t.Errorf("got %d distinct references out of 100", len(seen))
	}
}

func TestGenerateTicketCode(t *testing.T) {
	secret := "test-secret"
	bookingID := uuid.New()
	issuedAt := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	code, err := GenerateTicketCode(secret, bookingID, "TRBK12345678ABCD", issuedAt)
	if err != nil {
		t.Fatalf("GenerateTicketCode() error = %v", err)
	}
	if code == "" {
		t.Fatal("GenerateTicketCode() returned empty code")
	}

	token, err := jwt.Parse(code, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse ticket code: %v", err)
	}
	if !token.Valid {
		t.Fatal("ticket code signature invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("unexpected claims type")
	}
	if claims["booking_id"] != bookingID.String() {
		t.Errorf("booking_id claim = %v, want %s", claims["booking_id"], bookingID)
	}
	if claims["reference"] != "TRBK12345678ABCD" {
		t.Errorf("reference claim = %v, want TRBK12345678ABCD", claims["reference"])
	}

	// Secret lain tidak boleh bisa memverifikasi ticket.
	_, err = jwt.Parse(code, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	if err == nil {
		t.Error("ticket code verified with wrong secret")
	}
}
