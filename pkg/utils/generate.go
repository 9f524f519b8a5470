package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ==================== SESSION TOKEN ====================

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== BOOKING REFERENCE ====================

const bookingRefPrefix = "TRBK"

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateBookingReference membuat booking reference unik (best-effort).
// Format: TRBK + 8 digit terakhir dari unix nano + 4 karakter random base-36.
// Uniqueness is probabilistic; the bookings table does not enforce it.
func GenerateBookingReference() string {
	nanos := time.Now().UnixNano()
	digits := nanos % 100000000

	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = base36Upper[rand.Intn(len(base36Upper))]
	}

	return fmt.Sprintf("%s%08d%s", bookingRefPrefix, digits, suffix)
}

// ==================== TICKET CREDENTIAL ====================

// GenerateTicketCode membuat e-ticket token untuk booking yang sudah dibayar.
// The token is scannable proof of reservation, not proof of payment on its own.
func GenerateTicketCode(secret string, bookingID uuid.UUID, reference string, issuedAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"booking_id": bookingID.String(),
		"reference":  reference,
		"iat":        issuedAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign ticket code: %w", err)
	}

	return signed, nil
}
