package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRupees(t *testing.T) {
	tests := map[int64]string{
		0:        "₹0",
		350:      "₹350",
		1550:     "₹1,550",
		25000:    "₹25,000",
		125000:   "₹1,25,000",
		10000000: "₹1,00,00,000",
		-1200:    "₹-1,200",
	}

	for amount, want := range tests {
		assert.Equal(t, want, FormatRupees(amount), "amount=%d", amount)
	}
}

func TestConfirmationSMS_UsesSalonLocation(t *testing.T) {
	notice := testNotice()
	notice.StartTime = notice.StartTime.UTC()

	text := confirmationSMS("Looks", notice, time.FixedZone("IST", 5*3600+1800))

	assert.Equal(t,
		"Looks: Booking confirmed for 12 Jun 2025 at 14:00. Services: Hair Cut (Female), Silver Facial. Amount: ₹1,550. Staff: Anita",
		text,
	)
}
