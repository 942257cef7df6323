package notifications

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatRupees форматирует сумму с разделителями по индийской системе: 125000 -> ₹1,25,000
func FormatRupees(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	if len(digits) <= 3 {
		return "₹" + sign + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return "₹" + sign + strings.Join(groups, ",") + "," + tail
}

func confirmationEmail(salon string, n BookingNotice, loc *time.Location) (subject, body string) {
	start := n.StartTime.In(loc)
	end := n.EndTime.In(loc)

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", n.CustomerName)
	fmt.Fprintf(&b, "Your appointment at %s has been confirmed.\n\n", salon)
	fmt.Fprintf(&b, "Booking:  #%d\n", n.BookingID)
	fmt.Fprintf(&b, "Date:     %s\n", start.Format("Mon, 02 Jan 2006"))
	fmt.Fprintf(&b, "Time:     %s - %s\n", start.Format("15:04"), end.Format("15:04"))
	fmt.Fprintf(&b, "Staff:    %s\n\n", n.StaffName)
	b.WriteString("Services:\n")
	for _, s := range n.Services {
		fmt.Fprintf(&b, "  - %s (%d min) %s\n", s.Name, s.DurationMinutes, FormatRupees(s.Price))
	}
	fmt.Fprintf(&b, "\nTotal amount: %s (pay at the salon)\n\n", FormatRupees(n.TotalAmount))
	b.WriteString("We look forward to serving you!\n")

	return fmt.Sprintf("Booking Confirmation - %s", salon), b.String()
}

func confirmationSMS(salon string, n BookingNotice, loc *time.Location) string {
	start := n.StartTime.In(loc)
	return fmt.Sprintf("%s: Booking confirmed for %s at %s. Services: %s. Amount: %s. Staff: %s",
		salon,
		start.Format("02 Jan 2006"),
		start.Format("15:04"),
		strings.Join(n.ServiceNames(), ", "),
		FormatRupees(n.TotalAmount),
		n.StaffName,
	)
}
