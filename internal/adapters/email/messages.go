package email

import (
	"fmt"
	"html"
	"time"
)

// ComposeWelcome builds the account-created email sent after signup.
func ComposeWelcome(to, firstName string) SendRequest {
	name := html.EscapeString(firstName)
	if name == "" {
		name = "there"
	}
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Your Ella Rises account is ready. You can browse upcoming events, register, and track your donations from your dashboard.</p>
<p>See you soon,<br>The Ella Rises team</p>`, name)
	return SendRequest{
		To:      []string{to},
		Subject: "Welcome to Ella Rises",
		HTML:    body,
	}
}

// ComposeDonationReceipt builds the thank-you receipt sent after a donation.
func ComposeDonationReceipt(to, firstName string, amount float64, donatedAt time.Time) SendRequest {
	name := html.EscapeString(firstName)
	if name == "" {
		name = "Friend"
	}
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>Thank you for your donation of $%.2f on %s. Your support helps us keep our programs running.</p>
<p>With gratitude,<br>The Ella Rises team</p>`, name, amount, donatedAt.Format("January 2, 2006"))
	return SendRequest{
		To:      []string{to},
		Subject: "Thank you for your donation",
		HTML:    body,
	}
}
