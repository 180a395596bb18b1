package core

import (
	"fmt"
	"net/url"
	"regexp"
)

var nonDigitRegex = regexp.MustCompile(`\D`)

// WhatsAppLink builds a wa.me deep link for the given phone number.
// All non-digit characters are stripped from the number; the optional message
// is percent-encoded as the "text" query parameter.
func WhatsAppLink(number string, message ...string) string {
	digits := nonDigitRegex.ReplaceAllString(number, "")
	link := "https://wa.me/" + digits
	if len(message) > 0 && message[0] != "" {
		q := make(url.Values)
		q.Set("text", message[0])
		link += "?" + q.Encode()
	}
	return link
}

// CourseInquiryMessage is the prefilled WhatsApp message attached to a
// course's contact link on the public listing.
func CourseInquiryMessage(title string) string {
	return fmt.Sprintf(
		"Hi! I'm interested in the %s course.\n\n"+
			"I'd like to know more about:\n"+
			"- Course details and curriculum\n"+
			"- Pricing and payment options\n"+
			"- Course duration and schedule\n"+
			"- Any prerequisites\n\n"+
			"Please provide more information.",
		title,
	)
}
