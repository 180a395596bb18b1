package core

import (
	"net/url"
	"strings"
	"testing"
)

func TestWhatsAppLink(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		message string
		want    string
	}{
		{name: "digits only", number: "2348012345678", want: "https://wa.me/2348012345678"},
		{name: "strips plus and spaces", number: "+234 801 234 5678", want: "https://wa.me/2348012345678"},
		{name: "strips dashes and parens", number: "(234) 801-234-5678", want: "https://wa.me/2348012345678"},
		{name: "empty message ignored", number: "234", message: "", want: "https://wa.me/234"},
		{name: "message encoded", number: "234", message: "hello there", want: "https://wa.me/234?text=hello+there"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WhatsAppLink(tt.number, tt.message); got != tt.want {
				t.Errorf("WhatsAppLink() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWhatsAppLink_messageRoundTrip(t *testing.T) {
	msg := CourseInquiryMessage("Premium Setup")
	link := WhatsAppLink("+234 801 234 5678", msg)

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("url.Parse() failed, %v", err)
	}
	if u.Host != "wa.me" {
		t.Errorf("host = %v, want wa.me", u.Host)
	}
	if u.Path != "/2348012345678" {
		t.Errorf("path = %v, want /2348012345678", u.Path)
	}
	if got := u.Query().Get("text"); got != msg {
		t.Errorf("text = %q, want %q", got, msg)
	}
	if !strings.Contains(msg, "Premium Setup") {
		t.Errorf("inquiry message does not mention the course: %q", msg)
	}
}
