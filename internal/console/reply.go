package console

import (
	"net/url"
	"strings"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

// ReplySubject and ReplyBody prefill an answer to a contact message.
func ReplySubject(name string) string {
	return "Re: Portfolio Inquiry from " + name
}

func ReplyBody(name string) string {
	return "Hi " + name + ",\n\nThank you for reaching out via my portfolio. "
}

// MailtoReply returns a mailto: link answering m.
func MailtoReply(m data.Message) *url.URL {
	// mailto readers expect %20, not +, for spaces
	enc := func(s string) string {
		return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	}
	return &url.URL{
		Scheme:   "mailto",
		Opaque:   m.Email,
		RawQuery: "subject=" + enc(ReplySubject(m.Name)) + "&body=" + enc(ReplyBody(m.Name)),
	}
}
