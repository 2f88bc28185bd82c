package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/domain/submission"
)

// labels holds the fixed strings of one language section.
type labels struct {
	Lang string
	Dir  string

	LeadTitle    string
	Name         string
	Email        string
	Phone        string
	Subject      string
	Message      string
	Received     string
	Match        string
	Previous     string
	Contact      string
	ContactNone  string
	MatchTypes   map[identity.MatchType]string
	Unlinked     string
	AckSubject   string
	AckGreeting  string
	AckBody      string
	AckQuote     string
	Signature    string
	ResetSubject string
	ResetBody    string
	ResetAction  string
	ResetExpiry  string
	ResetIgnore  string
}

var hebrew = labels{
	Lang: "he",
	Dir:  "rtl",

	LeadTitle:   "פנייה חדשה מהאתר",
	Name:        "שם",
	Email:       "אימייל",
	Phone:       "טלפון",
	Subject:     "נושא",
	Message:     "הודעה",
	Received:    "התקבלה",
	Match:       "זיהוי איש קשר",
	Previous:    "פניות קודמות",
	Contact:     "פרטי איש הקשר השמורים",
	ContactNone: "לא נמצא איש קשר מקושר",
	MatchTypes: map[identity.MatchType]string{
		identity.MatchNew:           "איש קשר חדש",
		identity.MatchEmail:         "איש קשר חוזר (זוהה לפי אימייל)",
		identity.MatchPhone:         "איש קשר חוזר (זוהה לפי טלפון)",
		identity.MatchEmailConflict: "איש קשר חוזר (זוהה לפי אימייל לאחר התנגשות)",
		identity.MatchPhoneConflict: "איש קשר חוזר (זוהה לפי טלפון לאחר התנגשות)",
	},
	Unlinked:     "לא שויך לאיש קשר",
	AckSubject:   "תודה על פנייתך",
	AckGreeting:  "שלום %s,",
	AckBody:      "קיבלנו את פנייתך ונחזור אליך בהקדם.",
	AckQuote:     "ההודעה ששלחת:",
	Signature:    "בברכה, צוות קשב פלוס",
	ResetSubject: "איפוס סיסמה",
	ResetBody:    "התקבלה בקשה לאיפוס הסיסמה של חשבון הניהול שלך.",
	ResetAction:  "לאיפוס הסיסמה",
	ResetExpiry:  "הקישור תקף לשעה אחת.",
	ResetIgnore:  "אם לא ביקשת איפוס, אפשר להתעלם מהודעה זו.",
}

var english = labels{
	Lang: "en",
	Dir:  "ltr",

	LeadTitle:   "New lead from the website",
	Name:        "Name",
	Email:       "Email",
	Phone:       "Phone",
	Subject:     "Subject",
	Message:     "Message",
	Received:    "Received",
	Match:       "Contact match",
	Previous:    "Previous messages",
	Contact:     "Stored contact details",
	ContactNone: "No linked contact",
	MatchTypes: map[identity.MatchType]string{
		identity.MatchNew:           "New contact",
		identity.MatchEmail:         "Returning contact (matched by email)",
		identity.MatchPhone:         "Returning contact (matched by phone)",
		identity.MatchEmailConflict: "Returning contact (matched by email after a concurrent insert)",
		identity.MatchPhoneConflict: "Returning contact (matched by phone after a concurrent insert)",
	},
	Unlinked:     "Not linked to a contact",
	AckSubject:   "Thank you for contacting us",
	AckGreeting:  "Hello %s,",
	AckBody:      "We received your message and will get back to you soon.",
	AckQuote:     "Your message:",
	Signature:    "Best regards, the Keshev Plus team",
	ResetSubject: "Password reset",
	ResetBody:    "We received a request to reset the password of your admin account.",
	ResetAction:  "Reset password",
	ResetExpiry:  "The link is valid for one hour.",
	ResetIgnore:  "If you did not request a reset, you can ignore this email.",
}

func (l labels) matchLabel(matchType identity.MatchType) string {
	if text, ok := l.MatchTypes[matchType]; ok {
		return text
	}
	return l.Unlinked
}

// field is one label/value row of a section.
type field struct {
	Label string
	Value string
}

// section is one language block of a bilingual email.
type section struct {
	Lang     string
	Dir      string
	Title    string
	Lines    []string
	Fields   []field
	Heading  string
	Contact  []field
	Quote    string
	Link     string
	LinkText string
	Footer   []string
}

type layout struct {
	Sections    []section
	MessageHTML htmltemplate.HTML
}

var pageTemplate = htmltemplate.Must(htmltemplate.New("page").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, Helvetica, sans-serif; color: #222;">
{{- range $i, $s := .Sections}}
{{- if $i}}
<hr style="border: none; border-top: 1px solid #ddd; margin: 24px 0;">
{{- end}}
<div lang="{{$s.Lang}}" dir="{{$s.Dir}}">
{{- if $s.Title}}
<h2>{{$s.Title}}</h2>
{{- end}}
{{- range $s.Lines}}
<p>{{.}}</p>
{{- end}}
{{- if $s.Fields}}
<table cellpadding="4">
{{- range $s.Fields}}
<tr><td><strong>{{.Label}}</strong></td><td>{{.Value}}</td></tr>
{{- end}}
</table>
{{- end}}
{{- if $s.Quote}}
<p><strong>{{$s.Quote}}</strong></p>
<blockquote style="border-inline-start: 3px solid #ccc; padding: 0 12px; margin: 0;">{{$.MessageHTML}}</blockquote>
{{- end}}
{{- if $s.Heading}}
<h3>{{$s.Heading}}</h3>
{{- if $s.Contact}}
<table cellpadding="4">
{{- range $s.Contact}}
<tr><td><strong>{{.Label}}</strong></td><td>{{.Value}}</td></tr>
{{- end}}
</table>
{{- end}}
{{- end}}
{{- if $s.Link}}
<p><a href="{{$s.Link}}">{{$s.LinkText}}</a></p>
{{- end}}
{{- range $s.Footer}}
<p>{{.}}</p>
{{- end}}
</div>
{{- end}}
</body>
</html>
`))

// Renderer builds the subject, HTML and plain-text parts of every email the
// service sends. Every email carries a Hebrew and an English section.
type Renderer struct {
	markdown *markdownRenderer
	location *time.Location
}

// NewRenderer creates a renderer that prints timestamps in loc (UTC when nil).
func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{
		markdown: newMarkdownRenderer(),
		location: loc,
	}
}

// LeadNotification renders the email sent to the site owner for a new
// submission. contact is the identity the submission was linked to, nil when
// resolution failed.
func (r *Renderer) LeadNotification(s *submission.Submission, contact *identity.Identity, matchType identity.MatchType) (Message, error) {
	messageHTML, err := r.markdown.toHTML(s.Message)
	if err != nil {
		return Message{}, err
	}

	sections := make([]section, 0, 2)
	for _, l := range []labels{hebrew, english} {
		sec := section{
			Lang:    l.Lang,
			Dir:     l.Dir,
			Title:   l.LeadTitle,
			Fields:  r.leadFields(l, s, matchType),
			Quote:   l.Message,
			Heading: l.Contact,
			Contact: contactFields(l, contact),
		}
		if contact == nil {
			sec.Lines = []string{l.ContactNone}
		}
		sections = append(sections, sec)
	}

	html, err := renderPage(layout{Sections: sections, MessageHTML: htmltemplate.HTML(messageHTML)})
	if err != nil {
		return Message{}, err
	}

	return Message{
		ReplyTo: s.EmailOrEmpty(),
		Subject: fmt.Sprintf("%s: %s | %s: %s", hebrew.LeadTitle, s.Name, english.LeadTitle, s.Name),
		HTML:    html,
		Text:    plainText(sections, s.Message),
	}, nil
}

// Acknowledgment renders the confirmation sent back to the visitor, with the
// section for locale first.
func (r *Renderer) Acknowledgment(s *submission.Submission, locale language.Tag) (Message, error) {
	messageHTML, err := r.markdown.toHTML(s.Message)
	if err != nil {
		return Message{}, err
	}

	ordered := []labels{hebrew, english}
	if locale == language.English {
		ordered = []labels{english, hebrew}
	}

	sections := make([]section, 0, len(ordered))
	for _, l := range ordered {
		sections = append(sections, section{
			Lang:   l.Lang,
			Dir:    l.Dir,
			Lines:  []string{fmt.Sprintf(l.AckGreeting, s.Name), l.AckBody},
			Quote:  l.AckQuote,
			Footer: []string{l.Signature},
		})
	}

	html, err := renderPage(layout{Sections: sections, MessageHTML: htmltemplate.HTML(messageHTML)})
	if err != nil {
		return Message{}, err
	}

	return Message{
		To:      s.EmailOrEmpty(),
		Subject: ordered[0].AckSubject + " | " + ordered[1].AckSubject,
		HTML:    html,
		Text:    plainText(sections, s.Message),
	}, nil
}

// PasswordReset renders the admin password-reset email pointing at resetURL.
func (r *Renderer) PasswordReset(to, resetURL string) (Message, error) {
	sections := make([]section, 0, 2)
	for _, l := range []labels{hebrew, english} {
		sections = append(sections, section{
			Lang:     l.Lang,
			Dir:      l.Dir,
			Title:    l.ResetSubject,
			Lines:    []string{l.ResetBody},
			Link:     resetURL,
			LinkText: l.ResetAction,
			Footer:   []string{l.ResetExpiry, l.ResetIgnore},
		})
	}

	html, err := renderPage(layout{Sections: sections})
	if err != nil {
		return Message{}, err
	}

	return Message{
		To:      to,
		Subject: hebrew.ResetSubject + " | " + english.ResetSubject,
		HTML:    html,
		Text:    plainText(sections, ""),
	}, nil
}

func (r *Renderer) leadFields(l labels, s *submission.Submission, matchType identity.MatchType) []field {
	fields := []field{
		{Label: l.Name, Value: s.Name},
		{Label: l.Email, Value: s.EmailOrEmpty()},
		{Label: l.Phone, Value: s.Phone},
	}
	if subject := s.SubjectOrEmpty(); subject != "" {
		fields = append(fields, field{Label: l.Subject, Value: subject})
	}
	return append(fields,
		field{Label: l.Received, Value: s.CreatedAt.In(r.location).Format("2006-01-02 15:04")},
		field{Label: l.Match, Value: l.matchLabel(matchType)},
		field{Label: l.Previous, Value: fmt.Sprintf("%d", s.PreviousMessageCount)},
	)
}

func contactFields(l labels, contact *identity.Identity) []field {
	if contact == nil {
		return nil
	}
	return []field{
		{Label: "#", Value: fmt.Sprintf("%d", contact.ID)},
		{Label: l.Name, Value: contact.Name},
		{Label: l.Email, Value: contact.EmailOrEmpty()},
		{Label: l.Phone, Value: contact.PhoneOrEmpty()},
	}
}

func renderPage(data layout) (string, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email: %w", err)
	}
	return buf.String(), nil
}

// plainText renders the text/plain alternative of the same sections.
func plainText(sections []section, message string) string {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n----------------------------------------\n\n")
		}
		if s.Title != "" {
			b.WriteString(s.Title + "\n\n")
		}
		for _, line := range s.Lines {
			b.WriteString(line + "\n")
		}
		writeFields(&b, s.Fields)
		if s.Quote != "" {
			b.WriteString("\n" + s.Quote + "\n")
			for _, line := range strings.Split(message, "\n") {
				b.WriteString("> " + line + "\n")
			}
		}
		if s.Heading != "" && len(s.Contact) > 0 {
			b.WriteString("\n" + s.Heading + "\n")
			writeFields(&b, s.Contact)
		}
		if s.Link != "" {
			b.WriteString("\n" + s.LinkText + ": " + s.Link + "\n")
		}
		if len(s.Footer) > 0 {
			b.WriteString("\n")
		}
		for _, line := range s.Footer {
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

func writeFields(b *strings.Builder, fields []field) {
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		fmt.Fprintf(b, "%s: %s\n", f.Label, f.Value)
	}
}
