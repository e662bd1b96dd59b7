package email

import (
	"bytes"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"strings"
	"time"

	"github.com/google/uuid"
)

// headerSanitizer drops line breaks so submitted values cannot add headers.
var headerSanitizer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// ContactSubject is the subject line for a contact message from name.
func ContactSubject(name string) string {
	return "Novo contato - " + name
}

// ContactBody renders the plain-text body, one field per line.
func ContactBody(data ContactEmailData) string {
	return strings.Join([]string{
		"Nome: " + data.SenderName,
		"Email: " + data.SenderEmail,
		"Telefone: " + data.Phone,
		"Serviço: " + data.Service,
		"Mensagem: " + data.Message,
	}, "\n")
}

func buildContactMessage(from, to string, data ContactEmailData, now time.Time) ([]byte, error) {
	var buf bytes.Buffer

	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = strings.Trim(from[at+1:], "<> ")
	}

	headers := [][2]string{
		{"From", from},
		{"To", to},
		{"Reply-To", data.SenderEmail},
		{"Subject", mime.QEncoding.Encode("utf-8", ContactSubject(data.SenderName))},
		{"Date", now.Format(time.RFC1123Z)},
		{"Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/plain; charset=UTF-8"},
		{"Content-Transfer-Encoding", "quoted-printable"},
	}
	for _, h := range headers {
		fmt.Fprintf(&buf, "%s: %s\r\n", h[0], headerSanitizer.Replace(h[1]))
	}
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(ContactBody(data))); err != nil {
		return nil, err
	}
	if err := qp.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("\r\n")

	return buf.Bytes(), nil
}
