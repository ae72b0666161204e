// Package multipartform builds the multipart/form-data bodies sent to the
// captioning service and the Mastodon media endpoint. The body is assembled
// by hand because both consumers expect one file part named "file" and one
// text part named "description" in a fixed layout.
package multipartform

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
)

const boundaryAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomBoundary returns 24 dashes followed by 32 random alphanumerics,
// generated fresh per call so it never collides with payload content in
// practice.
func randomBoundary() string {
	var b strings.Builder
	b.WriteString(strings.Repeat("-", 24))
	for i := 0; i < 32; i++ {
		b.WriteByte(boundaryAlphabet[rand.Intn(len(boundaryAlphabet))])
	}
	return b.String()
}

// Encode builds a multipart body with a "file" part carrying payload and a
// "description" text part carrying description (possibly empty). The
// returned boundary goes into the outer request's Content-Type header as
// "multipart/form-data; boundary={boundary}", and Content-Length must be
// exactly len(body).
func Encode(payload []byte, filename, contentType, description string) (boundary string, body []byte) {
	boundary = randomBoundary()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Disposition: form-data; name=\"file\"; filename=\"%s\"\r\n", filename)
	fmt.Fprintf(&buf, "Content-Type: %s\r\n\r\n", contentType)
	buf.Write(payload)
	fmt.Fprintf(&buf, "\r\n--%s\r\n", boundary)
	buf.WriteString("Content-Disposition: form-data; name=\"description\";\r\n\r\n")
	buf.WriteString(description)
	fmt.Fprintf(&buf, "\r\n--%s--\r\n", boundary)

	return boundary, buf.Bytes()
}

// FilenameFromDisposition extracts the filename from a Content-Disposition
// header value: split on ';', take the segment starting with "filename=",
// strip the prefix and surrounding double quotes. Returns "" when no such
// segment exists; callers must treat that as a schema violation since the
// caption upload requires a filename.
func FilenameFromDisposition(header string) string {
	for _, part := range strings.Split(header, ";") {
		trimmed := strings.TrimSpace(part)
		if value, ok := strings.CutPrefix(trimmed, "filename="); ok {
			return strings.Trim(value, "\"")
		}
	}
	return ""
}
