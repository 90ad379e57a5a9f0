package importer

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrUnreadablePDF is returned when the file cannot be parsed as a PDF.
	ErrUnreadablePDF = errors.New("unreadable pdf")

	// ErrNoSubject is returned when the PDF Info dictionary has no Subject.
	ErrNoSubject = errors.New("pdf has no Subject metadata")
)

// ReadSubject returns the Subject entry of the document Info dictionary.
// The pdf reader panics on some malformed input; that is reported as
// ErrUnreadablePDF.
func ReadSubject(data []byte) (subject string, err error) {
	defer func() {
		if r := recover(); r != nil {
			subject = ""
			err = fmt.Errorf("%w: %v", ErrUnreadablePDF, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}

	info := r.Trailer().Key("Info")
	if info.Kind() != pdf.Dict {
		return "", ErrNoSubject
	}
	v := info.Key("Subject")
	if v.Kind() != pdf.String {
		return "", ErrNoSubject
	}
	return v.Text(), nil
}
