package utils

import (
	"errors"
	"io"
)

// ReadAllLimit reads r in full, failing once max bytes are exceeded instead
// of buffering an arbitrarily large upload. The multipart handler uses it to
// cap título PDFs without trusting the declared Content-Length.
func ReadAllLimit(r io.Reader, max int64) ([]byte, error) {
	lr := io.LimitReader(r, max+1)
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, errors.New("file too large")
	}
	return b, nil
}
