package models

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"bcbp_trmnl/internal/bcbp"
)

// ScanMessage is one payload read from a scanner together with the result of
// decoding it. Exactly one of Pass and Err is set.
type ScanMessage struct {
	Timestamp time.Time
	Source    string     // Address of the scanner hub the payload came from
	Raw       string     // Payload with line endings removed
	Pass      *bcbp.Bcbp // Decoded boarding pass, nil when Err is set
	Err       error      // Decode failure, wrapping one of the bcbp sentinels
}

// NewScanMessage decodes raw and wraps the outcome.
func NewScanMessage(raw, source string, ts time.Time) *ScanMessage {
	msg := &ScanMessage{
		Timestamp: ts,
		Source:    source,
		Raw:       strings.TrimRight(raw, "\r\n"),
	}

	pass, err := bcbp.Parse(msg.Raw)
	if err != nil {
		msg.Err = errors.Wrapf(err, "unable to decode scan from %s", source)
		return msg
	}
	msg.Pass = pass
	return msg
}

// Valid reports whether the payload decoded to a boarding pass.
func (m *ScanMessage) Valid() bool {
	return m.Err == nil && m.Pass != nil
}

// ErrorCode returns the decode failure label, or "" for a valid scan.
func (m *ScanMessage) ErrorCode() string {
	return bcbp.ErrorCode(m.Err)
}

// Reason is the human readable decode failure, or "" for a valid scan.
func (m *ScanMessage) Reason() string {
	if m.Err == nil {
		return ""
	}
	return errors.Cause(m.Err).Error()
}
