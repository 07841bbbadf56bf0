package types

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	InvoiceFileExtension = ".docx"
	// ContentTypeDocx is the MIME type of rendered invoices
	ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// InvoiceFileName builds Invoice_{period}_{street}.docx where street is the
// address without its leading house-number token.
func InvoiceFileName(periodLabel, address string) string {
	return fmt.Sprintf("Invoice_%s_%s%s",
		sanitizeFileFragment(periodLabel),
		sanitizeFileFragment(StreetName(address)),
		InvoiceFileExtension,
	)
}

// StreetName drops everything up to and including the first whitespace run.
// An address with no internal whitespace is returned whole.
func StreetName(address string) string {
	address = strings.TrimSpace(address)
	idx := strings.IndexFunc(address, unicode.IsSpace)
	if idx < 0 {
		return address
	}
	street := strings.TrimLeftFunc(address[idx:], unicode.IsSpace)
	if street == "" {
		return address
	}
	return street
}

var fileFragmentReplacer = strings.NewReplacer(" ", "_", "/", "-")

func sanitizeFileFragment(s string) string {
	return fileFragmentReplacer.Replace(s)
}
