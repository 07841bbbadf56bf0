package s3

import "github.com/flexprice/propbill/internal/types"

type Document struct {
	ID   string       `json:"id"`
	Data []byte       `json:"data"`
	Kind DocumentKind `json:"kind"`
	Type DocumentType `json:"type"`
}

type DocumentKind string

const (
	DocumentKindDocx DocumentKind = "docx"
)

type DocumentType string

const (
	// DocumentTypeInvoice is a rendered invoice, stored under the configured key prefix
	DocumentTypeInvoice DocumentType = "invoice"
	// DocumentTypeTemplate is an invoice template, addressed by its full object key
	DocumentTypeTemplate DocumentType = "template"
)

func NewDocxDocument(id string, data []byte, docType DocumentType) *Document {
	return &Document{
		ID:   id,
		Data: data,
		Kind: DocumentKindDocx,
		Type: docType,
	}
}

func contentType(kind DocumentKind) string {
	switch kind {
	case DocumentKindDocx:
		return types.ContentTypeDocx
	default:
		return "application/octet-stream"
	}
}
