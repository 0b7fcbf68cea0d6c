package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawDocumentExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  RawDocument
		want string
	}{
		{name: "from path", doc: RawDocument{Path: "/uploads/Jane.PDF"}, want: "pdf"},
		{name: "dotted ext", doc: RawDocument{Path: "cv", Ext: ".docx"}, want: "docx"},
		{name: "ext wins over path", doc: RawDocument{Path: "cv.txt", Ext: "pdf"}, want: "pdf"},
		{name: "pdf mime", doc: RawDocument{Ext: "application/pdf"}, want: "pdf"},
		{name: "docx mime", doc: RawDocument{Ext: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"}, want: "docx"},
		{name: "doc mime", doc: RawDocument{Ext: "application/msword"}, want: "doc"},
		{name: "odt mime", doc: RawDocument{Ext: "application/vnd.oasis.opendocument.text"}, want: "odt"},
		{name: "rtf mime", doc: RawDocument{Ext: "text/rtf"}, want: "rtf"},
		{name: "plain text with charset", doc: RawDocument{Ext: "Text/Plain; charset=utf-8"}, want: "txt"},
		{name: "unknown mime keeps subtype", doc: RawDocument{Ext: "image/png"}, want: "png"},
		{name: "nothing", doc: RawDocument{Path: "README"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.doc.Extension())
		})
	}
}
