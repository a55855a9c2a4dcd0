package pdf

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// DocumentMetadata holds document-level information read from a PDF's
// trailer and Info dictionary.
type DocumentMetadata struct {
	PageCount int    `json:"page_count"`
	Encrypted bool   `json:"is_encrypted"`
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Creator   string `json:"creator,omitempty"`
	Producer  string `json:"producer,omitempty"`
}

// Metadata extracts document metadata. Missing Info entries are left
// empty; only an unreadable document is an error.
func Metadata(doc []byte) (*DocumentMetadata, error) {
	reader, err := openReader(doc)
	if err != nil {
		return nil, &LoadError{Op: "failed to load PDF", Err: err}
	}

	meta := &DocumentMetadata{PageCount: reader.NumPage()}
	readInfoDict(reader, meta)
	return meta, nil
}

// readInfoDict fills in Info-dictionary strings. The underlying library
// requires careful handling of Value types and can panic on damaged
// dictionaries, so the walk runs behind a recover.
func readInfoDict(reader *pdf.Reader, meta *DocumentMetadata) {
	defer func() {
		if recover() != nil {
			// Metadata is advisory; damaged Info entries are skipped.
		}
	}()

	trailer := reader.Trailer()
	if trailer.IsNull() {
		return
	}

	if encrypt := trailer.Key("Encrypt"); !encrypt.IsNull() {
		meta.Encrypted = true
	}

	info := trailer.Key("Info")
	if info.IsNull() {
		return
	}

	fields := map[string]*string{
		"Title":    &meta.Title,
		"Author":   &meta.Author,
		"Subject":  &meta.Subject,
		"Creator":  &meta.Creator,
		"Producer": &meta.Producer,
	}
	for key, dst := range fields {
		if v := info.Key(key); !v.IsNull() {
			*dst = strings.TrimSpace(v.Text())
		}
	}
}
