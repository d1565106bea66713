package models

import "io"

// UploadedFile is a client-submitted file as seen by the validators and the
// text extractor. Content length is not known up front.
type UploadedFile struct {
	Filename    string
	ContentType string // declared by the client, not sniffed
	Content     io.ReadSeeker
}
