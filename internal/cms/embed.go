package cms

import (
	"embed"
	"io/fs"
)

//go:embed all:content
var embedded embed.FS

// Embedded returns the content tree compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "content")
	if err != nil {
		panic(err)
	}
	return sub
}
