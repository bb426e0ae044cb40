package outline

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/tenebris-tech/docxoutline/docx"
)

// Response is the tool-style payload returned for a successful outline
// request
type Response struct {
	Success      bool    `json:"success" yaml:"success"`
	OutlineCount int     `json:"outline_count" yaml:"outline_count"`
	Outline      []Entry `json:"outline" yaml:"outline"`
}

// ErrorResponse is the tool-style payload returned when a request fails
type ErrorResponse struct {
	Success    bool   `json:"success" yaml:"success"`
	Error      string `json:"error" yaml:"error"`
	Message    string `json:"message" yaml:"message"`
	Suggestion string `json:"suggestion" yaml:"suggestion"`
	Details    string `json:"details" yaml:"details"`
}

// Error kinds reported in ErrorResponse.Error
const (
	KindFileNotFound     = "FileNotFound"
	KindPermissionDenied = "PermissionDenied"
	KindValueError       = "ValueError"
	KindDocxError        = "DocxError"
)

// NewResponse wraps a document's entries
func NewResponse(doc *Document) Response {
	entries := doc.Entries
	if entries == nil {
		entries = []Entry{}
	}
	return Response{
		Success:      true,
		OutlineCount: len(entries),
		Outline:      entries,
	}
}

// NewErrorResponse classifies err into an error payload. path is the
// requested document, used in messages.
func NewErrorResponse(err error, path string) ErrorResponse {
	resp := ErrorResponse{
		Success: false,
		Details: err.Error(),
	}

	switch {
	case errors.Is(err, ErrEmptyPath):
		resp.Error = KindValueError
		resp.Message = "invalid argument: " + err.Error()
		resp.Suggestion = "check that the input parameters are valid"
	case errors.Is(err, fs.ErrNotExist):
		resp.Error = KindFileNotFound
		resp.Message = "file not found: " + path
		resp.Suggestion = "check that the file path is correct"
	case errors.Is(err, fs.ErrPermission):
		resp.Error = KindPermissionDenied
		resp.Message = "permission denied"
		resp.Suggestion = "check whether the file is locked by another program or its permissions"
	case errors.Is(err, docx.ErrNotDocx), isPackageError(err):
		resp.Error = KindDocxError
		resp.Message = err.Error()
		resp.Suggestion = "check that the file is a valid .docx document"
	default:
		resp.Error = typeName(err)
		resp.Message = "operation failed: " + err.Error()
		resp.Suggestion = "see details for more information"
	}
	return resp
}

// isPackageError reports whether err comes from a damaged zip container or
// unparseable document XML
func isPackageError(err error) bool {
	var syntaxErr *xml.SyntaxError
	return errors.Is(err, zip.ErrFormat) ||
		errors.Is(err, zip.ErrAlgorithm) ||
		errors.Is(err, zip.ErrChecksum) ||
		errors.As(err, &syntaxErr)
}

// typeName returns the type name of the first error in the chain that is
// not a fmt wrapper. Plain errors.New values report "Error".
func typeName(err error) string {
	name := fmt.Sprintf("%T", err)
	for strings.HasPrefix(name, "*fmt.wrapError") {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
		name = fmt.Sprintf("%T", err)
	}
	if name == "*errors.errorString" {
		return "Error"
	}
	if i := strings.LastIndex(name, "."); i != -1 {
		name = name[i+1:]
	}
	return strings.TrimPrefix(name, "*")
}
