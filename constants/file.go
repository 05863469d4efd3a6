package constants

import "strings"

// Content types accepted on upload.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeXLS  = "application/vnd.ms-excel"
)

// workbookContentTypes holds the spreadsheet MIME types excelize can open.
var workbookContentTypes = map[string]struct{}{
	ContentTypeXLSX: {},
	ContentTypeXLS:  {},
}

// NormalizeContentType lowercases a MIME type and drops any parameters
// (e.g. "; charset=utf-8") so lookups match what browsers send.
func NormalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

func IsPDF(ct string) bool {
	return NormalizeContentType(ct) == ContentTypePDF
}

func IsWorkbook(ct string) bool {
	_, ok := workbookContentTypes[NormalizeContentType(ct)]
	return ok
}
