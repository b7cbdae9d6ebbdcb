package fs

import "strings"

// Kind classifies a file by its extension.
type Kind int

const (
	KindPlainText Kind = iota
	KindMarkdown
	KindDocument
	KindSpreadsheet
	KindImage
	KindAudio
	KindVideo
	KindArchive
	KindSource
	KindData
	KindExecutable
)

var kindNames = map[Kind]string{
	KindPlainText:   "text",
	KindMarkdown:    "markdown",
	KindDocument:    "document",
	KindSpreadsheet: "spreadsheet",
	KindImage:       "image",
	KindAudio:       "audio",
	KindVideo:       "video",
	KindArchive:     "archive",
	KindSource:      "source",
	KindData:        "data",
	KindExecutable:  "executable",
}

// extensions is matched case-sensitively: "photo.PNG" is plain text.
var extensions = map[string]Kind{
	"txt":  KindPlainText,
	"md":   KindMarkdown,
	"doc":  KindDocument,
	"docx": KindDocument,
	"pdf":  KindDocument,
	"odt":  KindDocument,
	"xls":  KindSpreadsheet,
	"xlsx": KindSpreadsheet,
	"ods":  KindSpreadsheet,
	"png":  KindImage,
	"jpg":  KindImage,
	"jpeg": KindImage,
	"gif":  KindImage,
	"svg":  KindImage,
	"mp3":  KindAudio,
	"wav":  KindAudio,
	"flac": KindAudio,
	"mp4":  KindVideo,
	"mkv":  KindVideo,
	"avi":  KindVideo,
	"zip":  KindArchive,
	"tar":  KindArchive,
	"gz":   KindArchive,
	"go":   KindSource,
	"c":    KindSource,
	"cpp":  KindSource,
	"h":    KindSource,
	"hpp":  KindSource,
	"py":   KindSource,
	"js":   KindSource,
	"json": KindData,
	"yaml": KindData,
	"yml":  KindData,
	"csv":  KindData,
	"xml":  KindData,
	"exe":  KindExecutable,
	"sh":   KindExecutable,
}

// KindOf returns the kind for a file name based on its final extension.
func KindOf(name string) Kind {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 || dot == len(name)-1 {
		return KindPlainText
	}
	if kind, ok := extensions[name[dot+1:]]; ok {
		return kind
	}
	return KindPlainText
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}
