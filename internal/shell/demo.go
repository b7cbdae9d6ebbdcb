package shell

// Demo walks through every operation on a fresh filesystem.
var Demo = []string{
	"mkdir Documents",
	"mkdir Downloads",
	"touch readme.txt",
	"ls",
	"tree",
	"cd Documents",
	"pwd",
	"touch report.docx",
	"mkdir Photos",
	"ls",
	"tree",
	"cd ..",
	"pwd",
	"rm Downloads",
	"ls",
	"tree",
	"cd NotExist",
}
