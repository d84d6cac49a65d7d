package global

import (
	"github.com/collabpad/collab-notepad-service/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT string
	Name string = "Collab Notepad Service"
)

func init() {
	filename := fileurl.GetExePath()
	ROOT = filename + "/"
}
