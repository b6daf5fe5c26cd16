package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed static/css static/js static/img
var static embed.FS

// Templates returns the page templates.
func Templates() fs.FS {
	return templates
}

// Static 返回 /static 下的内置静态资源（css、js）。上传文件由上传目录单独提供。
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
