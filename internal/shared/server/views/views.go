package views

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.ParseFS(files, "templates/*.html"))

// Page names.
const (
	Form    = "form.html"
	Success = "success.html"
	Error   = "error.html"
)

// Render writes the named page with data. It does not depend on the engine's
// HTML renderer so it can be used from middleware.
func Render(c *gin.Context, status int, name string, data any) {
	c.Render(status, render.HTML{Template: templates, Name: name, Data: data})
}
