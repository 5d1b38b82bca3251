package handler

import (
	"embed"
	"html/template"

	"CaloriesAdvisor/internal/models"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageTitle      = "Personalized Calories Advisor App"
	NoImageWarning = "Please upload a food image or take a picture to proceed."
)

// 화면 상태: Loading 은 브라우저에서 스피너로만 표시
type State string

const (
	StateIdle   State = "idle"
	StateResult State = "result"
	StateError  State = "error"
)

// Page is the view model for index.html.
type Page struct {
	Title   string
	State   State
	Profile models.UserProfile
	Source  string

	Sexes          []string
	ActivityLevels []string
	Goals          []string

	ImageURL template.URL
	Report   string
	Warning  string
	Error    string
}

func newPage(profile models.UserProfile, source string) Page {
	if source != sourceCamera {
		source = sourceUpload
	}
	return Page{
		Title:          pageTitle,
		State:          StateIdle,
		Profile:        profile,
		Source:         source,
		Sexes:          models.Sexes,
		ActivityLevels: models.ActivityLevels,
		Goals:          models.Goals,
	}
}

func (p *Page) withImage(image models.ImagePayload) {
	// data: URLs are produced locally from bytes we already validated
	p.ImageURL = template.URL(image.DataURL())
}

// LoadTemplates installs the embedded page templates on the engine.
func LoadTemplates(r *gin.Engine) {
	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)
}
