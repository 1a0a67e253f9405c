package views

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/2HgO/signup-go/models"
	"github.com/2HgO/signup-go/types/responses"
)

//go:embed templates/*.html
var files embed.FS

var pages = map[string]*template.Template{
	"signup": page("signup.html"),
	"signin": page("signin.html"),
}

func page(name string) *template.Template {
	return template.Must(template.New(name).ParseFS(files, "templates/layout.html", "templates/"+name))
}

type SignUpPage struct {
	Lang   string
	Screen *responses.ScreenState
	Toasts []models.Toast
}

type SignInPage struct {
	Lang   string
	Toasts []models.Toast
}

func render(w http.ResponseWriter, code int, name string, data any) error {
	buf := new(bytes.Buffer)
	if err := pages[name].ExecuteTemplate(buf, name+".html", data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, err := buf.WriteTo(w)
	return err
}

func RenderSignUp(w http.ResponseWriter, code int, data *SignUpPage) error {
	return render(w, code, "signup", data)
}

func RenderSignIn(w http.ResponseWriter, code int, data *SignInPage) error {
	return render(w, code, "signin", data)
}
