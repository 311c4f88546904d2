package mailer

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// ContactData fills the contact form relay template.
type ContactData struct {
	Name    string
	Email   string
	Subject string
	Comment string
}

// SignInData fills the sign-in link template.
type SignInData struct {
	Link      string
	ExpiresIn string
}

// RenderContact renders the contact relay body.
func RenderContact(data ContactData) (string, error) {
	return render("contact.html", data)
}

// RenderSignIn renders the sign-in link body.
func RenderSignIn(data SignInData) (string, error) {
	return render("signin.html", data)
}

func render(name string, data any) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return b.String(), nil
}
