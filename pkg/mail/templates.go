package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/cinevault/cinevault/pkg/movies"
)

// movieView is the template model for a single movie. Optional fields are
// resolved to plain strings before rendering so the templates stay simple.
type movieView struct {
	Title       string
	Director    string
	Genre       string
	Duration    int
	Rating      string
	ReleaseDate string
	Description string
	ImageURL    string
}

func newMovieView(m *movies.Movie) movieView {
	v := movieView{
		Title:       m.Title,
		Duration:    m.Duration,
		ReleaseDate: m.ReleaseDate.Format("January 2, 2006"),
	}
	if m.Director != nil {
		v.Director = *m.Director
	}
	if m.Genre != nil {
		v.Genre = *m.Genre
	}
	if m.Rating != nil {
		v.Rating = fmt.Sprintf("%.1f/10", *m.Rating)
	}
	if m.Description != nil {
		v.Description = *m.Description
	}
	if m.ImageURL != nil {
		v.ImageURL = *m.ImageURL
	}
	return v
}

var emailStyles = template.HTML(`<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f4f4f4; margin: 0; padding: 20px; }
  .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 10px; overflow: hidden; }
  .header { background: #2c3e50; color: white; padding: 30px; text-align: center; }
  .content { padding: 30px; }
  .movie-info { background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0; }
  .movie-poster { width: 200px; border-radius: 8px; margin-bottom: 15px; }
  .footer { background: #f8f9fa; padding: 20px; text-align: center; color: #666; font-size: 14px; }
</style>`)

var reminderTemplate = template.Must(template.New("reminder").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Release day</title>{{.Styles}}</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Out today!</h1>
      <p>A movie from your collection is released today</p>
    </div>
    <div class="content">
      <h2>Hi, {{.Name}}!</h2>
      <p><strong>{{.Movie.Title}}</strong> from your collection is released today.</p>
      <div class="movie-info">
        {{if .Movie.ImageURL}}<img src="{{.Movie.ImageURL}}" alt="{{.Movie.Title}}" class="movie-poster">{{end}}
        <h3>{{.Movie.Title}}</h3>
        {{if .Movie.Director}}<p><strong>Director:</strong> {{.Movie.Director}}</p>{{end}}
        {{if .Movie.Genre}}<p><strong>Genre:</strong> {{.Movie.Genre}}</p>{{end}}
        <p><strong>Duration:</strong> {{.Movie.Duration}} minutes</p>
        {{if .Movie.Rating}}<p><strong>Rating:</strong> {{.Movie.Rating}}</p>{{end}}
        <p><strong>Release date:</strong> {{.Movie.ReleaseDate}}</p>
        {{if .Movie.Description}}<p><strong>Synopsis:</strong><br>{{.Movie.Description}}</p>{{end}}
      </div>
      <p>Enjoy the movie!</p>
    </div>
    <div class="footer">
      <p>You received this email because this movie is in your CineVault collection.</p>
    </div>
  </div>
</body>
</html>`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Welcome</title>{{.Styles}}</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Welcome to CineVault!</h1>
    </div>
    <div class="content">
      <h2>Hi, {{.Name}}!</h2>
      <p>Your account is ready. Here is what you can do:</p>
      <div class="movie-info">
        <p><strong>Build your collection</strong> — add, edit, and organize your movies.</p>
        <p><strong>Get release reminders</strong> — we email you the day a movie in your collection comes out.</p>
        <p><strong>Upload posters</strong> — attach cover images to your movies.</p>
      </div>
      <p>Happy watching!</p>
    </div>
    <div class="footer">
      <p>CineVault — your personal movie catalog</p>
    </div>
  </div>
</body>
</html>`))

var movieAddedTemplate = template.Must(template.New("movieAdded").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Movie added</title>{{.Styles}}</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Added to your collection</h1>
    </div>
    <div class="content">
      <h2>Hi, {{.Name}}!</h2>
      <p><strong>{{.Movie.Title}}</strong> is now in your collection.</p>
      <div class="movie-info">
        <h3>{{.Movie.Title}}</h3>
        {{if .Movie.Director}}<p><strong>Director:</strong> {{.Movie.Director}}</p>{{end}}
        <p><strong>Release date:</strong> {{.Movie.ReleaseDate}}</p>
      </div>
      <p>We will remind you on release day.</p>
    </div>
    <div class="footer">
      <p>CineVault — your personal movie catalog</p>
    </div>
  </div>
</body>
</html>`))

type templateData struct {
	Styles template.HTML
	Name   string
	Movie  movieView
}

func render(t *template.Template, name string, movie movieView) (string, error) {
	var buf bytes.Buffer
	err := t.Execute(&buf, templateData{Styles: emailStyles, Name: name, Movie: movie})
	if err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// ReleaseReminderEmail renders the release-day reminder for one movie.
func ReleaseReminderEmail(userName string, movie *movies.Movie) (subject, body string, err error) {
	body, err = render(reminderTemplate, userName, newMovieView(movie))
	return fmt.Sprintf("%s is out today!", movie.Title), body, err
}

// WelcomeEmail renders the post-registration welcome message.
func WelcomeEmail(userName string) (subject, body string, err error) {
	body, err = render(welcomeTemplate, userName, movieView{})
	return fmt.Sprintf("Welcome to CineVault, %s!", userName), body, err
}

// MovieAddedEmail renders the confirmation sent when a movie is created.
func MovieAddedEmail(userName string, movie *movies.Movie) (subject, body string, err error) {
	body, err = render(movieAddedTemplate, userName, newMovieView(movie))
	return fmt.Sprintf("%s was added to your collection", movie.Title), body, err
}

// testMovie backs the manual email-delivery check endpoint.
func testMovie() *movies.Movie {
	director := "Test Director"
	genre := "Test"
	rating := 8.5
	description := "This is a test movie used to verify email delivery."
	return &movies.Movie{
		Title:       "Test Movie",
		Director:    &director,
		Genre:       &genre,
		Duration:    120,
		Rating:      &rating,
		ReleaseDate: time.Now().UTC(),
		Description: &description,
	}
}
