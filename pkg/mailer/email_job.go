package mailer

import "fmt"

// EmailJob is the JSON payload put on the RabbitMQ queue for the worker.
// Text is the fallback body; HTML is used when present.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject,omitempty"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// WelcomeJob builds the registration welcome email for a new usuario.
func WelcomeJob(to, fullName string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Bienvenido",
		Text:    fmt.Sprintf("Hola %s, tu cuenta ha sido creada exitosamente.", fullName),
		HTML: fmt.Sprintf(
			"<p>Hola <strong>%s</strong>,</p><p>Tu cuenta ha sido creada exitosamente.</p>",
			fullName,
		),
	}
}
