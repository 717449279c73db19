package mailer

import "embed"

const (
	FromName            = "Sashambhu Playzone"
	maxRetires          = 3
	DailyReportTemplate = "daily_report.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
