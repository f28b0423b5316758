package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"selfservice/internal/services/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// views holds one parsed template set per page, each combined with the
// shared layout.
type views struct {
	pages map[string]*template.Template
}

func parseViews() (*views, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	v := &views{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		t, err := template.ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		v.pages[strings.TrimSuffix(path.Base(file), ".html")] = t
	}
	return v, nil
}

// render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (v *views) render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := v.pages[page]
	if !ok {
		return fmt.Errorf("unknown view %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// layout is embedded by every page model.
type layout struct {
	Title       string
	ServiceID   string
	ServiceName string
}

func serviceLayout(title string, svc *models.Service) layout {
	return layout{Title: title, ServiceID: svc.ID.String(), ServiceName: svc.Name}
}

type servicesPage struct {
	layout
	Services       []models.Summary
	NewServiceName string
	Error          string
}

type dashboardPage struct {
	layout
	CreatedAt       time.Time
	Completed       int
	Total           int
	GoLiveRequested bool
}

type configRow struct {
	Label     string
	Lines     []string
	ChangeURL string
}

type configPage struct {
	layout
	Saved       bool
	Integration []configRow
	Production  []configRow
}

type changePage struct {
	layout
	Field    models.Field
	Label    string
	Textarea bool
	Value    string
	Error    string
}

type taskRow struct {
	Label string
	URL   string
	Done  bool
}

type checklistPage struct {
	layout
	Tasks     []taskRow
	Completed int
	Total     int
}

type confirmPage struct {
	layout
	Action      string
	Question    string
	Hint        string
	Name        string
	Accept      string
	AcceptLabel string
	Checkbox    bool
	Done        bool
}

type redirectsPage struct {
	layout
	RedirectURLs           string
	PostLogoutRedirectURLs string
}

type scopeOption struct {
	Name    string
	Checked bool
}

type scopesPage struct {
	layout
	Options []scopeOption
}

type requestPage struct {
	layout
	Completed   int
	Total       int
	RequestedAt *time.Time
}

type errorPage struct {
	layout
	Message string
}

// configFields is the order fields appear on the configuration pages.
var configFields = []models.Field{
	models.FieldName,
	models.FieldClientID,
	models.FieldContacts,
	models.FieldRedirectURIs,
	models.FieldPostLogoutRedirectURIs,
	models.FieldScopes,
	models.FieldAuthMethod,
	models.FieldIDTokenAlg,
	models.FieldPublicKey,
}

// configRows renders a client config as label/value rows. changeBase adds a
// change link per row when non-empty.
func configRows(cfg models.ClientConfig, changeBase string) []configRow {
	rows := make([]configRow, 0, len(configFields))
	for _, field := range configFields {
		spec, _ := models.LookupField(string(field))
		value, _ := cfg.Value(field)
		row := configRow{Label: spec.Label, Lines: strings.Split(value, "\n")}
		if changeBase != "" {
			row.ChangeURL = changeBase + string(field)
		}
		rows = append(rows, row)
	}
	return rows
}

var stepLabels = map[models.ChecklistStep]string{
	models.StepIntegrationComplete: "Complete your integration",
	models.StepRedirectURLs:        "Add production redirect URLs",
	models.StepScopes:              "Choose production scopes",
	models.StepTeamMember:          "Add a team member",
	models.StepAgreement:           "Accept the terms of use",
}

func checklistTasks(svc *models.Service) []taskRow {
	tasks := make([]taskRow, 0, len(models.ChecklistSteps))
	for _, step := range models.ChecklistSteps {
		tasks = append(tasks, taskRow{
			Label: stepLabels[step],
			URL:   makeLivePath(svc.ID.String(), string(step)),
			Done:  svc.GoLiveChecklist.Done(step),
		})
	}
	return tasks
}
