package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_dashboard_service.go -package=mocks mdtable-dashboard/internal/service DashboardService

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"mdtable-dashboard/internal/charts"
	"mdtable-dashboard/internal/contextutil"
	"mdtable-dashboard/internal/dataset"
	"mdtable-dashboard/internal/markdown"
	"mdtable-dashboard/internal/session"
)

// User-facing messages.
const (
	MessageNoDocument = "Please upload the README.md file to proceed."
	MessageNoTable    = "No table found in the markdown file."

	WarningNoNumericColumns   = "No numeric columns available for visualization."
	WarningBarMissingName     = "Column 'Dataset Name' not found for bar plot."
	WarningHeatmapNoNumeric   = "No numeric columns available for heatmap."
	WarningScatterMissingType = "Column 'Dataset Type' not found for scatter plot."
	WarningScatterNotEnough   = "Not enough numeric columns available for scatter plot."
)

// DefaultDashboardTitle is shown above every dashboard unless configured otherwise.
const DefaultDashboardTitle = "Synthetic Face Datasets Visualization"

// AnalyzeRequest is an uploaded markdown document.
type AnalyzeRequest struct {
	Filename  string `json:"file" validate:"required,markdown_file"`
	Content   []byte `json:"-"`
	Replaces  string `json:"replaces" validate:"omitempty,uuid"`
	Selection charts.Selection
}

// TableView is the extracted table as shown in the grid.
type TableView struct {
	Columns     []string   `json:"columns"`
	Rows        [][]string `json:"rows"`
	SkippedRows int        `json:"skipped_rows"`
}

// ChartSet holds the rendered charts for one selection. A nil figure means
// the chart was skipped; Warnings says why.
type ChartSet struct {
	Selection charts.Selection `json:"selection"`
	Bar       *charts.Figure   `json:"bar,omitempty"`
	Heatmap   *charts.Figure   `json:"heatmap,omitempty"`
	Scatter   *charts.Figure   `json:"scatter,omitempty"`
	Warnings  []string         `json:"warnings"`
}

// Dashboard is everything the page needs to display one document.
type Dashboard struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	DocumentTitle  string               `json:"document_title,omitempty"`
	Filename       string               `json:"filename"`
	Metadata       markdown.FrontMatter `json:"metadata"`
	TableFound     bool                 `json:"table_found"`
	Message        string               `json:"message,omitempty"`
	Table          *TableView           `json:"table,omitempty"`
	Columns        []dataset.Column     `json:"columns"`
	NumericColumns []string             `json:"numeric_columns"`
	Images         []markdown.Image     `json:"images"`
	Charts         *ChartSet            `json:"charts,omitempty"`
}

// DashboardService turns uploaded markdown documents into dashboards.
type DashboardService interface {
	// Analyze extracts the table and images from an upload and stores the result.
	Analyze(ctx context.Context, req AnalyzeRequest) (Dashboard, error)
	// Get rebuilds the dashboard of a stored document for the given selection.
	Get(ctx context.Context, id string, sel charts.Selection) (Dashboard, error)
	// Charts rebuilds only the charts of a stored document.
	Charts(ctx context.Context, id string, sel charts.Selection) (ChartSet, error)
	// Discard drops a stored document.
	Discard(ctx context.Context, id string) error
}

// Options configures the dashboard service.
type Options struct {
	TableMarker    string
	DashboardTitle string
}

type dashboardService struct {
	store    session.Store
	tables   *markdown.TableExtractor
	titles   *markdown.TitleExtractor
	validate *validator.Validate
	title    string
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(store session.Store, opts Options) DashboardService {
	title := opts.DashboardTitle
	if title == "" {
		title = DefaultDashboardTitle
	}
	return &dashboardService{
		store:    store,
		tables:   markdown.NewTableExtractor(opts.TableMarker),
		titles:   markdown.NewTitleExtractor(),
		validate: newValidator(),
		title:    title,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("markdown_file", func(fl validator.FieldLevel) bool {
		return strings.EqualFold(filepath.Ext(fl.Field().String()), ".md")
	})
	return v
}

// Analyze implements DashboardService.
func (s *dashboardService) Analyze(ctx context.Context, req AnalyzeRequest) (Dashboard, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := s.validateRequest(req); err != nil {
		logger.WarnContext(ctx, "invalid upload", "filename", req.Filename, "error", err)
		return Dashboard{}, err
	}

	content := string(req.Content)
	meta, body, err := markdown.ParseFrontMatter(req.Content)
	if err != nil {
		logger.WarnContext(ctx, "ignoring unreadable front matter", "filename", req.Filename, "error", err)
	}

	documentTitle := meta.DisplayTitle()
	if documentTitle == "" {
		documentTitle = s.titles.Title(body, req.Filename)
	}

	table := s.tables.Extract(content)
	doc := &session.Document{
		Filename: req.Filename,
		Title:    documentTitle,
		Metadata: meta,
		Table:    table,
		Images:   markdown.ExtractImages(content),
	}
	if table != nil {
		doc.Dataset = dataset.New(table)
	}

	id, err := s.store.Put(ctx, doc)
	if err != nil {
		logger.ErrorContext(ctx, "failed to store document", "filename", req.Filename, "error", err)
		return Dashboard{}, WrapError(err, "failed to store document")
	}
	doc.ID = id

	dash, err := s.build(doc, req.Selection)
	if err != nil {
		_ = s.store.Delete(ctx, id)
		return Dashboard{}, err
	}

	// The replaced document survives a rejected upload.
	if req.Replaces != "" && req.Replaces != id {
		if err := s.store.Delete(ctx, req.Replaces); err != nil {
			logger.WarnContext(ctx, "failed to discard replaced document", "id", req.Replaces, "error", err)
		}
	}

	attrs := []any{"id", id, "filename", req.Filename, "bytes", len(req.Content), "images", doc.Images.Len()}
	if table != nil {
		attrs = append(attrs, "columns", len(table.Columns), "rows", len(table.Rows), "skipped_rows", table.SkippedRows)
	}
	logger.InfoContext(ctx, "document analyzed", attrs...)

	return dash, nil
}

// Get implements DashboardService.
func (s *dashboardService) Get(ctx context.Context, id string, sel charts.Selection) (Dashboard, error) {
	doc, err := s.load(ctx, id)
	if err != nil {
		return Dashboard{}, err
	}
	return s.build(doc, sel)
}

// Charts implements DashboardService.
func (s *dashboardService) Charts(ctx context.Context, id string, sel charts.Selection) (ChartSet, error) {
	doc, err := s.load(ctx, id)
	if err != nil {
		return ChartSet{}, err
	}
	if doc.Dataset == nil {
		return ChartSet{}, &ValidationError{Field: "id", Message: "document has no table"}
	}
	return buildCharts(doc.Dataset, sel)
}

// Discard implements DashboardService.
func (s *dashboardService) Discard(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return WrapError(err, "failed to discard document")
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "document discarded", "id", id)
	return nil
}

func (s *dashboardService) load(ctx context.Context, id string) (*session.Document, error) {
	doc, err := s.store.Get(ctx, id)
	if errors.Is(err, session.ErrNotFound) {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, WrapError(err, "failed to load document")
	}
	return doc, nil
}

func (s *dashboardService) validateRequest(req AnalyzeRequest) error {
	if err := s.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ValidationError{Field: fieldErrs[0].Field(), Message: validationMessage(fieldErrs[0])}
		}
		return WrapError(err, "failed to validate upload")
	}
	if !utf8.Valid(req.Content) {
		return &ValidationError{Field: "file", Message: "must be UTF-8 text"}
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "markdown_file":
		return "must be a .md file"
	case "uuid":
		return "must be a document id"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func (s *dashboardService) build(doc *session.Document, sel charts.Selection) (Dashboard, error) {
	dash := Dashboard{
		ID:             doc.ID,
		Title:          s.title,
		DocumentTitle:  doc.Title,
		Filename:       doc.Filename,
		Metadata:       doc.Metadata,
		Columns:        []dataset.Column{},
		NumericColumns: []string{},
		Images:         []markdown.Image{},
	}
	if doc.Images != nil {
		dash.Images = doc.Images.Images()
	}

	if doc.Table == nil || doc.Dataset == nil {
		dash.Message = MessageNoTable
		return dash, nil
	}

	dash.TableFound = true
	dash.Table = &TableView{
		Columns:     doc.Table.Columns,
		Rows:        doc.Table.Rows,
		SkippedRows: doc.Table.SkippedRows,
	}
	dash.Columns = doc.Dataset.Columns()
	if numeric := doc.Dataset.NumericColumns(); numeric != nil {
		dash.NumericColumns = numeric
	}

	set, err := buildCharts(doc.Dataset, sel)
	if err != nil {
		return Dashboard{}, err
	}
	dash.Charts = &set

	return dash, nil
}

// buildCharts renders every chart it can. Missing columns become warnings;
// an explicit selection that names an unusable column is a ValidationError.
func buildCharts(d *dataset.Dataset, sel charts.Selection) (ChartSet, error) {
	set := ChartSet{Warnings: []string{}}

	if len(d.NumericColumns()) == 0 {
		set.Selection = sel
		set.Warnings = append(set.Warnings, WarningNoNumericColumns)
		return set, nil
	}

	sel = charts.Resolve(d, sel)
	set.Selection = sel

	bar, err := charts.Bar(d, sel.Metric)
	switch {
	case err == nil:
		set.Bar = bar
	case isMissingColumn(err):
		set.Warnings = append(set.Warnings, WarningBarMissingName)
	default:
		return ChartSet{}, selectionError(err)
	}

	heatmap, err := charts.Heatmap(d)
	switch {
	case err == nil:
		set.Heatmap = heatmap
	case errors.Is(err, charts.ErrNoNumericColumns):
		set.Warnings = append(set.Warnings, WarningHeatmapNoNumeric)
	default:
		return ChartSet{}, selectionError(err)
	}

	scatter, err := charts.Scatter(d, sel.X, sel.Y)
	switch {
	case err == nil:
		set.Scatter = scatter
	case errors.Is(err, charts.ErrNotEnoughNumericColumns):
		set.Warnings = append(set.Warnings, WarningScatterNotEnough)
	case isMissingColumn(err):
		set.Warnings = append(set.Warnings, WarningScatterMissingType)
	default:
		return ChartSet{}, selectionError(err)
	}

	return set, nil
}

func isMissingColumn(err error) bool {
	var missing *charts.MissingColumnError
	return errors.As(err, &missing)
}

func selectionError(err error) error {
	var sel *charts.SelectionError
	if errors.As(err, &sel) {
		return &ValidationError{Field: sel.Field, Message: fmt.Sprintf("%q %s", sel.Column, sel.Reason)}
	}
	return WrapError(err, "failed to build charts")
}
