package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"lotadmin/internal/registry/model"
	"lotadmin/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Registry is the part of the registry client the admin pages need.
type Registry interface {
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*model.Customer, error)
	CreateCustomer(ctx context.Context, req model.UpsertCustomerReq) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, req model.UpsertCustomerReq) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
	ListCustomerCodes(ctx context.Context) ([]string, error)

	ListLots(ctx context.Context) ([]model.Lot, error)
	GetLot(ctx context.Context, id int64) (*model.Lot, error)
	CreateLot(ctx context.Context, req model.UpsertLotReq) (*model.Lot, error)
	UpdateLot(ctx context.Context, id int64, req model.UpsertLotReq) (*model.Lot, error)
	DeleteLot(ctx context.Context, id int64) error
}

// Server is the admin web UI
type Server struct {
	echo     *echo.Echo
	registry Registry
}

// Templates renders page templates inside the base layout and bare partials.
type Templates struct {
	pages    map[string]*template.Template
	partials *template.Template
}

// Render implements echo.Renderer.
func (t *Templates) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	if tmpl, ok := t.pages[name]; ok {
		return tmpl.ExecuteTemplate(w, "base", data)
	}
	if t.partials.Lookup(name) == nil {
		return fmt.Errorf("template %q not found", name)
	}
	return t.partials.ExecuteTemplate(w, name, data)
}

// NewServer creates the admin server backed by registry
func NewServer(registry Registry) (*Server, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{echo: echo.New(), registry: registry}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Renderer = templates
	s.setupRoutes()
	return s, nil
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func loadTemplates() (*Templates, error) {
	funcMap := templateFuncMap()
	pageTemplates := []string{"customers.html", "lots.html"}

	t := &Templates{pages: make(map[string]*template.Template, len(pageTemplates))}
	for _, page := range pageTemplates {
		// Parse base template first, then partials, then the page template
		tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS,
			"templates/base.html",
			"templates/partials/*.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		t.pages[page] = tmpl
	}

	partials, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}
	t.partials = partials
	return t, nil
}

func (s *Server) setupRoutes() {
	e := s.echo
	e.Use(middleware.RequestID())
	e.Use(util.RequestLogger())
	e.Use(middleware.Recover())

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to setup static files")
	}
	e.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", http.FileServer(http.FS(staticContent)))))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Customers
	e.GET("/", s.CustomersPage)
	e.POST("/customers", s.CreateCustomer)
	e.POST("/customers/:id", s.UpdateCustomer)
	e.POST("/customers/:id/delete", s.DeleteCustomer)

	// Lots
	e.GET("/lots", s.LotsPage)
	e.POST("/lots", s.CreateLot)
	e.POST("/lots/:id", s.UpdateLot)
	e.POST("/lots/:id/delete", s.DeleteLot)

	// Reference pickers
	e.GET("/picker/customers", s.CustomerPicker)
}
