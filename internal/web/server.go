package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"github.com/vbonduro/homelist/internal/domain"
	"github.com/vbonduro/homelist/internal/imagestore"
	"github.com/vbonduro/homelist/internal/inventory"
	"github.com/vbonduro/homelist/internal/listing"
	"github.com/vbonduro/homelist/internal/service"
)

// searcher is satisfied by *search.Facade.
type searcher interface {
	Search(c domain.SearchCriteria) ([]domain.Property, error)
}

type Deps struct {
	Search      searcher
	Catalog     *listing.Repository
	Inventory   *inventory.Inventory
	Cart        *service.CartService
	Profiles    *service.ProfileService
	Images      imagestore.ImageStore
	CORSOrigins []string
	Logger      *slog.Logger
}

type Server struct {
	search    searcher
	catalog   *listing.Repository
	inventory *inventory.Inventory
	snapshot  *snapshotCache
	cart      *service.CartService
	profiles  *service.ProfileService
	images    imagestore.ImageStore
	ws        websocket.Upgrader
	router    chi.Router
	logger    *slog.Logger
}

// NewServer builds the HTTP API and subscribes its inventory snapshot to
// d.Inventory.
func NewServer(d Deps) (*Server, error) {
	s := &Server{
		search:    d.Search,
		catalog:   d.Catalog,
		inventory: d.Inventory,
		snapshot:  &snapshotCache{},
		cart:      d.Cart,
		profiles:  d.Profiles,
		images:    d.Images,
		logger:    d.Logger,
	}

	if _, err := d.Inventory.AddObserver(s.snapshot); err != nil {
		return nil, fmt.Errorf("failed to subscribe inventory snapshot: %w", err)
	}

	s.ws = newUpgrader(d.CORSOrigins)
	s.router = s.routes(d.CORSOrigins)
	return s, nil
}

func (s *Server) routes(origins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP, requestLogger(s.logger), middleware.Recoverer, securityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/properties", func(r chi.Router) {
		r.Get("/", s.handleSearch)
		r.Get("/{id}", s.handleGetProperty)
	})

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", s.handleCatalog)
		r.Get("/{id}", s.handleCatalogProperty)
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", s.handleListInventory)
		r.Get("/ws", s.handleInventoryStream)
		r.Post("/", s.handleAddInventory)
		r.Delete("/{id}", s.handleRemoveInventory)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", s.handleGetCart)
		r.Post("/", s.handleAddToCart)
		r.Delete("/", s.handleResetCart)
		r.Delete("/{id}", s.handleRemoveFromCart)
	})

	r.Route("/profile", func(r chi.Router) {
		r.Get("/", s.handleGetProfile)
		r.Put("/", s.handleUpdateProfile)
		r.Post("/signup", s.handleSignUp)
		r.Post("/logout", s.handleLogout)
		r.Get("/preferences", s.handleGetPreferences)
		r.Put("/preferences", s.handleSavePreferences)
		r.Post("/saved/{id}", s.handleSaveProperty)
		r.Delete("/saved/{id}", s.handleUnsaveProperty)
	})

	r.Route("/images", func(r chi.Router) {
		r.Post("/", s.handleUploadImage)
		r.Get("/{key}", s.handleGetImage)
		r.Delete("/{key}", s.handleDeleteImage)
	})

	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"properties": s.inventory.Len(),
	})
}
