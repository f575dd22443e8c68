package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"expenses/internal/cache"
	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/middleware/ratelimit"
	"expenses/internal/middleware/security"
	"expenses/internal/middleware/trace"
	appweb "expenses/web"
)

// ExpenseService is what the handlers need from the service layer.
type ExpenseService interface {
	NewForm() core.Form
	Create(ctx context.Context, f core.Form) (core.Expense, error)
	Delete(ctx context.Context, id int64) (core.Expense, error)
	List(ctx context.Context) ([]core.Expense, error)
}

type Options struct {
	Addr               string
	RateLimitPerMinute int
	// CacheTTL of zero disables the collection cache.
	CacheTTL       time.Duration
	CacheSize      int
	TrustedProxies []string
	Logger         *log.Logger
	Templates      fs.FS
	Static         fs.FS
}

const (
	collectionKey = "expenses"
	storeTimeout  = 7 * time.Second
	cleanupPeriod = time.Minute
	staticMaxAge  = 3600
)

type Server struct {
	http.Server
	templates *template.Template
	svc       ExpenseService
	logger    *log.Logger
	events    *log.StructuredLogger

	items    *cache.LRUCache[[]core.Expense]
	itemsMu  sync.Mutex
	itemsGen uint64 // bumped by every invalidation; guarded by itemsMu
	caches   *cache.Manager
	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware

	startedAt    time.Time
	shutdownOnce sync.Once
}

// NewServer parses the templates and wires routes and middleware.
func NewServer(opts Options, svc ExpenseService) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.Templates == nil {
		opts.Templates = appweb.TemplatesFS
	}
	if opts.Static == nil {
		if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
			opts.Static = sub
		}
	}
	logger := opts.Logger.WithComponent(log.ComponentHTTP)

	t, err := template.ParseFS(opts.Templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	detector, err := security.NewDetector(opts.TrustedProxies...)
	if err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	s := &Server{
		templates: t,
		svc:       svc,
		logger:    logger,
		events:    log.NewStructuredLogger(logger),
		caches:    cache.NewManager(logger.Logger),
		limiter:   ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		detector:  detector,
		startedAt: time.Now(),
	}
	s.tracer = trace.NewMiddleware(detector.ExtractClientIP, logger)

	if opts.CacheTTL > 0 {
		s.items = cache.NewLRUCache[[]core.Expense](max(opts.CacheSize, 1), opts.CacheTTL)
		s.caches.Register(s.items)
		s.caches.StartCleanup(cleanupPeriod)
	}

	mux := http.NewServeMux()
	if opts.Static != nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(opts.Static)))
		mux.Handle("/static/", security.StaticAssetMiddleware(staticMaxAge)(static))
	}
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/ui/expenses", s.handleListPartial)
	mux.HandleFunc("/expenses", s.handleCreateExpense)
	mux.HandleFunc("/expenses/delete", s.handleDeleteExpense)
	mux.HandleFunc("/", s.handleIndex)

	var handler http.Handler = mux
	handler = s.limiter.Middleware(detector.ExtractClientIP, s.onRateLimited, http.MethodPost, http.MethodDelete)(handler)
	handler = log.RequestIDMiddleware(trace.RequestIDFromRequest)(handler)
	handler = log.Middleware(logger)(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = detector.Middleware(logger.Logger)(handler)
	handler = s.tracer.Middleware(handler)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.detector.ExtractClientIP(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	NewHTMXResponse().
		Status(http.StatusTooManyRequests).
		TriggerErrorNotification("Too many requests. Please try again later.").
		BodyHTML(`<div class="error">Rate limit exceeded. Please try again later.</div>`).
		Write(w)
}

// Shutdown stops background goroutines and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// expenses returns the collection, served from cache when enabled.
func (s *Server) expenses(ctx context.Context) ([]core.Expense, error) {
	var gen uint64
	if s.items != nil {
		if items, ok := s.items.Get(collectionKey); ok {
			return items, nil
		}
		s.itemsMu.Lock()
		gen = s.itemsGen
		s.itemsMu.Unlock()
	}

	cctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	items, err := s.svc.List(cctx)
	if err != nil {
		return nil, err
	}
	if s.items != nil {
		// A write that landed while List ran makes this snapshot stale.
		s.itemsMu.Lock()
		if gen == s.itemsGen {
			s.items.Set(collectionKey, items)
		}
		s.itemsMu.Unlock()
	}
	return items, nil
}

func (s *Server) invalidate() {
	if s.items != nil {
		s.itemsMu.Lock()
		s.itemsGen++
		s.items.Clear()
		s.itemsMu.Unlock()
	}
}
