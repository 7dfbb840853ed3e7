package cli

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/qrink/qrink/pkg/cache"
	"github.com/qrink/qrink/pkg/errors"
	"github.com/qrink/qrink/pkg/qr"
	"github.com/qrink/qrink/pkg/raster"
)

const (
	defaultAddr    = ":8080"
	maxServeSize   = 4096 // largest raster side the endpoint will produce
	shutdownGrace  = 5 * time.Second
	requestTimeout = 30 * time.Second
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	redisURL string
	cacheTTL time.Duration
	noCache  bool
}

// serveCommand creates the serve command running the HTTP render endpoint.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:     defaultAddr,
		cacheTTL: defaultCacheTTL,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve QR codes over HTTP",
		Long: `Serve runs an HTTP server rendering QR codes on demand.

GET /qr?data=...&size=512&format=png renders a symbol; style parameters
mirror the render command's flags. Responses are cached by a hash of the
request parameters, in Redis when --redis is given, otherwise in the
local file cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "redis URL for the response cache")
	cmd.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", opts.cacheTTL, "response cache TTL")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the response cache")

	return cmd
}

// runServe starts the server and shuts it down when ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	responseCache, err := c.newServeCache(ctx, opts)
	if err != nil {
		return err
	}
	defer responseCache.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           c.newServeHandler(responseCache, opts.cacheTTL),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	c.Logger.Info("serving", "addr", opts.addr)
	if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newServeCache picks the response cache: Redis when configured, otherwise
// the local file cache.
func (c *CLI) newServeCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using redis response cache")
		return rc, nil
	}
	return newCache(false), nil
}

// newServeHandler builds the HTTP router.
func (c *CLI) newServeHandler(responseCache cache.Cache, ttl time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(c.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/qr", c.handleQR(responseCache, ttl))

	return r
}

// requestLogger attaches a request-scoped logger carrying a fresh request ID
// and logs each request with its duration.
func (c *CLI) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		logger := c.Logger.With("request_id", id)
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(withLogger(r.Context(), logger)))
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

// handleQR renders GET /qr. Style query parameters mirror the render
// command's flags (eye, eye_radius, eye_color, module, module_color,
// light_color, gapless, background, quiet_zone).
func (c *CLI) handleQR(responseCache cache.Cache, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := loggerFromContext(r.Context())
		q := r.URL.Query()

		data := q.Get("data")
		if data == "" {
			http.Error(w, "missing required parameter: data", http.StatusBadRequest)
			return
		}
		format := q.Get("format")
		if format == "" {
			format = defaultFormat
		}
		if err := validateFormat(format); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		size := defaultSize
		if s := q.Get("size"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > maxServeSize {
				http.Error(w, "invalid size", http.StatusBadRequest)
				return
			}
			size = n
		}

		opts := &renderOpts{
			format:      format,
			size:        size,
			level:       valueOr(q.Get("level"), "quart"),
			eye:         q.Get("eye"),
			eyeRadius:   floatParam(q.Get("eye_radius")),
			eyeColor:    q.Get("eye_color"),
			moduleShape: q.Get("module"),
			moduleColor: q.Get("module_color"),
			lightColor:  q.Get("light_color"),
			gapless:     q.Get("gapless") != "false",
			background:  q.Get("background"),
			quietZone:   intParam(q.Get("quiet_zone")),
		}

		key := cache.Key("qr", data, opts.format, opts.size, opts.level,
			opts.eye, opts.eyeRadius, opts.eyeColor, opts.moduleShape,
			opts.moduleColor, opts.lightColor, opts.gapless, opts.background,
			opts.quietZone)

		if body, hit, err := responseCache.Get(r.Context(), key); err == nil && hit {
			w.Header().Set("Content-Type", contentType(format))
			w.Header().Set("X-Cache", "HIT")
			_, _ = w.Write(body)
			return
		}

		body, err := c.renderResponse(r.Context(), data, opts)
		if err != nil {
			logger.Warn("render failed", "err", err)
			http.Error(w, errors.UserMessage(err), statusFor(err))
			return
		}

		if err := responseCache.Set(r.Context(), key, body, ttl); err != nil {
			logger.Debug("caching response failed", "err", err)
		}
		w.Header().Set("Content-Type", contentType(format))
		w.Header().Set("X-Cache", "MISS")
		_, _ = w.Write(body)
	}
}

// renderResponse builds a renderer from request parameters and produces the
// encoded body.
func (c *CLI) renderResponse(ctx context.Context, data string, opts *renderOpts) ([]byte, error) {
	level, err := parseLevel(opts.level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLevel, err, "invalid level")
	}
	st, _, _, err := buildStyle(opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStyle, err, "invalid style")
	}

	r, err := qr.New(data,
		qr.WithStyle(st),
		qr.WithLevel(level),
		qr.WithQuietZone(opts.quietZone),
		qr.WithLogger(c.Logger),
	)
	if err != nil {
		return nil, err
	}

	size := qr.SquareSize(float64(opts.size))
	if opts.format == "svg" {
		markup, err := r.ToSVG(size, "")
		if err != nil {
			return nil, err
		}
		return []byte(markup), nil
	}

	format := raster.FormatPNG
	if normalizeExt(opts.format) == "jpg" {
		format = raster.FormatJPEG
	}
	return r.ToImageData(ctx, size, format).Await()
}

// statusFor maps render errors to HTTP status codes. Caller mistakes map to
// 400, everything else to 500.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidVersion, errors.ErrCodeInvalidLevel,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle, errors.ErrCodeInvalidColor,
		errors.ErrCodeInvalidSize, errors.ErrCodeCapacityExceeded:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// contentType maps an output format to its MIME type.
func contentType(format string) string {
	switch normalizeExt(format) {
	case "svg":
		return "image/svg+xml"
	case "jpg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func floatParam(v string) float64 {
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

func intParam(v string) int {
	n, _ := strconv.Atoi(v)
	return n
}
