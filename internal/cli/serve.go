package cli

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/phanxgames/pie"
)

const maxBodyBytes = 1 << 20

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /svg, rendering posted rows as SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			srv := &http.Server{
				Addr:              addr,
				Handler:           newRouter(configFromContext(ctx), logger),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errc := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", addr)
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				logger.Info("shutting down")
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

// newRouter exposes GET /healthz and POST /svg. /svg takes a JSON array of
// rows and optional width and height query parameters.
func newRouter(cfg pie.Config, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	r.Post("/svg", func(w http.ResponseWriter, req *http.Request) {
		vp, err := viewportFromQuery(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ds, err := ReadJSON(http.MaxBytesReader(w, req.Body, maxBodyBytes))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		vm, err := buildViewModel(ds, cfg)
		if err != nil {
			logger.Error("build view model", "err", err, "request", middleware.GetReqID(req.Context()))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		logger.Debug("render svg", "rows", len(ds.Rows), "width", vp.Width, "height", vp.Height)
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(pie.RenderSVG(vm, vp, cfg))
	})
	return r
}

func viewportFromQuery(req *http.Request) (pie.Viewport, error) {
	vp := pie.Viewport{Width: 400, Height: 400}
	q := req.URL.Query()
	for _, p := range []struct {
		name string
		dst  *float64
	}{{"width", &vp.Width}, {"height", &vp.Height}} {
		s := q.Get(p.name)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			return vp, pie.NewError(pie.ErrCodeInvalidData, "%s must be a positive number", p.name)
		}
		*p.dst = v
	}
	return vp, nil
}
