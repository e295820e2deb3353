package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-storyboard-kit/internal/builder"
)

// Server は HTTP サーバーとセッションストアをまとめたものです。
type Server struct {
	srv             *http.Server
	store           *Store
	shutdownTimeout time.Duration
}

// New は AppContext から Server を組み立てます。
func New(app builder.AppContext, shutdownTimeout time.Duration) (*Server, error) {
	if app.Config == nil {
		return nil, fmt.Errorf("config は必須です")
	}

	store, err := NewStore(app.Config.KitConfig().SessionTTL, app.NewSession)
	if err != nil {
		return nil, fmt.Errorf("セッションストアの初期化に失敗しました: %w", err)
	}

	return &Server{
		srv: &http.Server{
			Addr:              app.Config.ListenAddr,
			Handler:           NewRouter(app.Catalog, app.Relay, store),
			ReadHeaderTimeout: 10 * time.Second,
		},
		store:           store,
		shutdownTimeout: shutdownTimeout,
	}, nil
}

// Handler はテストなどで直接使うための http.Handler を返します。
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run は ctx が取り消されるまでサーバーを動かし、その後グレースフルに停止します。
func (s *Server) Run(ctx context.Context) error {
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		slog.Info("Server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("サーバーの起動に失敗しました: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		slog.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("サーバーの停止に失敗しました: %w", err)
		}
		return nil
	})

	return eg.Wait()
}
