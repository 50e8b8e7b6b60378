package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/whisperchain/whisperchain/src/logging"
	"github.com/whisperchain/whisperchain/src/whisper"
	"golang.org/x/time/rate"
)

//go:embed templates
var templates embed.FS

// WalletConnector is the part of the identity stub the server needs.
type WalletConnector interface {
	ConnectWallet(ctx context.Context) (string, error)
}

// Server is the local wall: an HTML page and the JSON api behind it.
//
// The connected wallet and the signed up username belong to the process,
// not to a client. Once one browser connects, every client of the wall can
// post, which is fine for a wall bound to localhost.
type Server struct {
	whispers *whisper.Service
	wallets  WalletConnector
	limiter  *rate.Limiter
	logger   *logging.SeelogWrapper

	// session state, empty until set
	mu       sync.RWMutex
	wallet   string
	username string
}

// New builds a server. writesPerSecond limits posts and reactions, zero
// means no limit.
func New(whispers *whisper.Service, wallets WalletConnector, writesPerSecond float64) *Server {
	limit := rate.Inf
	burst := 1
	if writesPerSecond > 0 {
		limit = rate.Limit(writesPerSecond)
		burst = int(writesPerSecond) + 1
	}
	return &Server{
		whispers: whispers,
		wallets:  wallets,
		limiter:  rate.NewLimiter(limit, burst),
		logger:   logging.New(),
	}
}

// SetLogLevel sets the level of the access log.
func (s *Server) SetLogLevel(level string) error {
	return s.logger.SetLevel(level)
}

// Wallet returns the connected wallet address.
func (s *Server) Wallet() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wallet
}

func (s *Server) setWallet(address string) {
	s.mu.Lock()
	s.wallet = address
	s.mu.Unlock()
}

// Username returns the name given at sign up.
func (s *Server) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *Server) setUsername(name string) {
	s.mu.Lock()
	s.username = name
	s.mu.Unlock()
}

// MiddleWareHandler tags every request with an id and logs it.
func (s *Server) MiddleWareHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := uuid.NewString()
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
		s.logger.Log.Info(fmt.Sprintf("%s %v %v %v [%d] %s", id[:8], c.Request.RemoteAddr, c.Request.Method, c.Request.URL, c.Writer.Status(), time.Since(start)))
	}
}

// limitWrites answers 429 once the write budget is spent.
func (s *Server) limitWrites() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"status": "error", "error": "slow down"})
			return
		}
		c.Next()
	}
}

// Router returns the gin engine with every route attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(s.MiddleWareHandler(), gin.Recovery())
	r.HTMLRender = loadTemplates("index.tmpl")

	r.HEAD("/", func(c *gin.Context) { // handler for the uptime robot
		c.String(http.StatusOK, "OK")
	})
	r.GET("/", s.handleWall)
	r.GET("/ping", s.handlePing)

	api := r.Group("/api/v1")
	api.GET("/whispers", s.GetWhispers)
	api.POST("/wallet", s.ConnectWallet)
	api.POST("/signup", s.Signup)
	api.POST("/whispers", s.limitWrites(), s.PostWhisper)
	api.POST("/whispers/:index/reactions/:category", s.limitWrites(), s.PostReaction)
	return r
}

// Handler is the router behind CORS.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		MaxAge:         86400,
	})
	return c.Handler(s.Router())
}

// Run will start the server listening until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) (err error) {
	defer s.logger.Flush()
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Log.Warnf("shutdown: %s", err)
		}
	}()

	logging.Log.Infof("wall running on http://%s", addr)
	err = srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return errors.Wrap(err, "listen")
}

func loadTemplates(list ...string) multitemplate.Render {
	r := multitemplate.New()
	for _, x := range list {
		templateString, err := templates.ReadFile("templates/" + x)
		if err != nil {
			panic(err)
		}
		tmplMessage, err := template.New(x).Parse(string(templateString))
		if err != nil {
			panic(err)
		}
		r.Add(x, tmplMessage)
	}
	return r
}
