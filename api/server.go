package api

import (
	"context"
	"crypto/rsa"
	"net/http"
	"time"

	machinery "github.com/RichardKnop/machinery/v1"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/uvceed/pulse-api/external/cadence"
	"github.com/uvceed/pulse-api/geo"
	"github.com/uvceed/pulse-api/logmodule"
	"github.com/uvceed/pulse-api/schema"
	"github.com/uvceed/pulse-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Refresher produces and persists a fresh snapshot for one (zip, signal).
type Refresher interface {
	Refresh(geo *schema.Geo, signalType schema.SignalType) (*schema.SignalSnapshot, error)
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store store.PulseCore

	// ZIP resolution
	resolver geo.ZipResolver

	// signal refresh pipeline
	refresher Refresher

	// JWT private key
	jwtPrivateKey *rsa.PrivateKey

	// job pool enqueuer
	background *machinery.Server

	// workflow trigger
	cadenceClient *cadence.CadenceClient
}

// NewServer new instance of server
func NewServer(
	pulse store.PulseCore,
	resolver geo.ZipResolver,
	refresher Refresher,
	jwtKey *rsa.PrivateKey,
	background *machinery.Server,
	cadenceClient *cadence.CadenceClient) *Server {
	return &Server{
		store:         pulse,
		resolver:      resolver,
		refresher:     refresher,
		jwtPrivateKey: jwtKey,
		background:    background,
		cadenceClient: cadenceClient,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/v1")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))

	apiRoute.POST("/auth", s.requestJWT)

	// api route other than `/auth` will apply the following middleware
	apiRoute.Use(s.authMiddleware())

	signalRoute := apiRoute.Group("/signals")
	{
		signalRoute.GET("/latest", s.latestSignals)
		signalRoute.POST("/refresh", s.refreshSignals)
		signalRoute.GET("/history", s.signalHistory)
		signalRoute.GET("/summary", s.signalSummary)
	}

	apiRoute.GET("/geo/:zip", s.resolveGeo)

	adminRoute := r.Group("/admin")
	adminRoute.Use(logmodule.Ginrus("Admin"))
	adminRoute.Use(s.apikeyAuthentication(viper.GetString("server.apikey.admin")))
	{
		adminRoute.GET("/debug", s.debugData)
		adminRoute.POST("/expire", s.expireSnapshots)
		adminRoute.POST("/sweep", s.triggerSweep)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.store.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
