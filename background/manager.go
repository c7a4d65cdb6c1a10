package background

import (
	"errors"
	"net/http"
	"time"

	"github.com/RichardKnop/machinery/v1"
	"github.com/jinzhu/gorm"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/uvceed/pulse-api/external/epidata"
	"github.com/uvceed/pulse-api/external/fcc"
	"github.com/uvceed/pulse-api/external/socrata"
	"github.com/uvceed/pulse-api/external/zippopotam"
	"github.com/uvceed/pulse-api/geo"
	"github.com/uvceed/pulse-api/ingest"
	"github.com/uvceed/pulse-api/score"
	"github.com/uvceed/pulse-api/store"
)

// BackgroundManager is a struct to maintain common clients
// and functions for all background workers
type BackgroundManager struct {
	store store.PulseCore

	resolver geo.ZipResolver

	ingestor *ingest.Ingestor

	taskServer *machinery.Server

	worker *machinery.Worker
}

func New(ormDB *gorm.DB, mongoClient *mongo.Client, taskServer *machinery.Server) *BackgroundManager {
	pulseCore := store.NewPulseStore(ormDB, store.NewMongoStore(
		mongoClient,
		viper.GetString("mongo.database"),
	))

	httpClient := &http.Client{
		Timeout: 15 * time.Second,
	}

	resolver := geo.NewCachingZipResolver(
		geo.NewMultipleZipResolver(
			geo.NewMongodbZipResolver(mongoClient, viper.GetString("mongo.database")),
			geo.NewWebZipResolver(
				zippopotam.New(httpClient, viper.GetString("zippopotam.endpoint")),
				fcc.New(httpClient, viper.GetString("fcc.endpoint")),
			),
		),
		mongoClient,
		viper.GetString("mongo.database"),
	)

	ingestor := ingest.New(
		pulseCore,
		epidata.New(httpClient, viper.GetString("epidata.endpoint")),
		socrata.New(httpClient, viper.GetString("socrata.endpoint"), viper.GetString("socrata.app_token")),
		score.DefaultParams(),
	)

	return &BackgroundManager{
		store:      pulseCore,
		resolver:   resolver,
		ingestor:   ingestor,
		taskServer: taskServer,
	}
}

func (m *BackgroundManager) RegisterTask(name string, taskFunc interface{}) error {
	return m.taskServer.RegisterTask(name, taskFunc)
}

// Run spawn workers to execute background jobs
func (m *BackgroundManager) Run() error {
	if m.worker != nil {
		return errors.New("background worker has started")
	}
	m.worker = m.taskServer.NewWorker("pulse-worker", 5)
	return m.worker.Launch()
}
