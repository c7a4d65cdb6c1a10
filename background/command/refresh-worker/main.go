package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	refreshWorker "github.com/uvceed/pulse-api/background/refresh"
	cadence "github.com/uvceed/pulse-api/external/cadence"
	"github.com/uvceed/pulse-api/external/epidata"
	"github.com/uvceed/pulse-api/external/fcc"
	"github.com/uvceed/pulse-api/external/socrata"
	"github.com/uvceed/pulse-api/external/zippopotam"
	"github.com/uvceed/pulse-api/geo"
	"github.com/uvceed/pulse-api/ingest"
	"github.com/uvceed/pulse-api/score"
	"github.com/uvceed/pulse-api/store"
)

var logger *zap.Logger

func init() {
	logger = buildLogger()
}

func buildLogger() *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.Level.SetLevel(zapcore.InfoLevel)

	var err error
	logger, err := config.Build()
	if err != nil {
		panic("Failed to setup logger")
	}

	return logger
}

func initSentry() {
	// Sentry
	logger.Info("Initializing sentry")
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		logger.Panic("fail to initialize sentry", zap.Error(err))
	}
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("pulse")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	var configFile string
	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)
	initSentry()

	ormDB, err := gorm.Open("postgres", viper.GetString("orm.conn"))
	if err != nil {
		logger.Panic("open postgres with error", zap.Error(err))
	}

	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		logger.Panic("create mongo client with error", zap.Error(err))
	}

	err = mongoClient.Connect(context.Background())
	if nil != err {
		logger.Panic("connect mongo database with error", zap.Error(err))
	}

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

	worker := refreshWorker.NewRefreshWorker(viper.GetString("cadence.domain"), pulseCore, resolver, ingestor)
	worker.Register()
	worker.Start(cadence.BuildCadenceServiceClient(viper.GetString("cadence.conn")), logger)
}
