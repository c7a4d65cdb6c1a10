package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uvceed/pulse-api/external/epidata"
	"github.com/uvceed/pulse-api/external/fcc"
	"github.com/uvceed/pulse-api/external/socrata"
	"github.com/uvceed/pulse-api/external/zippopotam"
	"github.com/uvceed/pulse-api/geo"
	"github.com/uvceed/pulse-api/ingest"
	"github.com/uvceed/pulse-api/score"
	"github.com/uvceed/pulse-api/store"
)

const (
	logPrefix      = "cron"
	recentZipDays  = 30
	retentionDays  = 90
	defaultTimeout = 15 * time.Second
)

type Cron interface {
	Run()
}

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("pulse")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
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

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	ormDB, err := gorm.Open("postgres", viper.GetString("orm.conn"))
	if err != nil {
		log.Panicf("open postgres with error: %s", err)
	}

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}

	err = mongoClient.Connect(initialCtx)
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}

	pulseCore := store.NewPulseStore(ormDB, store.NewMongoStore(
		mongoClient,
		viper.GetString("mongo.database"),
	))

	httpClient := &http.Client{
		Timeout: defaultTimeout,
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

	refreshCron := newRefreshCrawler(pulseCore, resolver, ingestor)
	refreshCron.Run()

	if cancelInitialization != nil {
		cancelInitialization()
	}

	expireCron := newExpireCrawler(pulseCore, retentionDays)
	expireCron.Run()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := ormDB.Close(); err != nil {
		log.Error(err)
	}

	if mongoClient != nil {
		log.Info("Shutting down mongo store")
		_ = mongoClient.Disconnect(ctx)
	}
}
