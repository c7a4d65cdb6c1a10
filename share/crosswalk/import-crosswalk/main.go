package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uvceed/pulse-api/share/crosswalk"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("pulse")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	var crosswalkFile string
	flag.StringVar(&crosswalkFile, "f", "zip-county-crosswalk.json", "path of the HUD ZIP-county crosswalk file")
	flag.Parse()

	ctx := context.Background()
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
		panic(err)
	}

	imported, err := crosswalk.Import(client, viper.GetString("mongo.database"), crosswalkFile)
	if err != nil {
		panic(err)
	}

	fmt.Printf("imported %d zip codes\n", imported)
}
