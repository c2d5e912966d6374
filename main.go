package main

import (
	"flag"
	"hppgate/config"
	"hppgate/internal"
	"hppgate/services"
)

func main() {

	logger := internal.NewLogger("internal", false, nil)

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	logger.Info("using config file: " + *configPath)
	conf, err := config.GetConfig(*configPath)
	if err != nil {
		logger.Error("boot", err)
		return
	}

	var mongo *internal.MongoDB
	var database services.Database
	if conf.Mongo.Enabled {
		mongo, err = internal.NewMongoClient(conf)
		if err != nil {
			logger.Error("mongo client", err)
			return
		}
		database = mongo
		logger.Info("mongo client initialized")
	}

	transport := internal.NewHTTPTransport().
		SetUserAgent(conf.UserAgent).
		SetTimeout(conf.Timeout)

	gateway := internal.NewGateway(internal.ParseEnvironment(conf.Environment), transport)
	gateway.SetLogger(internal.NewLogger("gateway", conf.IsDebug, database))
	gateway.SetDatabase(database)

	server := internal.NewServer(conf)
	server.SetLogger(internal.NewLogger("server", conf.IsDebug, database))
	server.SetGateway(gateway)
	if mongo != nil {
		server.SetResultStore(mongo)
	}

	go func() {
		if err := internal.ListenMetrics(conf); err != nil {
			logger.Error("metrics server", err)
		}
	}()

	err = server.Start()
	if err != nil {
		logger.Error("server start", err)
		return
	}

}
