// Package main provides the ledger API to manage customers, accounts,
// transactions and regulatory metrics.
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/bezell-bank/ledger-core/cmd/httpserver"
	"github.com/bezell-bank/ledger-core/internal/eventpub"
	"github.com/bezell-bank/ledger-core/internal/middleware"
	"github.com/bezell-bank/ledger-core/internal/notificationservice"
	"github.com/bezell-bank/ledger-core/internal/transactionservice"
	"github.com/bezell-bank/ledger-core/pkg/configpkg"
	"github.com/bezell-bank/ledger-core/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	var publisher transactionservice.Publisher = eventpub.NoopPublisher{}

	if len(config.KafkaBrokers) > 0 {
		kafkaPublisher := eventpub.NewKafkaPublisher(config.KafkaBrokers)
		defer kafkaPublisher.Close()

		publisher = kafkaPublisher
	}

	server, err := httpserver.New(db, logger, config, publisher)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	sender := notificationservice.NewSMTPSender(
		config.SMTPHost,
		config.SMTPPort,
		config.SMTPUsername,
		config.SMTPPassword,
		config.SMTPFrom,
	)

	worker := notificationservice.NewWorker(db, sender, config.NotificationInterval)

	ctx := logger.WithContext(context.Background())
	go worker.Run(ctx)

	logger.Info().Msg("LEDGER API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
