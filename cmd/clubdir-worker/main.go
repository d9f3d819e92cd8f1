package main

import (
	"context"
	"time"

	"clubdir/internal/amqp"
	"clubdir/internal/cli"
	"clubdir/internal/core"
	"clubdir/internal/dataset"
	applog "clubdir/internal/log"
	"clubdir/internal/scraper"
)

// The ingest worker consumes scraped club messages from the queue and
// appends them to the dataset file the directory serves from.
func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	logger.Info("Starting clubdir-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		return
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		if err := amqpClient.Close(); err != nil {
			logger.Error("AMQP close error", "error", err)
		}
	})

	handler := func(msg *amqp.ClubScrapedMessage) error {
		club, err := clubFromMessage(msg)
		if err != nil {
			logger.Error("Dropping invalid scraped club", "error", err, applog.FieldClubName, msg.Name)
			// Acked: a malformed club will never become valid on redelivery.
			return nil
		}
		if err := dataset.AppendClubs(cfg.DataFile, []core.Club{club}); err != nil {
			return err
		}
		logger.Info("Ingested scraped club",
			applog.FieldClubName, club.Name,
			applog.FieldState, club.State,
			applog.FieldDataFile, cfg.DataFile)
		return nil
	}

	if err := amqpClient.ConsumeClubScraped(ctx, handler); err != nil && err != context.Canceled {
		logger.Error("Message consumption failed", "error", err)
	}
	<-done
}

// clubFromMessage converts a queue message into a validated club record.
// Pricing the scraper could not find is estimated the same way the scraper
// estimates it, so ingested rows are never zero-dues.
func clubFromMessage(msg *amqp.ClubScrapedMessage) (core.Club, error) {
	state, ok := dataset.NormalizeState(msg.State)
	if !ok {
		state = msg.State
	}
	club := scraper.Club{
		Club: core.Club{
			Name:           msg.Name,
			State:          state,
			City:           msg.City,
			MonthlyDues:    core.Money{Cents: msg.MonthlyDuesCents},
			ContactPhone:   msg.ContactPhone,
			Website:        msg.Website,
			Address:        msg.Address,
			PrestigeLevel:  msg.PrestigeLevel,
			MembershipType: msg.MembershipType,
			InitiationFee:  core.Money{Cents: msg.InitiationFeeCents},
			OtherCosts:     msg.OtherCosts,
		},
		Source: msg.Source,
	}
	scraper.NewEstimator(nil).Enhance(&club)
	if err := club.Validate(); err != nil {
		return core.Club{}, err
	}
	return club.Club, nil
}
