// Package cli implements the clubdir-scraper command: fetch club listings,
// append them to the dataset file or publish them to the ingest queue.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"clubdir/internal/amqp"
	"clubdir/internal/config"
	"clubdir/internal/core"
	"clubdir/internal/dataset"
	"clubdir/internal/scraper"
)

var (
	flagSources []string
	flagOut     string
	flagPublish bool
	flagFormat  string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clubdir-scraper",
		Short: "Scrape country club listings into the directory dataset",
		Long: `Fetches club listings from directory pages, estimates missing pricing
from prestige tier and state, and delivers the results to a CSV file,
the ingest queue, or stdout.`,
		RunE: runScrape,
	}

	cmd.Flags().StringSliceVar(&flagSources, "source", nil, "Listing page URL (repeatable, required)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Append scraped clubs to this CSV file")
	cmd.Flags().BoolVar(&flagPublish, "publish", false, "Publish scraped clubs to the AMQP ingest queue")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.MarkFlagRequired("source")

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if flagFormat != "text" && flagFormat != "json" {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	ctx := cmd.Context()
	sc := scraper.New()

	if flagVerbose {
		fmt.Fprintf(os.Stderr, "Fetching %d source page(s)\n", len(flagSources))
	}
	clubs, err := sc.FetchClubs(ctx, flagSources)
	if err != nil {
		return fmt.Errorf("fetching clubs: %w", err)
	}
	if flagVerbose {
		fmt.Fprintf(os.Stderr, "Scraped %d club(s)\n", len(clubs))
	}

	if flagOut != "" {
		records := make([]core.Club, len(clubs))
		for i, c := range clubs {
			records[i] = c.Club
		}
		if err := dataset.AppendClubs(flagOut, records); err != nil {
			return fmt.Errorf("appending to %s: %w", flagOut, err)
		}
		if flagVerbose {
			fmt.Fprintf(os.Stderr, "Appended %d club(s) to %s\n", len(records), flagOut)
		}
	}

	if flagPublish {
		if err := publishClubs(cmd, clubs); err != nil {
			return err
		}
	}

	return printResult(cmd, clubs)
}

func publishClubs(cmd *cobra.Command, clubs []scraper.Club) error {
	cfg := config.Load()
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return fmt.Errorf("connecting to broker: %w", err)
	}
	defer client.Close()

	for _, c := range clubs {
		msg := amqp.NewClubScrapedMessage(c.Name, c.State, c.City, c.MonthlyDues)
		msg.ContactPhone = c.ContactPhone
		msg.Website = c.Website
		msg.Address = c.Address
		msg.PrestigeLevel = c.PrestigeLevel
		msg.MembershipType = c.MembershipType
		msg.InitiationFeeCents = c.InitiationFee.Cents
		msg.OtherCosts = c.OtherCosts
		msg.Source = c.Source
		if err := client.PublishClubScraped(cmd.Context(), msg); err != nil {
			return fmt.Errorf("publishing %s: %w", c.Name, err)
		}
	}
	if flagVerbose {
		fmt.Fprintf(os.Stderr, "Published %d club(s)\n", len(clubs))
	}
	return nil
}

func printResult(cmd *cobra.Command, clubs []scraper.Club) error {
	out := cmd.OutOrStdout()
	if flagFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			ScrapedAt time.Time      `json:"scraped_at"`
			Count     int            `json:"count"`
			Clubs     []scraper.Club `json:"clubs"`
		}{ScrapedAt: time.Now().UTC(), Count: len(clubs), Clubs: clubs})
	}

	if len(clubs) == 0 {
		fmt.Fprintln(out, "No clubs found.")
		return nil
	}
	for _, c := range clubs {
		fmt.Fprintf(out, "%s - %s, %s (dues %s, initiation %s)\n",
			c.Name, c.City, c.State, c.MonthlyDues, c.InitiationFee)
	}
	return nil
}
