package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ppvcheck/database"
	"ppvcheck/extract"
	"ppvcheck/internal/config"
	"ppvcheck/validation"
)

func newRunCmd() *cobra.Command {
	var (
		eventName string
		date      string
		clock     string
		year      int
		billingID = map[string]*string{}
		priceText = map[string]*string{}
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Validate one event's billing configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if year == 0 {
				year = time.Now().Year()
			}

			tiers, err := applyTargets(extract.TierTable(), billingID, priceText)
			if err != nil {
				return err
			}

			runs, err := database.NewRunsDB(cfg.HistoryDBPath)
			if err != nil {
				log.Printf("Run history unavailable, continuing without it: %v", err)
				runs = nil
			} else {
				defer runs.Close()
			}

			runner := validation.NewRunner(cfg, runs)
			return runner.Run(cmd.Context(), validation.Input{
				EventName: eventName,
				Date:      date,
				Clock:     clock,
				Year:      year,
				Tiers:     tiers,
			})
		},
	}

	cmd.Flags().StringVar(&eventName, "event", "", "Event name, e.g. \"Big Fight Night\"")
	cmd.Flags().StringVar(&date, "date", "", "Broadcast date, e.g. \"Saturday June 15\"")
	cmd.Flags().StringVar(&clock, "time", "", "Countdown time, e.g. 7:00p or 11:30a")
	cmd.Flags().IntVar(&year, "year", 0, "Broadcast year (defaults to the current year)")
	for _, tier := range extract.TierTable() {
		name := tier.Name
		flag := strings.ToLower(name)
		billingID[name] = cmd.Flags().String(flag, "", fmt.Sprintf("%s billing event id (blank skips the tier)", name))
		priceText[name] = cmd.Flags().String(flag+"-price", "", fmt.Sprintf("%s price, e.g. 59.99", name))
	}
	cmd.MarkFlagRequired("event")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("time")

	return cmd
}

// applyTargets copies the operator-supplied billing ids and prices onto
// the fixed tier table. A price that does not parse on an active tier
// is an input error; the operator re-runs with a corrected value.
func applyTargets(tiers []extract.Tier, billingID, priceText map[string]*string) ([]extract.Tier, error) {
	for i := range tiers {
		name := tiers[i].Name
		if id := billingID[name]; id != nil {
			tiers[i].BillingID = *id
		}
		if !tiers[i].Active() {
			continue
		}
		if pt := priceText[name]; pt != nil && *pt != "" {
			price, err := strconv.ParseFloat(*pt, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid %s price %q: %w", name, *pt, err)
			}
			tiers[i].Price = price
			tiers[i].HasPrice = true
		}
	}
	return tiers, nil
}
