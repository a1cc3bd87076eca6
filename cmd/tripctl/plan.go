package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/draymaster/tripplanner/internal/domain"
	"github.com/draymaster/tripplanner/internal/hos"
	"github.com/draymaster/tripplanner/internal/logsheet"
	"github.com/draymaster/tripplanner/internal/platform/config"
	"github.com/draymaster/tripplanner/internal/platform/logger"
	"github.com/draymaster/tripplanner/internal/routeprovider"
)

type planOptions struct {
	Current   string
	Pickup    string
	Dropoff   string
	CycleHrs  float64
	StartTime string
}

func newPlanCmd() *cobra.Command {
	opts := &planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a single trip and print its timeline and log sheets as JSON",
		Example: `  tripctl plan \
    --current "Chicago, IL" \
    --pickup "Indianapolis, IN" \
    --dropoff "Louisville, KY" \
    --cycle-hrs 12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Current, "current", "", "current location (required)")
	cmd.Flags().StringVar(&opts.Pickup, "pickup", "", "pickup location (required)")
	cmd.Flags().StringVar(&opts.Dropoff, "dropoff", "", "dropoff location (required)")
	cmd.Flags().Float64Var(&opts.CycleHrs, "cycle-hrs", 0, "hours already used in the 70-hour/8-day cycle")
	cmd.Flags().StringVar(&opts.StartTime, "start-time", "", "ISO-8601 start time (defaults to now)")
	cmd.MarkFlagRequired("current")
	cmd.MarkFlagRequired("pickup")
	cmd.MarkFlagRequired("dropoff")
	return cmd
}

func runPlan(cmd *cobra.Command, opts *planOptions) error {
	startTime := time.Now().UTC()
	if opts.StartTime != "" {
		parsed, err := time.Parse(time.RFC3339, opts.StartTime)
		if err != nil {
			return fmt.Errorf("--start-time must be an ISO-8601 datetime: %w", err)
		}
		startTime = parsed
	}
	if opts.CycleHrs < 0 || opts.CycleHrs > 70 {
		return fmt.Errorf("--cycle-hrs must be between 0 and 70, got %v", opts.CycleHrs)
	}

	req := domain.TripRequest{
		CurrentLocation:     opts.Current,
		PickupLocation:      opts.Pickup,
		DropoffLocation:     opts.Dropoff,
		CurrentCycleUsedHrs: opts.CycleHrs,
		StartTime:           startTime,
	}

	cfg := config.Load()
	log := logger.Default()
	client := routeprovider.NewClient(routeprovider.Config{
		GeocodeURL:    cfg.RouteProvider.GeocodeURL,
		DirectionsURL: cfg.RouteProvider.DirectionsURL,
		AccessToken:   cfg.RouteProvider.AccessToken,
		Timeout:       cfg.RouteProvider.Timeout,
	}, nil, log)

	route, err := client.GetRoute(context.Background(), req)
	if err != nil {
		return err
	}

	timeline := hos.BuildTimeline(req, route)
	dailyLogs := logsheet.BuildLogSheets(timeline, req)

	out := struct {
		Timeline  []domain.TimelineSegment `json:"timeline"`
		DailyLogs []domain.DailyLog        `json:"log_sheets"`
	}{Timeline: timeline, DailyLogs: dailyLogs}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
