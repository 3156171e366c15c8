// telar-plan runs one scheduling pass from the command line, either
// over a YAML scenario file or over the catalog stored in postgres
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"telar/internal/core/engine"
	"telar/internal/core/schedule"
	"telar/internal/platform/config"
	"telar/internal/platform/logger"
	"telar/internal/platform/store"
	planrepo "telar/internal/services/api/plan/repo"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

func main() {
	_ = godotenv.Load()

	var (
		file   = flag.String("file", "", "YAML scenario file with orders, machines, configs and shifts")
		fromDB = flag.Bool("from-db", false, "load the snapshot from the configured postgres catalog")
		out    = flag.String("out", "", "write the full schedule as JSON to this path")
		toCH   = flag.Bool("to-ch", false, "insert the day slots into the configured clickhouse sink")
	)
	flag.Parse()

	l := logger.Get()

	var (
		snap schedule.Snapshot
		err  error
	)
	switch {
	case *file != "":
		snap, err = loadFile(*file)
	case *fromDB:
		snap, err = loadDB(context.Background())
	default:
		l.Fatal().Msg("one of -file or -from-db is required")
	}
	if err != nil {
		l.Fatal().Err(err).Msg("load snapshot")
	}

	sched, err := engine.Run(snap)
	if err != nil {
		l.Fatal().Err(err).Msg("scheduling run failed")
	}

	if *out != "" {
		payload, err := json.MarshalIndent(sched, "", "  ")
		if err != nil {
			l.Fatal().Err(err).Msg("encode schedule")
		}
		if err := os.WriteFile(*out, payload, 0o644); err != nil {
			l.Fatal().Err(err).Msg("write schedule")
		}
	}

	if *toCH {
		runID := uuid.NewString()
		if err := writeCH(context.Background(), runID, sched.Slots); err != nil {
			l.Fatal().Err(err).Msg("clickhouse insert")
		}
		l.Info().Str("run_id", runID).Int("slots", len(sched.Slots)).Msg("day slots inserted")
	}

	summary, err := json.MarshalIndent(sched.Summary, "", "  ")
	if err != nil {
		l.Fatal().Err(err).Msg("encode summary")
	}
	os.Stdout.Write(append(summary, '\n'))
}

func writeCH(ctx context.Context, runID string, slots []schedule.DaySlot) error {
	chCfg := config.New().Prefix("SERVICE_CLICKHOUSE_")

	st, err := store.Open(ctx, store.Config{
		CH: store.CHConfig{
			Enabled:    true,
			URL:        chCfg.MustString("DBURL"),
			ClientName: "telar",
			ClientTag:  "plan",
		},
	}, store.WithLogger(*logger.Get()))
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(ctx) }()

	return planrepo.NewCH(st.CH).InsertDaySlots(ctx, runID, slots)
}

func loadFile(path string) (schedule.Snapshot, error) {
	var snap schedule.Snapshot
	raw, err := os.ReadFile(path)
	if err != nil {
		return snap, err
	}
	return snap, yaml.Unmarshal(raw, &snap)
}

func loadDB(ctx context.Context) (schedule.Snapshot, error) {
	pgCfg := config.New().Prefix("SERVICE_PGSQL_")

	st, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 2)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
		},
	}, store.WithLogger(*logger.Get()))
	if err != nil {
		return schedule.Snapshot{}, err
	}
	defer func() { _ = st.Close(ctx) }()

	return planrepo.NewPG(st.PG).LoadSnapshot(ctx)
}
