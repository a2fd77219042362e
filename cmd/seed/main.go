package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/config"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/repository"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/seed"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random crew members, 2: insert random jobs, 3: insert random availability blocks, 4: insert demo data)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// create the database connection pool
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool object, it does not dial, so ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)
	contractorID := cfg.Seed.ContractorID

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("please provide a valid crew member count")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				member := utils.GenerateRandomCrewMember(contractorID)
				if err := repo.CreateCrewMember(member); err != nil {
					slog.Error("failed to insert crew member", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("crew members inserted", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("please provide a valid job count")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				job := utils.GenerateRandomJob(contractorID)
				if err := repo.CreateJob(job); err != nil {
					slog.Error("failed to insert job", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("jobs inserted", slog.Int("count", n-cnt))
		}
	case 3:
		if n <= 0 {
			slog.Error("please provide a valid block count")
			return
		}

		// blocks need existing technicians to attach to
		members, err := repo.ListCrewMembers(contractorID)
		if err != nil {
			slog.Error("failed to list crew members", slog.String("error", err.Error()))
			return
		}
		if len(members) == 0 {
			slog.Error("no crew members to attach blocks to, run -op 1 first")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			member := members[rand.Intn(len(members))]
			block := utils.GenerateRandomAvailabilityBlock(contractorID, member.ID)
			if err := repo.CreateAvailabilityBlock(block); err != nil {
				slog.Error("failed to insert availability block", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("availability blocks inserted", slog.Int("count", n-cnt))
	case 4:
		seed.SeedDemoData(repo, contractorID)
	default:
		slog.Error("unknown operation")
	}
}
