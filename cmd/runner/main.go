// Binary runner hosts the background loop executing recurring payments
// and interest crediting against the family ledger database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/panjf2000/ants/v2"

	"github.com/taschengeld/taschengeld/internal/accountrepo"
	"github.com/taschengeld/taschengeld/internal/accountservice"
	"github.com/taschengeld/taschengeld/internal/interestservice"
	"github.com/taschengeld/taschengeld/internal/ledgerrepo"
	"github.com/taschengeld/taschengeld/internal/recurringrepo"
	"github.com/taschengeld/taschengeld/internal/runner"
	"github.com/taschengeld/taschengeld/internal/schedulerservice"
	"github.com/taschengeld/taschengeld/pkg/configpkg"
	"github.com/taschengeld/taschengeld/pkg/dbpkg"
	"github.com/taschengeld/taschengeld/pkg/logpkg"
	"github.com/taschengeld/taschengeld/pkg/schedulepkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		os.Stderr.WriteString("cannot load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logpkg.GetLogger(config)

	if err := dbpkg.Migrate(config.DBSource, config.MigrationsPath); err != nil {
		logger.Fatal().Err(err).Msg("migrations failed")
	}

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer db.Close()

	pool, err := ants.NewPool(config.WorkerPoolSize)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create worker pool")
	}
	defer pool.Release()

	policy, err := schedulepkg.ParsePolicy(config.CatchUpPolicy)
	if err != nil {
		logger.Fatal().Err(err).Msg("bad catch-up policy")
	}

	ledgerRepo := ledgerrepo.NewRepoPGS(db)
	accountRepo := accountrepo.NewRepoPGS(db)
	recurringRepo := recurringrepo.NewRepoPGS(db)

	accountService := accountservice.New(ledgerRepo, accountRepo, accountservice.LimitsFromConfig(config))
	schedulerService := schedulerservice.New(recurringRepo, accountService, pool, policy)
	interestService := interestservice.New(accountService)

	r := runner.New(logger, config.TickInterval, schedulerService, interestService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Dur("tick_interval", config.TickInterval).
		Str("catch_up_policy", string(policy)).
		Msg("runner starting")

	r.Start(ctx)
}
