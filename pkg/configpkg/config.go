// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/taschengeld/taschengeld/pkg/schedulepkg"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environement variables.
type Config struct {
	DBDriver        string        `mapstructure:"DB_DRIVER"`
	DBSource        string        `mapstructure:"DB_SOURCE"`
	MigrationsPath  string        `mapstructure:"MIGRATIONS_PATH"`
	TickInterval    time.Duration `mapstructure:"TICK_INTERVAL"`
	WorkerPoolSize  int           `mapstructure:"WORKER_POOL_SIZE"`
	DepositMin      string        `mapstructure:"DEPOSIT_MIN"`
	DepositMax      string        `mapstructure:"DEPOSIT_MAX"`
	InterestRateMax string        `mapstructure:"INTEREST_RATE_MAX"`
	CatchUpPolicy   string        `mapstructure:"CATCH_UP_POLICY"`
	Environement    string        `mapstructure:"GO_ENV"`
}

// Load read configuration from file or environment variables.
//
// A configuration that fails validation is rejected here, before any
// component starts.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("TICK_INTERVAL", 5*time.Minute)
	viper.SetDefault("WORKER_POOL_SIZE", 4)
	viper.SetDefault("DEPOSIT_MIN", "0.01")
	viper.SetDefault("DEPOSIT_MAX", "10000")
	viper.SetDefault("INTEREST_RATE_MAX", "100")
	viper.SetDefault("CATCH_UP_POLICY", string(schedulepkg.PolicyCatchUpOnce))
	viper.SetDefault("MIGRATIONS_PATH", "db/migrations")

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	if err := c.validate(); err != nil {
		return c, err
	}

	return c, nil
}

func (c Config) validate() error {
	var problems []string

	if c.DBDriver == "" {
		problems = append(problems, "DB_DRIVER is required")
	}

	if c.DBSource == "" {
		problems = append(problems, "DB_SOURCE is required")
	}

	if c.TickInterval <= 0 {
		problems = append(problems, "TICK_INTERVAL must be greater than 0")
	}

	if c.WorkerPoolSize <= 0 {
		problems = append(problems, "WORKER_POOL_SIZE must be greater than 0")
	}

	min, errMin := decimal.NewFromString(c.DepositMin)
	if errMin != nil {
		problems = append(problems, "DEPOSIT_MIN must be a decimal number")
	}

	max, errMax := decimal.NewFromString(c.DepositMax)
	if errMax != nil {
		problems = append(problems, "DEPOSIT_MAX must be a decimal number")
	}

	if errMin == nil && errMax == nil {
		if min.LessThanOrEqual(decimal.Zero) || max.LessThan(min) {
			problems = append(problems, "deposit limits must satisfy 0 < DEPOSIT_MIN <= DEPOSIT_MAX")
		}
	}

	if rate, err := decimal.NewFromString(c.InterestRateMax); err != nil {
		problems = append(problems, "INTEREST_RATE_MAX must be a decimal number")
	} else if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		problems = append(problems, "INTEREST_RATE_MAX must lie between 0 and 100")
	}

	if _, err := schedulepkg.ParsePolicy(c.CatchUpPolicy); err != nil {
		problems = append(problems, "CATCH_UP_POLICY must be catch_up_once or pay_all_missed")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, ", "))
	}

	return nil
}
