// Package config loads server configuration from the environment.
package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server struct {
		Port            int `env:"PORT" envDefault:"8080"`
		ReadTimeout     int `env:"READ_TIMEOUT" envDefault:"15"`
		WriteTimeout    int `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int `env:"SHUTDOWN_TIMEOUT" envDefault:"30"`
	} `envPrefix:"SERVER_"`
	Database struct {
		Path string `env:"PATH" envDefault:"workforce.db"`
	} `envPrefix:"DATABASE_"`
	Payroll struct {
		// WindowMonths is how many months the salary evaluation covers.
		WindowMonths int `env:"WINDOW_MONTHS" envDefault:"6"`
		// WindowEnd pins the latest month (YYYY-MM). Empty means the
		// calendar-current month; demos pin it for reproducible data.
		WindowEnd string `env:"WINDOW_END"`
	} `envPrefix:"PAYROLL_"`
	Workday struct {
		StartHour int `env:"START_HOUR" envDefault:"9"`
		EndHour   int `env:"END_HOUR" envDefault:"18"`
	} `envPrefix:"WORKDAY_"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// Return only the first error to keep logs readable.
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}
	return cfg, nil
}
