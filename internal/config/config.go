package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host             string `env:"HOST" envDefault:"localhost"`
		Port             int    `env:"PORT" envDefault:"6379"`
		Password         string `env:"PASSWORD,required"`
		ConnectTimeout   int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		SampleExpiration int    `env:"SAMPLE_EXPIRATION" envDefault:"3600"`
	} `envPrefix:"REDIS_"`
	Dispatch struct {
		ArrivalRadiusMeters   float64 `env:"ARRIVAL_RADIUS_METERS" envDefault:"100"`
		DepartureRadiusMeters float64 `env:"DEPARTURE_RADIUS_METERS" envDefault:"200"`
		NearbyRadiusMeters    float64 `env:"NEARBY_RADIUS_METERS" envDefault:"500"`
		AssumedSpeedMph       float64 `env:"ASSUMED_SPEED_MPH" envDefault:"25"`
		DefaultDayMinutes     int     `env:"DEFAULT_DAY_MINUTES" envDefault:"480"`
		MaxWorkingDays        int     `env:"MAX_WORKING_DAYS" envDefault:"30"`
		AlternativeCount      int     `env:"ALTERNATIVE_COUNT" envDefault:"3"`
	} `envPrefix:"DISPATCH_"`
	Seed struct {
		ContractorID string `env:"CONTRACTOR_ID" envDefault:"demo-contractor"`
	} `envPrefix:"SEED_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// only return the first error to keep the log readable
			return nil, aggErr.Errors[0]
		}
	}

	return cfg, nil
}
