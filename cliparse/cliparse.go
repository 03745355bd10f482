package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKeySalt string
	InviteSalt   string

	// Rating policy knobs. Base rating must be chosen once per deployment
	// and never changed afterwards; mixing bases corrupts the scale.
	BaseRating          float64
	LowHistoryThreshold int
	DiscoveryRate       float64
}

// ParseFlags validates flags and fills in environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("duelrank", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Group admin key salt (prefer env)")
	fs.StringVar(&cfg.InviteSalt, "invite-salt", "", "Invite slug salt (prefer env)")

	// Rating policy
	fs.Float64Var(&cfg.BaseRating, "base-rating", 0, "Base Elo rating for new items")
	fs.IntVar(&cfg.LowHistoryThreshold, "low-history", 0, "Comparison count below which an item is cold-start")
	fs.Float64Var(&cfg.DiscoveryRate, "discovery-rate", -1, "Probability of a wide-gap discovery matchup")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3419 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	if cfg.InviteSalt == "" {
		cfg.InviteSalt = os.Getenv("INVITE_SLUG_SALT")
	}
	if cfg.InviteSalt == "" {
		return Config{}, errors.New("INVITE_SLUG_SALT required")
	}

	// Rating policy defaults
	if cfg.BaseRating == 0 {
		if v := os.Getenv("BASE_RATING"); v != "" {
			base, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return Config{}, errors.New("invalid BASE_RATING env variable")
			}
			cfg.BaseRating = base
		} else {
			cfg.BaseRating = 1200
		}
	}
	if cfg.BaseRating < 0 {
		return Config{}, errors.New("base rating must be non-negative")
	}

	if cfg.LowHistoryThreshold == 0 {
		if v := os.Getenv("LOW_HISTORY_THRESHOLD"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, errors.New("invalid LOW_HISTORY_THRESHOLD env variable")
			}
			cfg.LowHistoryThreshold = n
		} else {
			cfg.LowHistoryThreshold = 5
		}
	}

	if cfg.DiscoveryRate < 0 {
		if v := os.Getenv("DISCOVERY_RATE"); v != "" {
			rate, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return Config{}, errors.New("invalid DISCOVERY_RATE env variable")
			}
			cfg.DiscoveryRate = rate
		} else {
			cfg.DiscoveryRate = 0.15
		}
	}
	if cfg.DiscoveryRate < 0 || cfg.DiscoveryRate > 1 {
		return Config{}, errors.New("discovery rate must be between 0 and 1")
	}

	return cfg, nil
}
