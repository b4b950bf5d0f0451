package config

import (
	"fmt"

	"github.com/jogru0/save-the-planet/internal/duration"
)

// Balance holds gameplay balance configuration.
type Balance struct {
	// Flyers handed out during the prolog. One flyer persuades
	// 1/InitialFlyers of a person, so the prolog recruits exactly one
	// supporter.
	InitialFlyers uint64

	// Emissions in grams.
	FlyerPrintCost     uint64
	MaximalDeficit     uint64 // unlocked at the end of the prolog
	MilestoneThreshold uint64
	SavedPerSupporter  uint64 // per year

	Population uint64

	// Research points per researcher per hour.
	ResearchPerResearcher uint64
}

// Default returns the default balance configuration.
func Default() Balance {
	return Balance{
		InitialFlyers:         10,
		FlyerPrintCost:        6,
		MaximalDeficit:        1000,
		MilestoneThreshold:    1000,
		SavedPerSupporter:     100_000,
		Population:            9_000_000_000,
		ResearchPerResearcher: 1,
	}
}

// Casual returns easier balance for casual difficulty.
func Casual() Balance {
	cfg := Default()
	cfg.InitialFlyers = 8
	cfg.FlyerPrintCost = 4
	cfg.MaximalDeficit = 2000
	cfg.SavedPerSupporter = 150_000
	return cfg
}

// Hard returns harder balance for experienced players.
func Hard() Balance {
	cfg := Default()
	cfg.InitialFlyers = 12
	cfg.FlyerPrintCost = 9
	cfg.MaximalDeficit = 500
	cfg.MilestoneThreshold = 5000
	return cfg
}

// BalanceFor returns the preset named by difficulty.
func BalanceFor(difficulty string) (Balance, error) {
	var b Balance
	switch difficulty {
	case "", "default":
		b = Default()
	case "casual":
		b = Casual()
	case "hard":
		b = Hard()
	default:
		return Balance{}, fmt.Errorf("unknown difficulty %q", difficulty)
	}
	return b, b.Validate()
}

// Validate checks that the balance can be expressed exactly.
func (b Balance) Validate() error {
	if b.InitialFlyers == 0 || duration.Granularity%b.InitialFlyers != 0 {
		return fmt.Errorf("initial flyers %d must divide the granularity", b.InitialFlyers)
	}
	if b.Population == 0 {
		return fmt.Errorf("population must be positive")
	}
	if b.MaximalDeficit < b.FlyerPrintCost {
		return fmt.Errorf("maximal deficit %d cannot pay for a %d flyer", b.MaximalDeficit, b.FlyerPrintCost)
	}
	return nil
}
