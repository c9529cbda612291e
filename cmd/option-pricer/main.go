// Command option-pricer prices European options under Black-Scholes-Merton,
// reports their Greeks and recovers implied volatility from market prices.
package main

import (
	"os"

	"github.com/contactkeval/option-pricer/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}
