package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/welezhka/converter/deploy/config"
	"github.com/welezhka/converter/internal/converter/adapter/api_client/freecurrency"
	"github.com/welezhka/converter/internal/converter/service"
	"github.com/welezhka/converter/internal/entities"
)

// Terminal presenter over the conversion core: one fetch, one conversion,
// no server, no storage.
func main() {
	amount := flag.Float64("amount", 1, "amount to convert")
	from := flag.String("from", "USD", "source currency code")
	to := flag.String("to", "EUR", "target currency code")
	flag.Parse()

	cfg := config.NewAPIConfig()

	client := freecurrency.NewClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	defer cancel()

	table, err := client.Latest(ctx, cfg.API.Base)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to fetch rates:", err)
		os.Exit(1)
	}

	req := entities.ConversionRequest{Amount: *amount, From: *from, To: *to}

	result, err := service.Convert(req, table)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("%.2f %s = %.2f %s (rate %.6f)\n", *amount, *from, result.Amount, *to, result.Rate)
}
