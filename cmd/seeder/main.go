package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
)

// seed phrases grouped by the sentiment they lean toward.
var positiveTexts = []string{
	"Absolutely love this product, exceeded every expectation.",
	"The support team resolved my issue in minutes, fantastic service.",
	"Best purchase I have made all year, highly recommended.",
	"The new release is wonderful, everything feels faster.",
	"Delivery was early and the packaging was excellent.",
	"Five stars, the quality is outstanding for the price.",
	"My whole team is happy with the switch, great decision.",
	"The onboarding flow is delightful and easy to follow.",
	"Brilliant update, the interface is cleaner than ever.",
	"Superb build quality, it feels like it will last forever.",
}

var negativeTexts = []string{
	"Terrible experience, the device stopped working after two days.",
	"Support never answered my emails, absolutely awful service.",
	"The update broke everything, worst release so far.",
	"Horrible packaging, the item arrived cracked and unusable.",
	"I regret this purchase, complete waste of money.",
	"The app crashes constantly, unusable in its current state.",
	"Misleading description, nothing like the photos.",
	"Shipping took a month and nobody could tell me why.",
	"The battery dies within an hour, very disappointing.",
	"Cancellation was a nightmare, they kept charging me.",
}

var neutralTexts = []string{
	"The package arrived on Tuesday as scheduled.",
	"It comes in three colors and two sizes.",
	"The manual is available as a PDF on the website.",
	"I ordered the standard edition with default settings.",
	"The store opens at nine and closes at six.",
	"The invoice listed the same price as the checkout page.",
	"It uses a USB-C connector and ships with a cable.",
	"The subscription renews on the first of the month.",
	"Installation took about fifteen minutes.",
	"The firmware version is printed on the box.",
}

var categories = []string{"reviews", "support", "social", "survey"}
var sources = []string{"web", "mobile", "email"}

var (
	outFile = flag.String("out", filepath.Join("data", "sentiment_data.json"), "output file for generated records")
	count   = flag.Int("count", 100, "number of records to generate")
	seed    = flag.Int64("seed", 42, "random seed")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

type record struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
	Source   string `json:"source"`
}

func generate(n int, rng *rand.Rand) []record {
	pools := [][]string{positiveTexts, negativeTexts, neutralTexts}

	records := make([]record, n)
	for i := range records {
		pool := pools[rng.Intn(len(pools))]
		records[i] = record{
			ID:       i + 1,
			Text:     pool[rng.Intn(len(pool))],
			Category: categories[rng.Intn(len(categories))],
			Source:   sources[rng.Intn(len(sources))],
		}
	}
	return records
}

func main() {
	rng := rand.New(rand.NewSource(*seed))
	records := generate(*count, rng)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		panic(err)
	}

	if dir := filepath.Dir(*outFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			panic(err)
		}
	}
	if err := os.WriteFile(*outFile, data, 0o644); err != nil {
		panic(err)
	}

	slog.Info("wrote seed data", "file", *outFile, "records", len(records))
}
