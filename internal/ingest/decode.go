package ingest

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spboyer/tripcompare/internal/models"
)

// DefaultCurrency is assumed when a document names no currency and carries
// no recognisable symbol.
const DefaultCurrency = "INR"

var digitsPattern = regexp.MustCompile(`[\d,]+`)

// currencySymbols is checked in order.
var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"₹", "INR"},
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
}

// ParseAmount extracts the first run of digits and commas from s, so
// "₹30,000 per couple" yields 30000. Text without digits yields 0.
func ParseAmount(s string) float64 {
	m := digitsPattern.FindString(s)
	m = strings.ReplaceAll(m, ",", "")
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// DetectCurrency returns the ISO code of the first currency symbol found in
// text, or DefaultCurrency.
func DetectCurrency(text string) string {
	for _, c := range currencySymbols {
		if strings.Contains(text, c.symbol) {
			return c.code
		}
	}
	return DefaultCurrency
}

var activityType = reflect.TypeOf(models.Activity{})

// activityHook turns a bare string activity into an Activity with that name.
var activityHook mapstructure.DecodeHookFuncType = func(from, to reflect.Type, data any) (any, error) {
	if from == nil || to != activityType || from.Kind() != reflect.String {
		return data, nil
	}
	return models.Activity{Name: data.(string)}, nil
}

// amountHook parses numeric fields given as text, such as "₹30,000" or
// "5 Nights".
var amountHook mapstructure.DecodeHookFuncType = func(from, to reflect.Type, data any) (any, error) {
	if from == nil || from.Kind() != reflect.String {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Float32, reflect.Float64:
		return ParseAmount(data.(string)), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(ParseAmount(data.(string))), nil
	default:
		return data, nil
	}
}

// Decode converts a generic document, as produced by a JSON or YAML parser,
// into an itinerary. Decoding is lenient: numbers may be strings, activities
// may be strings or objects, and "dailyItinerary" is accepted for
// "itinerary". A missing currency is detected from the cost text.
func Decode(raw map[string]any) (*models.Itinerary, error) {
	doc := normalize(raw)

	var it models.Itinerary
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &it,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			activityHook,
			amountHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("creating decoder: %w", err)
	}
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding itinerary: %w", err)
	}

	if strings.TrimSpace(it.Overview.Cost.Currency) == "" {
		it.Overview.Cost.Currency = currencyFromDoc(doc)
	}
	return &it, nil
}

func normalize(raw map[string]any) map[string]any {
	doc := make(map[string]any, len(raw))
	for k, v := range raw {
		doc[k] = v
	}
	if _, ok := doc["itinerary"]; !ok {
		if days, ok := doc["dailyItinerary"]; ok {
			doc["itinerary"] = days
		}
	}
	delete(doc, "dailyItinerary")
	return doc
}

func currencyFromDoc(doc map[string]any) string {
	overview, _ := doc["overview"].(map[string]any)
	cost, _ := overview["cost"].(map[string]any)
	for _, key := range []string{"total", "perPerson"} {
		if s, ok := cost[key].(string); ok {
			return DetectCurrency(s)
		}
	}
	return DefaultCurrency
}
