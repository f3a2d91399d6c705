package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/minitools-mcp/internal/history"
	"github.com/ironsheep/minitools-mcp/internal/units"
)

// ConversionHistoryKey is the store key for recent conversions.
const ConversionHistoryKey = "conversionHistory"

// ConversionRecord is one remembered conversion.
type ConversionRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Category  string    `json:"category"`
	FromValue float64   `json:"fromValue"`
	FromUnit  string    `json:"fromUnit"`
	ToValue   float64   `json:"toValue"`
	ToUnit    string    `json:"toUnit"`
}

// Conversion is the outcome of a single Convert call.
type Conversion struct {
	Category  string  `json:"category"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Value     float64 `json:"value"`
	Result    float64 `json:"result"`
	Formatted string  `json:"formatted"`
	Formula   string  `json:"formula,omitempty"`
	Recorded  bool    `json:"recorded"`
}

// ConverterTool converts values and remembers real conversions.
type ConverterTool struct {
	conv    *units.Converter
	history *history.List[ConversionRecord]
	now     func() time.Time
}

// NewConverterTool creates a ConverterTool keeping up to limit records in store.
func NewConverterTool(conv *units.Converter, store history.Store, limit int) *ConverterTool {
	return &ConverterTool{
		conv:    conv,
		history: history.NewList[ConversionRecord](store, ConversionHistoryKey, limit, nil),
		now:     time.Now,
	}
}

// Categories lists the available unit categories.
func (t *ConverterTool) Categories() []units.Category {
	return t.conv.Categories()
}

// Convert converts value and records it unless from and to are the same unit.
func (t *ConverterTool) Convert(ctx context.Context, value float64, category, from, to string) (*Conversion, error) {
	result, err := t.conv.Convert(value, category, from, to)
	if err != nil {
		return nil, err
	}

	c := &Conversion{
		Category:  category,
		From:      from,
		To:        to,
		Value:     value,
		Result:    result,
		Formatted: units.Format(result),
		Formula:   units.Formula(category, from, to),
	}
	if from == to {
		return c, nil
	}

	rec := ConversionRecord{
		ID:        uuid.NewString(),
		Timestamp: t.now().UTC(),
		Category:  category,
		FromValue: value,
		FromUnit:  from,
		ToValue:   result,
		ToUnit:    to,
	}
	if _, err := t.history.Push(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to record conversion history: %w", err)
	}
	c.Recorded = true
	return c, nil
}

// Swap converts value in the reverse direction (to -> from).
func (t *ConverterTool) Swap(ctx context.Context, value float64, category, from, to string) (*Conversion, error) {
	return t.Convert(ctx, value, category, to, from)
}

// History returns recent conversions, newest first.
func (t *ConverterTool) History(ctx context.Context) ([]ConversionRecord, error) {
	return t.history.Get(ctx)
}

// Clear removes all remembered conversions.
func (t *ConverterTool) Clear(ctx context.Context) error {
	return t.history.Clear(ctx)
}
