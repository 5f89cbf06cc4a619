package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/weekgrid/internal/availability"
)

// ErrEmptyDescription is returned when there is nothing to describe.
var ErrEmptyDescription = errors.New("description is empty")

const describePrompt = `You convert a person's description of their weekly availability into structured data.

Rules:
1. Days are SATURDAY, SUNDAY, MONDAY, TUESDAY, WEDNESDAY, THURSDAY, FRIDAY.
2. Times use 24-hour "HH:MM" on a 30-minute grid (minutes must be 00 or 30).
3. A range that runs to midnight ends at "23:59".
4. endTime must be after startTime. Split ranges that cross midnight at "23:59" and "00:00".
5. "weekdays" means MONDAY to FRIDAY; "weekends" means SATURDAY and SUNDAY.
6. "morning" is 06:00-12:00, "afternoon" is 12:00-17:00, "evening" is 17:00-23:59.
7. Omit days the person is not available.

Respond ONLY with valid JSON (no markdown, no explanation):
{"intervals":[{"day":"MONDAY","startTime":"09:00","endTime":"12:00"}]}`

type describeResponse struct {
	Intervals []struct {
		Day       string `json:"day"`
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	} `json:"intervals"`
}

// Describer turns natural-language availability into intervals.
type Describer struct {
	client Client
}

// NewDescriber creates a describer backed by client.
func NewDescriber(client Client) *Describer {
	return &Describer{client: client}
}

// Describe asks the model for intervals matching text.
// Entries with an unknown day or off-grid times are dropped; the result is
// in canonical form.
func (d *Describer) Describe(ctx context.Context, text string) ([]availability.Interval, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyDescription
	}

	messages := []Message{
		{Role: "system", Content: describePrompt},
		{Role: "user", Content: text},
	}

	var resp describeResponse
	if err := d.client.ChatJSON(ctx, messages, &resp); err != nil {
		return nil, fmt.Errorf("describing availability: %w", err)
	}

	intervals := make([]availability.Interval, 0, len(resp.Intervals))
	for _, raw := range resp.Intervals {
		day, err := availability.ParseWeekday(raw.Day)
		if err != nil {
			continue
		}
		intervals = append(intervals, availability.Interval{
			Day:         day,
			StartTime:   strings.TrimSpace(raw.StartTime),
			EndTime:     strings.TrimSpace(raw.EndTime),
			IsRecurring: true,
		})
	}
	return availability.Normalize(intervals), nil
}
