package llm

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/javiermolinar/weekgrid/internal/availability"
)

type fakeClient struct {
	reply    string
	err      error
	messages []Message
}

func (f *fakeClient) Chat(_ context.Context, messages []Message) (string, error) {
	f.messages = messages
	return f.reply, f.err
}

func (f *fakeClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := f.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(extractJSON(content)), result)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []availability.Interval
	}{
		{
			name:  "single range",
			reply: `{"intervals":[{"day":"MONDAY","startTime":"09:00","endTime":"12:00"}]}`,
			want: []availability.Interval{
				{Day: availability.Monday, StartTime: "09:00", EndTime: "12:00", IsRecurring: true},
			},
		},
		{
			name: "overlaps merge and days sort",
			reply: "```json\n" + `{"intervals":[
				{"day":"friday","startTime":"22:00","endTime":"23:59"},
				{"day":"SATURDAY","startTime":"10:00","endTime":"11:00"},
				{"day":"SATURDAY","startTime":"10:30","endTime":"12:00"}
			]}` + "\n```",
			want: []availability.Interval{
				{Day: availability.Saturday, StartTime: "10:00", EndTime: "12:00", IsRecurring: true},
				{Day: availability.Friday, StartTime: "22:00", EndTime: "23:59", IsRecurring: true},
			},
		},
		{
			name: "invalid entries dropped",
			reply: `{"intervals":[
				{"day":"FUNDAY","startTime":"09:00","endTime":"10:00"},
				{"day":"TUESDAY","startTime":"09:15","endTime":"10:00"},
				{"day":"TUESDAY","startTime":"11:00","endTime":"10:00"},
				{"day":"WED","startTime":"14:00","endTime":"15:30"}
			]}`,
			want: []availability.Interval{
				{Day: availability.Wednesday, StartTime: "14:00", EndTime: "15:30", IsRecurring: true},
			},
		},
		{
			name:  "nothing available",
			reply: `{"intervals":[]}`,
			want:  []availability.Interval{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{reply: tt.reply}
			got, err := NewDescriber(client).Describe(context.Background(), "  mornings  ")
			if err != nil {
				t.Fatalf("Describe() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Describe() = %v, want %v", got, tt.want)
			}
			if len(client.messages) != 2 || client.messages[0].Role != "system" {
				t.Fatalf("messages = %+v", client.messages)
			}
			if client.messages[1].Content != "mornings" {
				t.Errorf("user message = %q, want trimmed text", client.messages[1].Content)
			}
		})
	}
}

func TestDescribeErrors(t *testing.T) {
	d := NewDescriber(&fakeClient{})
	if _, err := d.Describe(context.Background(), "   "); !errors.Is(err, ErrEmptyDescription) {
		t.Errorf("empty text error = %v, want ErrEmptyDescription", err)
	}

	boom := errors.New("connection refused")
	d = NewDescriber(&fakeClient{err: boom})
	if _, err := d.Describe(context.Background(), "weekends"); !errors.Is(err, boom) {
		t.Errorf("client error = %v, want wrapped %v", err, boom)
	}

	d = NewDescriber(&fakeClient{reply: "I am not sure"})
	if _, err := d.Describe(context.Background(), "weekends"); err == nil {
		t.Error("expected error for non-JSON reply")
	}
}
