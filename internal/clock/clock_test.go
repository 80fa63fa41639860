package clock

import (
	"testing"
	"time"
)

// ist mirrors the production timezone without loading tzdata.
var ist = time.FixedZone("IST", 5*3600+1800)

func at(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, ist)
}

func TestEvaluate(t *testing.T) {
	// 2025-08-25 is a Monday.
	tests := []struct {
		name          string
		now           time.Time
		wantStatus    Status
		wantNextCheck time.Time
	}{
		{
			name:          "weekday before open",
			now:           at(2025, time.August, 25, 8, 0, 0),
			wantStatus:    BeforeOpen,
			wantNextCheck: at(2025, time.August, 25, 9, 15, 2),
		},
		{
			name:          "one second before open threshold",
			now:           at(2025, time.August, 25, 9, 15, 1),
			wantStatus:    BeforeOpen,
			wantNextCheck: at(2025, time.August, 25, 9, 15, 2),
		},
		{
			name:       "exactly at open threshold",
			now:        at(2025, time.August, 25, 9, 15, 2),
			wantStatus: Open,
		},
		{
			name:       "mid session",
			now:        at(2025, time.August, 25, 12, 30, 45),
			wantStatus: Open,
		},
		{
			name:       "exactly at close threshold",
			now:        at(2025, time.August, 25, 15, 30, 0),
			wantStatus: Open,
		},
		{
			name:          "after close",
			now:           at(2025, time.August, 25, 15, 30, 1),
			wantStatus:    AfterClose,
			wantNextCheck: at(2025, time.August, 26, 9, 15, 2),
		},
		{
			name:          "late evening",
			now:           at(2025, time.August, 25, 22, 0, 0),
			wantStatus:    AfterClose,
			wantNextCheck: at(2025, time.August, 26, 9, 15, 2),
		},
		{
			name:          "saturday morning",
			now:           at(2025, time.August, 30, 8, 0, 0),
			wantStatus:    Weekend,
			wantNextCheck: at(2025, time.August, 31, 9, 15, 2),
		},
		{
			name:          "saturday during session hours",
			now:           at(2025, time.August, 30, 11, 0, 0),
			wantStatus:    Weekend,
			wantNextCheck: at(2025, time.August, 31, 9, 15, 2),
		},
		{
			name:          "sunday evening rolls to monday open",
			now:           at(2025, time.August, 31, 23, 59, 59),
			wantStatus:    Weekend,
			wantNextCheck: at(2025, time.September, 1, 9, 15, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.now)
			if got.Status != tt.wantStatus {
				t.Fatalf("Status = %v, want %v", got.Status, tt.wantStatus)
			}
			if tt.wantStatus == Open {
				if !got.NextCheck.IsZero() {
					t.Errorf("NextCheck = %v, want zero for open session", got.NextCheck)
				}
				return
			}
			if !got.NextCheck.Equal(tt.wantNextCheck) {
				t.Errorf("NextCheck = %v, want %v", got.NextCheck, tt.wantNextCheck)
			}
		})
	}
}

// Every minute strictly inside the window on a trading weekday is Open.
func TestEvaluate_OpenInterval(t *testing.T) {
	day := at(2025, time.August, 27, 0, 0, 0) // Wednesday
	start := day.Add(9*time.Hour + 16*time.Minute)
	end := day.Add(15*time.Hour + 29*time.Minute)

	for ts := start; !ts.After(end); ts = ts.Add(time.Minute) {
		if got := Evaluate(ts); got.Status != Open {
			t.Fatalf("Evaluate(%v).Status = %v, want Open", ts, got.Status)
		}
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{Open, "open"},
		{BeforeOpen, "before_open"},
		{AfterClose, "after_close"},
		{Weekend, "weekend"},
		{Status(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
