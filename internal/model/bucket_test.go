package model

import "testing"

func TestBucketCount(t *testing.T) {
	tests := []struct {
		name          string
		bucketMinutes int
		want          int
		wantErr       bool
	}{
		{"15 minutes", 15, 96, false},
		{"60 minutes", 60, 24, false},
		{"1440 minutes", 1440, 1, false},
		{"zero", 0, 0, true},
		{"negative", -5, 0, true},
		{"does not divide day", 13, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BucketCount(tt.bucketMinutes)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("BucketCount(%d): expected error", tt.bucketMinutes)
				}
				return
			}
			if err != nil {
				t.Fatalf("BucketCount(%d): unexpected error %v", tt.bucketMinutes, err)
			}
			if got != tt.want {
				t.Fatalf("BucketCount(%d) = %d, want %d", tt.bucketMinutes, got, tt.want)
			}
		})
	}
}

func TestBucketOf(t *testing.T) {
	if got := BucketOf(134, 15); got != 8 {
		t.Fatalf("BucketOf(134, 15) = %d, want 8", got)
	}
}

func TestBucketStartMinute(t *testing.T) {
	if got := BucketStartMinute(8, 15); got != 120 {
		t.Fatalf("BucketStartMinute(8, 15) = %d, want 120", got)
	}
}

func TestHourOf(t *testing.T) {
	if got := HourOf(8, 15); got != 2 {
		t.Fatalf("HourOf(8, 15) = %d, want 2", got)
	}
}
