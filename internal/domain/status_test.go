package domain

import "testing"

func TestClassify(t *testing.T) {
	k := DefaultStatusKeywords()
	tests := []struct {
		raw  string
		want Status
	}{
		{"match", StatusMatch},
		{"Matched OK", StatusMatch},
		{"مطابق", StatusMatch},
		{"extra", StatusGain},
		{"Increase found", StatusGain},
		{"فائض", StatusGain},
		{"+", StatusGain},
		{"missing", StatusLoss},
		{"decrease", StatusLoss},
		{"ناقص", StatusLoss},
		{"-", StatusLoss},
		{"", StatusUnknown},
		{"whatever", StatusUnknown},
	}
	for _, tt := range tests {
		if got := k.Classify(tt.raw); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestClassifyMatchWinsOverLoss(t *testing.T) {
	k := DefaultStatusKeywords()
	// "mismatch" contains both "match" and "miss"; match keywords are
	// checked first
	if got := k.Classify("mismatch"); got != StatusMatch {
		t.Errorf("Classify(mismatch) = %s, want match", got)
	}
}

func TestCompareQuantities(t *testing.T) {
	tests := []struct {
		physical, system int
		want             Status
	}{
		{10, 5, StatusGain},
		{5, 10, StatusLoss},
		{7, 7, StatusMatch},
		{0, 0, StatusMatch},
	}
	for _, tt := range tests {
		if got := CompareQuantities(tt.physical, tt.system); got != tt.want {
			t.Errorf("CompareQuantities(%d, %d) = %s, want %s", tt.physical, tt.system, got, tt.want)
		}
	}
}
