// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestParseNullInt64(t *testing.T) {
	tests := []struct {
		in        string
		wantValid bool
		wantVal   int64
	}{
		{"7", true, 7},
		{"", false, 0},
		{"0", false, 0},
		{"-3", false, 0},
		{"abc", false, 0},
	}

	for _, tt := range tests {
		got := ParseNullInt64(tt.in)
		if got.Valid != tt.wantValid || got.Int64 != tt.wantVal {
			t.Errorf("ParseNullInt64(%q) = {%d %v}, want {%d %v}",
				tt.in, got.Int64, got.Valid, tt.wantVal, tt.wantValid)
		}
	}
}
