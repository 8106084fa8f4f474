package roster

import "testing"

func TestInferDayTitle(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name: "night word with date range",
			lines: []string{
				"NZ Open Championships - 6/12/2025 to 10/12/2025",
				"Finals Program - Night Three",
			},
			want: "Day 3 Heats - 08/12/2025",
		},
		{
			name: "night digit",
			lines: []string{
				"State Champs - 1/3/2026 to 5/3/2026",
				"Night 4 Finals",
			},
			want: "Day 4 Heats - 04/03/2026",
		},
		{
			name: "no night defaults to one",
			lines: []string{
				"State Champs - 1/3/2026 to 5/3/2026",
				"Finals Program",
			},
			want: "Day 1 Heats - 01/03/2026",
		},
		{
			name: "no date range leaves date blank",
			lines: []string{
				"Some Meet Without Dates",
				"Night Two",
			},
			want: "Day 2 Heats - ",
		},
		{
			name:  "single line",
			lines: []string{"Meet - 6/12/2025 to 7/12/2025"},
			want:  "Day 1 Heats - 06/12/2025",
		},
		{
			name:  "no lines at all",
			lines: nil,
			want:  "Day 1 Heats - ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferDayTitle(tt.lines); got != tt.want {
				t.Errorf("InferDayTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
