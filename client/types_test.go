package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullyAccepted(t *testing.T) {
	tests := []struct {
		name   string
		result GradingResult
		want   bool
	}{
		{
			name: "all cases accepted",
			result: GradingResult{
				ResultState: ResultAccepted,
				ResultList: []TestCaseResult{
					{State: ResultAccepted}, {State: ResultAccepted},
				},
			},
			want: true,
		},
		{
			name: "overall accepted but one case failed",
			result: GradingResult{
				ResultState: ResultAccepted,
				ResultList: []TestCaseResult{
					{State: ResultAccepted}, {State: ResultWrongAnswer},
				},
			},
			want: false,
		},
		{
			name: "overall rejected",
			result: GradingResult{
				ResultState: ResultWrongAnswer,
				ResultList:  []TestCaseResult{{State: ResultAccepted}},
			},
			want: false,
		},
		{
			name:   "accepted with no case list",
			result: GradingResult{ResultState: ResultAccepted},
			want:   true,
		},
		{
			name:   "still pending",
			result: GradingResult{ResultState: ResultPending},
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.FullyAccepted())
		})
	}
}

func TestJavaTimeLimitMS(t *testing.T) {
	assert.Equal(t, 3000, (&ProblemInfo{TimeLimit: map[string]int{"Java": 3000}}).JavaTimeLimitMS())
	assert.Equal(t, 4000, (&ProblemInfo{TimeLimit: map[string]int{"Junit": 4000}}).JavaTimeLimitMS(),
		"falls back to the Junit limit")
	assert.Equal(t, 3000, (&ProblemInfo{TimeLimit: map[string]int{"Java": 3000, "Junit": 4000}}).JavaTimeLimitMS(),
		"Java wins over Junit")
	assert.Equal(t, 0, (&ProblemInfo{TimeLimit: map[string]int{"C++": 1000}}).JavaTimeLimitMS())
	assert.Equal(t, 0, (&ProblemInfo{}).JavaTimeLimitMS())
	assert.Equal(t, 0, (*ProblemInfo)(nil).JavaTimeLimitMS())
}

func TestDifficultyName(t *testing.T) {
	assert.Equal(t, "Noob", (&ProblemInfo{Difficulty: 1}).DifficultyName())
	assert.Equal(t, "Demon", (&ProblemInfo{Difficulty: 5}).DifficultyName())
	assert.Equal(t, "Unknown", (&ProblemInfo{Difficulty: 0}).DifficultyName())
	assert.Equal(t, "Unknown", (&ProblemInfo{Difficulty: 42}).DifficultyName())
	assert.Equal(t, "Unknown", (*ProblemInfo)(nil).DifficultyName())
}

func TestIOModeName(t *testing.T) {
	assert.Equal(t, "standard IO", (&ProblemInfo{IOMode: 0}).IOModeName())
	assert.Equal(t, "file IO", (&ProblemInfo{IOMode: 1}).IOModeName())
	assert.Equal(t, "standard IO", (*ProblemInfo)(nil).IOModeName())
}
