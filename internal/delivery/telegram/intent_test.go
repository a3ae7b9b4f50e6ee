package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		input string
		want  Intent
	}{
		{ButtonMyProfile, IntentMyProfile},
		{ButtonEdit, IntentEdit},
		{ButtonBrowse, IntentBrowse},
		{ButtonAbout, IntentAbout},
		{ButtonLike, IntentLike},
		{ButtonDislike, IntentDislike},
		{"Продолжить", IntentContinue},
		{"продолжить", IntentContinue},
		{"ДАЛЬШЕ", IntentContinue},
		{"  Продолжаем  ", IntentContinue},
		{"привет", IntentUnknown},
		{"", IntentUnknown},
		{"continue please", IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIntent(tt.input))
		})
	}
}

func TestIntentString(t *testing.T) {
	assert.Equal(t, "like", IntentLike.String())
	assert.Equal(t, "continue", IntentContinue.String())
	assert.Equal(t, "unknown", IntentUnknown.String())
}
