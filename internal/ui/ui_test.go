package ui_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/composite/internal/ui"
)

func TestProfile_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, ui.Profile())
}

func TestNewOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	out := ui.NewOutput(&buf)
	_, _ = out.WriteString(ui.Paint(out, "plain", ui.Success))
	assert.Equal(t, "plain", buf.String())

	assert.NotNil(t, ui.NewOutput(nil))
}

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		status domain.TaskStatus
		icon   string
	}{
		{domain.StatusCompleted, ui.IconDone},
		{domain.StatusFailed, ui.IconFailed},
		{domain.StatusSkipped, ui.IconSkipped},
		{domain.StatusRunning, ui.IconRunning},
		{domain.StatusQueued, ui.IconQueued},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			icon, _ := ui.StatusIcon(tt.status)
			assert.Equal(t, tt.icon, icon)
		})
	}
}
