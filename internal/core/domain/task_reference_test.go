package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/composite/internal/core/domain"
)

func TestNewTaskReference(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{path: ":sub:compile"},
		{path: ":compile"},
		{path: "compile", wantErr: true},
		{path: "sub:compile", wantErr: true},
		{path: ":", wantErr: true},
		{path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			ref, err := domain.NewTaskReference(":lib", tt.path)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidTaskPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.BuildID(":lib"), ref.Build())
			assert.Equal(t, tt.path, ref.Path())
		})
	}
}

func TestBuildDefinition_Clone(t *testing.T) {
	original := domain.BuildDefinition{
		RootDir:                 "/work/lib",
		DependencySubstitutions: map[string]string{"acme:lib": ":jar"},
		InjectedPluginRequests:  []string{"acme.lint"},
	}

	clone := original.Clone()
	clone.DependencySubstitutions["acme:other"] = ":other"
	clone.InjectedPluginRequests[0] = "mutated"

	assert.Len(t, original.DependencySubstitutions, 1)
	assert.Equal(t, "acme.lint", original.InjectedPluginRequests[0])
	assert.Equal(t, "lib", original.BuildName())
	assert.True(t, original.HasInjectedSettingsPlugins())
	assert.Nil(t, domain.BuildDefinition{}.Clone().DependencySubstitutions)
}

func TestLifecycleStateAndStatus(t *testing.T) {
	assert.True(t, domain.StateExecuting.Reached(domain.StateConfigured))
	assert.False(t, domain.StateSettingsLoaded.Reached(domain.StateConfigured))
	assert.True(t, domain.StateStopped.IsTerminal())
	assert.Equal(t, "TaskGraphPopulated", domain.StateTaskGraphPopulated.String())

	assert.False(t, domain.StatusQueued.IsComplete())
	assert.True(t, domain.StatusSkipped.IsComplete())
	assert.True(t, domain.StatusSkipped.IsFailure())
	assert.False(t, domain.StatusCompleted.IsFailure())
}
