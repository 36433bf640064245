package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/composite/internal/core/domain"
)

func newTask(name string, deps ...string) *domain.Task {
	return &domain.Task{
		Name:         domain.NewInternedString(name),
		Dependencies: domain.NewInternedStrings(deps),
	}
}

func TestGraph_Cycle(t *testing.T) {
	tests := []struct {
		name        string
		tasks       []*domain.Task
		wantErr     bool
		errContains string
	}{
		{
			name:        "Simple Cycle A->A",
			tasks:       []*domain.Task{newTask("A", "A")},
			wantErr:     true,
			errContains: "cycle detected",
		},
		{
			name:        "Two Node Cycle A->B->A",
			tasks:       []*domain.Task{newTask("A", "B"), newTask("B", "A")},
			wantErr:     true,
			errContains: "cycle detected",
		},
		{
			name:        "Missing dependency",
			tasks:       []*domain.Task{newTask("A", "ghost")},
			wantErr:     true,
			errContains: "missing dependency",
		},
		{
			name:  "Diamond",
			tasks: []*domain.Task{newTask("A", "B", "C"), newTask("B", "D"), newTask("C", "D"), newTask("D")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := domain.NewGraph()
			for _, task := range tt.tasks {
				require.NoError(t, g.AddTask(task))
			}
			err := g.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestGraph_AddTaskDuplicate(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddTask(newTask("A")))
	err := g.AddTask(newTask("A"))
	require.ErrorIs(t, err, domain.ErrTaskAlreadyExists)
}

func TestGraph_WalkOrder(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddTask(newTask("build", "compile", "generate")))
	require.NoError(t, g.AddTask(newTask("compile", "generate")))
	require.NoError(t, g.AddTask(newTask("generate")))
	require.NoError(t, g.Validate())

	var order []string
	for task := range g.Walk() {
		order = append(order, task.Name.String())
	}
	assert.Equal(t, []string{"generate", "compile", "build"}, order)
}

func TestGraph_ClosureAndDependents(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddTask(newTask("build", "compile")))
	require.NoError(t, g.AddTask(newTask("compile", "generate")))
	require.NoError(t, g.AddTask(newTask("generate")))
	require.NoError(t, g.AddTask(newTask("lint")))

	closure := g.Closure(domain.NewInternedStrings([]string{"compile"}))
	assert.Len(t, closure, 2)
	assert.True(t, closure[domain.NewInternedString("generate")])
	assert.False(t, closure[domain.NewInternedString("lint")])

	assert.Equal(t,
		[]domain.InternedString{domain.NewInternedString("compile")},
		g.Dependents(domain.NewInternedString("generate")),
	)

	task, ok := g.TaskByPath(":generate")
	require.True(t, ok)
	assert.Equal(t, ":generate", task.Path())
}
