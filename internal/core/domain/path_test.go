package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/composite/internal/core/domain"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in       string
		absolute bool
		name     string
		out      string
	}{
		{in: ":", absolute: true, name: "", out: ":"},
		{in: ":lib", absolute: true, name: "lib", out: ":lib"},
		{in: ":lib:sub:compile", absolute: true, name: "compile", out: ":lib:sub:compile"},
		{in: "sub:compile", absolute: false, name: "compile", out: "sub:compile"},
		{in: "::a::b", absolute: true, name: "b", out: ":a:b"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := domain.ParsePath(tt.in)
			assert.Equal(t, tt.absolute, p.IsAbsolute())
			assert.Equal(t, tt.name, p.Name())
			assert.Equal(t, tt.out, p.String())
		})
	}
}

func TestPath_ChildAndAppend(t *testing.T) {
	root := domain.RootPath()
	assert.True(t, root.IsRoot())

	lib := root.Child("lib")
	nested := lib.Child("nested")
	assert.Equal(t, ":lib", lib.String())
	assert.Equal(t, ":lib:nested", nested.String())
	assert.Equal(t, ":lib", root.Child("lib").String(), "Child must not mutate the receiver")

	project := domain.ParsePath(":sub:core")
	assert.Equal(t, ":lib:sub:core", lib.Append(project).String())

	parent, ok := nested.Parent()
	assert.True(t, ok)
	assert.True(t, parent.Equal(lib))

	_, ok = root.Parent()
	assert.False(t, ok)
	assert.Equal(t, []string{"lib", "nested"}, nested.Segments())
}
