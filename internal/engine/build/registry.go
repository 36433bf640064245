package build

import (
	"context"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/composite/internal/core/domain"
)

// Registry holds the participants of one build tree and assigns their identities.
type Registry struct {
	svc  Services
	root *Participant

	mu       sync.Mutex
	byID     map[domain.BuildID]*Participant
	included []*Participant
}

// NewRegistry creates a registry whose root build is defined by rootDefinition.
func NewRegistry(rootDefinition domain.BuildDefinition, svc Services) (*Registry, error) {
	identity := domain.BuildIdentity{
		Name:         rootDefinition.BuildName(),
		IdentityPath: domain.RootPath(),
		RootDir:      rootDefinition.RootDir,
		PluginBuild:  rootDefinition.PluginBuild,
	}
	root, err := NewParticipant(identity, rootDefinition, svc.Tracker.Root(identity.Name), svc)
	if err != nil {
		return nil, err
	}

	return &Registry{
		svc:  svc,
		root: root,
		byID: map[domain.BuildID]*Participant{root.ID(): root},
	}, nil
}

// Root returns the root build participant.
func (r *Registry) Root() *Participant {
	return r.root
}

// AddIncludedBuild registers a build included by owner. The build is
// addressed below the owner's prefix for child builds. Including a root
// directory that is already part of the tree returns the existing participant.
func (r *Registry) AddIncludedBuild(
	owner domain.BuildID,
	definition domain.BuildDefinition,
	implicit bool,
) (*Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	parent, ok := r.byID[owner]
	if !ok {
		return nil, domain.Annotate(domain.ErrInvalidBuildIdentity, "owner", string(owner))
	}
	if err := assertCanAdd(parent.Identity()); err != nil {
		return nil, err
	}

	if existing := r.findByRootDirLocked(definition.RootDir); existing != nil {
		return existing, nil
	}

	name := definition.BuildName()
	identity := domain.BuildIdentity{
		Name:         name,
		IdentityPath: parent.Identity().PrefixForChildBuilds().Child(name),
		RootDir:      definition.RootDir,
		Implicit:     implicit,
		PluginBuild:  definition.PluginBuild,
	}
	if _, exists := r.byID[identity.ID()]; exists {
		return nil, domain.Annotate(domain.ErrDuplicateBuild, "identity_path", identity.String())
	}

	participant, err := NewParticipant(identity, definition, parent.Lease(), r.svc)
	if err != nil {
		return nil, err
	}
	r.byID[participant.ID()] = participant
	r.included = append(r.included, participant)
	return participant, nil
}

// assertCanAdd rejects included builds declared by an implicit build. Builds
// declared by the user are not checked here.
func assertCanAdd(owner domain.BuildIdentity) error {
	if owner.Implicit {
		return domain.Annotate(domain.ErrCannotIncludeFromImplicit, "owner", owner.String())
	}
	return nil
}

func (r *Registry) findByRootDirLocked(rootDir string) *Participant {
	if rootDir == "" {
		return nil
	}
	clean := filepath.Clean(rootDir)
	if filepath.Clean(r.root.Identity().RootDir) == clean {
		return r.root
	}
	for _, p := range r.included {
		if filepath.Clean(p.Identity().RootDir) == clean {
			return p
		}
	}
	return nil
}

// LoadTree loads the settings of every build reachable from the root and
// registers the builds they include.
func (r *Registry) LoadTree(ctx context.Context) error {
	queue := []*Participant{r.root}
	visited := map[domain.BuildID]bool{r.root.ID(): true}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		settings, err := current.LoadSettings(ctx)
		if err != nil {
			return err
		}

		for _, spec := range settings.IncludedBuilds {
			child, err := r.AddIncludedBuild(current.ID(), spec.Definition, spec.Implicit)
			if err != nil {
				return err
			}
			if !visited[child.ID()] {
				visited[child.ID()] = true
				queue = append(queue, child)
			}
		}
	}
	return nil
}

// Get returns the participant with the given identifier.
func (r *Registry) Get(id domain.BuildID) (*Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	return p, ok
}

// Lookup returns the first registered build with the given name.
func (r *Registry) Lookup(name string) (*Participant, bool) {
	for _, p := range r.Participants() {
		if p.Identity().Name == name {
			return p, true
		}
	}
	return nil, false
}

// Included returns the included builds in registration order.
func (r *Registry) Included() []*Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.included)
}

// Participants returns the root build followed by the included builds.
func (r *Registry) Participants() []*Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Participant{r.root}, r.included...)
}

// Substitute finds the included build declaring a substitution for module.
func (r *Registry) Substitute(module string) (domain.TaskReference, bool) {
	for _, p := range r.Included() {
		path, ok := p.Definition().DependencySubstitutions[module]
		if !ok {
			continue
		}
		ref, err := p.Task(path)
		if err != nil {
			continue
		}
		return ref, true
	}
	return domain.TaskReference{}, false
}

// FinishAll finishes every build, included builds first. Each failure is
// passed to collector separately.
func (r *Registry) FinishAll(ctx context.Context, collector func(error)) {
	for _, p := range r.Included() {
		p.FinishBuild(ctx, collector)
	}
	r.root.FinishBuild(ctx, collector)
}

// StopAll stops every build, most recently included first.
func (r *Registry) StopAll() {
	included := r.Included()
	for _, p := range slices.Backward(included) {
		p.Stop()
	}
	r.root.Stop()
}
