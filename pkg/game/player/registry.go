package player

import (
	"github.com/repeale/fp-go"

	"github.com/cfoust/frag/pkg/physics"
)

// Registry maps physics bodies back to the actors that own them. Actors live
// in an arena indexed by their ID.
type Registry struct {
	actors []*Actor
	byBody map[physics.Handle]ID
}

func NewRegistry() *Registry {
	return &Registry{
		byBody: make(map[physics.Handle]ID),
	}
}

// Add assigns the actor an ID and indexes its body. The actor must already
// have a body.
func (r *Registry) Add(a *Actor) ID {
	if !a.Body.Valid() {
		panic("player: actor " + a.Name + " has no body")
	}
	if _, exists := r.byBody[a.Body]; exists {
		panic("player: body " + a.Body.String() + " is already registered")
	}

	a.ID = ID(len(r.actors))
	r.actors = append(r.actors, a)
	r.byBody[a.Body] = a.ID
	return a.ID
}

func (r *Registry) Get(id ID) (*Actor, bool) {
	if int(id) >= len(r.actors) {
		return nil, false
	}
	return r.actors[id], true
}

// ByBody resolves a physics body to its actor. World geometry has no actor.
func (r *Registry) ByBody(body physics.Handle) (*Actor, bool) {
	id, ok := r.byBody[body]
	if !ok {
		return nil, false
	}
	return r.Get(id)
}

func (r *Registry) All() []*Actor {
	return r.actors
}

func (r *Registry) Living() []*Actor {
	return fp.Filter(func(a *Actor) bool { return a.Alive() })(r.actors)
}

func (r *Registry) Len() int {
	return len(r.actors)
}
