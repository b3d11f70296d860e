package domain

// Domain contains core models and interfaces.

// Hero is the single entity served by the heroes API. ID is assigned by the server;
// zero means unassigned and is left out of request bodies.
type Hero struct {
	ID   int    `json:"id,omitempty" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// HeroRef identifies a hero either by record or by bare id.
type HeroRef interface {
	HeroID() int
}

// ID is a bare hero identifier usable wherever a HeroRef is accepted.
type ID int

func (id ID) HeroID() int { return int(id) }

func (h Hero) HeroID() int { return h.ID }
