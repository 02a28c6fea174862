package document

import (
	"github.com/google/uuid"

	"github.com/matzehuels/graphnest/pkg/diagram"
	"github.com/matzehuels/graphnest/pkg/errors"
)

// Item kinds as spelled in documents.
const (
	KindNode      = "node"
	KindContainer = "container"
)

// Document is the exchange format for a task graph diagram.
type Document struct {
	Name  string `json:"name,omitempty" toml:"name,omitempty"`
	Items []Item `json:"items" toml:"items"`
	Edges []Edge `json:"edges" toml:"edges"`
}

// Item is one serialized diagram item. Kind defaults to "node".
type Item struct {
	ID        string  `json:"id" toml:"id"`
	Label     string  `json:"label,omitempty" toml:"label,omitempty"`
	Type      string  `json:"type,omitempty" toml:"type,omitempty"`
	Kind      string  `json:"kind,omitempty" toml:"kind,omitempty"`
	Width     float64 `json:"width" toml:"width"`
	Height    float64 `json:"height" toml:"height"`
	Container string  `json:"container,omitempty" toml:"container,omitempty"`
	Detached  bool    `json:"detached,omitempty" toml:"detached,omitempty"`
	X         float64 `json:"x" toml:"x"`
	Y         float64 `json:"y" toml:"y"`
	Default   *Rect   `json:"default,omitempty" toml:"default,omitempty"`
	Bounds    *Rect   `json:"bounds,omitempty" toml:"bounds,omitempty"`
}

// Rect is a serialized rectangle.
type Rect struct {
	X      float64 `json:"x" toml:"x"`
	Y      float64 `json:"y" toml:"y"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Edge is a serialized dependency: To depends on From.
type Edge struct {
	From string `json:"from" toml:"from"`
	To   string `json:"to" toml:"to"`
}

// ToScene builds a scene from the document. Items without an ID are given a
// random UUID; every other ID, size and reference is validated.
func ToScene(doc Document) (*diagram.Scene, error) {
	s := diagram.New()
	for i, it := range doc.Items {
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		if err := errors.ValidateItemID(it.ID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "item %d", i)
		}
		if err := errors.ValidateSize(it.ID, it.Width, it.Height); err != nil {
			return nil, err
		}
		kind, err := parseKind(it.Kind)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "item %q", it.ID)
		}

		item := diagram.Item{
			ID:        it.ID,
			Label:     it.Label,
			Type:      it.Type,
			Kind:      kind,
			Width:     it.Width,
			Height:    it.Height,
			Container: it.Container,
			Detached:  it.Detached,
			X:         it.X,
			Y:         it.Y,
		}
		switch {
		case it.Default != nil:
			item.Default = it.Default.toDiagram()
		case kind == diagram.KindContainer:
			item.Default = diagram.Rect{Width: it.Width, Height: it.Height}
		}
		if it.Bounds != nil {
			item.Bounds = it.Bounds.toDiagram()
		}
		if err := s.AddItem(item); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "item %q", it.ID)
		}
	}

	for _, e := range doc.Edges {
		if err := s.AddEdge(diagram.Edge{From: e.From, To: e.To}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "edge %s→%s", e.From, e.To)
		}
	}
	return s, nil
}

// FromScene converts a scene back into a document, keeping item and edge
// order. Containers carry their default and current bounds.
func FromScene(name string, s *diagram.Scene) Document {
	doc := Document{Name: name, Items: []Item{}, Edges: []Edge{}}
	for _, it := range s.Items() {
		out := Item{
			ID:        it.ID,
			Label:     it.Label,
			Type:      it.Type,
			Kind:      it.Kind.String(),
			Width:     it.Width,
			Height:    it.Height,
			Container: it.Container,
			Detached:  it.Detached,
			X:         it.X,
			Y:         it.Y,
		}
		if it.IsContainer() {
			def, bounds := rectFromDiagram(it.Default), rectFromDiagram(it.Bounds)
			out.Default, out.Bounds = &def, &bounds
		}
		doc.Items = append(doc.Items, out)
	}
	for _, e := range s.Edges() {
		doc.Edges = append(doc.Edges, Edge{From: e.From, To: e.To})
	}
	return doc
}

func parseKind(s string) (diagram.Kind, error) {
	switch s {
	case "", KindNode:
		return diagram.KindNode, nil
	case KindContainer:
		return diagram.KindContainer, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidDocument, "unknown kind %q", s)
	}
}

func (r Rect) toDiagram() diagram.Rect {
	return diagram.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func rectFromDiagram(r diagram.Rect) Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
