package model

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "draft"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

type ElementKind string

const (
	ElementImage ElementKind = "image"
	ElementText  ElementKind = "text"
	ElementShape ElementKind = "shape"
)

type DesignElement struct {
	ID       uuid.UUID         `json:"id"`
	Kind     ElementKind       `json:"kind"`
	X        float64           `json:"x"`
	Y        float64           `json:"y"`
	Z        int               `json:"z"`
	Width    float64           `json:"width"`
	Height   float64           `json:"height"`
	Rotation float64           `json:"rotation"`
	Style    map[string]string `json:"style,omitempty"`
	Payload  string            `json:"payload,omitempty"`
}

type CanvasSettings struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background string  `json:"background"`
}

type ProjectMetadata struct {
	TotalElements int        `json:"total_elements"`
	HasImages     bool       `json:"has_images"`
	HasText       bool       `json:"has_text"`
	Complexity    Complexity `json:"complexity"`
}

// ProjectVersion is an immutable snapshot of a project's element tree.
// Rows are append-only; version numbers per project are gapless from 1.
type ProjectVersion struct {
	ID            uuid.UUID
	ProjectID     uuid.UUID
	VersionNumber int
	Elements      []DesignElement
	Note          string
	CreatedAt     time.Time
}

type Project struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	ProductID      uuid.UUID
	Variant        string
	Status         ProjectStatus
	Elements       []DesignElement
	Canvas         CanvasSettings
	Tags           []string
	Category       string
	Metadata       ProjectMetadata
	CurrentVersion int
	DuplicatedFrom *uuid.UUID
	DuplicateCount int
	LastOpened     *time.Time
	OpenCount      int
	LockVersion    int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DeriveMetadata recomputes the derived fields from the live element tree.
// Called before every persist so the stored metadata can never go stale.
func (p *Project) DeriveMetadata() {
	m := ProjectMetadata{TotalElements: len(p.Elements)}
	for _, el := range p.Elements {
		switch el.Kind {
		case ElementImage:
			m.HasImages = true
		case ElementText:
			m.HasText = true
		}
	}
	m.Complexity = complexityFor(len(p.Elements))
	p.Metadata = m
}

func complexityFor(n int) Complexity {
	switch {
	case n <= 3:
		return ComplexitySimple
	case n <= 8:
		return ComplexityMedium
	default:
		return ComplexityComplex
	}
}

// CloneElements deep-copies an element tree, including style maps, so
// snapshots and duplicates never alias live state.
func CloneElements(elements []DesignElement) []DesignElement {
	if elements == nil {
		return nil
	}
	out := make([]DesignElement, len(elements))
	for i, el := range elements {
		out[i] = el
		if el.Style != nil {
			out[i].Style = make(map[string]string, len(el.Style))
			for k, v := range el.Style {
				out[i].Style[k] = v
			}
		}
	}
	return out
}
