// Package project keeps the dashboard's projects and the editor sessions
// saved for them. Both stores are in memory and owned by the caller.
package project

import (
	"fmt"
	"strings"
	"time"
)

// Type describes the kind of editing done on a project.
type Type int

const (
	// TypeBasicEdit is a project with adjustments, filters or drawing.
	TypeBasicEdit Type = iota
	// TypeFaceCut is a project whose faces were cut out.
	TypeFaceCut
	// TypeBackgroundRemoved is a project whose background was removed.
	TypeBackgroundRemoved
)

var typeNames = [...]string{"basic_edit", "face_cut", "background_removed"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType parses a type name as produced by String.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if strings.EqualFold(name, s) {
			return Type(i), nil
		}
	}
	return TypeBasicEdit, fmt.Errorf("project: unknown type %q", s)
}

// Project is one entry on the dashboard.
type Project struct {
	ID         string
	Name       string
	ImageURI   string
	CreatedAt  time.Time
	ModifiedAt time.Time
	Type       Type
}

// Stats summarizes the stored projects.
type Stats struct {
	TotalProjects int
	ImagesEdited  int
	FacesCut      int
}
