// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tfctl/resfilter/internal/log"
)

// DescriptorNames lists the project descriptor file names, in lookup order.
var DescriptorNames = []string{"resfilter-project.yaml", "project.yaml"}

// Resource is a resource directory declared by the project build.
type Resource struct {
	Directory string   `yaml:"directory" json:"directory"`
	Filtering bool     `yaml:"filtering" json:"filtering"`
	Includes  []string `yaml:"includes,omitempty" json:"includes,omitempty"`
	Excludes  []string `yaml:"excludes,omitempty" json:"excludes,omitempty"`
}

// Build holds the build section of a project descriptor.
type Build struct {
	Filters   []string   `yaml:"filters,omitempty" json:"filters,omitempty"`
	Resources []Resource `yaml:"resources,omitempty" json:"resources,omitempty"`
}

// Profile is a named set of properties and filters that can be activated on
// top of the base project.
type Profile struct {
	Properties Properties `yaml:"properties,omitempty" json:"properties,omitempty"`
	Filters    []string   `yaml:"filters,omitempty" json:"filters,omitempty"`
}

// Project is the build metadata a filtering request refers to.
type Project struct {
	GroupID     string             `yaml:"groupId" json:"groupId"`
	ArtifactID  string             `yaml:"artifactId" json:"artifactId"`
	Version     string             `yaml:"version" json:"version"`
	Name        string             `yaml:"name,omitempty" json:"name,omitempty"`
	Description string             `yaml:"description,omitempty" json:"description,omitempty"`
	Properties  Properties         `yaml:"properties,omitempty" json:"properties,omitempty"`
	Build       Build              `yaml:"build" json:"build"`
	Profiles    map[string]Profile `yaml:"profiles,omitempty" json:"-"`

	// BaseDir is the absolute directory the descriptor was loaded from. It is
	// never read from the descriptor itself.
	BaseDir string `yaml:"-" json:"baseDir"`
	// Descriptor is the absolute path of the loaded descriptor, empty when the
	// project was synthesized from the directory alone.
	Descriptor string `yaml:"-" json:"descriptor,omitempty"`
}

// LoadProject reads the project descriptor from dir. When no descriptor exists
// a minimal project named after the directory is returned so that a request
// can still be assembled for plain resource trees.
func LoadProject(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project dir: %w", err)
	}

	for _, name := range DescriptorNames {
		path := filepath.Join(abs, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read project descriptor: %w", err)
		}

		var p Project
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to parse project descriptor %s: %w", path, err)
		}
		p.BaseDir = abs
		p.Descriptor = path
		if p.ArtifactID == "" {
			p.ArtifactID = filepath.Base(abs)
		}
		log.Debugf("project loaded: descriptor=%s coordinates=%s", path, p.Coordinates())
		return &p, nil
	}

	log.Debugf("no project descriptor in %s, using directory name", abs)
	return &Project{
		ArtifactID: filepath.Base(abs),
		BaseDir:    abs,
	}, nil
}

// Activate merges the named profiles into the project in the order given.
// Profile properties override base properties and profile filters are
// appended to the build filters. Unknown profile names are collected into the
// returned error; known ones are still applied.
func (p *Project) Activate(profiles ...string) error {
	var errs []error
	for _, name := range profiles {
		profile, ok := p.Profiles[name]
		if !ok {
			errs = append(errs, fmt.Errorf("unknown profile: %s", name))
			continue
		}
		p.Properties = p.Properties.Merge(profile.Properties)
		p.Build.Filters = append(p.Build.Filters, profile.Filters...)
		log.Debugf("profile activated: name=%s", name)
	}
	return errors.Join(errs...)
}

// Coordinates returns the group:artifact:version triple. Missing parts are
// left empty.
func (p *Project) Coordinates() string {
	if p == nil {
		return ""
	}
	return p.GroupID + ":" + p.ArtifactID + ":" + p.Version
}

// BuildFilters returns the filters declared in the project build section. A
// nil project has none.
func (p *Project) BuildFilters() []string {
	if p == nil {
		return nil
	}
	return p.Build.Filters
}
