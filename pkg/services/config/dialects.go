package config

import (
	"context"
	"fmt"

	"github.com/de-tools/bp-atlas/pkg/models/domain"
	"github.com/de-tools/bp-atlas/pkg/services/extraction"
	"gopkg.in/ini.v1"
)

const DefaultDialectName = "default"

type DialectRegistry interface {
	GetProfiles(ctx context.Context) ([]domain.DialectProfile, error)
	GetDialect(ctx context.Context, name string) (extraction.Dialect, error)
}

type iniRegistry struct {
	cfg  *ini.File
	path string
}

// NewDialectRegistry loads report dialects from an ini file. Each section
// names one dialect; keys left out keep the built-in value. An empty path
// yields a registry holding only the built-in dialect.
func NewDialectRegistry(path string) (DialectRegistry, error) {
	if path == "" {
		return &iniRegistry{cfg: ini.Empty()}, nil
	}
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dialects: %w", err)
	}
	return &iniRegistry{cfg: cfg, path: path}, nil
}

func (r *iniRegistry) GetProfiles(_ context.Context) ([]domain.DialectProfile, error) {
	profiles := []domain.DialectProfile{{Name: DefaultDialectName, Source: "builtin"}}
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) == 0 || section.Name() == DefaultDialectName {
			continue
		}
		profiles = append(profiles, domain.DialectProfile{Name: section.Name(), Source: r.path})
	}
	return profiles, nil
}

func (r *iniRegistry) GetDialect(_ context.Context, name string) (extraction.Dialect, error) {
	if name == "" {
		name = DefaultDialectName
	}

	d := extraction.DefaultDialect()
	section, err := r.cfg.GetSection(name)
	if err != nil {
		if name == DefaultDialectName {
			return d, nil
		}
		return extraction.Dialect{}, fmt.Errorf("dialect %s not found", name)
	}

	d.Name = name
	d.HeaderSignature = section.Key("header_signature").MustString(d.HeaderSignature)
	d.SummaryMarker = section.Key("summary_marker").MustString(d.SummaryMarker)
	d.SummaryLabels.Daytime = section.Key("summary_daytime").MustString(d.SummaryLabels.Daytime)
	d.SummaryLabels.Night = section.Key("summary_nighttime").MustString(d.SummaryLabels.Night)
	d.SummaryLabels.Overall = section.Key("summary_overall").MustString(d.SummaryLabels.Overall)
	d.TypeWindow = section.Key("type_window").MustInt(d.TypeWindow)

	markerKeys := map[domain.ReadingType]string{
		domain.ReadingTypeInitialization: "marker_initialization",
		domain.ReadingTypeCuff:           "marker_cuff",
		domain.ReadingTypeOnDemandPhone:  "marker_on_demand",
	}
	markers := make([]extraction.TypeMarker, 0, len(d.TypeMarkers))
	for _, m := range d.TypeMarkers {
		m.Marker = section.Key(markerKeys[m.Type]).MustString(m.Marker)
		markers = append(markers, m)
	}
	d.TypeMarkers = markers

	if _, err := extraction.NewExtractor(d); err != nil {
		return extraction.Dialect{}, err
	}
	return d, nil
}
