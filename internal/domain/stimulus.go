package domain

import (
	"errors"
	"fmt"
	"strings"
)

const DefaultSetDirFormat = "Set %s_rs/"

// Descriptor is one presentation-ready trial.
type Descriptor struct {
	Trial       int
	Image       string
	Type        TrialKind
	CorrectResp IdealResponse
	Lag         int
}

func SetDirectory(format, stimSet string) string {
	if strings.TrimSpace(format) == "" {
		format = DefaultSetDirFormat
	}
	return fmt.Sprintf(format, stimSet)
}

func ImageName(identity int, kind TrialKind) string {
	suffix := "a"
	if kind == KindLureSecond {
		suffix = "b"
	}
	return fmt.Sprintf("%03d%s.jpg", identity, suffix)
}

func RenderTrials(trials []Trial, pools Pools, setDir string) ([]Descriptor, error) {
	descriptors := make([]Descriptor, 0, len(trials))
	for i, trial := range trials {
		identity, err := pools.Lookup(trial.Kind, trial.StimIndex)
		if err != nil {
			var mapping *DecodeMappingError
			if errors.As(err, &mapping) {
				mapping.Row = i + 1
			}
			return nil, fmt.Errorf("render trial %d: %w", i, err)
		}

		descriptors = append(descriptors, Descriptor{
			Trial:       i,
			Image:       setDir + ImageName(identity, trial.Kind),
			Type:        trial.Kind,
			CorrectResp: trial.IdealResponse,
			Lag:         trial.Lag,
		})
	}
	return descriptors, nil
}
