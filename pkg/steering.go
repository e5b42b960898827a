package larhits

import (
	"fmt"
	"strings"
)

// Steering selects which reconstruction passes run downstream of the hits.
type Steering struct {
	RunAllHitsCosmicReco   bool `hdf5:"run_all_hits_cosmic_reco"`
	RunStitching           bool `hdf5:"run_stitching"`
	RunCosmicHitRemoval    bool `hdf5:"run_cosmic_hit_removal"`
	RunSlicing             bool `hdf5:"run_slicing"`
	RunNeutrinoRecoOption  bool `hdf5:"run_neutrino_reco"`
	RunCosmicRecoOption    bool `hdf5:"run_cosmic_reco"`
	PerformSliceID         bool `hdf5:"perform_slice_id"`
	PrintOverallRecoStatus bool `hdf5:"print_reco_status"`
}

var RecoOptions = []string{
	"Full",
	"AllHitsCR",
	"NoStitchingCR",
	"AllHitsNu",
	"CRRemHitsSliceCR",
	"CRRemHitsSliceNu",
	"AllHitsSliceCR",
	"AllHitsSliceNu",
}

// ErrRecoOption is returned for a reconstruction option not in RecoOptions.
type ErrRecoOption struct {
	Option string
}

func (e *ErrRecoOption) Error() string {
	return fmt.Sprintf("unrecognized reconstruction option %q, expected one of %s", e.Option, strings.Join(RecoOptions, ", "))
}

// ParseRecoOption maps a reconstruction option name, case insensitive, to
// its steering flags.
func ParseRecoOption(option string) (Steering, error) {
	switch strings.ToLower(option) {
	case "full":
		return Steering{
			RunAllHitsCosmicReco:  true,
			RunStitching:          true,
			RunCosmicHitRemoval:   true,
			RunSlicing:            true,
			RunNeutrinoRecoOption: true,
			RunCosmicRecoOption:   true,
			PerformSliceID:        true,
		}, nil
	case "allhitscr":
		return Steering{
			RunAllHitsCosmicReco: true,
			RunStitching:         true,
		}, nil
	case "nostitchingcr":
		return Steering{
			RunCosmicRecoOption: true,
		}, nil
	case "allhitsnu":
		return Steering{
			RunNeutrinoRecoOption: true,
		}, nil
	case "crremhitsslicecr":
		return Steering{
			RunAllHitsCosmicReco: true,
			RunStitching:         true,
			RunCosmicHitRemoval:  true,
			RunSlicing:           true,
			RunCosmicRecoOption:  true,
		}, nil
	case "crremhitsslicenu":
		return Steering{
			RunAllHitsCosmicReco:  true,
			RunStitching:          true,
			RunCosmicHitRemoval:   true,
			RunSlicing:            true,
			RunNeutrinoRecoOption: true,
		}, nil
	case "allhitsslicecr":
		return Steering{
			RunSlicing:          true,
			RunCosmicRecoOption: true,
		}, nil
	case "allhitsslicenu":
		return Steering{
			RunSlicing:            true,
			RunNeutrinoRecoOption: true,
		}, nil
	}
	return Steering{}, &ErrRecoOption{Option: option}
}
