package swap

import (
	"errors"
	"path/filepath"

	"github.com/conn-castle/slotswap/internal/messages"
)

// State is the observed condition of a target folder or of one slot in it.
type State string

// Target and slot states. SlotAbsent applies to slots only.
const (
	StateOriginal     State = "original"
	StatePatched      State = "patched"
	StateInconsistent State = "inconsistent"
	SlotAbsent        State = "absent"
)

// SlotProbe is the observed state of one slot.
type SlotProbe struct {
	Slot          string `json:"slot"`
	ActivePresent bool   `json:"active_present"`
	BackupPresent bool   `json:"backup_present"`
	State         State  `json:"state"`
}

// ProbeResult is the observed state of a target folder.
type ProbeResult struct {
	Target string      `json:"target"`
	State  State       `json:"state"`
	Slots  []SlotProbe `json:"slots"`
	// ManifestPresent lists manifest entries, and the payload folder, that
	// currently exist in the target.
	ManifestPresent []string `json:"manifest_present,omitempty"`
}

// Probe inspects target and classifies it as original, patched, or
// inconsistent from which slot files exist. The orchestrators do not use it;
// they act on file presence step by step.
func Probe(sys System, target string, p Profile) (ProbeResult, error) {
	if sys == nil {
		return ProbeResult{}, errors.New(messages.SwapSystemRequired)
	}
	if err := requireDir(sys, RoleTarget, target); err != nil {
		return ProbeResult{}, err
	}
	result := ProbeResult{Target: target}
	for _, slot := range p.Slots {
		sp, err := probeSlot(sys, target, slot)
		if err != nil {
			return ProbeResult{}, err
		}
		result.Slots = append(result.Slots, sp)
	}
	names := append([]string(nil), p.Manifest.Files...)
	if p.Manifest.PayloadDir != "" {
		names = append(names, p.Manifest.PayloadDir)
	}
	for _, name := range names {
		present, err := exists(sys, filepath.Join(target, name))
		if err != nil {
			return ProbeResult{}, err
		}
		if present {
			result.ManifestPresent = append(result.ManifestPresent, name)
		}
	}
	result.State = classify(result.Slots)
	return result, nil
}

func probeSlot(sys System, target string, slot NameSlot) (SlotProbe, error) {
	active, err := exists(sys, filepath.Join(target, slot.Active))
	if err != nil {
		return SlotProbe{}, err
	}
	backup, err := exists(sys, filepath.Join(target, slot.Backup))
	if err != nil {
		return SlotProbe{}, err
	}
	sp := SlotProbe{Slot: slot.Name, ActivePresent: active, BackupPresent: backup}
	switch {
	case active && backup:
		sp.State = StatePatched
	case backup:
		sp.State = StateInconsistent
	case active:
		sp.State = StateOriginal
	default:
		sp.State = SlotAbsent
	}
	return sp, nil
}

// classify folds slot states into a target state. Absent slots are ignored;
// a mix of patched and original slots is inconsistent.
func classify(slots []SlotProbe) State {
	patched, original := 0, 0
	for _, sp := range slots {
		switch sp.State {
		case StateInconsistent:
			return StateInconsistent
		case StatePatched:
			patched++
		case StateOriginal:
			original++
		}
	}
	if patched > 0 && original > 0 {
		return StateInconsistent
	}
	if patched > 0 {
		return StatePatched
	}
	return StateOriginal
}
