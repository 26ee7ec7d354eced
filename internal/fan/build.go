package fan

import (
	"codeberg.org/mutker/nvfan/internal/config"
	"codeberg.org/mutker/nvfan/internal/errors"
	"codeberg.org/mutker/nvfan/internal/gpu"
	"codeberg.org/mutker/nvfan/internal/logger"
)

// Build opens a session for every definition, in order. If any step fails
// the sessions opened so far are closed without restoring automatic
// control and the error is returned.
func Build(opener gpu.Opener, defs []config.Profile) ([]*Profile, error) {
	profiles := make([]*Profile, 0, len(defs))
	seen := make(map[gpu.Identity]bool, len(defs))

	fail := func(err error) ([]*Profile, error) {
		_ = CloseAll(profiles, false)
		return nil, err
	}

	for _, def := range defs {
		id := def.ID()
		if seen[id] {
			return fail(errors.New().WithData(errors.ErrDuplicateProfile, id.String()))
		}
		seen[id] = true

		ctrl, err := opener.Open(id)
		if err != nil {
			return fail(err)
		}

		profile, err := NewProfile(def, ctrl)
		if err != nil {
			if cerr := ctrl.Close(); cerr != nil {
				logger.Debug().Err(cerr).Str("profile", id.String()).Msg("Failed to close session")
			}
			return fail(err)
		}

		profiles = append(profiles, profile)
		logger.Debug().Int("gpu", id.GPU).Int("fan", id.Fan).Msg("Profile ready")
	}

	return profiles, nil
}

// CloseAll closes every profile, restoring automatic control first when
// restore is set. Every profile is visited; close failures are logged and
// returned joined.
func CloseAll(profiles []*Profile, restore bool) error {
	var errs []error

	for _, p := range profiles {
		if err := p.Close(restore); err != nil {
			logger.ErrorWithCode(err).
				Int("gpu", p.id.GPU).
				Int("fan", p.id.Fan).
				Msg("Failed to close fan session")
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
