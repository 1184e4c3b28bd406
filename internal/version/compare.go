package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

// CheckCompatibility checks whether an evaluation file written for requiredVersion
// can be executed by an engine running engineVersion.
//
// Compatibility Rules:
//   - If either version is "main" (development build), the check is skipped
//   - An empty required version is accepted
//   - Major versions must match exactly
//   - The engine minor version must be at least the required minor version
//
// Examples:
//   - Engine 0.3.0, required 0.3.0 -> OK
//   - Engine 0.3.1, required 0.3.0 -> OK (patch differs)
//   - Engine 0.4.0, required 0.3.0 -> OK (engine is newer)
//   - Engine 0.3.0, required 0.4.0 -> ERROR (file needs a newer engine)
//   - Engine 1.0.0, required 0.3.0 -> ERROR (major differs)
func CheckCompatibility(engineVersion, requiredVersion string) error {
	engineVersion = strings.TrimPrefix(engineVersion, "v")
	requiredVersion = strings.TrimPrefix(requiredVersion, "v")

	if requiredVersion == "" || engineVersion == "main" || requiredVersion == "main" {
		return nil
	}

	engine, err := semver.NewVersion(engineVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid engine version '%s'", engineVersion)
	}

	required, err := semver.NewVersion(requiredVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid required version '%s'", requiredVersion)
	}

	if engine.Major() != required.Major() {
		return errors.Newf(errors.ErrCodeInvalidVersion, "major version mismatch: engine is %d.x.x but file requires %d.x.x",
			engine.Major(), required.Major())
	}

	if engine.Minor() < required.Minor() {
		return errors.Newf(errors.ErrCodeInvalidVersion, "minor version mismatch: engine is %d.%d.x but file requires at least %d.%d.x",
			engine.Major(), engine.Minor(),
			required.Major(), required.Minor())
	}

	return nil
}
