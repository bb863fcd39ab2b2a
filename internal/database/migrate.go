package database

import (
	"errors"
	"fmt"

	"github.com/lawnchairsociety/screenworld/internal/logger"
)

// CopyResult counts what CopyScenarios did.
type CopyResult struct {
	Copied  int
	Skipped int
}

// CopyScenarios copies every scenario in src that dst does not already hold
// under the same name. Ids are reassigned by dst; creation times are kept.
// With dryRun nothing is written but the counts are still reported.
func CopyScenarios(src, dst *Database, dryRun bool) (CopyResult, error) {
	var res CopyResult

	list, err := src.ListScenarios()
	if err != nil {
		return res, fmt.Errorf("failed to list source scenarios: %w", err)
	}

	for _, summary := range list {
		_, err := dst.GetScenarioByName(summary.Name)
		switch {
		case err == nil:
			logger.Debug("Scenario already present", "name", summary.Name)
			res.Skipped++
			continue
		case !errors.Is(err, ErrScenarioNotFound):
			return res, fmt.Errorf("failed to look up %q: %w", summary.Name, err)
		}

		if dryRun {
			res.Copied++
			continue
		}

		s, err := src.GetScenario(summary.ID)
		if err != nil {
			return res, fmt.Errorf("failed to read scenario %d: %w", summary.ID, err)
		}
		s.ID = 0
		if _, err := dst.SaveScenario(s); err != nil {
			return res, fmt.Errorf("failed to copy %q: %w", s.Name, err)
		}
		res.Copied++
	}
	return res, nil
}
