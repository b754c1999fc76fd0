package regress

import (
	"fmt"

	"gobayes/domain/core"
)

// RunManifest captures the complete specification of an analysis run so the
// result is deterministic and replayable from the fingerprint alone.
type RunManifest struct {
	RunID         core.RunID     `json:"run_id"`
	Seed          int64          `json:"seed"`
	Rows          int            `json:"rows"`
	Chains        int            `json:"chains"`
	Iterations    int            `json:"iterations"`
	Prior         PriorSpec      `json:"prior"`
	CredibleMass  float64        `json:"credible_mass"`
	ROPEHalfWidth float64        `json:"rope_half_width"`
	CodeVersion   string         `json:"code_version"`
	RuntimeMs     int64          `json:"runtime_ms"`
	Fingerprint   core.Hash      `json:"fingerprint"`
	CreatedAt     core.Timestamp `json:"created_at"`
}

// NewRunManifest creates a manifest with a deterministic fingerprint over
// every input that influences the result.
func NewRunManifest(runID core.RunID, seed int64, rows, chains, iterations int, prior PriorSpec, credibleMass, ropeHalfWidth float64, codeVersion string) RunManifest {
	fingerprint := core.ComputeHash(
		fmt.Sprintf("seed=%d", seed),
		fmt.Sprintf("rows=%d", rows),
		fmt.Sprintf("chains=%d", chains),
		fmt.Sprintf("iterations=%d", iterations),
		fmt.Sprintf("prior=%s/%g/%g/%g", prior.Family, prior.Location, prior.Scale, prior.DF),
		fmt.Sprintf("mass=%g", credibleMass),
		fmt.Sprintf("rope=%g", ropeHalfWidth),
		codeVersion,
	)
	return RunManifest{
		RunID:         runID,
		Seed:          seed,
		Rows:          rows,
		Chains:        chains,
		Iterations:    iterations,
		Prior:         prior,
		CredibleMass:  credibleMass,
		ROPEHalfWidth: ropeHalfWidth,
		CodeVersion:   codeVersion,
		Fingerprint:   fingerprint,
		CreatedAt:     core.Now(),
	}
}

// Report is the assembled output of a full analysis run
type Report struct {
	Manifest    RunManifest       `json:"manifest"`
	Frequentist *FrequentistFit   `json:"frequentist"`
	Posterior   *PosteriorSummary `json:"posterior"`
	Comparison  []ComparisonRow   `json:"comparison"`
}
