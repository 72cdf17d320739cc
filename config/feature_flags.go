package config

import (
	"hash/fnv"
	"os"
	"strconv"
	"strings"
	"sync"
)

// FeatureFlags manages feature toggles for the matching engine.
// Supports gradual rollout and cohort-based experiments: new scoring
// behavior can be tried on a single accelerator cohort before going wide.
type FeatureFlags struct {
	mu sync.RWMutex

	features map[string]*Feature
}

// Feature represents a single feature flag.
type Feature struct {
	Name        string
	Description string
	Enabled     bool

	// Rollout percentage (0-100).
	// Participants are assigned based on hash of their ID.
	RolloutPercent int

	// Cohort targeting (e.g., "2026-spring").
	// Empty means all cohorts.
	TargetCohorts []string
}

// FeatureContext provides context for feature flag evaluation.
type FeatureContext struct {
	ParticipantID string // Participant UUID
	Cohort        string // Accelerator cohort (e.g., "2026-spring")
}

// Predefined feature flag names.
const (
	// FeatureTypeHardFilter - explicit mentorType in criteria excludes
	// mentors of other types entirely. When disabled, mentorType only
	// feeds the soft projectNeedsMatch dimension.
	FeatureTypeHardFilter = "matching.type_hard_filter"

	// FeatureParallelScoring - fan candidate scoring out to workers
	// for large directories.
	FeatureParallelScoring = "matching.parallel_scoring"

	// FeatureDirectoryCache - serve candidate pool snapshots from Redis.
	FeatureDirectoryCache = "matching.directory_cache"

	// FeatureExpertSubstringMatch - expertise search matches tags by
	// substring; when disabled, only exact tags match.
	FeatureExpertSubstringMatch = "search.expert_substring"
)

// LoadFeatureFlags loads flags with defaults, applying FEATURE_* overrides.
// FEATURE_MATCHING_TYPE_HARD_FILTER=false disables matching.type_hard_filter.
func LoadFeatureFlags() *FeatureFlags {
	ff := &FeatureFlags{features: make(map[string]*Feature)}

	defaults := []*Feature{
		{
			Name:           FeatureTypeHardFilter,
			Description:    "Explicit mentorType excludes other types from candidacy",
			Enabled:        true,
			RolloutPercent: 100,
		},
		{
			Name:           FeatureParallelScoring,
			Description:    "Score candidates with a bounded worker pool",
			Enabled:        false,
			RolloutPercent: 100,
		},
		{
			Name:           FeatureDirectoryCache,
			Description:    "Cache candidate pool snapshots in Redis",
			Enabled:        true,
			RolloutPercent: 100,
		},
		{
			Name:           FeatureExpertSubstringMatch,
			Description:    "Expertise search matches tags by substring",
			Enabled:        true,
			RolloutPercent: 100,
		},
	}

	for _, f := range defaults {
		if v, ok := envOverride(f.Name); ok {
			f.Enabled = v
		}
		ff.features[f.Name] = f
	}

	return ff
}

// envOverride reads FEATURE_<NAME> with dots and dashes mapped to underscores.
func envOverride(name string) (bool, bool) {
	key := "FEATURE_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(name))
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, false
	}
	return b, true
}

// IsEnabled checks a flag without evaluation context.
func (ff *FeatureFlags) IsEnabled(name string) bool {
	return ff.IsEnabledFor(name, FeatureContext{})
}

// IsEnabledFor checks a flag for the given context, honoring cohort
// targeting and percentage rollout.
func (ff *FeatureFlags) IsEnabledFor(name string, fctx FeatureContext) bool {
	ff.mu.RLock()
	f, ok := ff.features[name]
	ff.mu.RUnlock()

	if !ok || !f.Enabled {
		return false
	}

	if len(f.TargetCohorts) > 0 {
		found := false
		for _, c := range f.TargetCohorts {
			if c == fctx.Cohort {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.RolloutPercent >= 100 {
		return true
	}
	if f.RolloutPercent <= 0 {
		return false
	}
	return bucketOf(fctx.ParticipantID) < f.RolloutPercent
}

// Set enables or disables a flag at runtime.
func (ff *FeatureFlags) Set(name string, enabled bool) {
	ff.mu.Lock()
	defer ff.mu.Unlock()

	if f, ok := ff.features[name]; ok {
		f.Enabled = enabled
		return
	}
	ff.features[name] = &Feature{Name: name, Enabled: enabled, RolloutPercent: 100}
}

// bucketOf maps an ID to a stable 0-99 bucket.
func bucketOf(id string) int {
	h := fnv.New32a()
	h.Write([]byte(id))
	return int(h.Sum32() % 100)
}
