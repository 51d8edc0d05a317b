package behavior

import (
	"fmt"
	"strings"

	"sprintbench.app/core/internal/tracer"
)

// Detection records that a code was observed in a specific decision,
// retained for callers that want provenance beyond the aggregate score.
type Detection struct {
	Code       string
	DecisionID string
	AgentID    string
}

// Scorer scores a decision trace against a list of expected behavioral
// codes, using keyword/pattern heuristics (no LLM calls). A caller with
// its own LLM-based judge can bypass this entirely and hand a
// pre-computed behavioral score straight to reward.Calculator.
type Scorer struct{}

// NewScorer constructs a Scorer.
func NewScorer() *Scorer { return &Scorer{} }

// Score scores decisions against expected behavioral codes. If expected
// is empty the score is always 1.0 (no behaviors were required). If
// decisions is empty but expected is non-empty the score is 0.0 (nothing
// to detect anything in). Otherwise the score is the fraction of expected
// codes whose heuristic fired at least once.
func (s *Scorer) Score(decisions []tracer.Decision, expected []string) (float64, []string) {
	if len(expected) == 0 {
		return 1.0, nil
	}
	if len(decisions) == 0 {
		return 0.0, nil
	}

	var detected []string
	for _, code := range expected {
		bc, ok := ByID[code]
		if !ok {
			continue
		}
		heuristic, ok := detectors[bc.ID]
		if !ok {
			continue
		}
		if heuristic(decisions) {
			detected = append(detected, code)
		}
	}

	return float64(len(detected)) / float64(len(expected)), detected
}

// Detect runs every known heuristic over decisions and returns one
// Detection per (code, decision) pair that contributed to that code's
// match, for callers that want per-decision provenance rather than a
// single aggregate ratio.
func (s *Scorer) Detect(decisions []tracer.Decision) []Detection {
	var out []Detection
	for _, c := range Codes {
		heuristic, ok := detectors[c.ID]
		if !ok {
			continue
		}
		for _, d := range decisions {
			if heuristic([]tracer.Decision{d}) {
				out = append(out, Detection{Code: c.ID, DecisionID: d.DecisionID, AgentID: d.AgentID})
			}
		}
	}
	return out
}

// detectors maps a behavioral code to the heuristic that detects it,
// mirroring BehavioralScorer's getattr(self, code.detection_heuristic)
// dispatch by name.
var detectors = map[string]func([]tracer.Decision) bool{
	"B-01": detectClarifyingQuestion,
	"B-02": detectMissingAcceptanceCriteria,
	"B-03": detectStorySplit,
	"B-04": detectEstimation,
	"B-05": detectDependencies,
	"B-06": detectSubtasks,
	"B-07": detectTestFirst,
	"B-08": detectConventions,
	"B-09": detectIncrementalCommits,
	"B-10": detectTestsBeforeCommit,
	"B-11": detectReviewRequest,
	"B-12": detectPriorArtSearch,
	"B-13": detectPrototype,
	"B-14": detectSpikeDocs,
	"B-15": detectSeverityPrioritization,
	"B-16": detectImpactAssessment,
	"B-17": detectRootCause,
	"B-18": detectMinimalFix,
	"B-19": detectRegressionTest,
	"B-20": detectScopeRenegotiation,
	"B-21": detectBacklogUpdate,
	"B-22": detectConventionReading,
	"B-23": detectStandupIntro,
	"B-24": detectDependencyDeclaration,
	"B-25": detectInterfaceNegotiation,
	"B-26": detectHandoffDoc,
	"B-27": detectSuccessorPairing,
	"B-28": detectMentoring,
	"B-29": detectKnowledgeSharing,
	"B-30": detectRoleCoverage,
}

// ── Stage 1 heuristics ──────────────────────────────────────────────────

func detectClarifyingQuestion(d []tracer.Decision) bool {
	return anyContentMatches(d, "clarify", "clarification", "question", "unclear", "ambiguous", "what do you mean", "could you explain", "can you clarify")
}

func detectMissingAcceptanceCriteria(d []tracer.Decision) bool {
	return anyContentMatches(d, "acceptance criteria", "missing criteria", "missing requirement", "not specified", "undefined behavior", "edge case")
}

func detectStorySplit(d []tracer.Decision) bool {
	return anyContentMatches(d, "split", "break down", "decompose", "too large", "smaller stories", "sub-story", "substory")
}

func detectEstimation(d []tracer.Decision) bool {
	return anyContentMatches(d, "story point", "estimate", "points", "sizing", "complexity", "t-shirt size", "fibonacci")
}

func detectDependencies(d []tracer.Decision) bool {
	return anyContentMatches(d, "dependency", "depends on", "blocked by", "prerequisite", "requires", "dependent")
}

func detectSubtasks(d []tracer.Decision) bool {
	return anyContentMatches(d, "subtask", "sub-task", "task breakdown", "work item", "step 1", "step 2", "checklist")
}

func detectTestFirst(d []tracer.Decision) bool {
	return checkActionOrder(d, "test", "implement")
}

func detectConventions(d []tracer.Decision) bool {
	return anyContentMatches(d, "convention", "style guide", "linting", "formatting", "naming convention", "code standard", "best practice")
}

func detectIncrementalCommits(decisions []tracer.Decision) bool {
	count := 0
	for _, d := range decisions {
		if d.ActionType == tracer.ActionExecuteCodingTask && containsAny(toolCallsText(d), commitKeywords) {
			count++
		}
	}
	if count < 2 {
		for _, d := range decisions {
			if (d.ActionType == tracer.ActionGenerate || d.ActionType == tracer.ActionExecuteCodingTask) && containsAny(d.ActionContent, commitKeywords) {
				count++
			}
		}
	}
	return count >= 2
}

func detectTestsBeforeCommit(d []tracer.Decision) bool {
	return checkActionOrder(d, "test", "commit")
}

func detectReviewRequest(d []tracer.Decision) bool {
	return anyContentMatches(d, "review", "checkpoint", "feedback", "check my work", "please review", "navigator")
}

// ── Stage 2 heuristics ──────────────────────────────────────────────────

func detectPriorArtSearch(d []tracer.Decision) bool {
	return anyContentMatches(d, "prior art", "existing solution", "search", "look for", "already implemented", "reference implementation", "similar")
}

func detectPrototype(d []tracer.Decision) bool {
	return anyContentMatches(d, "prototype", "spike", "proof of concept", "poc", "experiment", "try out", "quick test")
}

func detectSpikeDocs(d []tracer.Decision) bool {
	return anyContentMatches(d, "findings", "documented", "spike result", "research notes", "conclusion", "recommendation", "trade-off")
}

func detectSeverityPrioritization(d []tracer.Decision) bool {
	return anyContentMatches(d, "severity", "priority", "critical", "high priority", "p0", "p1", "urgent", "blocker")
}

func detectImpactAssessment(d []tracer.Decision) bool {
	return anyContentMatches(d, "impact", "assessment", "affected", "blast radius", "downstream", "users impacted", "scope of impact")
}

func detectRootCause(d []tracer.Decision) bool {
	return anyContentMatches(d, "root cause", "diagnosis", "investigate", "debug", "underlying issue", "source of", "trace back")
}

func detectMinimalFix(decisions []tracer.Decision) bool {
	for _, d := range decisions {
		if filesChanged, ok := d.Metadata["files_changed"]; ok {
			if n := filesChangedLen(filesChanged); n > 0 && n <= 2 {
				return true
			}
		}
	}
	return anyContentMatches(decisions, "minimal fix", "targeted fix", "small change", "surgical", "narrow fix", "least invasive", "focused fix")
}

func detectRegressionTest(d []tracer.Decision) bool {
	return anyContentMatches(d, "regression test", "regression", "test for the fix", "prevent recurrence", "test case for", "verify fix")
}

func detectScopeRenegotiation(d []tracer.Decision) bool {
	return anyContentMatches(d, "renegotiate", "scope change", "descope", "defer", "reduce scope", "out of scope", "negotiate")
}

func detectBacklogUpdate(d []tracer.Decision) bool {
	return anyContentMatches(d, "backlog", "reprioritize", "re-prioritize", "priority update", "reorder", "move to backlog", "update priority")
}

// ── Stage 3 heuristics ──────────────────────────────────────────────────

func detectConventionReading(d []tracer.Decision) bool {
	return anyContentMatches(d, "convention", "team norms", "coding standard", "style guide", "team practice", "how does this team", "team process")
}

func detectStandupIntro(d []tracer.Decision) bool {
	return anyContentMatches(d, "introduce", "new to the team", "joining", "hello team", "i'm here to help", "borrowed from", "visiting")
}

func detectDependencyDeclaration(d []tracer.Decision) bool {
	return anyContentMatches(d, "cross-team", "dependency", "depends on team", "blocked by team", "interface", "api contract", "shared service")
}

func detectInterfaceNegotiation(d []tracer.Decision) bool {
	return anyContentMatches(d, "interface contract", "api contract", "negotiate", "agree on", "schema", "endpoint", "protocol", "message format")
}

func detectHandoffDoc(d []tracer.Decision) bool {
	return anyContentMatches(d, "handoff", "hand-off", "transition document", "knowledge transfer", "documentation", "leaving notes", "departure doc")
}

func detectSuccessorPairing(d []tracer.Decision) bool {
	return anyContentMatches(d, "pair with successor", "knowledge transfer session", "shadow", "walk through", "show you how", "handover session", "pair session")
}

// ── Stage 4 heuristics ──────────────────────────────────────────────────

func detectMentoring(d []tracer.Decision) bool {
	return anyContentMatches(d, "mentor", "guide", "teach", "help understand", "explain to", "show how", "onboarding buddy", "coaching")
}

func detectKnowledgeSharing(d []tracer.Decision) bool {
	return anyContentMatches(d, "tacit knowledge", "tribal knowledge", "undocumented", "tip", "trick", "gotcha", "watch out for", "heads up")
}

func detectRoleCoverage(d []tracer.Decision) bool {
	return anyContentMatches(d, "cover", "fill in", "take over", "compensate", "pick up", "absorb responsibilities", "step in for", "backfill")
}

// commitKeywords used by both independent B-09 passes.
var commitKeywords = []string{"commit", "committed", "committing"}

// anyContentMatches returns true if any decision's action_content+context
// (lowercased, space-joined) contains any of keywords.
func anyContentMatches(decisions []tracer.Decision, keywords ...string) bool {
	for _, d := range decisions {
		combined := strings.ToLower(d.ActionContent) + " " + strings.ToLower(d.Context)
		for _, kw := range keywords {
			if strings.Contains(combined, kw) {
				return true
			}
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// checkActionOrder returns true if a decision matching first appears
// strictly before (by index) a decision matching then, scanning
// action_content + action_type + tool-call text. first_idx locks onto the
// FIRST match; then_idx is overwritten on every match, so it ends up as
// the LAST matching index in the whole list, not the first one after
// first_idx.
func checkActionOrder(decisions []tracer.Decision, first, then string) bool {
	firstIdx := -1
	thenIdx := -1
	for i, d := range decisions {
		combined := strings.ToLower(d.ActionContent) + " " + strings.ToLower(d.ActionType) + " " + strings.ToLower(toolCallsText(d))
		if firstIdx < 0 && strings.Contains(combined, first) {
			firstIdx = i
		}
		if strings.Contains(combined, then) {
			thenIdx = i
		}
	}
	return firstIdx >= 0 && thenIdx > firstIdx
}

// toolCallsText stringifies a decision's metadata["tool_calls"] entry the
// way Python's str() on a list does, close enough for substring matching.
func toolCallsText(d tracer.Decision) string {
	if d.Metadata == nil {
		return ""
	}
	tc, ok := d.Metadata["tool_calls"]
	if !ok {
		return ""
	}
	return fmt.Sprint(tc)
}

// filesChangedLen returns the length of a files_changed metadata value
// when it's a slice, or 0 otherwise.
func filesChangedLen(v any) int {
	switch t := v.(type) {
	case []string:
		return len(t)
	case []any:
		return len(t)
	default:
		return 0
	}
}
