// Package behavior implements the fixed behavioral taxonomy (30 codes
// across 4 stages and 13 categories) and the heuristic scorer that detects
// them from a sequence of recorded decisions.
package behavior

// Code describes one fixed behavioral code. Category names the episode
// type a code is a target behavior for; Stage is the training stage
// (1-4) that episode type belongs to.
type Code struct {
	ID                 string
	Name               string
	Description        string
	Stage              int
	Category           string
	DetectionHeuristic string
}

// Codes is the fixed catalog of all 30 behavioral codes, B-01 through B-30.
var Codes = []Code{
	// Stage 1: Foundation
	{"B-01", "ask_clarifying_question", "Agent asks a clarifying question about requirements", 1, "elicitation", "_detect_clarifying_question"},
	{"B-02", "identify_missing_acceptance_criteria", "Agent identifies missing acceptance criteria in a story", 1, "elicitation", "_detect_missing_acceptance_criteria"},
	{"B-03", "propose_story_split", "Agent proposes splitting a large story into smaller ones", 1, "elicitation", "_detect_story_split"},

	{"B-04", "estimate_story_points", "Agent estimates story points for a task", 1, "decomposition", "_detect_estimation"},
	{"B-05", "identify_technical_dependencies", "Agent identifies dependencies between tasks", 1, "decomposition", "_detect_dependencies"},
	{"B-06", "create_subtasks", "Agent creates subtasks for a story", 1, "decomposition", "_detect_subtasks"},

	{"B-07", "write_test_first", "Agent writes tests before implementation code", 1, "implementation", "_detect_test_first"},
	{"B-08", "follow_coding_conventions", "Agent follows team coding conventions", 1, "implementation", "_detect_conventions"},
	{"B-09", "commit_incrementally", "Agent commits code in small incremental chunks", 1, "implementation", "_detect_incremental_commits"},

	{"B-10", "run_tests_before_commit", "Agent runs tests before committing", 1, "self_monitoring", "_detect_tests_before_commit"},
	{"B-11", "request_review_at_checkpoint", "Agent requests review at pairing checkpoints", 1, "self_monitoring", "_detect_review_request"},

	// Stage 2: Advanced
	{"B-12", "search_for_prior_art", "Agent searches for existing solutions before implementing", 2, "research", "_detect_prior_art_search"},
	{"B-13", "prototype_before_commit", "Agent creates a prototype/spike before full implementation", 2, "research", "_detect_prototype"},
	{"B-14", "document_spike_findings", "Agent documents findings from a research spike", 2, "research", "_detect_spike_docs"},

	{"B-15", "prioritize_by_severity", "Agent prioritizes issues by severity", 2, "triage", "_detect_severity_prioritization"},
	{"B-16", "communicate_impact_assessment", "Agent communicates impact assessment to the team", 2, "triage", "_detect_impact_assessment"},

	{"B-17", "diagnose_root_cause", "Agent diagnoses the root cause of an issue", 2, "recovery", "_detect_root_cause"},
	{"B-18", "apply_minimal_fix", "Agent applies a minimal, targeted fix", 2, "recovery", "_detect_minimal_fix"},
	{"B-19", "add_regression_test", "Agent adds a regression test after fixing a bug", 2, "recovery", "_detect_regression_test"},

	{"B-20", "renegotiate_scope", "Agent renegotiates scope when requirements change", 2, "scope_change", "_detect_scope_renegotiation"},
	{"B-21", "update_backlog_priority", "Agent updates backlog priorities after scope change", 2, "scope_change", "_detect_backlog_update"},

	// Stage 3: Expert
	{"B-22", "read_team_conventions", "Borrowed agent reads the new team's conventions", 3, "borrowing_arrival", "_detect_convention_reading"},
	{"B-23", "introduce_self_at_standup", "Borrowed agent introduces themselves at standup", 3, "borrowing_arrival", "_detect_standup_intro"},

	{"B-24", "declare_dependency", "Agent declares a cross-team dependency", 3, "cross_team_dependency", "_detect_dependency_declaration"},
	{"B-25", "negotiate_interface_contract", "Agent negotiates an interface contract with another team", 3, "cross_team_dependency", "_detect_interface_negotiation"},

	{"B-26", "write_handoff_document", "Agent writes a handoff document before departure", 3, "knowledge_handoff", "_detect_handoff_doc"},
	{"B-27", "pair_with_successor", "Agent pairs with their successor for knowledge transfer", 3, "knowledge_handoff", "_detect_successor_pairing"},

	// Stage 4: Transfer
	{"B-28", "mentor_new_member", "Agent mentors a new team member", 4, "onboarding_support", "_detect_mentoring"},
	{"B-29", "share_tacit_knowledge", "Agent shares tacit knowledge with the team", 4, "onboarding_support", "_detect_knowledge_sharing"},

	{"B-30", "cover_departed_role", "Agent covers responsibilities of a departed team member", 4, "compensation", "_detect_role_coverage"},
}

// ByID indexes Codes by their ID for fast lookup.
var ByID = func() map[string]Code {
	m := make(map[string]Code, len(Codes))
	for _, c := range Codes {
		m[c.ID] = c
	}
	return m
}()

// CodesForCategory returns all behavioral codes whose Category matches an
// episode type name.
func CodesForCategory(category string) []Code {
	var out []Code
	for _, c := range Codes {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

// CodesForStage returns all behavioral codes for a given training stage.
func CodesForStage(stage int) []Code {
	var out []Code
	for _, c := range Codes {
		if c.Stage == stage {
			out = append(out, c)
		}
	}
	return out
}
