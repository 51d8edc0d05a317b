package action

// ParamKind enumerates the parameter shapes the action space metadata
// distinguishes, exposed for a future Gym-style space builder even though
// this module has no RL-framework dependency itself.
type ParamKind string

const (
	ParamCategorical ParamKind = "categorical"
	ParamContinuous  ParamKind = "continuous"
	ParamDiscrete    ParamKind = "discrete"
	ParamDict        ParamKind = "dict"
	ParamAgentRef    ParamKind = "agent_ref"
	ParamRoleRef     ParamKind = "role_ref"
	ParamString      ParamKind = "string"
)

// ParamSpec describes one action parameter's shape and valid range.
type ParamSpec struct {
	Name    string
	Kind    ParamKind
	Choices []string // for ParamCategorical / ParamRoleRef
	Min     float64  // for ParamContinuous / ParamDiscrete
	Max     float64
}

// VariantSpec describes one action variant's name and parameters.
type VariantSpec struct {
	Name   string
	Params []ParamSpec
}

// Space is the fixed, closed action-space metadata for all five variants.
var Space = []VariantSpec{
	{
		Name: "inject_disturbance",
		Params: []ParamSpec{
			{Name: "disturbance_type", Kind: ParamCategorical, Choices: []string{
				"flaky_test", "production_incident", "scope_creep", "merge_conflict",
				"test_failures", "technical_debt", "dependency_break",
			}},
			{Name: "severity", Kind: ParamContinuous, Min: 0.0, Max: 1.0},
		},
	},
	{
		Name: "swap_agent_role",
		Params: []ParamSpec{
			{Name: "agent_id", Kind: ParamAgentRef},
			{Name: "target_role_id", Kind: ParamRoleRef},
			{Name: "proficiency", Kind: ParamContinuous, Min: 0.1, Max: 1.0},
		},
	},
	{
		Name: "modify_backlog",
		Params: []ParamSpec{
			{Name: "action", Kind: ParamCategorical, Choices: []string{"add", "remove"}},
			{Name: "story", Kind: ParamDict},
			{Name: "story_id", Kind: ParamString},
		},
	},
	{
		Name: "modify_team_composition",
		Params: []ParamSpec{
			{Name: "action", Kind: ParamCategorical, Choices: []string{"depart", "backfill"}},
			{Name: "agent_id", Kind: ParamAgentRef},
			{Name: "backfill_config", Kind: ParamDict},
		},
	},
	{
		Name: "adjust_sprint_params",
		Params: []ParamSpec{
			{Name: "duration_minutes", Kind: ParamDiscrete, Min: 1, Max: 120},
			{Name: "wip_limits", Kind: ParamDict},
		},
	},
}
