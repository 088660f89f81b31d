package domain

import "strings"

type CommandKind int

const (
	Unrecognized CommandKind = iota
	Start
	ListModels
	ShowCurrentModel
	ChangeModel
	Ask
)

func (k CommandKind) String() string {
	switch k {
	case Start:
		return "start"
	case ListModels:
		return "list_models"
	case ShowCurrentModel:
		return "model"
	case ChangeModel:
		return "change_model"
	case Ask:
		return "ask"
	default:
		return "unrecognized"
	}
}

type Command struct {
	Kind     CommandKind
	Argument string
}

type commandRule struct {
	trigger     string
	kind        CommandKind
	requiresArg bool
}

// commandRules are evaluated in order, the first matching trigger wins.
var commandRules = []commandRule{
	{trigger: "/startfrog", kind: Start},
	{trigger: "/list_models", kind: ListModels},
	{trigger: "/model", kind: ShowCurrentModel},
	{trigger: "/change_model ", kind: ChangeModel, requiresArg: true},
	{trigger: "/frog", kind: Ask},
}

// ParseCommand classifies message text. It never fails: text that matches no
// rule yields an Unrecognized command.
func ParseCommand(text string) Command {
	for _, rule := range commandRules {
		if !strings.HasPrefix(text, rule.trigger) {
			continue
		}

		arg := strings.TrimSpace(strings.TrimPrefix(text, rule.trigger))
		if rule.requiresArg && arg == "" {
			continue
		}

		return Command{Kind: rule.kind, Argument: arg}
	}

	return Command{Kind: Unrecognized}
}
