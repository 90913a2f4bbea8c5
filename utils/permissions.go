package utils

// Role is the closed set of principal roles. Role ids match the roles table
// seed; there is no dynamic role lookup.
type Role int

const (
	RoleAdmin    Role = 1
	RoleGestor   Role = 2 // unit manager
	RoleOperador Role = 3
	RoleConsulta Role = 4 // read-only
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleGestor, RoleOperador, RoleConsulta:
		return true
	}
	return false
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleGestor:
		return "gestor"
	case RoleOperador:
		return "operador"
	case RoleConsulta:
		return "consulta"
	}
	return "unknown"
}

// Module and Action name the capability being checked. Every mutating
// endpoint resolves (role, module, action) against the matrix below before
// touching state.
type Module string

const (
	ModuleDocuments     Module = "documents"
	ModuleMovements     Module = "movements"
	ModuleDispatches    Module = "dispatches"
	ModuleRetention     Module = "retention"
	ModuleSLA           Module = "sla"
	ModuleNotifications Module = "notifications"
	ModuleAdmin         Module = "admin"
)

type Action string

const (
	ActionView    Action = "view"
	ActionCreate  Action = "create"
	ActionMove    Action = "move"
	ActionDecide  Action = "decide"
	ActionArchive Action = "archive"
	ActionDestroy Action = "destroy"
	ActionManage  Action = "manage"
)

type capability struct {
	Module Module
	Action Action
}

// capabilityMatrix is the full grant table. Admin is handled separately in
// Allowed (admin can do everything), so only the other roles are listed.
var capabilityMatrix = map[Role]map[capability]bool{
	RoleGestor: {
		{ModuleDocuments, ActionView}: true,
		{ModuleDocuments, ActionCreate}: true,
		{ModuleDocuments, ActionMove}: true,
		{ModuleDocuments, ActionArchive}: true,
		{ModuleMovements, ActionView}: true,
		{ModuleMovements, ActionCreate}: true,
		{ModuleMovements, ActionMove}: true,
		{ModuleDispatches, ActionView}: true,
		{ModuleDispatches, ActionCreate}: true,
		{ModuleDispatches, ActionDecide}: true,
		{ModuleRetention, ActionView}: true,
		{ModuleRetention, ActionCreate}: true,
		{ModuleRetention, ActionDecide}: true,
		{ModuleSLA, ActionView}: true,
		{ModuleNotifications, ActionView}: true,
	},
	RoleOperador: {
		{ModuleDocuments, ActionView}: true,
		{ModuleDocuments, ActionCreate}: true,
		{ModuleDocuments, ActionMove}: true,
		{ModuleMovements, ActionView}: true,
		{ModuleMovements, ActionCreate}: true,
		{ModuleMovements, ActionMove}: true,
		{ModuleDispatches, ActionView}: true,
		{ModuleDispatches, ActionDecide}: true,
		{ModuleRetention, ActionView}: true,
		{ModuleSLA, ActionView}: true,
		{ModuleNotifications, ActionView}: true,
	},
	RoleConsulta: {
		{ModuleDocuments, ActionView}: true,
		{ModuleMovements, ActionView}: true,
		{ModuleDispatches, ActionView}: true,
		{ModuleRetention, ActionView}: true,
		{ModuleSLA, ActionView}: true,
		{ModuleNotifications, ActionView}: true,
	},
}

// Allowed resolves whether role may perform action on module.
func Allowed(role Role, module Module, action Action) bool {
	if role == RoleAdmin {
		return true
	}
	grants, ok := capabilityMatrix[role]
	if !ok {
		return false
	}
	return grants[capability{Module: module, Action: action}]
}
