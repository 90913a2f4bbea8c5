package utils

import "testing"

func TestAdminIsAllowedEverything(t *testing.T) {
	modules := []Module{
		ModuleDocuments, ModuleMovements, ModuleDispatches,
		ModuleRetention, ModuleSLA, ModuleNotifications, ModuleAdmin,
	}
	actions := []Action{
		ActionView, ActionCreate, ActionMove, ActionDecide,
		ActionArchive, ActionDestroy, ActionManage,
	}

	for _, module := range modules {
		for _, action := range actions {
			if !Allowed(RoleAdmin, module, action) {
				t.Errorf("admin denied %s on %s", action, module)
			}
		}
	}
}

func TestConsultaIsReadOnly(t *testing.T) {
	if !Allowed(RoleConsulta, ModuleDocuments, ActionView) {
		t.Error("consulta denied document view")
	}

	mutations := []struct {
		module Module
		action Action
	}{
		{ModuleDocuments, ActionCreate},
		{ModuleDocuments, ActionMove},
		{ModuleDocuments, ActionArchive},
		{ModuleMovements, ActionCreate},
		{ModuleDispatches, ActionDecide},
		{ModuleRetention, ActionCreate},
		{ModuleRetention, ActionDecide},
		{ModuleRetention, ActionDestroy},
		{ModuleAdmin, ActionManage},
	}
	for _, tc := range mutations {
		if Allowed(RoleConsulta, tc.module, tc.action) {
			t.Errorf("consulta allowed %s on %s", tc.action, tc.module)
		}
	}
}

func TestGestorDecidesButDoesNotDestroy(t *testing.T) {
	if !Allowed(RoleGestor, ModuleRetention, ActionDecide) {
		t.Error("gestor denied retention decision")
	}
	if Allowed(RoleGestor, ModuleRetention, ActionDestroy) {
		t.Error("gestor allowed destruction execution")
	}
	if Allowed(RoleGestor, ModuleAdmin, ActionManage) {
		t.Error("gestor allowed admin management")
	}
}

func TestOperadorCannotOpenDispatches(t *testing.T) {
	if Allowed(RoleOperador, ModuleDispatches, ActionCreate) {
		t.Error("operador allowed dispatch creation")
	}
	if !Allowed(RoleOperador, ModuleDispatches, ActionDecide) {
		t.Error("operador denied dispatch decision")
	}
}

func TestUnknownRoleIsDeniedEverything(t *testing.T) {
	if Allowed(Role(42), ModuleDocuments, ActionView) {
		t.Error("unknown role allowed document view")
	}
	if Role(42).Valid() {
		t.Error("expected role 42 to be invalid")
	}
}
