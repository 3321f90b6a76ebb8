package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Garantias-api/internal/domain"
	"github.com/jhoicas/Garantias-api/internal/domain/policy"
)

var (
	admin    = policy.Actor{Username: "admin", Role: "admin"}
	tecnico1 = policy.Actor{Username: "tecnico1", Role: "tecnico"}
	consulta = policy.Actor{Username: "lector", Role: "consulta"}
)

// expectation: admin, tecnico con garantía propia, tecnico con garantía ajena, consulta.
type expectation [4]bool

func TestAuthorize_TablaDeDecision(t *testing.T) {
	table := map[policy.Action]expectation{
		policy.ActionListUsers:      {true, false, false, false},
		policy.ActionManageUsers:    {true, false, false, false},
		policy.ActionViewCompany:    {true, false, false, false},
		policy.ActionUpdateCompany:  {true, false, false, false},
		policy.ActionUploadLogo:     {true, false, false, false},
		policy.ActionCreateWarranty: {true, true, true, true},
		policy.ActionViewWarranty:   {true, true, true, true},
		policy.ActionChangeStatus:   {true, true, false, false},
		policy.ActionUpdateAmount:   {true, true, false, false},
		policy.ActionEditCustomer:   {true, true, false, false},
		policy.ActionReassign:       {true, true, false, false},
		policy.ActionAddComment:     {true, true, true, true},
		policy.ActionExport:         {true, false, false, false},
		policy.ActionRenderReceipt:  {true, true, true, true},
		policy.ActionResetData:      {true, false, false, false},
	}

	for action, want := range table {
		t.Run(string(action), func(t *testing.T) {
			assert.Equal(t, want[0], policy.Can(admin, action, "otro"), "admin")
			assert.Equal(t, want[1], policy.Can(tecnico1, action, "tecnico1"), "tecnico propia")
			assert.Equal(t, want[2], policy.Can(tecnico1, action, "tecnico2"), "tecnico ajena")
			assert.Equal(t, want[3], policy.Can(consulta, action, "lector"), "consulta")
		})
	}
}

func TestAuthorize_DenegadoEsForbidden(t *testing.T) {
	err := policy.Authorize(tecnico1, policy.ActionChangeStatus, "tecnico2")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = policy.Authorize(consulta, policy.ActionExport, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthorize_ConsultaAsignadaNoMuta(t *testing.T) {
	// Aunque la garantía figure asignada a un usuario consulta, el rol no muta.
	assert.False(t, policy.Can(consulta, policy.ActionChangeStatus, consulta.Username))
}

func TestAuthorize_RolDesconocido(t *testing.T) {
	raro := policy.Actor{Username: "x", Role: "bodeguero"}
	assert.True(t, policy.Can(raro, policy.ActionViewWarranty, ""), "lectura abierta a cualquier identidad")
	assert.False(t, policy.Can(raro, policy.ActionChangeStatus, "x"))
	assert.False(t, policy.Can(raro, policy.ActionListUsers, ""))
}

func TestAuthorize_AccionDesconocidaYActorVacio(t *testing.T) {
	assert.ErrorIs(t, policy.Authorize(admin, policy.Action("nada"), ""), domain.ErrForbidden)
	assert.ErrorIs(t, policy.Authorize(policy.Actor{}, policy.ActionViewWarranty, ""), domain.ErrForbidden)
}
