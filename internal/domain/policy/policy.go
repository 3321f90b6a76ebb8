// Package policy decide quién puede hacer qué sobre usuarios, configuración y garantías.
//
// Es una función pura: recibe el actor (username + rol resueltos contra la BD), la
// acción y, para las acciones sobre una garantía, el usuario asignado. No consulta
// ningún almacenamiento. La autenticación (token) se valida antes y por separado.
//
// Tabla de decisión:
//
//	Acción                         admin  tecnico(propia)  tecnico(ajena)  consulta
//	Ver/gestionar usuarios          sí     no               no              no
//	Ver/editar configuración/logo   sí     no               no              no
//	Crear garantía                  sí     sí               sí              sí
//	Ver garantías y detalle         sí     sí               sí              sí
//	Cambiar estado                  sí     sí               no              no
//	Actualizar valor cobrado        sí     sí               no              no
//	Editar datos del cliente        sí     sí               no              no
//	Reasignar                       sí     sí               no              no
//	Comentar                        sí     sí               sí              sí
//	Exportar a hoja de cálculo      sí     no               no              no
//	Generar recibo                  sí     sí               sí              sí
//
// Crear, comentar, ver y generar recibos queda abierto a cualquier identidad
// autenticada; solo las mutaciones dependen de la propiedad.
package policy

import (
	"fmt"

	"github.com/jhoicas/Garantias-api/internal/domain"
	"github.com/jhoicas/Garantias-api/internal/domain/entity"
)

// Actor identidad autenticada que ejecuta una acción.
type Actor struct {
	Username string
	Role     string
}

// IsAdmin atajo para el rol admin.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// Action operación sujeta a autorización.
type Action string

const (
	ActionListUsers      Action = "users.list"
	ActionManageUsers    Action = "users.manage"
	ActionViewCompany    Action = "company.view"
	ActionUpdateCompany  Action = "company.update"
	ActionUploadLogo     Action = "company.logo"
	ActionCreateWarranty Action = "warranty.create"
	ActionViewWarranty   Action = "warranty.view"
	ActionChangeStatus   Action = "warranty.status"
	ActionUpdateAmount   Action = "warranty.amount"
	ActionEditCustomer   Action = "warranty.customer"
	ActionReassign       Action = "warranty.reassign"
	ActionAddComment     Action = "warranty.comment"
	ActionExport         Action = "warranty.export"
	ActionRenderReceipt  Action = "warranty.receipt"
	ActionResetData      Action = "maintenance.reset"
)

type rule int

const (
	ruleAdminOnly rule = iota
	ruleAnyone
	ruleOwner // admin, o tecnico asignado
)

var rules = map[Action]rule{
	ActionListUsers:      ruleAdminOnly,
	ActionManageUsers:    ruleAdminOnly,
	ActionViewCompany:    ruleAdminOnly,
	ActionUpdateCompany:  ruleAdminOnly,
	ActionUploadLogo:     ruleAdminOnly,
	ActionExport:         ruleAdminOnly,
	ActionResetData:      ruleAdminOnly,
	ActionCreateWarranty: ruleAnyone,
	ActionViewWarranty:   ruleAnyone,
	ActionAddComment:     ruleAnyone,
	ActionRenderReceipt:  ruleAnyone,
	ActionChangeStatus:   ruleOwner,
	ActionUpdateAmount:   ruleOwner,
	ActionEditCustomer:   ruleOwner,
	ActionReassign:       ruleOwner,
}

// Authorize devuelve nil si actor puede ejecutar action, o un error que envuelve
// domain.ErrForbidden. assignedUser solo se usa en acciones con propiedad.
func Authorize(actor Actor, action Action, assignedUser string) error {
	r, ok := rules[action]
	if !ok {
		return fmt.Errorf("%w: acción desconocida %q", domain.ErrForbidden, action)
	}
	if actor.Username == "" {
		return fmt.Errorf("%w: actor sin identidad", domain.ErrForbidden)
	}
	switch r {
	case ruleAnyone:
		return nil
	case ruleAdminOnly:
		if actor.IsAdmin() {
			return nil
		}
		return fmt.Errorf("%w: solo admin puede realizar %s", domain.ErrForbidden, action)
	case ruleOwner:
		if actor.IsAdmin() {
			return nil
		}
		if actor.Role == entity.RoleTecnico && assignedUser == actor.Username {
			return nil
		}
		if actor.Role == entity.RoleTecnico {
			return fmt.Errorf("%w: la garantía está asignada a otro usuario", domain.ErrForbidden)
		}
		return fmt.Errorf("%w: el rol %s no puede realizar %s", domain.ErrForbidden, actor.Role, action)
	}
	return domain.ErrForbidden
}

// Can versión booleana de Authorize.
func Can(actor Actor, action Action, assignedUser string) bool {
	return Authorize(actor, action, assignedUser) == nil
}
