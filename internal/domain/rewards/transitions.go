package rewards

import (
	"github.com/jhoicas/rewards-store/internal/domain"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
)

// Effect es lo que debe hacer el flujo de pedidos ante un cambio de estado.
type Effect int

const (
	// EffectNone: el pedido ya está en el estado destino; no se escribe nada.
	EffectNone Effect = iota
	// EffectWrite: solo se actualiza el estado.
	EffectWrite
	// EffectRefund: se reembolsan puntos y stock antes de escribir cancelled.
	EffectRefund
)

// TransitionPolicy parametriza las decisiones abiertas del flujo.
type TransitionPolicy struct {
	// AllowCancelCompleted permite cancelar (y reembolsar) pedidos ya completados.
	AllowCancelCompleted bool
}

// Transition decide el efecto de pasar de current a target.
//
//	pending   -> completed  escribe
//	pending   -> cancelled  reembolsa
//	completed -> cancelled  reembolsa si la política lo permite
//	mismo estado            sin efecto (cancelar dos veces no reembolsa dos veces)
//	cancelled -> otro       ErrInvalidTransition
//	completed -> pending    ErrInvalidTransition
func (p TransitionPolicy) Transition(current, target string) (Effect, error) {
	if !entity.ValidOrderStatus(target) {
		return EffectNone, domain.ErrInvalidInput
	}
	if current == target {
		return EffectNone, nil
	}
	switch current {
	case entity.OrderStatusPending:
		if target == entity.OrderStatusCancelled {
			return EffectRefund, nil
		}
		return EffectWrite, nil
	case entity.OrderStatusCompleted:
		if target == entity.OrderStatusCancelled && p.AllowCancelCompleted {
			return EffectRefund, nil
		}
	}
	return EffectNone, domain.ErrInvalidTransition
}
