package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/sahyog/freightbook-api/internal/models"
)

// SettlementFSM wraps a transport record's balance-settlement state. A record
// is either pending ("NO") or settled ("YES"); the machine guards the flip in
// both directions so nothing else in the codebase writes IsBalPaid directly.
type SettlementFSM struct {
	record *models.TransportRecord
	fsm    *fsm.FSM
}

// NewSettlementFSM creates a settlement state machine for a record
func NewSettlementFSM(record *models.TransportRecord) *SettlementFSM {
	s := &SettlementFSM{
		record: record,
	}

	state := record.IsBalPaid
	if state == "" {
		state = models.BalancePending
	}

	s.fsm = fsm.NewFSM(
		state,
		fsm.Events{
			// pending → settled, when the outstanding balance reaches zero
			{Name: "settle", Src: []string{models.BalancePending}, Dst: models.BalancePaid},

			// settled → pending, for operator corrections
			{Name: "reopen", Src: []string{models.BalancePaid}, Dst: models.BalancePending},
		},
		fsm.Callbacks{},
	)

	return s
}

// Settle marks the record's balance as fully paid
func (s *SettlementFSM) Settle(ctx context.Context) error {
	if !s.record.MaySettle() {
		return fmt.Errorf("record cannot be settled in current state: %s", s.record.IsBalPaid)
	}

	if err := s.fsm.Event(ctx, "settle"); err != nil {
		return fmt.Errorf("failed to settle record: %w", err)
	}

	s.record.IsBalPaid = s.fsm.Current()
	return nil
}

// Reopen returns a settled record to pending
func (s *SettlementFSM) Reopen(ctx context.Context) error {
	if !s.record.MayReopen() {
		return fmt.Errorf("record cannot be reopened in current state: %s", s.record.IsBalPaid)
	}

	if err := s.fsm.Event(ctx, "reopen"); err != nil {
		return fmt.Errorf("failed to reopen record: %w", err)
	}

	s.record.IsBalPaid = s.fsm.Current()
	return nil
}

// Current returns the current state
func (s *SettlementFSM) Current() string {
	return s.fsm.Current()
}

// Can checks if a transition is possible
func (s *SettlementFSM) Can(event string) bool {
	return s.fsm.Can(event)
}
