// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package table

import "github.com/google/uuid"

// deletePhase is the confirmation lifecycle of a pending delete:
// idle → confirming → committing → idle. Only one target can be in the
// pipeline at a time; committing blocks re-entry until the repository
// call resolves.
type deletePhase int

const (
	deleteIdle deletePhase = iota
	deleteConfirming
	deleteCommitting
)

// DeleteTarget identifies the record a confirmation dialog is about.
// The name is carried so the dialog can display it without a lookup.
type DeleteTarget struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// deletion is the coordinator state machine. It never talks to the
// repository itself; the controller drives transitions and performs the
// actual delete between begin and finish.
type deletion struct {
	phase  deletePhase
	target DeleteTarget
}

// confirm records a target and opens the confirmation step. Rejected
// while another delete is confirming or committing.
func (d *deletion) confirm(id uuid.UUID, name string) bool {
	if d.phase != deleteIdle {
		return false
	}
	d.phase = deleteConfirming
	d.target = DeleteTarget{ID: id, Name: name}
	return true
}

// cancel abandons a pending confirmation without touching the repository.
func (d *deletion) cancel() {
	if d.phase == deleteConfirming {
		d.phase = deleteIdle
		d.target = DeleteTarget{}
	}
}

// begin moves confirming → committing and hands back the recorded
// target. Returns false unless a confirmation is actually pending, so
// at most one repository delete is ever issued per confirmed target.
func (d *deletion) begin() (DeleteTarget, bool) {
	if d.phase != deleteConfirming {
		return DeleteTarget{}, false
	}
	d.phase = deleteCommitting
	return d.target, true
}

// finish returns to idle and clears the target, on success and failure
// alike: the confirmation dialog closes either way, with failures
// surfaced as a separate error message.
func (d *deletion) finish() {
	d.phase = deleteIdle
	d.target = DeleteTarget{}
}

// DeletionView is the read-only snapshot exposed to consumers.
type DeletionView struct {
	Confirming bool          `json:"confirming"`
	Committing bool          `json:"committing"`
	Target     *DeleteTarget `json:"target,omitempty"`
}

func (d *deletion) view() DeletionView {
	v := DeletionView{
		Confirming: d.phase == deleteConfirming,
		Committing: d.phase == deleteCommitting,
	}
	if d.phase != deleteIdle {
		t := d.target
		v.Target = &t
	}
	return v
}
