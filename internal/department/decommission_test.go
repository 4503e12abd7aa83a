package department

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// fakeDecommissionStore records the step sequence and can fail a named step
// or report leftover references from the final scan.
type fakeDecommissionStore struct {
	calls    []string
	failStep string
	dangling int64
	scanErr  error
}

func (f *fakeDecommissionStore) step(name string) error {
	f.calls = append(f.calls, name)
	if name == f.failStep {
		return errors.New(name + " failed")
	}
	return nil
}

func (f *fakeDecommissionStore) DetachUsers(uuid.UUID) error      { return f.step("DetachUsers") }
func (f *fakeDecommissionStore) ClearHOD(uuid.UUID) error         { return f.step("ClearHOD") }
func (f *fakeDecommissionStore) DeleteTickets(uuid.UUID) error    { return f.step("DeleteTickets") }
func (f *fakeDecommissionStore) DeleteRequests(uuid.UUID) error   { return f.step("DeleteRequests") }
func (f *fakeDecommissionStore) DeleteAssets(uuid.UUID) error     { return f.step("DeleteAssets") }
func (f *fakeDecommissionStore) DeleteLabs(uuid.UUID) error       { return f.step("DeleteLabs") }
func (f *fakeDecommissionStore) DeleteDepartment(uuid.UUID) error { return f.step("DeleteDepartment") }

func (f *fakeDecommissionStore) DanglingReferences(uuid.UUID) (int64, error) {
	f.calls = append(f.calls, "DanglingReferences")
	return f.dangling, f.scanErr
}

var decommissionOrder = []string{
	"DetachUsers",
	"ClearHOD",
	"DeleteTickets",
	"DeleteRequests",
	"DeleteAssets",
	"DeleteLabs",
	"DeleteDepartment",
	"DanglingReferences",
}

func TestDecommissionStepOrder(t *testing.T) {
	store := &fakeDecommissionStore{}
	if err := runDecommission(store, uuid.New()); err != nil {
		t.Fatalf("clean cascade should succeed: %v", err)
	}

	if len(store.calls) != len(decommissionOrder) {
		t.Fatalf("expected %d steps, ran %v", len(decommissionOrder), store.calls)
	}
	for i, want := range decommissionOrder {
		if store.calls[i] != want {
			t.Errorf("step %d: got %s, want %s", i+1, store.calls[i], want)
		}
	}
}

func TestDecommissionStopsOnFailedStep(t *testing.T) {
	// A failure mid-sequence must propagate so the surrounding transaction
	// rolls back, and no later step may run against a half-unwound state.
	for i, failStep := range decommissionOrder[:len(decommissionOrder)-1] {
		store := &fakeDecommissionStore{failStep: failStep}
		err := runDecommission(store, uuid.New())
		if err == nil {
			t.Fatalf("failing %s should fail the cascade", failStep)
		}
		if len(store.calls) != i+1 {
			t.Errorf("failing %s: expected %d steps before stop, ran %v", failStep, i+1, store.calls)
		}
	}
}

func TestDecommissionPostconditionScan(t *testing.T) {
	store := &fakeDecommissionStore{dangling: 3}
	err := runDecommission(store, uuid.New())
	if err == nil {
		t.Fatal("leftover references must fail the cascade")
	}
	if !strings.Contains(err.Error(), "3 references") {
		t.Fatalf("error should report the leftover count: %v", err)
	}

	store = &fakeDecommissionStore{scanErr: errors.New("count failed")}
	if err := runDecommission(store, uuid.New()); err == nil {
		t.Fatal("a failed postcondition scan must fail the cascade")
	}
}
