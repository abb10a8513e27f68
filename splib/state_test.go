package splib

import (
	"errors"
	"testing"
)

// TestLifecycleStateString tests the String() method for LifecycleState.
func TestLifecycleStateString(t *testing.T) {
	tests := []struct {
		state    LifecycleState
		expected string
	}{
		{StateUninitialized, "uninitialized"},
		{StateReady, "ready"},
		{StateTerminated, "terminated"},
		{LifecycleState(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if result := tt.state.String(); result != tt.expected {
				t.Errorf("LifecycleState.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// TestLifecycleTransitions tests the valid and invalid transitions.
func TestLifecycleTransitions(t *testing.T) {
	tests := []struct {
		name    string
		path    []LifecycleState
		to      LifecycleState
		wantErr bool
	}{
		{
			name: "uninitialized to ready",
			to:   StateReady,
		},
		{
			name: "uninitialized to terminated",
			to:   StateTerminated,
		},
		{
			name: "ready to terminated",
			path: []LifecycleState{StateReady},
			to:   StateTerminated,
		},
		{
			name:    "ready to ready",
			path:    []LifecycleState{StateReady},
			to:      StateReady,
			wantErr: true,
		},
		{
			name:    "terminated to ready",
			path:    []LifecycleState{StateReady, StateTerminated},
			to:      StateReady,
			wantErr: true,
		},
		{
			name:    "terminated to terminated",
			path:    []LifecycleState{StateTerminated},
			to:      StateTerminated,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			life := NewLifecycle()
			for _, s := range tt.path {
				if err := life.Transition(s); err != nil {
					t.Fatalf("setup transition to %v failed: %v", s, err)
				}
			}

			err := life.Transition(tt.to)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Transition(%v) succeeded, want error", tt.to)
				}
				if !errors.Is(err, ErrStateTransition) {
					t.Errorf("Transition(%v) error = %v, want ErrStateTransition", tt.to, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Transition(%v) failed: %v", tt.to, err)
			}
			if life.Current() != tt.to {
				t.Errorf("Current() = %v, want %v", life.Current(), tt.to)
			}
		})
	}
}

// TestLifecycleCheckReady tests the query guard in every state.
func TestLifecycleCheckReady(t *testing.T) {
	life := NewLifecycle()
	if err := life.CheckReady(); !errors.Is(err, ErrNotReady) {
		t.Errorf("CheckReady() before init = %v, want ErrNotReady", err)
	}
	if life.Ready() {
		t.Error("Ready() before init = true, want false")
	}

	if err := life.Transition(StateReady); err != nil {
		t.Fatalf("Transition(StateReady) failed: %v", err)
	}
	if err := life.CheckReady(); err != nil {
		t.Errorf("CheckReady() when ready = %v, want nil", err)
	}
	if !life.Ready() {
		t.Error("Ready() when ready = false, want true")
	}

	if err := life.Transition(StateTerminated); err != nil {
		t.Fatalf("Transition(StateTerminated) failed: %v", err)
	}
	if err := life.CheckReady(); !errors.Is(err, ErrTerminated) {
		t.Errorf("CheckReady() after terminate = %v, want ErrTerminated", err)
	}
}

// TestLifecycleCheckUninitialized tests the re-initialization guard.
func TestLifecycleCheckUninitialized(t *testing.T) {
	life := NewLifecycle()
	if err := life.CheckUninitialized(); err != nil {
		t.Errorf("CheckUninitialized() before init = %v, want nil", err)
	}

	if err := life.Transition(StateReady); err != nil {
		t.Fatalf("Transition(StateReady) failed: %v", err)
	}
	if err := life.CheckUninitialized(); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("CheckUninitialized() when ready = %v, want ErrAlreadyInitialized", err)
	}
}
