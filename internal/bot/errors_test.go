package bot

import (
	"errors"
	"fmt"
	"testing"

	"dafi.es/dafibot/internal/election"
)

func TestUserError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := UserErrorf("el grupo %s no existe", "9.9")
		if err.Message != "el grupo 9.9 no existe" {
			t.Errorf("unexpected message %q", err.Message)
		}
		if err.Cause != nil {
			t.Error("expected no cause")
		}
		if err.Error() != err.Message {
			t.Errorf("expected Error() to return message, got %q", err.Error())
		}
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("database is locked")
		err := WrapUserError("No se pudo guardar", cause)
		if err.Cause != cause {
			t.Error("expected cause to be set")
		}
		if err.Error() != "No se pudo guardar: database is locked" {
			t.Errorf("unexpected Error() result: %s", err.Error())
		}
		if !errors.Is(err, cause) {
			t.Error("expected errors.Is to match cause")
		}
	})
}

func TestGetUserMessage(t *testing.T) {
	t.Run("wrapped UserError", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", UserErrorf("mensaje"))
		if msg := GetUserMessage(err); msg != "mensaje" {
			t.Errorf("expected 'mensaje', got %q", msg)
		}
	})

	t.Run("regular error", func(t *testing.T) {
		if msg := GetUserMessage(errors.New("database error")); msg != MsgInternalError {
			t.Errorf("expected generic message, got %q", msg)
		}
	})
}

func TestShouldLog(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"user mistake", UserErrorf("uso incorrecto"), false},
		{"user error with cause", WrapUserError("fallo", errors.New("db")), true},
		{"regular error", errors.New("boom"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldLog(tt.err); got != tt.want {
				t.Errorf("ShouldLog() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNominationError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		role    election.Role
		wantMsg string
		wantLog bool
	}{
		{"inactive", election.ErrElectionsInactive, election.RoleDelegate, MsgElectionsInactive, false},
		{"no main chat", election.ErrNoMainChat, election.RoleDelegate, MsgRequestNotProcessed, true},
		{"bad args delegate", fmt.Errorf("%w: x", election.ErrInvalidGroupRef), election.RoleDelegate,
			fmt.Sprintf(MsgFmtNominationUsage, ""), false},
		{"bad args subdelegate", election.ErrInvalidGroupRef, election.RoleSubdelegate,
			fmt.Sprintf(MsgFmtNominationUsage, "sub"), false},
		{"unknown group", election.ErrGroupNotFound, election.RoleDelegate, MsgGroupNotFound, false},
		{"storage failure", errors.New("disk full"), election.RoleDelegate, MsgRequestNotProcessed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := nominationError(tt.err, tt.role)
			if got := GetUserMessage(err); got != tt.wantMsg {
				t.Errorf("message = %q, want %q", got, tt.wantMsg)
			}
			if got := ShouldLog(err); got != tt.wantLog {
				t.Errorf("ShouldLog() = %v, want %v", got, tt.wantLog)
			}
		})
	}
}
