package common

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestPublicMessageHidesStoreCause(t *testing.T) {
	cause := errors.New(`ERROR: relation "assets" does not exist (SQLSTATE 42P01)`)
	err := Storef(cause, "failed to list assets")

	if got := PublicMessage(err); got != "failed to list assets" {
		t.Fatalf("expected classification message only, got %q", got)
	}

	// the full detail stays available for server-side logging
	if !strings.Contains(err.Error(), "SQLSTATE 42P01") {
		t.Fatalf("wrapped cause lost from Error(): %q", err.Error())
	}
}

func TestPublicMessageKeepsDomainKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"authorization", Forbiddenf("role %s is not permitted", RoleHOD), "role HOD is not permitted"},
		{"validation", Validationf("invalid department_id"), "invalid department_id"},
		{"not found", NotFoundf("ticket xyz not found"), "ticket xyz not found"},
		{"conflict", Conflictf("an asset with number A-1 already exists"), "an asset with number A-1 already exists"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PublicMessage(tc.err); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPublicMessageUnclassified(t *testing.T) {
	err := errors.New("pq: duplicate key value violates unique constraint")
	if got := PublicMessage(err); got != "internal error" {
		t.Fatalf("unclassified errors must stay generic, got %q", got)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Forbiddenf("no"), http.StatusForbidden},
		{Validationf("bad"), http.StatusBadRequest},
		{NotFoundf("gone"), http.StatusNotFound},
		{Conflictf("dup"), http.StatusConflict},
		{Storef(errors.New("boom"), "failed"), http.StatusInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
