package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/amansgnr3001/studenthub/models"
)

func TestAcceptMarksPendingRowAndClearsReason(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `skills` SET .*`rejection_reason`.*`status`.*WHERE student_id = \\? AND file_path = \\? AND status = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	bus := NewChangeBus()
	sub := bus.Subscribe(PendingScope())
	defer sub.Close()

	svc := NewReviewService(db, bus)

	variant, err := svc.Accept(7, "uploads/student_7/cert.pdf", "Skills")
	if err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}
	if variant != models.VariantSkill {
		t.Fatalf("expected skill variant, got %s", variant)
	}

	select {
	case <-sub.C:
	default:
		t.Fatal("expected a change signal on the pending scope")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestRejectStoresReason(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `internships` SET .*`rejection_reason`.*`status`.*WHERE student_id = \\? AND file_path = \\? AND status = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewReviewService(db, NewChangeBus())

	if _, err := svc.Reject(3, "/uploads/student_3/intern.pdf", "internships", "certificate unreadable"); err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestRejectRequiresNonEmptyReason(t *testing.T) {
	db, _, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewReviewService(db, NewChangeBus())

	for _, reason := range []string{"", "   ", "\t\n"} {
		if _, err := svc.Reject(3, "/uploads/x.pdf", "internship", reason); !errors.Is(err, ErrEmptyReason) {
			t.Fatalf("reason %q: expected ErrEmptyReason, got %v", reason, err)
		}
	}
}

func TestReviewDistinguishesMissingFromResolved(t *testing.T) {
	cases := []struct {
		name    string
		matches int64
		want    error
	}{
		{name: "never existed", matches: 0, want: ErrReviewNotFound},
		{name: "already resolved", matches: 1, want: ErrAlreadyReviewed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			steps := []*queryStep{
				{
					kind:    kindExec,
					pattern: regexp.MustCompile("UPDATE `placements` SET .*WHERE student_id = \\? AND file_path = \\? AND status = \\?"),
					result:  scriptedResult{rowsAffected: 0},
				},
				{
					kind:    kindQuery,
					pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `placements` WHERE student_id = \\? AND file_path = \\?"),
					columns: []string{"count"},
					rows:    [][]driver.Value{{tc.matches}},
				},
			}

			db, state, cleanup := newScriptedGormDB(t, steps)
			defer cleanup()

			bus := NewChangeBus()
			sub := bus.Subscribe(PendingScope())
			defer sub.Close()

			svc := NewReviewService(db, bus)

			_, err := svc.Accept(5, "/uploads/student_5/offer.pdf", "placement")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}

			select {
			case <-sub.C:
				t.Fatal("no change signal expected for a refused review")
			default:
			}

			if err := state.verifyComplete(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestReviewRejectsUnknownAndUnreviewableVariants(t *testing.T) {
	db, _, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewReviewService(db, NewChangeBus())

	if _, err := svc.Accept(1, "/uploads/x.pdf", "certificates"); !errors.Is(err, models.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	if _, err := svc.Accept(1, "/uploads/x.pdf", "academics"); !errors.Is(err, ErrNotReviewable) {
		t.Fatalf("expected ErrNotReviewable, got %v", err)
	}
}
