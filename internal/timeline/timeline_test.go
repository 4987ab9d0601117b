package timeline

import (
	"testing"

	"github.com/matchday-dev/matchday/external/footballdata"
)

func goalAt(minute int, injury int, scorer string) footballdata.Goal {
	g := footballdata.Goal{
		Minute: minute,
		Team:   footballdata.Team{ID: 86, Name: "Real Madrid CF"},
		Scorer: footballdata.Person{ID: 1, Name: scorer},
	}
	if injury > 0 {
		g.InjuryTime = &injury
	}
	return g
}

func bookingAt(minute int, player string) footballdata.Booking {
	return footballdata.Booking{
		Minute: minute,
		Team:   footballdata.Team{ID: 81, Name: "FC Barcelona"},
		Player: footballdata.Person{ID: 2, Name: player},
		Card:   footballdata.CardYellow,
	}
}

func subAt(minute int, in string) footballdata.Substitution {
	return footballdata.Substitution{
		Minute:    minute,
		Team:      footballdata.Team{ID: 86, Name: "Real Madrid CF"},
		PlayerOut: footballdata.Person{ID: 3, Name: "Out"},
		PlayerIn:  footballdata.Person{ID: 4, Name: in},
	}
}

func TestMerge_OrdersByMatchClock(t *testing.T) {
	t.Parallel()

	events := Merge(
		[]footballdata.Goal{goalAt(46, 0, "Vinicius"), goalAt(10, 0, "Bellingham")},
		[]footballdata.Booking{bookingAt(48, "Pedri")},
		[]footballdata.Substitution{subAt(60, "Camavinga")},
	)

	if len(events) != 4 {
		t.Fatalf("expected 4 events, got=%d", len(events))
	}
	wantMinutes := []int{10, 46, 48, 60}
	for i, want := range wantMinutes {
		if events[i].Minute != want {
			t.Fatalf("event %d: expected minute=%d, got=%d", i, want, events[i].Minute)
		}
	}
}

func TestMerge_InjuryTimeSitsAfterTheNominalMinute(t *testing.T) {
	t.Parallel()

	events := Merge(
		[]footballdata.Goal{goalAt(45, 2, "Lewandowski"), goalAt(46, 0, "Vinicius")},
		[]footballdata.Booking{bookingAt(48, "Pedri")},
		nil,
	)

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got=%d", len(events))
	}
	if events[0].Minute != 46 {
		t.Fatalf("expected the 46' goal first, got minute=%d", events[0].Minute)
	}
	if events[1].Minute != 45 || events[1].InjuryTime != 2 {
		t.Fatalf("expected 45+2' second, got minute=%d injury=%d", events[1].Minute, events[1].InjuryTime)
	}
	if events[1].DisplayMinute() != "45+2'" {
		t.Fatalf("expected display 45+2', got=%q", events[1].DisplayMinute())
	}
	if events[2].Minute != 48 {
		t.Fatalf("expected the 48' booking last, got minute=%d", events[2].Minute)
	}
	if events[2].DisplayMinute() != "48'" {
		t.Fatalf("expected display 48', got=%q", events[2].DisplayMinute())
	}
}

func TestMerge_SameMinuteOrdersGoalsBookingsSubs(t *testing.T) {
	t.Parallel()

	events := Merge(
		[]footballdata.Goal{goalAt(10, 0, "Bellingham")},
		[]footballdata.Booking{bookingAt(10, "Pedri")},
		[]footballdata.Substitution{subAt(10, "Camavinga")},
	)

	wantTypes := []EventType{EventGoal, EventBooking, EventSubstitution}
	for i, want := range wantTypes {
		if events[i].Type != want {
			t.Fatalf("slot %d: expected %s, got=%s", i, want, events[i].Type)
		}
	}
}

func TestMerge_KeepsUpstreamOrderWithinOneKind(t *testing.T) {
	t.Parallel()

	events := Merge(nil, []footballdata.Booking{bookingAt(30, "First"), bookingAt(30, "Second")}, nil)

	if events[0].Booking.Player.Name != "First" || events[1].Booking.Player.Name != "Second" {
		t.Fatalf("expected stable order, got %q then %q", events[0].Booking.Player.Name, events[1].Booking.Player.Name)
	}
}

func TestMerge_IsDeterministic(t *testing.T) {
	t.Parallel()

	goals := []footballdata.Goal{goalAt(45, 3, "A"), goalAt(12, 0, "B")}
	bookings := []footballdata.Booking{bookingAt(45, "C"), bookingAt(48, "D")}
	subs := []footballdata.Substitution{subAt(46, "E")}

	first := Merge(goals, bookings, subs)
	second := Merge(goals, bookings, subs)

	if len(first) != len(second) {
		t.Fatalf("expected equal lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Type != second[i].Type || first[i].Minute != second[i].Minute || first[i].InjuryTime != second[i].InjuryTime {
			t.Fatalf("slot %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestFromMatch_HandlesMissingExpansions(t *testing.T) {
	t.Parallel()

	if events := FromMatch(nil); events != nil {
		t.Fatalf("expected nil for nil match, got=%v", events)
	}

	match := &footballdata.Match{
		ID:     1,
		Status: footballdata.StatusInPlay,
		Goals:  []footballdata.Goal{goalAt(20, 0, "Mbappe")},
	}
	events := FromMatch(match)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got=%d", len(events))
	}
	if events[0].Type != EventGoal {
		t.Fatalf("expected a goal event, got=%s", events[0].Type)
	}
	if events[0].Team.ID != 86 {
		t.Fatalf("expected team promoted onto the event, got=%+v", events[0].Team)
	}
	if events[0].Goal.Scorer.Name != "Mbappe" {
		t.Fatalf("expected scorer payload, got=%+v", events[0].Goal)
	}
}
