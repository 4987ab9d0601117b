// Package timeline folds a match's goals, bookings and substitutions into
// one chronological event list for rendering.
package timeline

import (
	"fmt"
	"sort"

	"github.com/matchday-dev/matchday/external/footballdata"
)

type EventType string

const (
	EventGoal         EventType = "GOAL"
	EventBooking      EventType = "BOOKING"
	EventSubstitution EventType = "SUBSTITUTION"
)

// Event is one timeline row. Exactly one of the payload pointers is set,
// matching Type.
type Event struct {
	Type         EventType                  `json:"type"`
	Minute       int                        `json:"minute"`
	InjuryTime   int                        `json:"injuryTime,omitempty"`
	Team         footballdata.Team          `json:"team"`
	Goal         *footballdata.Goal         `json:"goal,omitempty"`
	Booking      *footballdata.Booking      `json:"booking,omitempty"`
	Substitution *footballdata.Substitution `json:"substitution,omitempty"`
}

// DisplayMinute renders the clock the way broadcasts do: "57'" or "45+2'".
func (e Event) DisplayMinute() string {
	if e.InjuryTime > 0 {
		return fmt.Sprintf("%d+%d'", e.Minute, e.InjuryTime)
	}
	return fmt.Sprintf("%d'", e.Minute)
}

// effectiveMinute places injury-time events after the nominal minute, so
// 45+2 lands between 46 and 48.
func (e Event) effectiveMinute() int {
	return e.Minute + e.InjuryTime
}

func (e Event) typeRank() int {
	switch e.Type {
	case EventGoal:
		return 0
	case EventBooking:
		return 1
	default:
		return 2
	}
}

// Merge interleaves the three event kinds in match-clock order. Events on
// the same effective minute order goals first, then bookings, then
// substitutions; within one kind the upstream order is kept.
func Merge(goals []footballdata.Goal, bookings []footballdata.Booking, substitutions []footballdata.Substitution) []Event {
	out := make([]Event, 0, len(goals)+len(bookings)+len(substitutions))

	for i := range goals {
		goal := goals[i]
		out = append(out, Event{
			Type:       EventGoal,
			Minute:     goal.Minute,
			InjuryTime: derefInjuryTime(goal.InjuryTime),
			Team:       goal.Team,
			Goal:       &goal,
		})
	}
	for i := range bookings {
		booking := bookings[i]
		out = append(out, Event{
			Type:    EventBooking,
			Minute:  booking.Minute,
			Team:    booking.Team,
			Booking: &booking,
		})
	}
	for i := range substitutions {
		sub := substitutions[i]
		out = append(out, Event{
			Type:         EventSubstitution,
			Minute:       sub.Minute,
			Team:         sub.Team,
			Substitution: &sub,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].effectiveMinute() != out[j].effectiveMinute() {
			return out[i].effectiveMinute() < out[j].effectiveMinute()
		}
		return out[i].typeRank() < out[j].typeRank()
	})

	return out
}

// FromMatch merges whatever detail expansions the match carries. Missing
// expansions simply contribute nothing.
func FromMatch(match *footballdata.Match) []Event {
	if match == nil {
		return nil
	}
	return Merge(match.Goals, match.Bookings, match.Substitutions)
}

func derefInjuryTime(value *int) int {
	if value == nil || *value < 0 {
		return 0
	}
	return *value
}
